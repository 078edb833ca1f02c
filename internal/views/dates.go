package views

import "github.com/santhoshkumar20044/HOI-Activity-New/internal/models"

const (
	shortDateLayout     = "02/01/06"
	shortDateTimeLayout = "02/01/06, 3:04 pm"
)

// ShortDate renders a timestamp as dd/mm/yy. Unparsable input is returned as received.
func ShortDate(ts models.Timestamp) string {
	if !ts.Valid() {
		return ts.Raw
	}
	return ts.Time.Format(shortDateLayout)
}

// ShortDateTime renders a timestamp as "dd/mm/yy, h:mm am".
func ShortDateTime(ts models.Timestamp) string {
	if !ts.Valid() {
		return ts.Raw
	}
	return ts.Time.Format(shortDateTimeLayout)
}
