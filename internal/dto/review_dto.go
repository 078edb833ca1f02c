package dto

import "github.com/santhoshkumar20044/HOI-Activity-New/internal/models"

// ReviewRequest is the form posted by the approve action.
type ReviewRequest struct {
	RecordID int64  `validate:"required,gt=0"`
	Remarks  string `form:"remarks" json:"remarks" validate:"max=2000"`
}

// DisapproveRequest is the form posted by the disapprove action.
type DisapproveRequest struct {
	RecordID int64  `validate:"required,gt=0"`
	Remarks  string `form:"remarks" json:"remarks" validate:"max=2000"`
}

// AlertToggleRequest carries the record's alert flag as it was rendered.
type AlertToggleRequest struct {
	RecordID int64 `validate:"required,gt=0"`
	Current  int   `form:"current" json:"current" validate:"oneof=0 1"`
}

// CurrentlyOn reports whether the alert was set when the toggle was rendered.
func (r AlertToggleRequest) CurrentlyOn() bool {
	return r.Current == 1
}

// ActionOutcome is returned by every mutating action. Metrics is refreshed after
// the action completed and Section names the view to show next.
type ActionOutcome struct {
	Message string         `json:"message"`
	Metrics MetricsDisplay `json:"metrics"`
	Section string         `json:"section,omitempty"`
}

// RecordDetailView is the read-only record details presentation.
type RecordDetailView struct {
	ID       int64               `json:"id"`
	FormName string              `json:"form_name"`
	Status   models.RecordStatus `json:"status"`
	Content  string              `json:"content"`
}

// Text renders the details as a plain text block.
func (v RecordDetailView) Text() string {
	return "Record Details (ID: " + formatID(v.ID) + ")\n" +
		"Form Name: " + v.FormName + "\n" +
		"Status: " + string(v.Status) + "\n\n" +
		"--- Full JSON Content ---\n" + v.Content
}
