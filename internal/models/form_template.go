package models

import (
	"strings"
	"unicode"
)

// FormTemplate is an entry of the static action-table catalog.
type FormTemplate struct {
	FileName    string `json:"file_name"`
	DisplayName string `json:"display_name"`
}

var formTemplateFiles = []string{
	"academics.html", "accounts.html", "accreditation.html", "admission.html", "affiliations.html", "ahs.html",
	"boys_hostel.html", "budget.html", "engineering.html", "event_management.html", "girls_hostel.html",
	"guestservice.html", "Hr.html", "incubation.html", "infra_operation.html", "It_Infra.html",
	"mess_management.html", "new_institution.html", "nursing.html", "pharmacy.html", "placement.html",
	"purchase.html", "research.html", "safety.html", "security.html", "transport.html", "branding_marketing.html",
}

// FormTemplates returns the catalog in display order.
func FormTemplates() []FormTemplate {
	out := make([]FormTemplate, 0, len(formTemplateFiles))
	for _, name := range formTemplateFiles {
		out = append(out, FormTemplate{FileName: name, DisplayName: FormDisplayName(name)})
	}
	return out
}

// FormDisplayName turns "boys_hostel.html" into "Boys Hostel".
func FormDisplayName(fileName string) string {
	base := strings.Replace(fileName, ".html", "", 1)
	base = strings.ReplaceAll(base, "_", " ")

	runes := []rune(base)
	atWordStart := true
	for i, r := range runes {
		isWord := unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
		if isWord && atWordStart {
			runes[i] = unicode.ToUpper(r)
		}
		atWordStart = !isWord
	}
	return string(runes)
}
