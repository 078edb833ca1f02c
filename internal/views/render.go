// Package views renders the dashboard's HTML pages and htmx fragments.
package views

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/santhoshkumar20044/HOI-Activity-New/internal/dto"
	"github.com/santhoshkumar20044/HOI-Activity-New/internal/models"
	"github.com/santhoshkumar20044/HOI-Activity-New/internal/service"
)

// Template names.
const (
	TemplateLayout       = "layout"
	TemplateSection      = "section"
	TemplateCards        = "cards"
	TemplateActionResult = "action_result"
	TemplateNotice       = "notice"
	TemplateReviewModal  = "review_modal"
	TemplateDetail       = "detail"
	TemplateChat         = "chat_messages"
	TemplateChatExchange = "chat_exchange"
)

// Notice kinds.
const (
	NoticeSuccess = "success"
	NoticeError   = "error"
)

// NavItem is one sidebar entry.
type NavItem struct {
	Kind   service.ViewKind
	Label  string
	Icon   string
	Active bool
}

// Notice is a dismissible message shown above the content.
type Notice struct {
	Kind    string
	Message string
}

// SectionData is the content area. Error replaces the section body when set.
type SectionData struct {
	Page  service.Page
	Error string
}

// LayoutData is the full dashboard page.
type LayoutData struct {
	AppName string
	Nav     []NavItem
	Section SectionData
}

// ActionResultData is returned after a mutating action. It carries a notice,
// the refreshed cards and the section to show next.
type ActionResultData struct {
	Notice     Notice
	Metrics    *dto.MetricsDisplay
	Section    *SectionData
	CloseModal bool
}

// ReviewModalData describes the approve/disapprove dialog.
type ReviewModalData struct {
	RecordID int64
	FormName string
	SavedBy  string
	Error    string
}

// ChatExchangeData is the transcript returned on submit. A set Pending
// makes the fragment fetch the reply for that typing indicator on load.
type ChatExchangeData struct {
	Entries []dto.ChatEntry
	Pending string
}

// DetailData is the read-only record details dialog.
type DetailData struct {
	Detail dto.RecordDetailView
	Error  string
}

// CardsData feeds the metric cards. OOB marks an out-of-band swap.
type CardsData struct {
	Metrics dto.MetricsDisplay
	OOB     bool
}

func cards(metrics dto.MetricsDisplay, oob bool) CardsData {
	return CardsData{Metrics: metrics, OOB: oob}
}

// Renderer executes the dashboard templates.
type Renderer struct {
	templates *template.Template
}

// NewRenderer parses the dashboard templates.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("dashboard").Funcs(template.FuncMap{
		"shortDate":     ShortDate,
		"shortDateTime": ShortDateTime,
		"statusBadge":   StatusBadgeClass,
		"alertConfirm":  service.AlertConfirmPrompt,
		"orNA":          orNA,
		"cards":         cards,
	}).Parse(dashboardTemplates)
	if err != nil {
		return nil, fmt.Errorf("parse dashboard templates: %w", err)
	}
	return &Renderer{templates: tmpl}, nil
}

// Render executes the named template and returns the produced markup.
func (r *Renderer) Render(name string, data interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("render %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// Navigation returns the sidebar entries with active marked.
func Navigation(active service.ViewKind) []NavItem {
	labels := map[service.ViewKind][2]string{
		service.ViewOverview:  {"Overview", "dashboard"},
		service.ViewActivity:  {"Today's Activity", "today"},
		service.ViewApprovals: {"Pending Approvals", "pending_actions"},
		service.ViewAlerts:    {"Alerts", "notifications"},
		service.ViewFormsList: {"Action Tables", "list_alt"},
	}

	kinds := service.ViewKinds()
	items := make([]NavItem, 0, len(kinds))
	for _, kind := range kinds {
		items = append(items, NavItem{
			Kind:   kind,
			Label:  labels[kind][0],
			Icon:   labels[kind][1],
			Active: kind == active,
		})
	}
	return items
}

// StatusBadgeClass picks the badge colours for a record status.
func StatusBadgeClass(status models.RecordStatus) string {
	switch status {
	case models.RecordStatusApproved:
		return "bg-green-100 text-green-800"
	case models.RecordStatusDisapproved:
		return "bg-red-100 text-red-800"
	default:
		return "bg-yellow-100 text-yellow-800"
	}
}

func orNA(value string) string {
	if value == "" {
		return "N/A"
	}
	return value
}
