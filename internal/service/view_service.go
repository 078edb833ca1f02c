package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/santhoshkumar20044/HOI-Activity-New/internal/dto"
	"github.com/santhoshkumar20044/HOI-Activity-New/internal/models"
	"github.com/santhoshkumar20044/HOI-Activity-New/internal/repository"
)

// ViewKind names a dashboard section.
type ViewKind string

// Dashboard sections.
const (
	ViewOverview  ViewKind = "overview"
	ViewActivity  ViewKind = "activity"
	ViewApprovals ViewKind = "approvals"
	ViewAlerts    ViewKind = "alerts"
	ViewFormsList ViewKind = "forms_list"
)

// ViewKinds lists the sections in navigation order.
func ViewKinds() []ViewKind {
	return []ViewKind{ViewOverview, ViewActivity, ViewApprovals, ViewAlerts, ViewFormsList}
}

// ParseView maps a section name to its kind. Unknown names fall back to the overview.
func ParseView(name string) ViewKind {
	switch kind := ViewKind(strings.TrimSpace(name)); kind {
	case ViewOverview, ViewActivity, ViewApprovals, ViewAlerts, ViewFormsList:
		return kind
	default:
		return ViewOverview
	}
}

// View is one of the dashboard's sections. The set of implementations is closed.
type View interface {
	Kind() ViewKind
	Title() string
	sealed()
}

// OverviewView shows the metric cards and quick links.
type OverviewView struct{}

// ActivityView lists today's submissions.
type ActivityView struct{}

// ApprovalsView lists submissions awaiting review.
type ApprovalsView struct{}

// AlertsView lists flagged submissions.
type AlertsView struct{}

// FormsListView lists the form templates.
type FormsListView struct{}

func (OverviewView) Kind() ViewKind  { return ViewOverview }
func (ActivityView) Kind() ViewKind  { return ViewActivity }
func (ApprovalsView) Kind() ViewKind { return ViewApprovals }
func (AlertsView) Kind() ViewKind    { return ViewAlerts }
func (FormsListView) Kind() ViewKind { return ViewFormsList }

func (OverviewView) Title() string  { return "Dashboard Overview 📊" }
func (ActivityView) Title() string  { return "Today's Activity 📝" }
func (ApprovalsView) Title() string { return "Pending Approvals ⏳" }
func (AlertsView) Title() string    { return "Active Alerts 🔔" }
func (FormsListView) Title() string { return "Action Tables List 📋" }

func (OverviewView) sealed()  {}
func (ActivityView) sealed()  {}
func (ApprovalsView) sealed() {}
func (AlertsView) sealed()    {}
func (FormsListView) sealed() {}

// ViewFor returns the view for kind.
func ViewFor(kind ViewKind) View {
	switch kind {
	case ViewActivity:
		return ActivityView{}
	case ViewApprovals:
		return ApprovalsView{}
	case ViewAlerts:
		return AlertsView{}
	case ViewFormsList:
		return FormsListView{}
	default:
		return OverviewView{}
	}
}

// FormLink is one entry of the forms list.
type FormLink struct {
	FileName    string
	DisplayName string
	URL         string
}

// Page carries everything needed to render one section. Only the collection
// matching Kind is populated.
type Page struct {
	Kind      ViewKind
	Title     string
	Metrics   dto.MetricsDisplay
	Activity  []models.ActivityRecord
	Approvals []models.ApprovalRecord
	Alerts    []models.AlertRecord
	Forms     []FormLink
}

// ViewService loads the data behind each dashboard section.
type ViewService interface {
	Load(ctx context.Context, view View) (Page, error)
}

type viewService struct {
	records     repository.RecordReader
	metrics     MetricsService
	templateURL func(fileName string) string
	logger      zerolog.Logger
	tracer      trace.Tracer
}

// NewViewService builds the section loader. templateURL maps a form template
// file name to the address it opens from.
func NewViewService(records repository.RecordReader, metrics MetricsService, templateURL func(string) string, logger zerolog.Logger) ViewService {
	if templateURL == nil {
		templateURL = func(name string) string { return "/api/load_form_template/" + name }
	}
	return &viewService{
		records:     records,
		metrics:     metrics,
		templateURL: templateURL,
		logger:      logger.With().Str("component", "view_service").Logger(),
		tracer:      otel.Tracer("github.com/santhoshkumar20044/HOI-Activity-New/internal/service/view"),
	}
}

func (s *viewService) Load(ctx context.Context, view View) (Page, error) {
	if view == nil {
		view = OverviewView{}
	}

	ctx, span := s.tracer.Start(ctx, "view.load", trace.WithAttributes(attribute.String("view.kind", string(view.Kind()))))
	defer span.End()

	page := Page{Kind: view.Kind(), Title: view.Title()}
	var err error

	switch view.(type) {
	case OverviewView:
		page.Metrics = s.metrics.Display(ctx)
	case ActivityView:
		page.Activity, err = s.records.ListTodayActivities(ctx)
	case ApprovalsView:
		page.Approvals, err = s.records.ListPendingApprovals(ctx)
	case AlertsView:
		page.Alerts, err = s.records.ListAlerts(ctx)
	case FormsListView:
		page.Forms = s.formLinks()
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "load failed")
		s.logger.Warn().Err(err).Str("view", string(view.Kind())).Msg("failed to load section")
		return Page{Kind: view.Kind(), Title: view.Title()}, err
	}
	return page, nil
}

func (s *viewService) formLinks() []FormLink {
	templates := models.FormTemplates()
	links := make([]FormLink, 0, len(templates))
	for _, template := range templates {
		links = append(links, FormLink{
			FileName:    template.FileName,
			DisplayName: template.DisplayName,
			URL:         s.templateURL(template.FileName),
		})
	}
	return links
}

// LoadFailureMessage renders the banner shown when a section cannot load.
func LoadFailureMessage(err error) string {
	return "Error loading data: " + err.Error()
}
