package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/santhoshkumar20044/HOI-Activity-New/internal/models"
	"github.com/santhoshkumar20044/HOI-Activity-New/pkg/hoiapi"
)

func newViewFixture() (ViewService, *fakeUpstream) {
	upstream := newFakeUpstream()
	metrics := NewMetricsService(upstream, "", zerolog.Nop())
	return NewViewService(upstream, metrics, func(name string) string { return "http://hoi.local/api/load_form_template/" + name }, zerolog.Nop()), upstream
}

func TestParseViewFallsBackToOverview(t *testing.T) {
	require.Equal(t, ViewApprovals, ParseView("approvals"))
	require.Equal(t, ViewFormsList, ParseView(" forms_list "))
	require.Equal(t, ViewOverview, ParseView("settings"))
	require.Equal(t, ViewOverview, ParseView(""))
}

func TestViewTitles(t *testing.T) {
	titles := map[ViewKind]string{
		ViewOverview:  "Dashboard Overview 📊",
		ViewActivity:  "Today's Activity 📝",
		ViewApprovals: "Pending Approvals ⏳",
		ViewAlerts:    "Active Alerts 🔔",
		ViewFormsList: "Action Tables List 📋",
	}
	for _, kind := range ViewKinds() {
		view := ViewFor(kind)
		require.Equal(t, kind, view.Kind())
		require.Equal(t, titles[kind], view.Title())
	}
}

func TestLoadFetchesOnlyWhatTheViewNeeds(t *testing.T) {
	svc, upstream := newViewFixture()
	upstream.pending = []models.ApprovalRecord{activityRecord(1, models.RecordStatusPending)}

	page, err := svc.Load(context.Background(), ApprovalsView{})
	require.NoError(t, err)
	require.Equal(t, ViewApprovals, page.Kind)
	require.Len(t, page.Approvals, 1)
	require.Equal(t, 1, upstream.count("pending"))
	require.Zero(t, upstream.count("alerts"))
	require.Zero(t, upstream.count("activity"))

	page, err = svc.Load(context.Background(), FormsListView{})
	require.NoError(t, err)
	require.Len(t, page.Forms, 27)
	require.Equal(t, 1, upstream.count("pending"))
}

func TestLoadOverviewCarriesMetrics(t *testing.T) {
	svc, upstream := newViewFixture()
	upstream.alerts = []models.AlertRecord{activityRecord(1, models.RecordStatusPending)}

	page, err := svc.Load(context.Background(), OverviewView{})
	require.NoError(t, err)
	require.True(t, page.Metrics.Available)
	require.Equal(t, "1", page.Metrics.Alerts)
}

func TestLoadFormsListDerivesDisplayNames(t *testing.T) {
	svc, _ := newViewFixture()

	page, err := svc.Load(context.Background(), FormsListView{})
	require.NoError(t, err)

	byFile := make(map[string]FormLink)
	for _, link := range page.Forms {
		byFile[link.FileName] = link
	}
	require.Equal(t, "Boys Hostel", byFile["boys_hostel.html"].DisplayName)
	require.Equal(t, "It Infra", byFile["It_Infra.html"].DisplayName)
	require.Equal(t, "Hr", byFile["Hr.html"].DisplayName)
	require.Equal(t, "http://hoi.local/api/load_form_template/safety.html", byFile["safety.html"].URL)
}

func TestLoadErrorCarriesMessage(t *testing.T) {
	svc, upstream := newViewFixture()
	upstream.activityErr = &hoiapi.TransportError{Op: "list_today_activities", StatusCode: 502}

	page, err := svc.Load(context.Background(), ActivityView{})
	require.Error(t, err)
	require.Equal(t, "Today's Activity 📝", page.Title)
	require.Equal(t, "Error loading data: HTTP error! Status: 502", LoadFailureMessage(err))
}
