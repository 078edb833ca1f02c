package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/santhoshkumar20044/HOI-Activity-New/internal/models"
	"github.com/santhoshkumar20044/HOI-Activity-New/pkg/hoiapi"
)

func newReviewFixture(t *testing.T) (ReviewService, *fakeUpstream) {
	t.Helper()
	upstream := newFakeUpstream()
	metrics := NewMetricsService(upstream, "", zerolog.Nop())
	svc, err := NewReviewService(upstream, upstream, metrics, nil, zerolog.Nop())
	require.NoError(t, err)
	return svc, upstream
}

func TestDisapproveWithoutRemarksSendsNothing(t *testing.T) {
	svc, upstream := newReviewFixture(t)

	for _, remarks := range []string{"", "   ", "\n\t"} {
		_, err := svc.Disapprove(context.Background(), 5, remarks)
		require.ErrorIs(t, err, ErrRemarksRequired)
		require.Equal(t, RemarksRequiredMessage, ActionFailureMessage(ActionDisapprove, err))
	}
	require.Zero(t, upstream.count("disapprove"))
	require.Zero(t, upstream.count("pending"), "metrics are not refreshed for a blocked action")
}

func TestApproveReturnsMessageAndFreshMetrics(t *testing.T) {
	svc, upstream := newReviewFixture(t)
	upstream.result = hoiapi.ActionResult{Status: "ok", Message: "Approved"}
	upstream.pending = []models.ApprovalRecord{activityRecord(1, models.RecordStatusPending)}

	outcome, err := svc.Approve(context.Background(), 1, "  looks good  ")
	require.NoError(t, err)
	require.Equal(t, "✅ APPROVE successful. Message: Approved", outcome.Message)
	require.Equal(t, "looks good", upstream.lastRemarks)
	require.Equal(t, string(ViewApprovals), outcome.Section)
	require.True(t, outcome.Metrics.Available)
	require.Equal(t, "1", outcome.Metrics.Pending)
	require.Equal(t, 1, upstream.count("pending"))
}

func TestApproveAllowsEmptyRemarks(t *testing.T) {
	svc, upstream := newReviewFixture(t)
	upstream.result = hoiapi.ActionResult{Status: "ok", Message: "done"}

	_, err := svc.Approve(context.Background(), 2, "")
	require.NoError(t, err)
	require.Equal(t, 1, upstream.count("approve"))
}

func TestDisapproveSuccessMessage(t *testing.T) {
	svc, upstream := newReviewFixture(t)
	upstream.result = hoiapi.ActionResult{Status: "ok", Message: "Sent back"}

	outcome, err := svc.Disapprove(context.Background(), 3, "missing signature")
	require.NoError(t, err)
	require.Equal(t, "✅ DISAPPROVE successful. Message: Sent back", outcome.Message)
	require.Equal(t, "missing signature", upstream.lastRemarks)
}

func TestInvalidRecordIDFailsValidation(t *testing.T) {
	svc, upstream := newReviewFixture(t)

	_, err := svc.Approve(context.Background(), 0, "")
	require.Error(t, err)
	require.True(t, strings.HasPrefix(ActionFailureMessage(ActionApprove, err), "Invalid request"))
	require.Zero(t, upstream.count("approve"))
}

func TestToggleAlertRequestsTheInverse(t *testing.T) {
	svc, upstream := newReviewFixture(t)
	upstream.result = hoiapi.ActionResult{Status: "ok", Message: "Alert updated"}

	outcome, err := svc.ToggleAlert(context.Background(), 9, true)
	require.NoError(t, err)
	require.NotNil(t, upstream.lastAlert)
	require.False(t, *upstream.lastAlert)
	require.Equal(t, "Alert updated", outcome.Message)
	require.Equal(t, string(ViewAlerts), outcome.Section)

	_, err = svc.ToggleAlert(context.Background(), 9, false)
	require.NoError(t, err)
	require.True(t, *upstream.lastAlert)
}

func TestActionFailureMessages(t *testing.T) {
	rejected := &hoiapi.ActionRejectedError{Op: "approve", StatusCode: 404, Status: "error", Message: "Record not found"}
	transport := &hoiapi.TransportError{Op: "set_alert", Err: errors.New("connection refused")}

	require.Equal(t, "❌ Error during approve: Record not found", ActionFailureMessage(ActionApprove, rejected))
	require.Equal(t, "❌ Error during disapprove: Record not found", ActionFailureMessage(ActionDisapprove, rejected))
	require.Equal(t, "Error updating Alert status: Record not found", ActionFailureMessage(ActionAlert, rejected))
	require.Equal(t, "Submission failed: Record not found", ActionFailureMessage(ActionSubmit, rejected))

	require.Equal(t, "Network or internal error during approve: set_alert: connection refused", ActionFailureMessage(ActionApprove, transport))
	require.Equal(t, "Network or internal error during alert update: set_alert: connection refused", ActionFailureMessage(ActionAlert, transport))
	require.Equal(t, "An error occurred during submission.", ActionFailureMessage(ActionSubmit, transport))
}

func TestRejectedActionSkipsMetricsRefresh(t *testing.T) {
	svc, upstream := newReviewFixture(t)
	upstream.actionErr = &hoiapi.ActionRejectedError{Op: "approve", Message: "Already approved"}

	_, err := svc.Approve(context.Background(), 4, "")
	rejected, ok := hoiapi.IsRejected(err)
	require.True(t, ok)
	require.Equal(t, "Already approved", rejected.Message)
	require.Zero(t, upstream.count("pending"))
}

func TestSubmitValidatesAgainstSchema(t *testing.T) {
	svc, upstream := newReviewFixture(t)
	upstream.result = hoiapi.ActionResult{Status: "ok", Message: "Saved"}

	_, err := svc.Submit(context.Background(), map[string]interface{}{"budget": 1200})
	require.ErrorIs(t, err, ErrInvalidSubmission)
	require.Contains(t, ActionFailureMessage(ActionSubmit, err), "form_name")

	_, err = svc.Submit(context.Background(), map[string]interface{}{"form_name": ""})
	require.ErrorIs(t, err, ErrInvalidSubmission)
	require.Zero(t, upstream.count("submit"))

	outcome, err := svc.Submit(context.Background(), map[string]interface{}{"form_name": "Accounts & Finance", "budget": 1200})
	require.NoError(t, err)
	require.Equal(t, "Saved", outcome.Message)
	require.Equal(t, string(ViewOverview), outcome.Section)
	require.Equal(t, "Accounts & Finance", upstream.lastForm["form_name"])
}

func TestDetailFormatsRecord(t *testing.T) {
	svc, upstream := newReviewFixture(t)
	upstream.detail = hoiapi.RecordDetail{"form_name": "Safety", "status": "pending", "data": map[string]interface{}{"drills": 2}}

	view, err := svc.Detail(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, int64(7), view.ID)
	require.Equal(t, "Safety", view.FormName)
	require.Equal(t, models.RecordStatusPending, view.Status)
	require.True(t, strings.HasPrefix(view.Text(), "Record Details (ID: 7)\nForm Name: Safety\nStatus: pending\n\n--- Full JSON Content ---\n{"))
	require.Contains(t, view.Content, "\n  \"data\": {")
}

func TestDetailDefaultsMissingFields(t *testing.T) {
	svc, upstream := newReviewFixture(t)
	upstream.detail = hoiapi.RecordDetail{"id": 8}

	view, err := svc.Detail(context.Background(), 8)
	require.NoError(t, err)
	require.Equal(t, "N/A", view.FormName)
	require.Equal(t, models.RecordStatus("N/A"), view.Status)
}

func TestDetailFailureMessage(t *testing.T) {
	err := &hoiapi.TransportError{Op: "get_record", StatusCode: 404}
	require.Equal(t, "Error: Could not load details for ID 3. HTTP error! Status: 404", DetailFailureMessage(3, err))
}

func TestAlertConfirmPrompt(t *testing.T) {
	require.Equal(t, "Confirm setting Alert for Record ID: 12?", AlertConfirmPrompt(12, false))
	require.Equal(t, "Confirm clearing Alert for Record ID: 12?", AlertConfirmPrompt(12, true))
}
