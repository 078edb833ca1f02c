package repository

import (
	"context"

	"github.com/santhoshkumar20044/HOI-Activity-New/internal/models"
	"github.com/santhoshkumar20044/HOI-Activity-New/pkg/hoiapi"
)

// RecordReader reads activity collections and record details from the HOI server.
type RecordReader interface {
	ListPendingApprovals(ctx context.Context) ([]models.ApprovalRecord, error)
	ListAlerts(ctx context.Context) ([]models.AlertRecord, error)
	ListTodayActivities(ctx context.Context) ([]models.ActivityRecord, error)
	GetRecord(ctx context.Context, id int64) (hoiapi.RecordDetail, error)
}

// RecordWriter performs review actions and form submissions on the HOI server.
type RecordWriter interface {
	Approve(ctx context.Context, id int64, remarks string) (hoiapi.ActionResult, error)
	Disapprove(ctx context.Context, id int64, remarks string) (hoiapi.ActionResult, error)
	SetAlert(ctx context.Context, id int64, on bool) (hoiapi.ActionResult, error)
	SubmitForm(ctx context.Context, form map[string]interface{}) (hoiapi.ActionResult, error)
}

// AssistantClient asks the HOI server's assistant for a reply.
type AssistantClient interface {
	Reply(ctx context.Context, message string) (string, error)
}

var (
	_ RecordReader    = (*hoiapi.Client)(nil)
	_ RecordWriter    = (*hoiapi.Client)(nil)
	_ AssistantClient = (*hoiapi.Client)(nil)
)
