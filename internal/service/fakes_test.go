package service

import (
	"context"
	"sync"

	"github.com/santhoshkumar20044/HOI-Activity-New/internal/models"
	"github.com/santhoshkumar20044/HOI-Activity-New/internal/repository"
	"github.com/santhoshkumar20044/HOI-Activity-New/pkg/hoiapi"
)

type fakeUpstream struct {
	mu sync.Mutex

	pending     []models.ApprovalRecord
	pendingErr  error
	alerts      []models.AlertRecord
	alertsErr   error
	activity    []models.ActivityRecord
	activityErr error
	detail      hoiapi.RecordDetail
	detailErr   error

	result    hoiapi.ActionResult
	actionErr error

	reply    string
	replyErr error
	onReply  func()

	calls       map[string]int
	lastRemarks string
	lastAlert   *bool
	lastForm    map[string]interface{}
	lastMessage string
}

func newFakeUpstream() *fakeUpstream {
	return &fakeUpstream{calls: make(map[string]int)}
}

func (f *fakeUpstream) record(op string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[op]++
}

func (f *fakeUpstream) count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeUpstream) ListPendingApprovals(ctx context.Context) ([]models.ApprovalRecord, error) {
	f.record("pending")
	return f.pending, f.pendingErr
}

func (f *fakeUpstream) ListAlerts(ctx context.Context) ([]models.AlertRecord, error) {
	f.record("alerts")
	return f.alerts, f.alertsErr
}

func (f *fakeUpstream) ListTodayActivities(ctx context.Context) ([]models.ActivityRecord, error) {
	f.record("activity")
	return f.activity, f.activityErr
}

func (f *fakeUpstream) GetRecord(ctx context.Context, id int64) (hoiapi.RecordDetail, error) {
	f.record("detail")
	return f.detail, f.detailErr
}

func (f *fakeUpstream) Approve(ctx context.Context, id int64, remarks string) (hoiapi.ActionResult, error) {
	f.record("approve")
	f.lastRemarks = remarks
	return f.result, f.actionErr
}

func (f *fakeUpstream) Disapprove(ctx context.Context, id int64, remarks string) (hoiapi.ActionResult, error) {
	f.record("disapprove")
	f.lastRemarks = remarks
	return f.result, f.actionErr
}

func (f *fakeUpstream) SetAlert(ctx context.Context, id int64, on bool) (hoiapi.ActionResult, error) {
	f.record("alert")
	f.lastAlert = &on
	return f.result, f.actionErr
}

func (f *fakeUpstream) SubmitForm(ctx context.Context, form map[string]interface{}) (hoiapi.ActionResult, error) {
	f.record("submit")
	f.lastForm = form
	return f.result, f.actionErr
}

func (f *fakeUpstream) Reply(ctx context.Context, message string) (string, error) {
	f.record("reply")
	f.lastMessage = message
	if f.onReply != nil {
		f.onReply()
	}
	return f.reply, f.replyErr
}

var (
	_ repository.RecordReader    = (*fakeUpstream)(nil)
	_ repository.RecordWriter    = (*fakeUpstream)(nil)
	_ repository.AssistantClient = (*fakeUpstream)(nil)
)

type countingChatLog struct {
	repository.ChatLogRepository
	mu      sync.Mutex
	removed int
}

func (c *countingChatLog) Remove(ctx context.Context, session, handle string) (bool, error) {
	c.mu.Lock()
	c.removed++
	c.mu.Unlock()
	return c.ChatLogRepository.Remove(ctx, session, handle)
}

func (c *countingChatLog) removals() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.removed
}

func activityRecord(id int64, status models.RecordStatus) models.ActivityRecord {
	return models.ActivityRecord{ID: id, FormName: "Accounts", SavedBy: "hoi@example.com", Status: status}
}
