package hoiapi_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/santhoshkumar20044/HOI-Activity-New/internal/models"
	"github.com/santhoshkumar20044/HOI-Activity-New/pkg/hoiapi"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *hoiapi.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := hoiapi.New(hoiapi.Config{BaseURL: server.URL, HTTPClient: server.Client(), Logger: zerolog.Nop()})
	require.NoError(t, err)
	return client
}

func TestListDecodesEnvelopeAndTolerantFields(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, hoiapi.PathTodayActivities, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok","data":[
			{"id":1,"form_name":"Accounts","saved_by":"a@x.in","saved_at":"2025-03-01T10:15:00.123456","status":"approved","is_alert":1},
			{"id":2,"form_name":"Budget","saved_by":"b@x.in","saved_at":"not a date","status":"pending","is_alert":false}
		]}`))
	})

	records, err := client.ListTodayActivities(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.True(t, records[0].IsAlert.Bool())
	require.True(t, records[0].SavedAt.Valid())
	require.Equal(t, models.RecordStatusApproved, records[0].Status)
	require.False(t, records[1].IsAlert.Bool())
	require.False(t, records[1].SavedAt.Valid())
	require.Equal(t, "not a date", records[1].SavedAt.Raw)
}

func TestListMissingDataIsEmptyCollection(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	records, err := client.ListAlerts(context.Background())
	require.NoError(t, err)
	require.NotNil(t, records)
	require.Empty(t, records)
}

func TestListNonSuccessIsTransportFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<html>boom</html>`))
	})

	_, err := client.ListPendingApprovals(context.Background())
	require.Error(t, err)
	require.True(t, hoiapi.IsTransport(err))
	require.False(t, hoiapi.IsSessionExpired(err))
	require.Equal(t, "HTTP error! Status: 500", err.Error())
}

func TestSessionExpiryDetection(t *testing.T) {
	t.Run("status 401", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})
		_, err := client.ListAlerts(context.Background())
		require.True(t, hoiapi.IsSessionExpired(err))
	})

	t.Run("message mentions expiry", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"status":"error","message":"Login session expired"}`))
		})
		_, err := client.ListAlerts(context.Background())
		require.True(t, hoiapi.IsSessionExpired(err))
	})

	t.Run("write endpoint 401", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"status":"error","message":"Unauthorized"}`))
		})
		_, err := client.Approve(context.Background(), 4, "")
		require.True(t, hoiapi.IsSessionExpired(err))
	})
}

func TestActionRejectedCarriesMessageVerbatim(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"status":"error","message":"Record not found"}`))
	})

	_, err := client.Approve(context.Background(), 99, "fine")
	rejected, ok := hoiapi.IsRejected(err)
	require.True(t, ok)
	require.Equal(t, "Record not found", rejected.Message)
	require.Equal(t, http.StatusNotFound, rejected.StatusCode)
}

func TestActionNonOKStatusWithSuccessTransport(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"error"}`))
	})

	_, err := client.Disapprove(context.Background(), 3, "missing pages")
	rejected, ok := hoiapi.IsRejected(err)
	require.True(t, ok)
	require.Equal(t, "Server processing failed. Status Code: 200", rejected.Message)
}

func TestSetAlertSendsNumericFlagAndCookies(t *testing.T) {
	var body map[string]interface{}
	var cookie string
	var correlation string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, hoiapi.PathSetAlert, r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if c, err := r.Cookie("session"); err == nil {
			cookie = c.Value
		}
		correlation = r.Header.Get("X-Correlation-ID")
		_, _ = w.Write([]byte(`{"status":"ok","message":"Alert cleared"}`))
	})

	ctx := hoiapi.WithSession(context.Background(), []*http.Cookie{{Name: "session", Value: "abc"}}, "corr-1")
	result, err := client.SetAlert(ctx, 12, false)
	require.NoError(t, err)
	require.Equal(t, "Alert cleared", result.Message)
	require.Equal(t, float64(12), body["id"])
	require.Equal(t, float64(0), body["set"])
	require.Equal(t, "abc", cookie)
	require.Equal(t, "corr-1", correlation)
}

func TestReplyFallsBackWhenRejectedWithoutText(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"error","reply":""}`))
	})

	_, err := client.Reply(context.Background(), "stats")
	rejected, ok := hoiapi.IsRejected(err)
	require.True(t, ok)
	require.Equal(t, "Undefined response from server.", rejected.Message)
}

func TestReplyRejectionPrefersReplyText(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"error","reply":"Try again later","message":"Assistant busy"}`))
	})

	_, err := client.Reply(context.Background(), "stats")
	rejected, ok := hoiapi.IsRejected(err)
	require.True(t, ok)
	require.Equal(t, "Try again later", rejected.Message)
}

func TestActionRejectionPrefersMessageText(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"error","reply":"ignored","message":"Record locked"}`))
	})

	_, err := client.Approve(context.Background(), 5, "")
	rejected, ok := hoiapi.IsRejected(err)
	require.True(t, ok)
	require.Equal(t, "Record locked", rejected.Message)
}

func TestUnreachableUpstreamIsTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client, err := hoiapi.New(hoiapi.Config{BaseURL: url, Logger: zerolog.Nop()})
	require.NoError(t, err)

	_, err = client.Reply(context.Background(), "hello")
	require.True(t, hoiapi.IsTransport(err))
	_, rejected := hoiapi.IsRejected(err)
	require.False(t, rejected)
}

func TestGetRecordReturnsDetail(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, hoiapi.PathRecordDetail+"7", r.URL.Path)
		_, _ = w.Write([]byte(`{"id":7,"form_name":"Safety","status":"pending"}`))
	})

	detail, err := client.GetRecord(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, "Safety", detail["form_name"])
}
