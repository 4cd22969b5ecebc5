package notify_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adis-git/job-sentinel-ai-check/internal/domain/model"
	"github.com/Adis-git/job-sentinel-ai-check/internal/infrastructure/notify"
	"github.com/Adis-git/job-sentinel-ai-check/pkg/testutil"
)

type fakeTelegram struct {
	mu       sync.Mutex
	methods  []string
	chatID   string
	text     string
	sendFail bool
}

func (f *fakeTelegram) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	method := r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:]
	f.methods = append(f.methods, method)

	w.Header().Set("Content-Type", "application/json")
	switch method {
	case "getMe":
		_, _ = w.Write([]byte(`{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"sentinel","username":"sentinel_bot"}}`))
	case "sendMessage":
		if f.sendFail {
			_, _ = w.Write([]byte(`{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`))
			return
		}
		_ = r.ParseForm()
		f.chatID = r.PostForm.Get("chat_id")
		f.text = r.PostForm.Get("text")
		_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":7,"date":0,"chat":{"id":42,"type":"private"}}}`))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func newReport(t *testing.T) *model.PostingReport {
	t.Helper()
	id := uuid.New()
	r, err := model.NewPostingReport(
		model.NewJobPosting("Data Entry <Remote>", "Global", testutil.ScamDescription, "Anywhere", model.StringPtr("$5000/week")),
		"https://www.indeed.com/viewjob?jk=abc",
		"asked for bank details",
		&id,
	)
	require.NoError(t, err)
	return r
}

func TestTelegramNotifier_NotifyReported(t *testing.T) {
	fake := &fakeTelegram{}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	n, err := notify.NewTelegramNotifierWithClient("TOKEN", 42, srv.URL+"/bot%s/%s", srv.Client())
	require.NoError(t, err)

	require.NoError(t, n.NotifyReported(context.Background(), newReport(t)))

	fake.mu.Lock()
	defer fake.mu.Unlock()
	assert.Equal(t, []string{"getMe", "sendMessage"}, fake.methods)
	assert.Equal(t, "42", fake.chatID)
	assert.Contains(t, fake.text, "Data Entry &lt;Remote&gt;")
	assert.Contains(t, fake.text, "Reason: asked for bank details")
}

func TestTelegramNotifier_SendFailure(t *testing.T) {
	srv := httptest.NewServer(&fakeTelegram{sendFail: true})
	defer srv.Close()

	n, err := notify.NewTelegramNotifierWithClient("TOKEN", 42, srv.URL+"/bot%s/%s", srv.Client())
	require.NoError(t, err)

	err = n.NotifyReported(context.Background(), newReport(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "telegram send")
}

func TestTelegramNotifier_CancelledContext(t *testing.T) {
	fake := &fakeTelegram{}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	n, err := notify.NewTelegramNotifierWithClient("TOKEN", 42, srv.URL+"/bot%s/%s", srv.Client())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, n.NotifyReported(ctx, newReport(t)), context.Canceled)

	fake.mu.Lock()
	defer fake.mu.Unlock()
	assert.NotContains(t, fake.methods, "sendMessage")
}

func TestFormatReport(t *testing.T) {
	r := newReport(t)
	text := notify.FormatReport(r)

	assert.True(t, strings.HasPrefix(text, "<b>Posting reported</b>"))
	assert.Contains(t, text, "Salary: $5000/week")
	assert.Contains(t, text, "Location: Anywhere")
	assert.Contains(t, text, r.AssessmentID().String())
	assert.Contains(t, text, r.ReportedAtISO())

	bare, err := model.NewPostingReport(model.NewJobPosting("", "", "some text", "", nil), "https://x.io/jobs/1", "", nil)
	require.NoError(t, err)
	text = notify.FormatReport(bare)
	assert.Contains(t, text, "(untitled)")
	assert.NotContains(t, text, "Reason:")
	assert.NotContains(t, text, "Salary:")
}
