package messaging_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adis-git/job-sentinel-ai-check/internal/domain/event"
	"github.com/Adis-git/job-sentinel-ai-check/internal/infrastructure/messaging"
	"github.com/Adis-git/job-sentinel-ai-check/pkg/events"
	"github.com/Adis-git/job-sentinel-ai-check/pkg/observability"
	"github.com/Adis-git/job-sentinel-ai-check/pkg/testutil"
)

type recordingPublisher struct {
	got []events.DomainEvent
	err error
}

func (r *recordingPublisher) Publish(_ context.Context, evts ...events.DomainEvent) error {
	if r.err != nil {
		return r.err
	}
	r.got = append(r.got, evts...)
	return nil
}

func sampleEvent() events.DomainEvent {
	return event.NewPostingReported(testutil.ReportID1, nil, "https://www.indeed.com/viewjob?jk=1",
		"Online Job", "Global", "fee", testutil.FixedTime)
}

func TestLogPublisher_Publish(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	require.NoError(t, messaging.NewLogPublisher(logger).Publish(context.Background(), sampleEvent()))

	out := buf.String()
	assert.Contains(t, out, `"event_type":"jobsentinel.posting.reported"`)
	assert.Contains(t, out, testutil.ReportID1.String())
	assert.Contains(t, out, "event payload")
}

func TestFanoutPublisher(t *testing.T) {
	t.Run("delivers to all publishers", func(t *testing.T) {
		primary, secondary := &recordingPublisher{}, &recordingPublisher{}
		pub := messaging.NewFanoutPublisher(primary, observability.NopLogger(), secondary)

		require.NoError(t, pub.Publish(context.Background(), sampleEvent()))

		assert.Len(t, primary.got, 1)
		assert.Len(t, secondary.got, 1)
	})

	t.Run("secondary failures are ignored", func(t *testing.T) {
		primary := &recordingPublisher{}
		pub := messaging.NewFanoutPublisher(primary, observability.NopLogger(),
			&recordingPublisher{err: errors.New("no listeners")})

		require.NoError(t, pub.Publish(context.Background(), sampleEvent()))
		assert.Len(t, primary.got, 1)
	})

	t.Run("primary failure is returned and skips secondaries", func(t *testing.T) {
		secondary := &recordingPublisher{}
		pub := messaging.NewFanoutPublisher(&recordingPublisher{err: errors.New("broker down")},
			observability.NopLogger(), secondary)

		err := pub.Publish(context.Background(), sampleEvent())

		testutil.AssertErrorContains(t, err, "primary publisher")
		assert.Empty(t, secondary.got)
	})
}
