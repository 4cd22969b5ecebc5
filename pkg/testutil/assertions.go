package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adis-git/job-sentinel-ai-check/pkg/events"
)

// AssertErrorContains checks that err is non-nil and mentions expected.
func AssertErrorContains(t *testing.T, err error, expected string) {
	t.Helper()
	require.Error(t, err)
	assert.Contains(t, err.Error(), expected)
}

// RequireEventTypes asserts the exact, ordered event types of evts.
func RequireEventTypes(t *testing.T, evts []events.DomainEvent, want ...string) {
	t.Helper()
	got := make([]string, 0, len(evts))
	for _, e := range evts {
		got = append(got, e.EventType())
	}
	require.Equal(t, want, got)
}
