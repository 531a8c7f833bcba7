package assignment

import (
	"testing"

	"github.com/fixtrack/fixtrack/internal/domain/issue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignmentTransitions(t *testing.T) {
	assert.True(t, StatusAssigned.CanTransition(StatusOnSite))
	assert.True(t, StatusAssigned.CanTransition(StatusRejected))
	assert.True(t, StatusOnSite.CanTransition(StatusDone))
	assert.True(t, StatusWaiting.CanTransition(StatusInProgress))

	for _, next := range allStatuses {
		assert.False(t, StatusDone.CanTransition(next), string(next))
		assert.False(t, StatusRejected.CanTransition(next), string(next))
	}
}

func TestStatusMappingRoundTrips(t *testing.T) {
	for _, s := range allStatuses {
		mapped := IssueStatusFor(s)
		require.NotEmpty(t, mapped, string(s))

		back, ok := StatusForIssue(mapped)
		require.True(t, ok, string(s))
		assert.Equal(t, s, back)
	}
}

func TestStatusForIssueReceivedHasNoCounterpart(t *testing.T) {
	_, ok := StatusForIssue(issue.StatusReceived)
	assert.False(t, ok)
}

func TestRejectionMapsToCancellation(t *testing.T) {
	assert.Equal(t, issue.StatusCancelled, IssueStatusFor(StatusRejected))

	mapped, ok := StatusForIssue(issue.StatusCancelled)
	require.True(t, ok)
	assert.Equal(t, StatusRejected, mapped)
}
