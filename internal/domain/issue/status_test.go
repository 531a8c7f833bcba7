package issue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidStatus(t *testing.T) {
	for _, s := range allStatuses {
		assert.True(t, ValidStatus(s), string(s))
	}
	assert.False(t, ValidStatus("Gotovo"))
	assert.False(t, ValidStatus(""))
}

func TestTerminalStatuses(t *testing.T) {
	assert.True(t, StatusDone.Terminal())
	assert.True(t, StatusCancelled.Terminal())
	assert.False(t, StatusReceived.Terminal())
	assert.False(t, StatusInProgress.Terminal())
}

func TestCanTransition(t *testing.T) {
	// forward progression
	assert.True(t, StatusReceived.CanTransition(StatusAssigned))
	assert.True(t, StatusAssigned.CanTransition(StatusOnSite))
	assert.True(t, StatusOnSite.CanTransition(StatusInProgress))
	assert.True(t, StatusInProgress.CanTransition(StatusWaiting))
	assert.True(t, StatusWaiting.CanTransition(StatusDone))

	// back and forth between work states
	assert.True(t, StatusInProgress.CanTransition(StatusOnSite))
	assert.True(t, StatusWaiting.CanTransition(StatusInProgress))

	// no skipping assignment
	assert.False(t, StatusReceived.CanTransition(StatusOnSite))
	assert.False(t, StatusReceived.CanTransition(StatusDone))

	// terminal states are final
	for _, next := range allStatuses {
		assert.False(t, StatusDone.CanTransition(next), string(next))
		assert.False(t, StatusCancelled.CanTransition(next), string(next))
	}
}

func TestCancellationFromAnyNonTerminal(t *testing.T) {
	for _, s := range allStatuses {
		if s.Terminal() {
			continue
		}
		assert.True(t, s.CanTransition(StatusCancelled), string(s))
	}
}
