package jobState

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCastToJobState(t *testing.T) {
	assert.Equal(t, Queued, CastToJobState("Queued"))
	assert.Equal(t, Processing, CastToJobState("Processing"))
	assert.Equal(t, Completed, CastToJobState("Completed"))
	assert.Equal(t, Failed, CastToJobState("Failed"))
	assert.Equal(t, Idle, CastToJobState("nonsense"))
}

func TestLifecyclePredicates(t *testing.T) {
	assert.True(t, IsTerminal(Completed))
	assert.True(t, IsTerminal(Failed))
	assert.False(t, IsTerminal(Processing))
	assert.False(t, IsTerminal(Idle))

	assert.True(t, IsActive(Submitting))
	assert.True(t, IsActive(Queued))
	assert.True(t, IsActive(Processing))
	assert.False(t, IsActive(Idle))
	assert.False(t, IsActive(Completed))
}

func TestRankOrdersTheLifecycle(t *testing.T) {
	assert.True(t, Rank(Idle) < Rank(Submitting))
	assert.True(t, Rank(Submitting) < Rank(Queued))
	assert.True(t, Rank(Queued) < Rank(Processing))
	assert.True(t, Rank(Processing) < Rank(Completed))
	assert.Equal(t, Rank(Completed), Rank(Failed))
}
