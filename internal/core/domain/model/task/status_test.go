package task_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/task"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Validate(t *testing.T) {
	valid := []task.Status{task.Pending, task.InProgress, task.Completed, task.Skipped, task.Blocked}
	for _, s := range valid {
		assert.NoError(t, s.Validate(), s.String())
	}

	require.Error(t, task.UnknownStatus.Validate())
	require.Error(t, task.Status(42).Validate())
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "pending", task.Pending.String())
	assert.Equal(t, "in_progress", task.InProgress.String())
	assert.Equal(t, "completed", task.Completed.String())
	assert.Equal(t, "skipped", task.Skipped.String())
	assert.Equal(t, "blocked", task.Blocked.String())
	assert.Equal(t, "unknown", task.UnknownStatus.String())
}

func TestStatusFromString(t *testing.T) {
	for _, name := range []string{"pending", "in_progress", "completed", "skipped", "blocked"} {
		status, err := task.StatusFromString(name)
		require.NoError(t, err)
		assert.Equal(t, name, status.String())
	}

	_, err := task.StatusFromString("cancelled")
	require.Error(t, err)
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, task.Completed.IsTerminal())
	assert.True(t, task.Skipped.IsTerminal())
	assert.False(t, task.Pending.IsTerminal())
	assert.False(t, task.InProgress.IsTerminal())
	assert.False(t, task.Blocked.IsTerminal())
}

func TestStatus_Transitions(t *testing.T) {
	t.Run("start", func(t *testing.T) {
		for _, from := range []task.Status{task.Pending, task.InProgress, task.Blocked} {
			next, err := from.Start()
			require.NoError(t, err, from.String())
			assert.Equal(t, task.InProgress, next)
		}
		_, err := task.Completed.Start()
		require.Error(t, err)
	})

	t.Run("complete allowed from any non-terminal status", func(t *testing.T) {
		for _, from := range []task.Status{task.Pending, task.InProgress, task.Blocked} {
			next, err := from.Complete()
			require.NoError(t, err, from.String())
			assert.Equal(t, task.Completed, next)
		}
	})

	t.Run("terminal statuses reject all transitions", func(t *testing.T) {
		for _, from := range []task.Status{task.Completed, task.Skipped} {
			_, err := from.Complete()
			require.Error(t, err, from.String())
			_, err = from.Skip()
			require.Error(t, err, from.String())
			_, err = from.Block()
			require.Error(t, err, from.String())
			_, err = from.Start()
			require.Error(t, err, from.String())
		}
	})

	t.Run("skip", func(t *testing.T) {
		next, err := task.Blocked.Skip()
		require.NoError(t, err)
		assert.Equal(t, task.Skipped, next)
	})

	t.Run("block is idempotent", func(t *testing.T) {
		next, err := task.Blocked.Block()
		require.NoError(t, err)
		assert.Equal(t, task.Blocked, next)
	})
}
