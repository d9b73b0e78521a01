package state

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m3rciful/eventbot/core/logger"
)

func TestMain(m *testing.M) {
	_ = logger.InitLogger(nil)
	os.Exit(m.Run())
}

func TestStateTransitions(t *testing.T) {
	m := NewMemoryManager()

	assert.Equal(t, StateIdle, m.GetState(1))
	assert.False(t, m.InProgress(1))

	m.SetState(1, State("intake:awaiting_name"))
	assert.Equal(t, State("intake:awaiting_name"), m.GetState(1))
	assert.True(t, m.InProgress(1))
	assert.False(t, m.InProgress(2), "states are per user")

	m.ClearState(1)
	assert.Equal(t, StateIdle, m.GetState(1))
	assert.False(t, m.InProgress(1))
}

func TestTempDataSurvivesClearState(t *testing.T) {
	m := NewMemoryManager()

	m.SetState(1, State("intake:awaiting_age"))
	m.SetTemp(1, "draft_name", "Ana")
	m.SetTemp(1, "draft_age", int64(25))

	m.ClearState(1)

	name, ok := m.GetTempString(1, "draft_name")
	assert.True(t, ok)
	assert.Equal(t, "Ana", name)
	age, ok := m.GetTempInt64(1, "draft_age")
	assert.True(t, ok)
	assert.Equal(t, int64(25), age)
}

func TestClearDropsSessionEntirely(t *testing.T) {
	m := NewMemoryManager()

	m.SetState(1, State("reg:week_choice"))
	m.SetTemp(1, "draft_game_type", "meet_eat")
	m.Clear(1)

	assert.Equal(t, StateIdle, m.GetState(1))
	_, ok := m.GetTemp(1, "draft_game_type")
	assert.False(t, ok)
}

func TestTempTypeMismatch(t *testing.T) {
	m := NewMemoryManager()

	m.SetTemp(1, "draft_age", "not a number")
	_, ok := m.GetTempInt64(1, "draft_age")
	assert.False(t, ok)

	m.SetTemp(1, "draft_week", int64(7))
	_, ok = m.GetTempString(1, "draft_week")
	assert.False(t, ok)

	m.ClearTemp(1, "draft_age")
	_, ok = m.GetTemp(1, "draft_age")
	assert.False(t, ok)
}
