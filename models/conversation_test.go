package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateStateMergesPending(t *testing.T) {
	now := time.Date(2024, 12, 15, 10, 0, 0, 0, time.UTC)
	conv := &Conversation{State: StateIdle}

	conv.UpdateState(StateAwaitingCorrection, ParsedService{ServiceName: "Lavado completo"}, now)
	conv.UpdateState(StateAwaitingConfirmation, ParsedService{Price: 35000}, now.Add(time.Minute))

	require.NotNil(t, conv.Pending)
	assert.Equal(t, "Lavado completo", conv.Pending.ServiceName)
	assert.Equal(t, int64(35000), conv.Pending.Price)
	assert.True(t, conv.Pending.Complete)
	assert.Equal(t, StateAwaitingConfirmation, conv.State)
	assert.Equal(t, now.Add(time.Minute), conv.LastActivityAt)
}

func TestResetKeepsMessages(t *testing.T) {
	now := time.Date(2024, 12, 15, 10, 0, 0, 0, time.UTC)
	conv := &Conversation{State: StateAwaitingConfirmation, Pending: &ParsedService{ServiceName: "Lavado completo"}}
	conv.AddMessage("user", "hola", "", now)

	conv.Reset(now.Add(time.Minute))

	assert.Equal(t, StateIdle, conv.State)
	assert.Nil(t, conv.Pending)
	assert.Len(t, conv.Messages, 1)
}

func TestPendingDataZeroWhenIdle(t *testing.T) {
	conv := &Conversation{State: StateIdle}
	assert.Equal(t, ParsedService{}, conv.PendingData())
}

func TestIsStale(t *testing.T) {
	now := time.Date(2024, 12, 15, 10, 0, 0, 0, time.UTC)
	threshold := 30 * time.Minute

	fresh := &Conversation{LastActivityAt: now.Add(-10 * time.Minute)}
	stale := &Conversation{LastActivityAt: now.Add(-45 * time.Minute)}
	never := &Conversation{}

	assert.False(t, fresh.IsStale(now, threshold))
	assert.True(t, stale.IsStale(now, threshold))
	assert.False(t, never.IsStale(now, threshold))
}

func TestMessagesToday(t *testing.T) {
	now := time.Date(2024, 12, 15, 10, 0, 0, 0, time.UTC)

	conv := &Conversation{}
	conv.AddMessage("user", "hola", "", now.Add(-time.Hour))
	assert.Len(t, conv.MessagesToday(now), 1)

	// A log last touched yesterday is not replayed today.
	old := &Conversation{}
	old.AddMessage("user", "hola", "", now.AddDate(0, 0, -1))
	assert.Nil(t, old.MessagesToday(now))
}
