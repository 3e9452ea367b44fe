package notification

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trofos-project/trofos/internal/config"
)

func TestNewPicksConsoleWhenDisabled(t *testing.T) {
	cfg := &config.Config{}

	sender := New(cfg)
	_, isConsole := sender.(*consoleSender)
	assert.True(t, isConsole)

	// Console delivery never fails.
	require.NoError(t, sender.SendInvite("s1@test.com", "CS3203", "http://localhost/invite/x"))
}

func TestNewPicksConsoleWithoutKey(t *testing.T) {
	cfg := &config.Config{
		Notification: config.Notification{Enabled: true},
	}

	_, isConsole := New(cfg).(*consoleSender)
	assert.True(t, isConsole)
}

func TestNewPicksSendGrid(t *testing.T) {
	cfg := &config.Config{
		Notification: config.Notification{
			Enabled:     true,
			SendGridKey: "SG.test",
			FromAddress: "noreply@trofos.local",
			FromName:    "Trofos",
		},
	}

	_, isSendGrid := New(cfg).(*sendGridSender)
	assert.True(t, isSendGrid)
}

func TestNewNilConfig(t *testing.T) {
	_, isConsole := New(nil).(*consoleSender)
	assert.True(t, isConsole)
}
