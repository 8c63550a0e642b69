package notify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestTrainerWelcome_EscapesName(t *testing.T) {
	msg, err := TrainerWelcome("<b>Ivan</b>", "ivan@gym.test")
	require.NoError(t, err)

	assert.Equal(t, "ivan@gym.test", msg.To)
	assert.Contains(t, msg.HTML, "&lt;b&gt;Ivan&lt;/b&gt;")
	assert.Contains(t, msg.HTML, "ivan@gym.test")
}

func TestNoopSender(t *testing.T) {
	s := NewNoopSender(zap.NewNop())
	assert.NoError(t, s.Send(context.Background(), Message{To: "a@b.c", Subject: "hi"}))
}
