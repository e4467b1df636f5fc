package mail

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsmirnovs/authbox/internal/logging"
)

func TestLogNotifier_WritesToLogOnly(t *testing.T) {
	var buf bytes.Buffer
	l := logging.NewSlogLogger(slog.New(slog.NewTextHandler(&buf, nil)))

	n := NewLogNotifier(l)
	err := n.Send(context.Background(), "a@x.com", "Password Reset Code", "Your reset code is: 042137")
	require.NoError(t, err)

	out := buf.String()
	assert.True(t, strings.Contains(out, "a@x.com"))
	assert.True(t, strings.Contains(out, "042137"))
	assert.True(t, strings.Contains(out, "module=mail"))
}
