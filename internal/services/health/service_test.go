package health

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakePinger struct {
	err error
}

func (f fakePinger) PingContext(context.Context) error { return f.err }

func TestStatusWithoutDatabase(t *testing.T) {
	status, ok := NewService(nil).Status(context.Background())
	assert.True(t, ok)
	assert.Equal(t, map[string]any{"ok": true}, status)
}

func TestStatusReportsDatabase(t *testing.T) {
	status, ok := NewService(fakePinger{}).Status(context.Background())
	assert.True(t, ok)
	assert.Equal(t, "ok", status["database"])

	status, ok = NewService(fakePinger{err: errors.New("down")}).Status(context.Background())
	assert.False(t, ok)
	assert.Equal(t, false, status["ok"])
	assert.Equal(t, "unreachable", status["database"])
}
