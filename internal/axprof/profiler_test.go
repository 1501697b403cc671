package axprof

import (
	"testing"
	"time"

	"github.com/axiom-wm/axiom/internal/axlog"
	"github.com/stretchr/testify/assert"
)

func TestTickLogsOnlyAfterInterval(t *testing.T) {
	p := New(axlog.New("test"), time.Second)
	start := time.Now()

	assert.False(t, p.Tick(start.Add(100*time.Millisecond)))
	assert.True(t, p.Tick(start.Add(1100*time.Millisecond)))
}

func TestTickDefaultsNonPositiveInterval(t *testing.T) {
	p := New(axlog.New("test"), 0)
	assert.Equal(t, time.Second, p.updateInterval)
}
