package compositor

import (
	"testing"
	"time"

	"github.com/axiom-wm/axiom/config"
	"github.com/axiom-wm/axiom/input"
	"github.com/axiom-wm/axiom/pixconv"
	"github.com/axiom-wm/axiom/protocol"
	"github.com/axiom-wm/axiom/renderframe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mapToplevel(t *testing.T, c *Compositor, surface protocol.SurfaceID) {
	t.Helper()
	c.Validator().RegisterSurface(surface)
	_, err := c.AssignRole(surface, protocol.RoleToplevel)
	require.NoError(t, err)
	require.NoError(t, c.Validator().ValidateCommit(surface, false))
	require.NoError(t, c.Validator().AddConfigure(surface, 1, 800, 600))
	_, err = c.Validator().AckConfigure(surface, 1)
	require.NoError(t, err)
}

func TestAssignRoleCreatesWindowAcrossComponents(t *testing.T) {
	c := New(config.Default())
	wid, err := c.AssignRole(1, protocol.RoleNone)
	require.Error(t, err, "surface 1 was never registered; AssignRole should fail validator-side before reaching toplevel wiring")
	assert.Equal(t, uint64(0), uint64(wid))

	c.Validator().RegisterSurface(2)
	wid, err = c.AssignRole(2, protocol.RoleToplevel)
	require.NoError(t, err)
	assert.NotZero(t, wid)

	windows, _, ok := c.Model().Column(0)
	require.True(t, ok)
	assert.Contains(t, windows, wid)
}

func TestSubmitBufferQueuesTextureAndDamage(t *testing.T) {
	c := New(config.Default())
	mapToplevel(t, c, 1)

	rgba := make([]byte, 4*4*4)
	err := c.SubmitBuffer(1, rgba, 4, 4, 16, pixconv.XRGB8888)
	require.NoError(t, err)
	assert.True(t, c.frontend.HasPendingDamage())
}

func TestSubmitBufferUnknownSurfaceFails(t *testing.T) {
	c := New(config.Default())
	err := c.SubmitBuffer(99, nil, 0, 0, 0, pixconv.XRGB8888)
	require.Error(t, err)
}

func TestDestroySurfaceRemovesWindowEverywhere(t *testing.T) {
	c := New(config.Default())
	mapToplevel(t, c, 1)
	wid, ok := c.surfaceWindow[1]
	require.True(t, ok)

	c.DestroySurface(1)
	assert.False(t, c.stack.Contains(wid))

	windows, _, _ := c.Model().Column(0)
	assert.NotContains(t, windows, wid)
}

func TestHandleInputEventDrainsInOrder(t *testing.T) {
	c := New(config.Default())
	ev1 := input.Event{Key: &input.KeyEvent{Keysym: 1, Pressed: true}}
	ev2 := input.Event{Key: &input.KeyEvent{Keysym: 2, Pressed: false}}
	assert.True(t, c.HandleInputEvent(ev1))
	assert.True(t, c.HandleInputEvent(ev2))

	events := c.DrainInputEvents()
	require.Len(t, events, 2)
	assert.Equal(t, uint32(1), events[0].Key.Keysym)
	assert.Equal(t, uint32(2), events[1].Key.Keysym)

	assert.Empty(t, c.DrainInputEvents())
}

func TestHandleInputEventDropsWhenQueueFull(t *testing.T) {
	c := New(config.Default())
	for i := 0; i < inputQueueDepth; i++ {
		require.True(t, c.HandleInputEvent(input.Event{}))
	}
	assert.False(t, c.HandleInputEvent(input.Event{}), "queue is full, the event must be dropped rather than block")
}

func TestRenderFrameCarriesDrainedTextureAndClearsDamage(t *testing.T) {
	c := New(config.Default())
	mapToplevel(t, c, 1)
	wid, _ := c.surfaceWindow[1]

	c.Model().SetViewportSize(1920, 1080)
	rgba := make([]byte, 4*4*4)
	require.NoError(t, c.SubmitBuffer(1, rgba, 4, 4, 16, pixconv.XRGB8888))
	require.True(t, c.frontend.HasPendingDamage())

	var presented Frame
	frame := c.RenderFrame(time.Now(), func(f Frame) { presented = f })

	assert.Equal(t, frame, presented)
	var windowCall *DrawCall
	for i, call := range frame.Calls {
		if call.ID == wid && call.Pass == "window" {
			windowCall = &frame.Calls[i]
		}
	}
	require.NotNil(t, windowCall, "expected a window pass draw call for the submitted window")
	require.NotNil(t, windowCall.Texture, "the window pass must carry this frame's drained texture update")
	assert.Len(t, windowCall.Texture.RGBA, len(rgba))
	assert.Equal(t, 4, windowCall.Texture.W)
	assert.Equal(t, 4, windowCall.Texture.H)
	require.Len(t, windowCall.Damage, 1, "the window pass must carry this frame's drained damage regions")
	assert.Equal(t, renderframe.Rect{X: 0, Y: 0, W: 4, H: 4}, windowCall.Damage[0])
	assert.False(t, c.frontend.HasPendingDamage(), "RenderFrame must clear frame damage once the frame is composed")
}

func TestGetPerformanceStatsIncludesFocusedColumn(t *testing.T) {
	c := New(config.Default())
	require.NoError(t, c.Model().ScrollRight())
	stats := c.GetPerformanceStats()
	assert.Equal(t, 1, stats.FocusedColumn)
}
