package protocol

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatorHappyPath(t *testing.T) {
	v := NewValidator()
	const s SurfaceID = 1

	v.RegisterSurface(s)
	require.NoError(t, v.AssignRole(s, RoleToplevel))
	require.NoError(t, v.ValidateCommit(s, false))
	require.NoError(t, v.AddConfigure(s, 1, 800, 600))
	_, err := v.AckConfigure(s, 1)
	require.NoError(t, err)
	require.NoError(t, v.ValidateCommit(s, true))

	assert.True(t, v.IsMapped(s))
}

func TestValidatorDoubleRoleIsFatal(t *testing.T) {
	v := NewValidator()
	const s SurfaceID = 1

	v.RegisterSurface(s)
	require.NoError(t, v.AssignRole(s, RoleToplevel))
	err := v.AssignRole(s, RolePopup)
	require.Error(t, err)
}

func TestValidatorCommitBeforeRoleFails(t *testing.T) {
	v := NewValidator()
	const s SurfaceID = 1
	v.RegisterSurface(s)
	err := v.ValidateCommit(s, false)
	assert.Error(t, err)
}

func TestValidatorFirstCommitWithBufferFails(t *testing.T) {
	v := NewValidator()
	const s SurfaceID = 1
	v.RegisterSurface(s)
	require.NoError(t, v.AssignRole(s, RoleToplevel))
	err := v.ValidateCommit(s, true)
	assert.Error(t, err)
}

func TestValidatorAckUnknownSerialFails(t *testing.T) {
	v := NewValidator()
	const s SurfaceID = 1
	v.RegisterSurface(s)
	require.NoError(t, v.AssignRole(s, RoleToplevel))
	require.NoError(t, v.AddConfigure(s, 5, 100, 100))
	_, err := v.AckConfigure(s, 99)
	assert.Error(t, err)
}

func TestValidatorAckRetiresOlderSerials(t *testing.T) {
	v := NewValidator()
	const s SurfaceID = 1
	v.RegisterSurface(s)
	require.NoError(t, v.AssignRole(s, RoleToplevel))
	require.NoError(t, v.AddConfigure(s, 1, 100, 100))
	require.NoError(t, v.AddConfigure(s, 2, 200, 200))
	require.NoError(t, v.AddConfigure(s, 3, 300, 300))

	_, err := v.AckConfigure(s, 2)
	require.NoError(t, err)

	// serial 1 is now implicitly retired; acking it again must fail as
	// "not outstanding" rather than succeed.
	_, err = v.AckConfigure(s, 1)
	assert.Error(t, err)
}

func TestValidatorDuplicateAckWarns(t *testing.T) {
	v := NewValidator()
	const s SurfaceID = 1
	v.RegisterSurface(s)
	require.NoError(t, v.AssignRole(s, RoleToplevel))
	require.NoError(t, v.AddConfigure(s, 1, 100, 100))
	_, err := v.AckConfigure(s, 1)
	require.NoError(t, err)

	warn, err := v.AckConfigure(s, 1)
	require.NoError(t, err)
	require.NotNil(t, warn)
	assert.Equal(t, WarningDuplicateAck, warn.Kind)
}

func TestValidatorCommitRequiresAck(t *testing.T) {
	v := NewValidator()
	const s SurfaceID = 1
	v.RegisterSurface(s)
	require.NoError(t, v.AssignRole(s, RoleToplevel))
	require.NoError(t, v.ValidateCommit(s, false))
	err := v.ValidateCommit(s, true)
	assert.Error(t, err)
}

func TestValidatorRegisterDestroyLeavesStatsUnchanged(t *testing.T) {
	v := NewValidator()
	before := v.Stats()
	v.RegisterSurface(1)
	v.DestroySurface(1)
	after := v.Stats()
	assert.Equal(t, before, after)
}

func TestValidatorCheckTimeouts(t *testing.T) {
	v := NewValidator().WithTimeouts(10*time.Millisecond, time.Hour)
	const s SurfaceID = 1
	v.RegisterSurface(s)
	require.NoError(t, v.AssignRole(s, RoleToplevel))
	require.NoError(t, v.AddConfigure(s, 1, 100, 100))

	warnings := v.CheckTimeouts(time.Now().Add(20 * time.Millisecond))
	require.Len(t, warnings, 1)
	assert.Equal(t, WarningConfigureTimeout, warnings[0].Kind)
}

func TestValidatorIdleTimeout(t *testing.T) {
	v := NewValidator().WithTimeouts(time.Hour, 10*time.Millisecond)
	const s SurfaceID = 1
	v.RegisterSurface(s)
	require.NoError(t, v.AssignRole(s, RoleToplevel))
	require.NoError(t, v.ValidateCommit(s, false))
	require.NoError(t, v.AddConfigure(s, 1, 100, 100))
	_, err := v.AckConfigure(s, 1)
	require.NoError(t, err)
	require.NoError(t, v.ValidateCommit(s, true))

	warnings := v.CheckTimeouts(time.Now().Add(20 * time.Millisecond))
	require.Len(t, warnings, 1)
	assert.Equal(t, WarningIdleTimeout, warnings[0].Kind)
}
