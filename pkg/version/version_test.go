package version

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_String_Short_Full(t *testing.T) {
	// Preserve original values
	origV, origB, origC := Version, BuildTime, Commit
	defer func() { Version, BuildTime, Commit = origV, origB, origC }()

	// Set deterministic values
	Version = "1.2.3"
	BuildTime = "2026-01-05T00:00:00Z"
	Commit = "deadbeef"

	info := Get()
	require.Equal(t, "1.2.3", info.Version)
	require.Equal(t, "2026-01-05T00:00:00Z", info.BuildTime)
	require.Equal(t, "deadbeef", info.Commit)

	// Runtime fields should be non-empty
	require.NotEmpty(t, info.GoVersion)
	require.NotEmpty(t, info.OS)
	require.NotEmpty(t, info.Arch)

	assert.Equal(t, "1.2.3", Short())
	assert.Contains(t, Full(), "xnpak 1.2.3")

	info.Modified = false
	assert.Contains(t, info.String(), "xnpak 1.2.3 (commit: deadbeef, built: 2026-01-05T00:00:00Z")
}

func TestApplyBuildSettings(t *testing.T) {
	t.Run("fills unset fields from vcs stamp", func(t *testing.T) {
		info := Info{Commit: "unknown", BuildTime: "unknown"}
		applyBuildSettings(&info, []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef0123"},
			{Key: "vcs.time", Value: "2026-02-01T10:00:00Z"},
			{Key: "vcs.modified", Value: "true"},
		})

		assert.Equal(t, "0123456789ab", info.Commit)
		assert.Equal(t, "2026-02-01T10:00:00Z", info.BuildTime)
		assert.True(t, info.Modified)
		assert.Contains(t, info.String(), "commit: 0123456789ab-dirty")
	})

	t.Run("ldflags win over vcs stamp", func(t *testing.T) {
		info := Info{Commit: "release1", BuildTime: "yesterday"}
		applyBuildSettings(&info, []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef"},
			{Key: "vcs.time", Value: "2026-02-01T10:00:00Z"},
		})

		assert.Equal(t, "release1", info.Commit)
		assert.Equal(t, "yesterday", info.BuildTime)
		assert.False(t, info.Modified)
	})
}
