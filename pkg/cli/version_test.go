package cli

import (
	"runtime/debug"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildVersion(t *testing.T) {
	info := &debug.BuildInfo{
		Main: debug.Module{Version: "1.2.0"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abc123"},
			{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
			{Key: "vcs.modified", Value: "true"},
		},
	}

	out := buildVersion(info, true)
	assert.Equal(t, "1.2.0", out.Version)
	assert.Equal(t, "abc123-dirty", out.Commit)
	assert.Equal(t, "2026-01-02T03:04:05Z", out.Date)
	assert.True(t, strings.HasPrefix(out.String(), "userdesk v1.2.0 (abc123-dirty, 2026-01-02T03:04:05Z)\n"))

	bare := buildVersion(nil, false)
	assert.Equal(t, "dev", bare.Version)
	assert.True(t, strings.HasPrefix(bare.String(), "userdesk dev (none, unknown)"))
}
