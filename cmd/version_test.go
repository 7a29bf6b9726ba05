package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatVersion(t *testing.T) {
	tests := map[string]string{
		"":       "",
		"dev":    "dev",
		"1.0.0":  "v1.0.0",
		"v2.1.0": "v2.1.0",
	}
	for in, want := range tests {
		assert.Equal(t, want, formatVersion(in), in)
	}
}

func TestResolvedVersion(t *testing.T) {
	origVersion, origCommit := version, commit
	t.Cleanup(func() { SetVersionInfo(origVersion, origCommit) })

	SetVersionInfo("1.2.3", "abc1234")
	assert.Equal(t, "v1.2.3 (abc1234)", resolvedVersion())

	SetVersionInfo("1.2.3", "none")
	assert.Equal(t, "v1.2.3", resolvedVersion())

	SetVersionInfo("dev", "none")
	assert.NotEmpty(t, resolvedVersion())
}
