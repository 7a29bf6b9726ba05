package logutil

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetVerbose(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	})

	SetVerbose(false)
	Debugf("hidden %d", 1)
	assert.False(t, Verbose())
	assert.NotContains(t, buf.String(), "hidden 1")

	SetVerbose(true)
	Debugf("shown %d", 2)
	assert.True(t, Verbose())
	assert.Contains(t, buf.String(), "shown 2")
}

func TestLevels(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(os.Stderr) })

	Infof("info line")
	Warnf("warn line")
	Errorf("error line")

	out := buf.String()
	assert.Contains(t, out, "info line")
	assert.Contains(t, out, "warn line")
	assert.Contains(t, out, "error line")
	assert.Contains(t, out, "termtweet")
}
