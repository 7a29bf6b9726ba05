package ui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrinter(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, false)

	p.Success("posted %s", "1")
	p.Fail("failed %d", 2)
	p.Warn("careful")
	p.Progress("working")
	p.Hint("try --test")
	p.Plain("plain %s", "line")

	out := buf.String()
	for _, want := range []string{
		SymbolSuccess, "posted 1",
		SymbolFail, "failed 2",
		SymbolWarning, "careful",
		SymbolInfo, "working",
		"try --test",
		"plain line",
	} {
		assert.Contains(t, out, want)
	}
}

func TestPrinterQuiet(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, true)

	p.Progress("working")
	p.Hint("hint")
	p.Plain("plain")
	assert.Empty(t, buf.String())

	p.Success("done")
	p.Warn("warned")
	p.Fail("broke")
	assert.Contains(t, buf.String(), "done")
	assert.Contains(t, buf.String(), "warned")
	assert.Contains(t, buf.String(), "broke")
}
