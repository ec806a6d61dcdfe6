package logger

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevels(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)

	l.NodeDropped("HTMLBlock")
	assert.Empty(t, buf.String(), "debug output should be filtered at info level")

	l.ConversionCompleted("notes.md", 4, 1500*time.Microsecond)
	assert.Contains(t, buf.String(), "conversion completed")
	assert.Contains(t, buf.String(), "records=4")
	assert.Contains(t, buf.String(), "source=notes.md")
}

func TestVerbose(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithLevel(&buf, Level(true))

	l.DepthLimit("list", 33, 32)
	l.DiagramBlock("doxcnA", "docxB")

	out := buf.String()
	assert.Contains(t, out, "nesting limit reached")
	assert.Contains(t, out, "max=32")
	assert.Contains(t, out, "record=doxcnA")
	assert.Equal(t, log.WarnLevel, Level(false))
}

func TestErrors(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)

	l.ConversionError("a.md", "clipboard", errors.New("boom"))
	l.FileError("b.md", errors.New("missing"))

	out := buf.String()
	assert.Contains(t, out, "conversion failed")
	assert.Contains(t, out, "boom")
	assert.Contains(t, out, "file=b.md")
}

func TestFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "larkbridge.log")
	l, cleanup, err := NewFileLogger(path, log.InfoLevel)
	require.NoError(t, err)

	l.ClipboardWritten("text/html", 128)
	cleanup()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "clipboard written")
	assert.Contains(t, string(data), "bytes=128")
}

func TestMultiLogger(t *testing.T) {
	var a, b bytes.Buffer
	l := NewMultiLogger(log.InfoLevel, &a, &b)
	l.StateError("save", errors.New("disk full"))

	assert.Contains(t, a.String(), "state error")
	assert.Equal(t, a.String(), b.String())
}

func TestDiscard(t *testing.T) {
	// must not panic
	Discard().ConversionCompleted("x", 1, time.Second)
}
