package logger

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestLevels(t *testing.T) {
	assert := assert.New(t)
	//
	var buf bytes.Buffer
	InitWriter(&buf, false, true)
	log.Info("grammar read", "productions", 6)
	log.Warn("grammar is not LL(1)", "conflicts", 2)
	out := buf.String()
	assert.NotContains(out, "grammar read")
	assert.Contains(out, "LLGRAM")
	assert.Contains(out, "conflicts=2")
	//
	buf.Reset()
	InitWriter(&buf, true, true)
	log.Debug("table built", "entries", 13)
	assert.Contains(buf.String(), "entries=13")
}
