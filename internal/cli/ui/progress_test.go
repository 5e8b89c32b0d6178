package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressBarAdd(t *testing.T) {
	var buf bytes.Buffer
	bar := NewProgressBar(&buf, 4, 8, "generating", true)

	bar.Add(1)
	assert.Contains(t, buf.String(), " 25% generating")
	assert.Contains(t, buf.String(), "[██░░░░░░]")

	buf.Reset()
	bar.Add(1)
	assert.Contains(t, buf.String(), " 50% generating")
}

func TestProgressBarClampsToTotal(t *testing.T) {
	var buf bytes.Buffer
	bar := NewProgressBar(&buf, 2, 4, "", true)

	bar.Add(5)
	assert.Contains(t, buf.String(), "[████] 100%")
}

func TestProgressBarFinish(t *testing.T) {
	var buf bytes.Buffer
	bar := NewProgressBar(&buf, 3, 6, "done", true)

	bar.Add(1)
	bar.Finish()
	assert.Contains(t, buf.String(), "100% done")
	assert.True(t, strings.HasSuffix(buf.String(), "\n"))
}

func TestProgressBarZeroTotal(t *testing.T) {
	var buf bytes.Buffer
	bar := NewProgressBar(&buf, 0, 4, "", true)

	bar.Add(1)
	assert.Empty(t, buf.String())
}

func TestProgressBarClear(t *testing.T) {
	var buf bytes.Buffer
	bar := NewProgressBar(&buf, 1, 4, "", true)

	bar.Clear()
	assert.Equal(t, "\r\033[K", buf.String())
}
