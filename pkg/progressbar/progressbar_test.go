package progressbar

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultBytesRendersByteUnits(t *testing.T) {
	var buf bytes.Buffer
	p := DefaultBytes(2000000, "fetch")
	p.out = &buf

	require.NoError(t, p.Set64(1500))

	out := buf.String()
	assert.Contains(t, out, "fetch")
	assert.Contains(t, out, "1.5 KB")
	assert.Contains(t, out, "2 MB")
}

func TestDefaultRendersCounts(t *testing.T) {
	var buf bytes.Buffer
	p := Default(10)
	p.out = &buf

	require.NoError(t, p.Add(5))

	assert.Contains(t, buf.String(), "(5/10")
}

func TestDescribe(t *testing.T) {
	var buf bytes.Buffer
	p := DefaultBytes(100)
	p.out = &buf

	p.Describe("0001.jpg")

	assert.Contains(t, buf.String(), "0001.jpg")
}

func TestFinish(t *testing.T) {
	var buf bytes.Buffer
	p := DefaultBytes(100)
	p.out = &buf

	require.NoError(t, p.Finish())

	out := buf.String()
	assert.Contains(t, out, "100%")
	assert.True(t, strings.HasSuffix(out, "\n"))

	// Finished bars ignore further updates.
	n := buf.Len()
	require.NoError(t, p.Set64(10))
	assert.Equal(t, n, buf.Len())
}
