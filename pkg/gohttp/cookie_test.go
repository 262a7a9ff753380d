package gohttp

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cookieTxt = "# Netscape HTTP Cookie File\n" +
	"# https://curl.se/docs/http-cookies.html\n" +
	".example.org\tTRUE\t/\tFALSE\t1999999999\tsession\tabc123\t\n" +
	".example.org\tTRUE\t/\tTRUE\t1999999999\ttoken\txyz\t\n" +
	"malformed line\n"

func TestReadCookiesFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookie.txt")
	require.NoError(t, os.WriteFile(path, []byte(cookieTxt), 0644))

	header, err := ReadCookiesFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "session=abc123; token=xyz; ", header)
}

func TestReadCookiesFromFileEmptyPath(t *testing.T) {
	header, err := ReadCookiesFromFile("")
	assert.NoError(t, err)
	assert.Empty(t, header)
}

func TestReadCookiesFromFileMissing(t *testing.T) {
	_, err := ReadCookiesFromFile(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}
