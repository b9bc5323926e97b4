package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zoro11031/d3l/internal/common"
	"github.com/zoro11031/d3l/pkg/version"
)

// run executes the root command with an isolated config and log file
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	out, _, err := runCapture(t, stdin, args...)
	return out, err
}

// runCapture is run that also returns what went to stderr
func runCapture(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	dir := t.TempDir()

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append([]string{
		"--config", filepath.Join(dir, "d3l.ini"),
		"--log-file", filepath.Join(dir, "d3l.log"),
		"--log-console=false",
		"--non-interactive",
	}, args...))

	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, version.Info()+"\n", out)
}

func TestMkdir(t *testing.T) {
	target := filepath.Join(t.TempDir(), "abc", "def")

	out, err := run(t, "", "mkdir", "--mode", "0750", target)
	require.NoError(t, err)
	assert.DirExists(t, target)
	assert.Contains(t, out, "created  "+target)

	out, err = run(t, "", "mkdir", "--mode", "0750", target)
	require.NoError(t, err)
	assert.NotContains(t, out, "created")
	assert.Contains(t, out, "exists   "+target)
}

func TestMkdirUnderFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "plain")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	out, err := run(t, "", "mkdir", "--mode", "0755", filepath.Join(file, "sub"))
	require.Error(t, err)
	assert.True(t, common.IsKind(err, common.KindCreate))
	assert.Contains(t, out, "failed")
}

func TestU2GAndHex(t *testing.T) {
	out, err := run(t, "", "u2g", "中")
	require.NoError(t, err)
	assert.Equal(t, "\xd6\xd0", out)

	out, err = run(t, "", "hex", "--legacy", "中")
	require.NoError(t, err)
	assert.Equal(t, "Hex Char Code:\nd6 d0\n", out)

	out, err = run(t, "", "hex", "--legacy=false", "ab")
	require.NoError(t, err)
	assert.Equal(t, "Hex Char Code:\n61 62\n", out)
}

func TestG2UFromFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "legacy.txt")
	require.NoError(t, os.WriteFile(file, []byte("\xbe\xb2\xcc\xac\xc4\xa3\xca\xbd"), 0644))

	out, err := run(t, "", "g2u", file)
	require.NoError(t, err)
	assert.Equal(t, "静态模式", out)
}

func TestConvStdin(t *testing.T) {
	out, err := run(t, "\xd6\xd0\xce\xc4", "conv", "--from", "gbk", "--to", "utf-8", "--capacity", "0", "-")
	require.NoError(t, err)
	assert.Equal(t, "中文", out)

	_, err = run(t, "中文", "conv", "--from", "utf-8", "--to", "gbk", "--capacity", "3", "-")
	assert.True(t, common.IsKind(err, common.KindConversion))

	_, err = run(t, "abc", "conv", "--from", "utf-8", "--to", "no-such-charset", "--capacity", "0", "-")
	assert.True(t, common.IsKind(err, common.KindEngineOpen))
}

func TestFileCommands(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "notes.txt")

	_, err := run(t, "", "write", file, "one\ntwo\nthree")
	require.NoError(t, err)

	out, err := run(t, "", "lines", file)
	require.NoError(t, err)
	assert.Equal(t, "3\n", out)

	out, err = run(t, "", "size", file)
	require.NoError(t, err)
	assert.Equal(t, "13 (13 B)\n", out)

	_, err = run(t, "", "access", "--mode", "rw", file)
	assert.NoError(t, err)

	out, err = run(t, "", "count", dir)
	require.NoError(t, err)
	assert.Equal(t, "1\n", out)

	out, err = run(t, "", "ls", "--long=false", dir)
	require.NoError(t, err)
	assert.Equal(t, "notes.txt\n", out)

	_, err = run(t, "", "rm", "--force", file)
	require.NoError(t, err)
	assert.NoFileExists(t, file)

	_, err = run(t, "", "lines", file)
	assert.True(t, common.IsKind(err, common.KindNotFound))

	_, err = run(t, "", "access", "--mode", "f", file)
	assert.True(t, common.IsKind(err, common.KindNotFound))
}

func TestRmDeclinedByDefault(t *testing.T) {
	file := filepath.Join(t.TempDir(), "keep.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	// without --force nothing is removed in non-interactive mode
	_, err := run(t, "", "rm", "--force=false", file)
	require.NoError(t, err)
	assert.FileExists(t, file)
}

func TestConsoleLogStaysOffStdout(t *testing.T) {
	file := filepath.Join(t.TempDir(), "legacy.txt")

	_, err := run(t, "", "write", file, "\xd6\xd0")
	require.NoError(t, err)

	// the second write replaces the file and logs a note
	out, errOut, err := runCapture(t, "", "--log-console", "write", file, "\xd6\xd0")
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "existing file has been deleted")

	out, errOut, err = runCapture(t, "", "--log-console", "g2u", file)
	require.NoError(t, err)
	assert.Equal(t, "中", out)
	assert.NotContains(t, errOut, "中")

	_, errOut, err = runCapture(t, "", "--log-console", "rm", "--force", file)
	require.NoError(t, err)
	assert.Contains(t, errOut, file+" has been removed")
}

func TestStringCommands(t *testing.T) {
	out, err := run(t, "", "replace", "--from", "a", "--to", "bb", "banana")
	require.NoError(t, err)
	assert.Equal(t, "bbbnbbnbb\n", out)

	out, err = run(t, "", "erase", "--sub", "ab", "aabbc")
	require.NoError(t, err)
	assert.Equal(t, "c\n", out)
}

func TestTime(t *testing.T) {
	out, err := run(t, "", "time")
	require.NoError(t, err)
	assert.Regexp(t, `^D3L::Time:\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}\n$`, out)
}

func TestParseAccessMode(t *testing.T) {
	_, err := parseAccessMode("rq")
	assert.Error(t, err)

	_, err = parseAccessMode("")
	assert.Error(t, err)

	mode, err := parseAccessMode("rx")
	require.NoError(t, err)
	assert.NotZero(t, mode)
}
