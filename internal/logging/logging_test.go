package logging

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatter(t *testing.T) {
	ts := time.Date(2011, time.December, 23, 9, 8, 7, 0, time.Local)

	tests := []struct {
		name  string
		entry *logrus.Entry
		want  string
	}{
		{
			name:  "info message",
			entry: &logrus.Entry{Time: ts, Level: logrus.InfoLevel, Message: "abc has been created", Data: logrus.Fields{}},
			want:  "D3L::Time:2011-12-23 09:08:07\nabc has been created\n",
		},
		{
			name:  "error with path and cause",
			entry: &logrus.Entry{Time: ts, Level: logrus.ErrorLevel, Message: "can't create directory", Data: logrus.Fields{"path": "a/b", logrus.ErrorKey: errors.New("permission denied")}},
			want:  "D3L::Time:2011-12-23 09:08:07\nERROR can't create directory [a/b]: permission denied\n",
		},
		{
			name:  "warning",
			entry: &logrus.Entry{Time: ts, Level: logrus.WarnLevel, Message: "a/ is already exist", Data: logrus.Fields{}},
			want:  "D3L::Time:2011-12-23 09:08:07\nWARNING a/ is already exist\n",
		},
	}

	f := &Formatter{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := f.Format(tt.entry)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(out))
		})
	}
}

func TestNewWithWriterAppend(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf)
	l.Append("first")
	l.Append("second")

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Regexp(t, regexp.MustCompile(`^D3L::Time:\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}$`), lines[0])
	assert.Equal(t, "first", lines[1])
	assert.Equal(t, "second", lines[3])
	assert.NoError(t, l.Close())
}

func TestNewFileAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "d3l.log")

	for _, msg := range []string{"one", "two"} {
		l, err := New(Options{File: path})
		require.NoError(t, err)
		l.Append(msg)
		require.NoError(t, l.Close())
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\none\n")
	assert.Contains(t, string(data), "\ntwo\n")
	assert.Equal(t, 4, strings.Count(string(data), "\n"))
}

func TestNewFileError(t *testing.T) {
	_, err := New(Options{File: filepath.Join(t.TempDir(), "missing", "d3l.log")})
	assert.Error(t, err)
}

func TestNewConsole(t *testing.T) {
	path := filepath.Join(t.TempDir(), "unused.log")
	var console bytes.Buffer

	l, err := New(Options{File: path, Console: &console, Debug: true})
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, l.GetLevel())

	l.Append("to the console")
	assert.NoError(t, l.Close())

	assert.Contains(t, console.String(), "\nto the console\n")
	assert.NoFileExists(t, path)
}
