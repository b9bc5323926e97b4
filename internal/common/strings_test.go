package common

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErase(t *testing.T) {
	tests := []struct {
		name string
		s    string
		sub  string
		want string
	}{
		{"single occurrence", "hello world", "o w", "hellorld"},
		{"multiple occurrences", "a-b-c-d", "-", "abcd"},
		{"joined pieces form a new match", "aabb", "ab", ""},
		{"no occurrence", "hello", "xyz", "hello"},
		{"empty sub", "hello", "", "hello"},
		{"empty input", "", "a", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Erase(tt.s, tt.sub))
		})
	}
}

func TestReplace(t *testing.T) {
	tests := []struct {
		name string
		s    string
		from string
		to   string
		want string
	}{
		{"simple", "a.b.c", ".", "/", "a/b/c"},
		{"replacement contains pattern", "aaa", "a", "aa", "aaaaaa"},
		{"non-overlapping", "aaaa", "aa", "b", "bb"},
		{"empty from", "abc", "", "x", "abc"},
		{"remove by replacing with empty", "x1x2", "x", "", "12"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Replace(tt.s, tt.from, tt.to))
		})
	}
}

func TestErrorKind(t *testing.T) {
	base := NewError(KindNotFound, "read", "/missing", os.ErrNotExist)
	wrapped := fmt.Errorf("failed to load: %w", base)

	assert.True(t, IsKind(wrapped, KindNotFound))
	assert.False(t, IsKind(wrapped, KindAccess))
	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
	assert.True(t, errors.Is(wrapped, os.ErrNotExist))
	assert.Equal(t, "read: not found /missing: file does not exist", base.Error())
	assert.False(t, IsKind(nil, KindUnknown))
}
