package common

import (
	"errors"
	"fmt"
)

// Kind classifies a failure reported by the filesystem and charset helpers
type Kind int

const (
	KindUnknown Kind = iota
	KindAccess
	KindNotFound
	KindCreate
	KindAlreadyExists
	KindNotDirectory
	KindRemove
	KindRead
	KindWrite
	KindEngineOpen
	KindConversion
)

var kindNames = map[Kind]string{
	KindUnknown:       "unknown",
	KindAccess:        "access",
	KindNotFound:      "not found",
	KindCreate:        "create",
	KindAlreadyExists: "already exists",
	KindNotDirectory:  "not a directory",
	KindRemove:        "remove",
	KindRead:          "read",
	KindWrite:         "write",
	KindEngineOpen:    "engine open",
	KindConversion:    "conversion",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is a tagged failure carrying the operation, the subject path (if any)
// and the underlying cause
type Error struct {
	Kind Kind
	Op   string
	Path string
	Err  error
}

// NewError creates a tagged error
func NewError(kind Kind, op, path string, err error) *Error {
	return &Error{Kind: kind, Op: op, Path: path, Err: err}
}

func (e *Error) Error() string {
	msg := e.Op + ": " + e.Kind.String()
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of the first tagged error in err's chain
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsKind reports whether err carries the given kind
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
