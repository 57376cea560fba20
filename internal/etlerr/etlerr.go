// ABOUTME: Closed set of failure kinds for the extract/load/query pipeline.
// ABOUTME: Lets callers branch on the cause of an error without matching message text.
package etlerr

import (
	"errors"
	"fmt"
)

// Kind classifies where a pipeline failure originated.
type Kind int

const (
	// KindUnknown is returned by KindOf for errors not produced by this package.
	KindUnknown Kind = iota
	// KindIO covers directory and file create, read and write failures.
	KindIO
	// KindNetwork covers connection and transport failures.
	KindNetwork
	// KindHTTPStatus is a response outside the 2xx range.
	KindHTTPStatus
	// KindCSV covers malformed headers or records and missing columns.
	KindCSV
	// KindParse is non-integer text in an integer column.
	KindParse
	// KindDatabase covers SQL execution, constraint and type errors.
	KindDatabase
)

var kindNames = map[Kind]string{
	KindUnknown:    "unknown",
	KindIO:         "io",
	KindNetwork:    "network",
	KindHTTPStatus: "http status",
	KindCSV:        "csv",
	KindParse:      "parse",
	KindDatabase:   "database",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is a classified pipeline failure.
type Error struct {
	Kind       Kind
	Op         string // operation in progress, e.g. "download", "insert record"
	Path       string // file path or URL involved, if any
	StatusCode int    // set for KindHTTPStatus
	Err        error
}

func (e *Error) Error() string {
	msg := e.Op
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Kind == KindHTTPStatus {
		msg += fmt.Sprintf(": status code %d", e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an error of the given kind from a message.
func New(kind Kind, op, format string, args ...any) error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}

// Wrap classifies err. It returns nil when err is nil.
func Wrap(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

// WrapPath classifies err and records the file path or URL it concerns.
func WrapPath(kind Kind, op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Path: path, Err: err}
}

// Status reports a non-success HTTP response.
func Status(url string, code int) error {
	return &Error{Kind: KindHTTPStatus, Op: "download", Path: url, StatusCode: code}
}

// KindOf returns the kind of the first classified error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Is reports whether err's chain contains an error of the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var e *Error
	if errors.As(err, &e) && e.Kind == KindHTTPStatus {
		return e.StatusCode
	}
	return 0
}
