package embed

import "fmt"

// ErrorKind classifies the I/O failures that abort a generation run.
type ErrorKind int

const (
	// UnreadableInput means an input file could not be opened or read.
	UnreadableInput ErrorKind = iota

	// UnwritableOutput means the generated file could not be created or written.
	UnwritableOutput
)

func (k ErrorKind) String() string {
	switch k {
	case UnreadableInput:
		return "unreadable input"
	case UnwritableOutput:
		return "unwritable output"
	default:
		return "unknown"
	}
}

// Error is returned for every failure that stops a job. There is no partial
// success: the caller reports it and gives up.
type Error struct {
	Kind ErrorKind
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Kind, e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
