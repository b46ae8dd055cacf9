package serror

import "fmt"

// SimError is an error raised by the movement simulation itself rather than by
// one of its collaborators.
type SimError struct {
	Err string
}

func New(format string, args ...interface{}) *SimError {
	return &SimError{Err: fmt.Sprintf(format, args...)}
}

func (e *SimError) Error() string {
	return e.Err
}
