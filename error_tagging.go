package greenthreads

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// TaskMetaError exposes the identity of the future whose task failed.
type TaskMetaError interface {
	error
	Unwrap() error
	TaskID() uuid.UUID
}

type taskTaggedError struct {
	err error
	id  uuid.UUID
}

func newTaskTaggedError(err error, id uuid.UUID) error {
	if err == nil {
		return nil
	}
	return &taskTaggedError{err: err, id: id}
}

func (e *taskTaggedError) Error() string     { return e.err.Error() }
func (e *taskTaggedError) Unwrap() error     { return e.err }
func (e *taskTaggedError) TaskID() uuid.UUID { return e.id }

func (e *taskTaggedError) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			_, _ = fmt.Fprintf(s, "task(id=%s): %+v", e.id, e.err)
			return
		}
		fallthrough
	case 's':
		_, _ = fmt.Fprint(s, e.Error())
	case 'q':
		_, _ = fmt.Fprintf(s, "%q", e.Error())
	}
}

// ExtractTaskID returns the future ID carried by err, if any.
func ExtractTaskID(err error) (uuid.UUID, bool) {
	var tme TaskMetaError
	if errors.As(err, &tme) {
		return tme.TaskID(), true
	}
	return uuid.Nil, false
}
