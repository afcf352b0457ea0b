package userstate

import "fmt"

// PersistenceError reports a failed state write-back. The in-memory
// mutation has still been applied; the caller may retry or warn the
// user, and the store keeps working for the rest of the session.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to persist user state (%s): %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
