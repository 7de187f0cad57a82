package core

import (
	"errors"
	"fmt"

	"github.com/go-stack/stack"
	"github.com/google/uuid"
)

// Programming errors. The core never returns these; it panics with a
// *WiringError wrapping one of them.
var (
	ErrNoActiveDrag    = errors.New("no drag in progress")
	ErrInvalidEnd      = errors.New("invalid end type")
	ErrUnknownNode     = errors.New("node is not in the scene")
	ErrBadPort         = errors.New("port index out of range")
	ErrPointerCaptured = errors.New("pointer is captured by another item")
)

type WiringError struct {
	Op    string
	Conn  uuid.UUID
	Err   error
	Stack stack.CallStack
}

func (e *WiringError) Error() string {
	if e.Conn == uuid.Nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s (connection %s): %v", e.Op, e.Conn, e.Err)
}

func (e *WiringError) Unwrap() error {
	return e.Err
}

func fail(op string, conn uuid.UUID, err error) {
	panic(&WiringError{
		Op:    op,
		Conn:  conn,
		Err:   err,
		Stack: stack.Trace()[1:],
	})
}
