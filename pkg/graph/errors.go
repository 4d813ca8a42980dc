package graph

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownNode is matched by every *UnknownNodeError.
	ErrUnknownNode = errors.New("unknown node")

	// ErrTypeMismatch is matched by every *TypeMismatchError.
	ErrTypeMismatch = errors.New("node type mismatch")

	// ErrInvalidEdge is returned for edges between two nodes of the same type.
	ErrInvalidEdge = errors.New("edge endpoints must have different types")

	// ErrFrozen is returned by any mutation after Freeze.
	ErrFrozen = errors.New("graph is frozen")
)

// UnknownNodeError reports an operation on a key absent from the graph.
type UnknownNodeError struct {
	Key string
}

func (e *UnknownNodeError) Error() string {
	return fmt.Sprintf("unknown node %q", e.Key)
}

func (e *UnknownNodeError) Is(target error) bool {
	return target == ErrUnknownNode
}

// TypeMismatchError reports a re-insertion of an existing key with another type.
type TypeMismatchError struct {
	Key      string
	Existing NodeType
	Got      NodeType
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("node %q already exists as %s, cannot add as %s", e.Key, e.Existing, e.Got)
}

func (e *TypeMismatchError) Is(target error) bool {
	return target == ErrTypeMismatch
}
