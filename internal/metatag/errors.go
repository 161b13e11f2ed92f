package metatag

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownTag   = errors.New("unknown tag")
	ErrDuplicateID  = errors.New("duplicate tag id")
	ErrInvalidValue = errors.New("invalid tag value")
)

// DuplicateIDError is returned by Register when the id is already taken.
type DuplicateIDError struct {
	ID string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("tag %q already registered", e.ID)
}

func (e *DuplicateIDError) Is(target error) bool { return target == ErrDuplicateID }

// UnknownTagError is returned for lookups of ids that were never registered.
type UnknownTagError struct {
	ID string
}

func (e *UnknownTagError) Error() string {
	return fmt.Sprintf("tag %q is not registered", e.ID)
}

func (e *UnknownTagError) Is(target error) bool { return target == ErrUnknownTag }

// InvalidValueError reports a value outside a tag's allowed set.
type InvalidValueError struct {
	ID      string
	Value   string
	Allowed []string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("value %q is not allowed for tag %q (allowed: %v)", e.Value, e.ID, e.Allowed)
}

func (e *InvalidValueError) Is(target error) bool { return target == ErrInvalidValue }
