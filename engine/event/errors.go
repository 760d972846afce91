package event

import "github.com/pkg/errors"

// ErrSerializationFailure is returned when an event fails to serialize
// or deserialize. Fatal at save/load boundaries (spec.md §7).
var ErrSerializationFailure = errors.New("event: serialization failure")

// ErrInvariantViolation signals an internal consistency failure, such as
// a secondary index falling out of sync with the primary sequence, or an
// append whose cause ids reference an event not yet in the log. Fatal.
var ErrInvariantViolation = errors.New("event: invariant violation")
