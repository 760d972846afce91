package core

import "github.com/pkg/errors"

// ErrMissingStore is returned when attaching to, or otherwise requiring,
// a component kind that has never been registered with the world.
var ErrMissingStore = errors.New("core: missing component store")

// MissingStoreError wraps ErrMissingStore with the offending kind.
func MissingStoreError(kind ComponentKind) error {
	return errors.Wrapf(ErrMissingStore, "kind %s", kind)
}
