// Package core implements the entity-component store: entity id
// allocation, the component-kind catalog, per-kind component stores, and
// the world that owns them.
package core

// EntityID is an opaque, monotonically assigned positive integer
// identifier. Ids are never recycled within a world's lifetime.
//
// Unlike the teacher's World, which allocates ids from one process-wide
// atomic counter, each World here owns its own counter (see World.nextID
// in world.go). A shared global counter would make two independently
// constructed worlds diverge in entity ids the moment both exist in the
// same process, which breaks the determinism property (spec.md §8,
// property 9: identical seed/state/registration/tick-count must produce
// byte-identical worlds across runs).
type EntityID uint64
