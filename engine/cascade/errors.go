package cascade

import "github.com/pkg/errors"

// ErrRuleFailure names the rule-handle failure kind — spec.md §7 treats
// it identically to "no consequence emitted." Engine never returns it:
// when a handle panics or returns an error, Engine logs that error itself
// (not wrapped in this sentinel) and emits nothing for the potential.
var ErrRuleFailure = errors.New("cascade: rule handle failure")

// ErrDepthExceeded documents the "not an error" depth-exceeded case from
// spec.md §4.5/§7. Engine.Process never returns or wraps this value; it
// exists so callers have a named sentinel to reference in comments and
// tests rather than a magic "nil, nil" meaning two different things.
var ErrDepthExceeded = errors.New("cascade: max depth exceeded")
