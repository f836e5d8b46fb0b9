// Package levelset provides the core data model for level set time
// integration.
//
// The package defines the fundamental types shared by the integration
// engine and its collaborators:
//
//   - [State]: a flattened scalar field sampled over a grid
//   - [Bundle]: one or more coupled fields ("vector level set") advanced in
//     lockstep, each paired with an opaque caller-owned context
//   - [SchemeFunc]: a right-hand-side evaluator returning a derivative and
//     a CFL step bound
//
// # Coupled subsystems
//
// A Bundle holding K fields rotates through them with an O(1) ring offset.
// During a derivative evaluation pass each subsystem's scheme function sees
// the bundle rotated so that its own field sits at position 0; state and
// context always rotate together. See [Bundle.Rotate].
//
// # Ownership
//
// States and contexts are created by the caller, mutated in place by the
// engine once per step (and once more by an optional post-step hook), and
// handed back at loop exit. The engine never inspects a context value.
package levelset
