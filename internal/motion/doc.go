// Package motion supplies ready-made scheme functions for common level set
// motions. Each model's Evaluate method satisfies [levelset.SchemeFunc]:
// it returns the semi-discrete right-hand side together with the CFL step
// bound of its spatial stencil.
//
//   - [Advection]: transport under a constant velocity, first-order upwind
//   - [NormalSpeed]: motion in the normal direction, Godunov upwinding
//
// These are the external collaborators of the integration engine; anything
// satisfying [levelset.SchemeFunc] plugs in the same way.
package motion
