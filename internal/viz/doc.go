// Package viz provides terminal-based visualization for level set fields.
//
// Static output renders a center-line profile ([Plot]) and a filled
// character raster of the front ([Contour]); [Front] draws the zero level
// set on a Braille-cell [Canvas] at dot resolution. [Model] is a Bubble
// Tea program that animates an integration by driving the engine in
// single-step mode, one step per frame.
//
// # Key Bindings
//
//	Space  - Pause/Resume integration
//	R      - Reset to the initial field
//	F      - Toggle filled raster / Braille front view
//	T      - Cycle color themes
//	Arrows - Rotate the camera (3D fields)
//	+/-    - Zoom the camera (3D fields)
//	Q      - Quit
package viz
