// Package viz renders trajectories in the terminal.
//
// [Model] is a Bubble Tea program that steps a simulator live and draws the
// flight profile on a Braille [Canvas]. The Write* functions print static
// reports of finished runs.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Restart from the launch pad
//	+/-   - Steps per frame
//	T     - Cycle color themes
//	[]/   - Replay history
//	Q     - Quit
package viz
