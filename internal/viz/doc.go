// Package viz provides the terminal live view of the rain engine.
//
// The package implements a TUI using the Bubble Tea framework:
//
//   - [Model]: drives one engine per frame and draws its grid
//   - a sidebar with frame counters and a population chart
//   - theme selection shared with the other hosts
//
// # Key Bindings
//
//	Space - Pause/Resume
//	N     - Single step while paused
//	R     - Reset with the same seed
//	S     - Reset with a new seed
//	T     - Cycle color themes
//	H     - Toggle the sidebar
//	Q     - Quit
package viz
