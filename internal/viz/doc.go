// Package viz renders sweep results in the terminal.
//
//   - [SweepTable], [ConversionTable]: lipgloss-styled tables
//   - [PlotCurves]: one asciigraph series per mixture stage
//   - [Explorer]: Bubble Tea model for stepping the loading level by hand
//
// # Key Bindings
//
//	←/→   - Decrease/increase solid volume fraction
//	Tab/K - Select species
//	[/]   - Move the selected species earlier/later in the chain
//	R     - Restore the configured order
//	Q     - Quit
package viz
