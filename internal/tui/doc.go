// Package tui provides the console output of gitdeploy.
//
// It handles:
//   - Status reporting and the optional rotated log file (Splog)
//   - Terminal styling of step banners and commands (using lipgloss)
//   - Terminal detection for colour selection
package tui
