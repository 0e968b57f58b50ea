// Package display implements the wake and sleep actions against the host.
//
// Sleeping always runs an external command (doff.exe on Windows, xset on X11,
// pmset on macOS). Waking prefers a configured command; on Windows the
// default is a one-pixel cursor nudge, which the OS treats as user input.
package display
