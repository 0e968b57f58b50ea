// Package file provides the TOML configuration store backing lumen's settings.
//
// Keys are addressed in dot notation ("schedule.sleep"); on disk they are
// written as nested tables so the file stays pleasant to edit by hand.
package file
