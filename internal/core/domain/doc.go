// Package domain defines the core scheduling entities for lumen.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - TimeOfDay: A wall-clock time without a date
//   - Policy: Weekday/weekend wake times and the daily sleep threshold
//   - Event: A Wake or Sleep transition at a moment
//   - ScheduleWindow: The sorted events for today and tomorrow
//   - Settings: Policy plus timing and display configuration
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
