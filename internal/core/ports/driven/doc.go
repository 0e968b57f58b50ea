// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the scheduler to function:
//
//   - Clock: Wall-clock time and timers
//   - WakeAction: Revives the display (cursor nudge or command)
//   - SleepAction: Powers the display off (external command)
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - StatusSurface: Status display. Without it, status is only logged.
//   - ActionJournal: Audit trail. Without it, dispatches are only logged.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
