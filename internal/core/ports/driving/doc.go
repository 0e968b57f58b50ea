// Package driving defines what the command line and the status screen may
// ask of lumen: run the scheduler, fire an action by hand, read the journal
// and change settings.
//
// Implementations live in internal/core/services.
package driving
