// Package services implements the driving port interfaces.
// Services contain the scheduling logic and orchestrate
// calls to driven ports (adapters).
//
// Services log through an injected zerolog.Logger and read time only
// through driven.Clock; neither is a package-level singleton.
package services
