// Package cli provides the command-line interface for lumen.
package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/lumen/internal/app"
	"github.com/custodia-labs/lumen/internal/core/ports/driving"
)

// version is set at build time with -ldflags "-X ...cli.version=v1.2.3".
var version = "dev"

var (
	configDir string
	verbose   bool
)

// Factory builds the services each command needs once flags are parsed.
type Factory interface {
	// Settings opens the settings service.
	Settings(configDir string) (driving.SettingsService, error)

	// History opens the action journal for reading.
	History(configDir string) (driving.HistoryService, func() error, error)

	// Runtime builds a fully wired scheduler.
	Runtime(opts app.Options) (*app.App, error)
}

// factory is the active service factory.
var factory Factory

var errNotConfigured = errors.New("services not configured")

var rootCmd = &cobra.Command{
	Use:   "lumen",
	Short: "Weekly display sleep and wake scheduler",
	Long: `Lumen puts the display to sleep every night and wakes it every morning.

Weekdays and weekends have their own wake time; sleep happens at the same
time every day. Run "lumen run" to start the scheduler, or "lumen next" to
preview what it will do.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.lumen)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// SetFactory sets the service factory used by all commands.
func SetFactory(f Factory) {
	factory = f
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func requireFactory() error {
	if factory == nil {
		return errNotConfigured
	}
	return nil
}
