package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/lumen/internal/app"
	"github.com/custodia-labs/lumen/internal/core/domain"
)

var sleepNow bool

var wakeCmd = &cobra.Command{
	Use:   "wake",
	Short: "Wake the display now",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runAction(cmd, domain.ActionWake, true)
	},
}

var sleepCmd = &cobra.Command{
	Use:   "sleep",
	Short: "Put the display to sleep",
	Long: `Put the display to sleep once.

The configured sleep delay is waited first, as for scheduled sleeps.
Use --now to skip it.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runAction(cmd, domain.ActionSleep, sleepNow)
	},
}

func init() {
	sleepCmd.Flags().BoolVar(&sleepNow, "now", false, "skip the sleep delay")
	rootCmd.AddCommand(wakeCmd)
	rootCmd.AddCommand(sleepCmd)
}

func runAction(cmd *cobra.Command, kind domain.ActionKind, immediate bool) error {
	if err := requireFactory(); err != nil {
		return err
	}

	a, err := factory.Runtime(app.Options{
		ConfigDir:  configDir,
		Verbose:    verbose,
		Console:    true,
		ConsoleOut: cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := setupShutdownHandler(cmd.Context())
	defer cancel()

	if err := a.Actions.Trigger(ctx, kind, immediate); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%s interrupted: %w", kind, ctxErr)
		}
		return err
	}

	switch kind {
	case domain.ActionWake:
		cmd.Println("Display woken.")
	case domain.ActionSleep:
		cmd.Println("Display put to sleep.")
	}
	return nil
}
