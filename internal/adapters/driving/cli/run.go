package cli

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/lumen/internal/adapters/driving/tui"
	"github.com/custodia-labs/lumen/internal/app"
)

var (
	runHeadless  bool
	runOverrides app.PolicyOverrides
)

// isTerminal reports whether w is an interactive terminal.
var isTerminal = func(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the display scheduler",
	Long: `Run the scheduler until interrupted.

If started between the sleep time and the next wake time the display is put
to sleep straight away. This includes early-morning starts, for example 05:00
before a 06:30 wake. After that the display is woken and put to sleep at
each scheduled time, forever.

On a terminal a status screen is shown:
  w - Wake the display now
  s - Put the display to sleep
  r - Refresh history
  ? - Toggle help
  q - Quit

With --headless, or when output is not a terminal, progress is logged to
stderr instead and SIGINT or SIGTERM stops the scheduler.`,
	Args: cobra.NoArgs,
	RunE: runScheduler,
}

func init() {
	runCmd.Flags().BoolVar(&runHeadless, "headless", false, "log to stderr instead of showing the status screen")
	addPolicyFlags(runCmd, &runOverrides)
	rootCmd.AddCommand(runCmd)
}

// addPolicyFlags registers the one-run schedule overrides on cmd.
func addPolicyFlags(cmd *cobra.Command, o *app.PolicyOverrides) {
	cmd.Flags().StringVar(&o.WakeWeekday, "wake-weekday", "", "weekday wake time for this run (HH:MM)")
	cmd.Flags().StringVar(&o.WakeWeekend, "wake-weekend", "", "weekend wake time for this run (HH:MM)")
	cmd.Flags().StringVar(&o.Sleep, "sleep", "", "sleep time for this run (HH:MM)")
}

func runScheduler(cmd *cobra.Command, _ []string) error {
	if err := requireFactory(); err != nil {
		return err
	}

	if runHeadless || !isTerminal(cmd.OutOrStdout()) {
		return runHeadlessScheduler(cmd)
	}
	return runInteractiveScheduler(cmd)
}

func runHeadlessScheduler(cmd *cobra.Command) error {
	a, err := factory.Runtime(app.Options{
		ConfigDir:   configDir,
		Verbose:     verbose,
		Console:     true,
		ConsoleOut:  cmd.ErrOrStderr(),
		FileLog:     true,
		Overrides:   runOverrides,
		WatchConfig: true,
	})
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := setupShutdownHandler(cmd.Context())
	defer cancel()

	logPolicy(a)
	return a.Scheduler.Start(ctx)
}

func runInteractiveScheduler(cmd *cobra.Command) (err error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("status screen crashed: %v", r)
		}
	}()

	surface := tui.NewSurface()
	a, err := factory.Runtime(app.Options{
		ConfigDir:   configDir,
		Verbose:     verbose,
		FileLog:     true,
		Overrides:   runOverrides,
		WatchConfig: true,
		Status:      surface,
	})
	if err != nil {
		return err
	}
	defer a.Close()

	model, err := tui.NewApp(&tui.Ports{
		Policy:  a.Settings.Policy,
		Clock:   a.Clock,
		Actions: a.Actions,
		History: a.History,
	})
	if err != nil {
		return fmt.Errorf("failed to create status screen: %w", err)
	}

	ctx, cancel := setupShutdownHandler(cmd.Context())
	defer cancel()

	logPolicy(a)
	schedErr := make(chan error, 1)
	go func() {
		schedErr <- a.Scheduler.Start(ctx)
	}()

	uiErr := surface.Run(ctx, model, tea.WithAltScreen())
	cancel()
	if err := <-schedErr; err != nil {
		return err
	}
	if uiErr != nil {
		return fmt.Errorf("status screen: %w", uiErr)
	}
	return nil
}

func logPolicy(a *app.App) {
	p := a.Settings.Policy
	a.Logger.Info().
		Str("wake_weekday", p.WakeWeekday.String()).
		Str("wake_weekend", p.WakeWeekend.String()).
		Str("sleep", p.Sleep.String()).
		Msg("scheduler starting")
}
