package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/lumen/internal/app"
	"github.com/custodia-labs/lumen/internal/core/domain"
)

const nextFromLayout = "2006-01-02 15:04"

var (
	nextFrom      string
	nextCount     int
	nextOverrides app.PolicyOverrides
)

// now is replaced in tests.
var now = time.Now

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Show upcoming scheduled events",
	Long: `Preview the wake and sleep events the scheduler would run next.

--from accepts RFC 3339 ("2026-10-19T21:00:00+01:00") or a local
"2006-01-02 15:04" time. The schedule override flags of "lumen run" are
accepted too, so a change can be previewed before it is saved.`,
	Args: cobra.NoArgs,
	RunE: runNext,
}

func init() {
	nextCmd.Flags().StringVar(&nextFrom, "from", "", "start of the preview (default now)")
	nextCmd.Flags().IntVarP(&nextCount, "count", "n", 4, "number of events to show")
	addPolicyFlags(nextCmd, &nextOverrides)
	rootCmd.AddCommand(nextCmd)
}

func runNext(cmd *cobra.Command, _ []string) error {
	if err := requireFactory(); err != nil {
		return err
	}
	if nextCount <= 0 {
		return fmt.Errorf("%w: --count must be positive", domain.ErrInvalidInput)
	}

	from, err := parseFrom(nextFrom)
	if err != nil {
		return err
	}

	policy, err := loadPolicy(nextOverrides)
	if err != nil {
		return err
	}
	if err := policy.Validate(); err != nil {
		return err
	}

	events, err := domain.Upcoming(from, policy, nextCount)
	if err != nil {
		return fmt.Errorf("failed to compute schedule: %w", err)
	}

	for _, e := range events {
		cmd.Printf("%s  %-5s  in %s\n", e.At.Format("Mon Jan 02 15:04"), e.Kind, formatWait(e.At.Sub(from)))
	}
	return nil
}

func parseFrom(s string) (time.Time, error) {
	if s == "" {
		return now(), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(nextFromLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: --from %q, want RFC 3339 or %q", domain.ErrInvalidInput, s, nextFromLayout)
	}
	return t, nil
}

// loadPolicy reads the stored policy and applies overrides.
func loadPolicy(overrides app.PolicyOverrides) (domain.Policy, error) {
	svc, err := factory.Settings(configDir)
	if err != nil {
		return domain.Policy{}, err
	}
	settings, err := svc.Get()
	if err != nil {
		return domain.Policy{}, fmt.Errorf("failed to get settings: %w", err)
	}
	return overrides.Apply(settings.Policy)
}

// formatWait renders d as e.g. "9h30m", dropping seconds.
func formatWait(d time.Duration) string {
	d = d.Truncate(time.Minute)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh%02dm", h, m)
	}
}
