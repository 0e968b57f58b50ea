package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/lumen/internal/core/domain"
)

// policyKeys maps "policy set" keys to the field they change.
var policyKeys = map[string]func(*domain.Policy) *domain.TimeOfDay{
	"wake-weekday": func(p *domain.Policy) *domain.TimeOfDay { return &p.WakeWeekday },
	"wake-weekend": func(p *domain.Policy) *domain.TimeOfDay { return &p.WakeWeekend },
	"sleep":        func(p *domain.Policy) *domain.TimeOfDay { return &p.Sleep },
}

var policyCmd = &cobra.Command{
	Use:   "policy",
	Short: "Show and validate the schedule",
	Long: `Print the stored schedule and check that sleep comes after both wake times.

Exits non-zero when the schedule is invalid.`,
	Args: cobra.NoArgs,
	RunE: runPolicyShow,
}

var policySetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Change a schedule time",
	Long: `Change one schedule time and save it to the configuration file.

Keys:
  wake-weekday - Wake time Monday to Friday
  wake-weekend - Wake time on Saturday and Sunday
  sleep        - Sleep time every day

Values are 24-hour HH:MM times. The change is rejected if the resulting
schedule would be invalid.`,
	Args: cobra.ExactArgs(2),
	RunE: runPolicySet,
}

func init() {
	policyCmd.AddCommand(policySetCmd)
	rootCmd.AddCommand(policyCmd)
}

func runPolicyShow(cmd *cobra.Command, _ []string) error {
	if err := requireFactory(); err != nil {
		return err
	}
	svc, err := factory.Settings(configDir)
	if err != nil {
		return err
	}
	settings, err := svc.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	p := settings.Policy
	cmd.Println("Schedule")
	cmd.Println("========")
	cmd.Printf("  Weekday wake: %s\n", p.WakeWeekday)
	cmd.Printf("  Weekend wake: %s\n", p.WakeWeekend)
	cmd.Printf("  Sleep:        %s\n", p.Sleep)
	cmd.Println()
	cmd.Printf("Config file: %s\n", svc.ConfigPath())

	if err := p.Validate(); err != nil {
		cmd.Println("Status: invalid")
		return err
	}
	cmd.Println("Status: valid")
	return nil
}

func runPolicySet(cmd *cobra.Command, args []string) error {
	if err := requireFactory(); err != nil {
		return err
	}

	key := strings.ToLower(args[0])
	field, ok := policyKeys[key]
	if !ok {
		return fmt.Errorf("%w: unknown key %q (want wake-weekday, wake-weekend or sleep)", domain.ErrInvalidInput, args[0])
	}
	t, err := domain.ParseTimeOfDay(args[1])
	if err != nil {
		return err
	}

	svc, err := factory.Settings(configDir)
	if err != nil {
		return err
	}
	settings, err := svc.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	policy := settings.Policy
	*field(&policy) = t
	if err := svc.SetPolicy(policy); err != nil {
		return fmt.Errorf("failed to save schedule: %w", err)
	}

	cmd.Printf("Set %s to %s\n", key, t)
	return nil
}
