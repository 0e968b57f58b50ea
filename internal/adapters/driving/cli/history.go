package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/lumen/internal/core/domain"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent display actions",
	Long:  `List the most recent wake and sleep actions from the journal, newest first.`,
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of entries")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if err := requireFactory(); err != nil {
		return err
	}

	svc, closeFn, err := factory.History(configDir)
	if err != nil {
		return err
	}
	defer closeFn()

	entries, err := svc.Recent(cmd.Context(), historyLimit)
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}

	if len(entries) == 0 {
		cmd.Println("No actions recorded.")
		return nil
	}

	for i := range entries {
		cmd.Println(formatEntry(&entries[i]))
	}
	return nil
}

// formatEntry renders e.g. "2026-10-19 22:00:20  sleep  ok  catch-up".
func formatEntry(e *domain.JournalEntry) string {
	result := "ok"
	if !e.Success {
		result = "failed"
	}

	parts := []string{e.DispatchedAt.Local().Format("2006-01-02 15:04:05"), fmt.Sprintf("%-5s", e.Kind), result}
	if e.CatchUp {
		parts = append(parts, "catch-up")
	}
	if e.Manual {
		parts = append(parts, "manual")
	}
	if e.Error != "" {
		parts = append(parts, e.Error)
	}
	return strings.Join(parts, "  ")
}
