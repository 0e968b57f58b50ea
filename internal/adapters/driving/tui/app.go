package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/lumen/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/lumen/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/lumen/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/lumen/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/lumen/internal/core/domain"
)

const (
	upcomingCount = 4
	historyCount  = 5
)

// App is the status screen following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap
	bar    *status.Bar

	// status is the last status published by the scheduler.
	status domain.Status

	// upcoming is recomputed from the clock on every status change.
	upcoming []domain.Event

	history    []domain.JournalEntry
	historyErr error

	showHelp bool
	width    int
	height   int
	ready    bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates the status screen.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	a := &App{
		ports:  ports,
		ctx:    context.Background(),
		styles: s,
		keymap: km,
		bar:    status.NewBar(s, km),
		status: domain.Status{Phase: domain.PhaseStarting},
	}
	a.refreshUpcoming()
	return a, nil
}

// WithContext sets the context manual actions run under.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("lumen"),
		a.loadHistory(),
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a, a.handleKey(msg)

	case messages.StatusChanged:
		a.status = msg.Status
		a.bar.SetStatus(msg.Status)
		a.bar.Clear()
		a.refreshUpcoming()
		// A new wait means the previous dispatch has been journaled.
		if msg.Status.Phase == domain.PhaseWaiting {
			return a, a.loadHistory()
		}
		return a, nil

	case messages.ActionRequested:
		return a, a.trigger(msg.Kind)

	case messages.ActionCompleted:
		if msg.Err != nil {
			a.bar.SetMessage(fmt.Sprintf("%s failed: %v", capitalise(msg.Kind.String()), msg.Err), true)
		} else {
			a.bar.SetMessage(fmt.Sprintf("%s sent", capitalise(msg.Kind.String())), false)
		}
		return a, a.loadHistory()

	case messages.HistoryLoaded:
		a.history = msg.Entries
		a.historyErr = msg.Err
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, a.keymap.Quit):
		return tea.Quit
	case key.Matches(msg, a.keymap.Wake):
		return a.trigger(domain.ActionWake)
	case key.Matches(msg, a.keymap.Sleep):
		return a.trigger(domain.ActionSleep)
	case key.Matches(msg, a.keymap.Refresh):
		return a.loadHistory()
	case key.Matches(msg, a.keymap.Help):
		a.showHelp = !a.showHelp
	}
	return nil
}

// trigger runs a manual action in the background. Sleep keeps its pre-delay
// so the keypress itself does not wake the display again.
func (a *App) trigger(kind domain.ActionKind) tea.Cmd {
	if kind == domain.ActionSleep {
		a.bar.SetMessage("Display will sleep shortly...", false)
	} else {
		a.bar.SetMessage("Waking display...", false)
	}

	actions, ctx := a.ports.Actions, a.ctx
	return func() tea.Msg {
		err := actions.Trigger(ctx, kind, false)
		return messages.ActionCompleted{Kind: kind, Err: err}
	}
}

func (a *App) loadHistory() tea.Cmd {
	history, ctx := a.ports.History, a.ctx
	if history == nil {
		return nil
	}
	return func() tea.Msg {
		entries, err := history.Recent(ctx, historyCount)
		return messages.HistoryLoaded{Entries: entries, Err: err}
	}
}

func (a *App) refreshUpcoming() {
	events, err := domain.Upcoming(a.ports.Clock.Now(), a.ports.Policy, upcomingCount)
	if err != nil {
		a.upcoming = nil
		return
	}
	a.upcoming = events
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var b strings.Builder

	b.WriteString(a.styles.Title.Render("lumen"))
	b.WriteString(a.styles.Muted.Render("  display schedule"))
	b.WriteString("\n")
	b.WriteString(a.viewPolicy())
	b.WriteString("\n")

	b.WriteString(a.styles.Section.Render("Upcoming"))
	b.WriteString("\n")
	b.WriteString(a.viewUpcoming())

	if a.ports.History != nil {
		b.WriteString(a.styles.Section.Render("Recent"))
		b.WriteString("\n")
		b.WriteString(a.viewHistory())
	}

	if a.showHelp {
		b.WriteString(a.styles.Section.Render("Keys"))
		b.WriteString("\n")
		b.WriteString(a.viewHelp())
	}

	b.WriteString("\n")
	b.WriteString(a.bar.View())
	return b.String()
}

func (a *App) viewPolicy() string {
	p := a.ports.Policy
	return a.styles.Normal.Render(fmt.Sprintf(
		"Weekdays wake %s  Weekends wake %s  Sleep %s",
		p.WakeWeekday, p.WakeWeekend, p.Sleep,
	))
}

func (a *App) viewUpcoming() string {
	if len(a.upcoming) == 0 {
		return a.styles.Muted.Render("  none") + "\n"
	}

	var b strings.Builder
	for i, e := range a.upcoming {
		marker := "  "
		if i == 0 {
			marker = "> "
		}
		line := fmt.Sprintf("%s%s  %s", marker, e.At.Format("Mon Jan 2 15:04"), e.Kind)
		b.WriteString(a.styles.ForAction(e.Kind).Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

func (a *App) viewHistory() string {
	if a.historyErr != nil {
		return a.styles.Error.Render(fmt.Sprintf("  %v", a.historyErr)) + "\n"
	}
	if len(a.history) == 0 {
		return a.styles.Muted.Render("  nothing dispatched yet") + "\n"
	}

	var b strings.Builder
	for _, e := range a.history {
		line := fmt.Sprintf("  %s  %-5s  %s", e.DispatchedAt.Format("Mon 15:04:05"), e.Kind, entryTags(e))
		if e.Success {
			b.WriteString(a.styles.Normal.Render(line))
		} else {
			b.WriteString(a.styles.Error.Render(line + "  " + e.Error))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (a *App) viewHelp() string {
	var b strings.Builder
	for _, group := range a.keymap.FullHelp() {
		for _, kb := range group {
			h := kb.Help()
			b.WriteString(a.styles.Muted.Render(fmt.Sprintf("  %-3s %s", h.Key, h.Desc)))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func entryTags(e domain.JournalEntry) string {
	var tags []string
	if !e.Success {
		tags = append(tags, "failed")
	} else {
		tags = append(tags, "ok")
	}
	if e.CatchUp {
		tags = append(tags, "catch-up")
	}
	if e.Manual {
		tags = append(tags, "manual")
	}
	return strings.Join(tags, ",")
}

func capitalise(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Status returns the last scheduler status received.
func (a *App) Status() domain.Status {
	return a.status
}

// Upcoming returns the events currently listed.
func (a *App) Upcoming() []domain.Event {
	return a.upcoming
}

// History returns the journal entries currently listed.
func (a *App) History() []domain.JournalEntry {
	return a.history
}

// Ready returns true once the terminal size is known.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.bar.SetWidth(width)
	a.ready = true
}
