// Package demo is the bundled echo application. It answers each line with
// scripted thinking and an echo reply, and exposes the dialogs and output
// kinds of a session as slash commands.
package demo

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/zhubert/thinkprompt/internal/app"
	"github.com/zhubert/thinkprompt/internal/config"
	"github.com/zhubert/thinkprompt/internal/logger"
	"github.com/zhubert/thinkprompt/internal/settings"
	"github.com/zhubert/thinkprompt/internal/thinking"
	"github.com/zhubert/thinkprompt/internal/ui"
)

// DefaultDelay is the pause between streamed thinking chunks.
const DefaultDelay = 150 * time.Millisecond

// Command is a slash command of the demo.
type Command struct {
	Name        string
	Description string
	Run         func(ctx context.Context, s *app.Session, args string) error
}

// Demo handles prompt input for a session.
type Demo struct {
	cfg      *config.Config
	delay    time.Duration
	commands map[string]Command
}

// New creates the demo. cfg is the loaded configuration that /settings
// edits and saves; running sessions keep their own copy.
func New(cfg *config.Config, delay time.Duration) *Demo {
	d := &Demo{cfg: cfg, delay: delay}
	d.commands = make(map[string]Command)
	for _, c := range []Command{
		{"/help", "List the commands", d.help},
		{"/settings", "Edit and save the configuration", d.settings},
		{"/yesno", "Ask a yes/no question", d.yesNo},
		{"/choice", "Pick one of several buttons", d.choice},
		{"/list", "Pick from a list", d.list},
		{"/progress", "Think with a polled progress counter", d.progress},
		{"/code", "Print a highlighted code block", d.code},
		{"/md", "Print rendered markdown", d.markdown},
		{"/clear", "Clear the screen and history", d.clear},
		{"/exit", "Leave the session", d.exit},
	} {
		d.commands[c.Name] = c
	}
	return d
}

// Completions returns the command names for the prompt completer.
func (d *Demo) Completions() []string {
	names := make([]string, 0, len(d.commands))
	for name := range d.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Handle answers one submitted line.
func (d *Demo) Handle(ctx context.Context, s *app.Session, line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	if name, args, ok := parseCommand(line); ok {
		cmd, found := d.commands[name]
		if !found {
			s.AddWarning(fmt.Sprintf("Unknown command %s, try /help", name))
			return nil
		}
		logger.Debug("demo: running %s", name)
		return cmd.Run(ctx, s, args)
	}

	sc := ScenarioFor(line)
	err := s.Thinking(ctx, func(ctx context.Context, w thinking.Writer) error {
		return sc.Stream(ctx, w, d.delay)
	})
	if err != nil {
		return err
	}
	s.AddResponse(sc.Reply, app.WithMarkdown())
	return nil
}

// parseCommand splits "/name args" into its parts.
func parseCommand(line string) (name, args string, ok bool) {
	if !strings.HasPrefix(line, "/") {
		return "", "", false
	}
	name, args, _ = strings.Cut(line, " ")
	return strings.ToLower(name), strings.TrimSpace(args), true
}

func (d *Demo) help(ctx context.Context, s *app.Session, _ string) error {
	var sb strings.Builder
	sb.WriteString("| Command | Description |\n|---|---|\n")
	for _, name := range d.Completions() {
		fmt.Fprintf(&sb, "| `%s` | %s |\n", name, d.commands[name].Description)
	}
	s.AddResponse(sb.String(), app.WithMarkdown())
	return nil
}

func (d *Demo) settings(ctx context.Context, s *app.Session, _ string) error {
	items, err := d.settingsItems()
	if err != nil {
		return err
	}

	changes, ok, err := s.Settings(ctx, "Settings", items, true)
	if err != nil {
		return err
	}
	if !ok {
		s.AddWarning("Settings unchanged")
		return nil
	}
	if len(changes) == 0 {
		s.AddSuccess("Nothing to save")
		return nil
	}

	if err := d.cfg.Apply(changes); err != nil {
		return err
	}
	if theme, ok := changes["theme"].(string); ok {
		ui.SetThemeByName(theme)
	}
	if err := d.cfg.Save(); err != nil {
		return err
	}
	s.AddSuccess(fmt.Sprintf("Saved %d setting(s); they apply to the next session", len(changes)))
	return nil
}

func (d *Demo) settingsItems() ([]settings.Item, error) {
	cfg := d.cfg

	themes := ui.ThemeOptions()
	currentTheme := cfg.Theme
	if !slices.Contains(themes, currentTheme) {
		currentTheme = ""
	}
	theme, err := settings.NewDropdown("theme", "Theme", themes, currentTheme,
		settings.WithDescription("Applied immediately"))
	if err != nil {
		return nil, err
	}
	current := strconv.Itoa(cfg.MaxCollapsedHeight)
	heights := []string{"5", "10", "15", "20"}
	if !slices.Contains(heights, current) {
		heights = append(heights, current)
	}
	height, err := settings.NewInlineSelect("max_collapsed_height", "Collapsed height", heights, current)
	if err != nil {
		return nil, err
	}
	pin, err := settings.NewInlineSelect("pin_policy", "Follow new content",
		[]string{string(config.PinAuto), string(config.PinExplicit)}, string(cfg.PinPolicy))
	if err != nil {
		return nil, err
	}

	return []settings.Item{
		theme,
		height,
		pin,
		settings.NewText("thinking_text", "Thinking label", cfg.ThinkingText, false),
		settings.NewCheckbox("echo_thinking", "Echo thinking", cfg.EchoThinking),
		settings.NewCheckbox("show_status_bar", "Status bar", cfg.ShowStatusBar),
		settings.NewCheckbox("enable_fullscreen", "Fullscreen view", cfg.EnableFullscreen),
		settings.NewCheckbox("notify_on_finish", "Notify when done", cfg.NotifyOnFinish),
	}, nil
}

func (d *Demo) yesNo(ctx context.Context, s *app.Session, args string) error {
	question := args
	if question == "" {
		question = "Do you want to continue?"
	}
	yes, err := s.YesNo(ctx, "Confirm", question)
	if err != nil {
		return err
	}
	if yes {
		s.AddSuccess("You answered yes")
	} else {
		s.AddWarning("You answered no")
	}
	return nil
}

func (d *Demo) choice(ctx context.Context, s *app.Session, args string) error {
	choices := strings.Fields(args)
	if len(choices) == 0 {
		choices = []string{"Red", "Green", "Blue"}
	}
	picked, ok, err := s.Choice(ctx, "Choose", "Pick one:", choices...)
	if err != nil {
		return err
	}
	if !ok {
		s.AddWarning("Cancelled")
		return nil
	}
	s.AddSuccess("You picked " + picked)
	return nil
}

func (d *Demo) list(ctx context.Context, s *app.Session, _ string) error {
	languages := []string{"Go", "Rust", "Python", "TypeScript", "Zig"}
	picked, ok, err := s.Dropdown(ctx, "Language", "Favorite language", languages, "Go")
	if err != nil {
		return err
	}
	if !ok {
		s.AddWarning("Cancelled")
		return nil
	}
	s.AddSuccess("You picked " + picked)
	return nil
}

// progress streams through a provider instead of a writer: the box polls
// the counter on every frame.
func (d *Demo) progress(ctx context.Context, s *app.Session, _ string) error {
	const steps = 20
	var done atomic.Int32
	provider := func() (string, error) {
		n := int(done.Load())
		bar := strings.Repeat("█", n) + strings.Repeat("░", steps-n)
		return fmt.Sprintf("Working %s %d/%d", bar, n, steps), nil
	}

	err := s.ThinkingWith(ctx, provider, func(ctx context.Context) error {
		for range steps {
			if err := sleep(ctx, d.delay); err != nil {
				return err
			}
			done.Add(1)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.AddSuccess("Finished all steps")
	return nil
}

const sampleCode = `func greet(name string) string {
	return fmt.Sprintf("Hello, %s!", name)
}`

func (d *Demo) code(ctx context.Context, s *app.Session, _ string) error {
	s.AddCode(sampleCode, "go")
	return nil
}

const sampleMarkdown = `## Markdown

Responses can use **bold**, *italics* and ` + "`code`" + `.

- one
- two
`

func (d *Demo) markdown(ctx context.Context, s *app.Session, _ string) error {
	s.AddResponse(sampleMarkdown, app.WithMarkdown())
	return nil
}

func (d *Demo) clear(ctx context.Context, s *app.Session, _ string) error {
	s.Clear()
	return nil
}

func (d *Demo) exit(ctx context.Context, s *app.Session, _ string) error {
	s.Exit()
	return nil
}
