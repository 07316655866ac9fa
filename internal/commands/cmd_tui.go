package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/colonyops/fitsel/internal/core/styles"
	"github.com/colonyops/fitsel/internal/core/tabs"
	corevalidate "github.com/colonyops/fitsel/internal/core/validate"
	"github.com/colonyops/fitsel/internal/tui"
	"github.com/colonyops/fitsel/pkg/profiler"
)

type TuiCmd struct {
	flags *Flags
}

// NewTuiCmd creates a new tui command
func NewTuiCmd(flags *Flags) *TuiCmd {
	return &TuiCmd{flags: flags}
}

// Flags returns the TUI-specific flags for registration on the root command
func (cmd *TuiCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:        "profiler-port",
			Usage:       "enable pprof HTTP endpoint on specified port (e.g., 6060)",
			Sources:     cli.EnvVars("FITSEL_PROFILER_PORT"),
			Destination: &cmd.flags.ProfilerPort,
		},
	}
}

// Run executes the TUI. Exported for use as default command.
func (cmd *TuiCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *TuiCmd) run(ctx context.Context, c *cli.Command) error {
	cfg := cmd.flags.Config

	search := strings.TrimSpace(c.Args().First())
	if search == "" {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return fmt.Errorf("no search path provided (stdin is not a terminal)")
		}
		if err := runSearchForm(&search); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return fmt.Errorf("form: %w", err)
		}
	}

	if err := corevalidate.SearchPath(search); err != nil {
		return err
	}

	if cmd.flags.ProfilerPort > 0 {
		profServer := profiler.New(cmd.flags.ProfilerPort)
		if err := profServer.Start(ctx); err != nil {
			return fmt.Errorf("failed to start profiler: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := profServer.Shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("failed to shutdown profiler server")
			}
		}()
		log.Info().
			Str("url", fmt.Sprintf("http://%s/debug/pprof/", profServer.Addr())).
			Msg("profiler endpoint available")
	}

	client, err := newArchiveClient(cfg)
	if err != nil {
		return err
	}

	ctrl, err := tabs.New(cfg.TabSpecs(), search, nil, tabs.WithGroupFilter(cfg.IncludeGroup))
	if err != nil {
		return fmt.Errorf("create tabs: %w", err)
	}

	var warnings []string
	for _, w := range cfg.Warnings() {
		msg := w.Message
		if w.Item != "" {
			msg = w.Item + ": " + msg
		}
		warnings = append(warnings, msg)
	}

	log.Info().
		Str("server", client.BaseURL()).
		Str("search", ctrl.SearchPath()).
		Int("tabs", len(ctrl.Tabs())).
		Msg("starting tui")

	m := tui.New(tui.Options{
		Context:       ctx,
		Tabs:          ctrl,
		Client:        client,
		MarkdownStyle: cfg.TUI.MarkdownStyle,
		Warnings:      warnings,
	})

	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}

	return nil
}

func runSearchForm(search *string) error {
	fmt.Println(styles.FormTitleStyle.Render("fitsel"))
	fmt.Println(styles.FormHelpStyle.Render("Search the archive by path, e.g. GN-2013A-Q-1/20130101"))
	fmt.Println()

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Search path").
				Description("Slash separated archive search terms").
				Validate(corevalidate.SearchPath).
				Value(search),
		),
	).Run()
}
