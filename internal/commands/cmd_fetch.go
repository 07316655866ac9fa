package commands

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/colonyops/fitsel/internal/core/archive"
	"github.com/colonyops/fitsel/internal/core/fragment"
	"github.com/colonyops/fitsel/internal/core/logging"
	"github.com/colonyops/fitsel/internal/core/styles"
	"github.com/colonyops/fitsel/internal/core/tabs"
	corevalidate "github.com/colonyops/fitsel/internal/core/validate"
	"github.com/colonyops/fitsel/pkg/iojson"
)

const defaultFetchConcurrency = 4

// Getter fetches a fragment by path.
type Getter interface {
	Get(ctx context.Context, path string) ([]byte, error)
}

type FetchCmd struct {
	flags       *Flags
	jsonOutput  bool
	concurrency int

	// newGetter is replaced in tests.
	newGetter func() (Getter, error)
}

// NewFetchCmd creates a new fetch command.
func NewFetchCmd(flags *Flags) *FetchCmd {
	cmd := &FetchCmd{flags: flags}
	cmd.newGetter = func() (Getter, error) {
		return newArchiveClient(cmd.flags.Config)
	}
	return cmd
}

// Register adds the fetch command to the application.
func (cmd *FetchCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "fetch",
		Usage:     "Fetch every enabled tab for a search and print its tables",
		UsageText: "fitsel fetch [options] <search>",
		Description: `Fetches the default content of every enabled tab concurrently and prints
each fragment's tables. Selectable rows are marked with their checkbox state.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines, one per tab",
				Destination: &cmd.jsonOutput,
			},
			&cli.IntFlag{
				Name:        "concurrency",
				Usage:       "maximum number of tabs fetched at once",
				Value:       defaultFetchConcurrency,
				Destination: &cmd.concurrency,
			},
		},
		Action: cmd.run,
	})

	return app
}

// tabResult is the JSON output format for fitsel fetch --json.
type tabResult struct {
	Tab    string        `json:"tab"`
	Title  string        `json:"title"`
	Path   string        `json:"path"`
	Error  string        `json:"error,omitempty"`
	Text   string        `json:"text,omitempty"`
	Tables []tableResult `json:"tables,omitempty"`
}

type tableResult struct {
	Group  string      `json:"group,omitempty"`
	Header []string    `json:"header,omitempty"`
	Rows   []rowResult `json:"rows"`
}

type rowResult struct {
	Cells    []string `json:"cells"`
	Value    string   `json:"value,omitempty"`
	Disabled bool     `json:"disabled,omitempty"`
}

func (cmd *FetchCmd) run(ctx context.Context, c *cli.Command) error {
	search := strings.TrimSpace(c.Args().First())
	if err := corevalidate.SearchPath(search); err != nil {
		return err
	}

	getter, err := cmd.newGetter()
	if err != nil {
		return err
	}

	results, err := cmd.fetchAll(ctx, getter, search)
	if err != nil {
		return err
	}

	out := c.Root().Writer
	if cmd.jsonOutput {
		for _, r := range results {
			if err := iojson.WriteLine(out, r); err != nil {
				return fmt.Errorf("encode tab: %w", err)
			}
		}
	} else {
		for i, r := range results {
			if i > 0 {
				_, _ = fmt.Fprintln(out)
			}
			writeTabResult(out, r)
		}
	}

	failed := 0
	for _, r := range results {
		if r.Error != "" {
			failed++
		}
	}
	if failed > 0 {
		return cli.Exit(fmt.Sprintf("%d of %d tabs failed to load", failed, len(results)), 1)
	}
	return nil
}

// fetchAll loads every tab that fetches, keeping the configured tab order.
// A failing tab is reported in its result and does not cancel the others.
func (cmd *FetchCmd) fetchAll(ctx context.Context, getter Getter, search string) ([]tabResult, error) {
	cfg := cmd.flags.Config
	searchPath := archive.EncodeSearchPath(search)

	var specs []tabs.Spec
	for _, s := range cfg.TabSpecs() {
		if s.Allow && s.Endpoint != "" {
			specs = append(specs, s)
		}
	}
	if len(specs) == 0 {
		return nil, fmt.Errorf("no enabled tab has an endpoint")
	}

	results := make([]tabResult, len(specs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(cmd.concurrency, 1))

	for i, spec := range specs {
		g.Go(func() error {
			path := spec.Endpoint + searchPath
			res := tabResult{Tab: spec.ID, Title: spec.Title, Path: path}

			tabCtx := logging.WithTabID(ctx, spec.ID)
			body, err := getter.Get(tabCtx, path)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				log.Warn().Ctx(tabCtx).Err(err).Str("path", path).Msg("fetch tab")
				res.Error = err.Error()
				results[i] = res
				return nil
			}

			content, err := fragment.Parse(bytes.NewReader(body))
			if err != nil {
				res.Error = err.Error()
				results[i] = res
				return nil
			}

			res.Text = content.Text
			for _, t := range content.Tables {
				res.Tables = append(res.Tables, toTableResult(t, cfg.IncludeGroup))
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fetch tabs: %w", err)
	}

	return results, nil
}

// toTableResult converts a parsed table. Groups not accepted by include are
// reported as read-only.
func toTableResult(t fragment.Table, include func(string) bool) tableResult {
	group := t.GroupID
	if group != "" && !include(group) {
		group = ""
	}

	out := tableResult{Group: group, Header: t.Header, Rows: make([]rowResult, 0, len(t.Rows))}
	for _, r := range t.Rows {
		row := rowResult{Cells: r.Cells}
		if group != "" && r.Selectable() {
			row.Value = r.Value
			row.Disabled = r.Disabled
		}
		out.Rows = append(out.Rows, row)
	}
	return out
}

func writeTabResult(w io.Writer, r tabResult) {
	_, _ = fmt.Fprintln(w, styles.CommandHeaderStyle.Render(r.Title)+" "+styles.DividerStyle.Render(r.Path))

	if r.Error != "" {
		_, _ = fmt.Fprintln(w, styles.ErrorTextStyle.Render("error: "+r.Error))
		return
	}
	if r.Text == "" && len(r.Tables) == 0 {
		_, _ = fmt.Fprintln(w, "Nothing to show.")
		return
	}
	if r.Text != "" {
		_, _ = fmt.Fprintln(w, r.Text)
	}

	for _, t := range r.Tables {
		_, _ = fmt.Fprintln(w, renderTable(t))
		if t.Group != "" {
			n := 0
			for _, row := range t.Rows {
				if row.Value != "" {
					n++
				}
			}
			_, _ = fmt.Fprintln(w, styles.SuccessTextStyle.Render(fmt.Sprintf("%d selectable files in group %s", n, t.Group)))
		}
	}
}

func renderTable(t tableResult) string {
	cols := len(t.Header)
	for _, r := range t.Rows {
		cols = max(cols, len(r.Cells))
	}

	rows := make([][]string, 0, len(t.Rows))
	for _, r := range t.Rows {
		cells := make([]string, cols)
		copy(cells, r.Cells)
		if r.Value != "" && cols > 0 && cells[0] == "" {
			cells[0] = styles.Checkbox(false, r.Disabled)
		}
		rows = append(rows, cells)
	}

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(styles.TableBorderStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.TableHeaderStyle
			}
			return styles.TableCellStyle
		}).
		Rows(rows...)

	if len(t.Header) > 0 {
		header := make([]string, cols)
		copy(header, t.Header)
		tbl = tbl.Headers(header...)
	}

	return tbl.Render()
}
