package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/blockboard/pkg/board"
	"github.com/matzehuels/blockboard/pkg/editor"
	"github.com/matzehuels/blockboard/pkg/errors"
	"github.com/matzehuels/blockboard/pkg/event"
	"github.com/matzehuels/blockboard/pkg/graph"
	"github.com/matzehuels/blockboard/pkg/render/svg"
	"github.com/matzehuels/blockboard/pkg/render/term"
)

// replayOpts holds the command-line flags for the replay command.
type replayOpts struct {
	output string // SVG path; defaults to the script path with .svg
	grid   bool   // draw the background grid
	table  bool   // print a table of blocks
	text   bool   // print a plain-text rendering of the viewport
}

func (c *CLI) replayCommand() *cobra.Command {
	var opts replayOpts

	cmd := &cobra.Command{
		Use:   "replay [script.toml]",
		Short: "Replay an event script and render the board to SVG",
		Long: `Replay feeds a recorded TOML event script through a fresh editor and
writes the final board as SVG.

Each [[event]] table carries a type (cursor_move, mouse_down, mouse_up,
mouse_wheel, key_down, block_mouse_down, block_mouse_over,
block_mouse_leave) and the fields that type needs. An optional [viewport]
table fixes the viewport size.`,
		Example: `  blockboard replay session.toml
  blockboard replay session.toml -o board.svg --table`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("grid") {
				opts.grid = cfg.Render.Grid
			}
			return runReplay(cmd.Context(), args[0], cfg, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output SVG path")
	cmd.Flags().BoolVar(&opts.grid, "grid", true, "draw the background grid")
	cmd.Flags().BoolVar(&opts.table, "table", false, "print a table of blocks")
	cmd.Flags().BoolVar(&opts.text, "text", false, "print a plain-text rendering")

	return cmd
}

func runReplay(ctx context.Context, path string, cfg Config, opts replayOpts) error {
	logger := loggerFromContext(ctx)

	script, err := readScript(path)
	if err != nil {
		return err
	}
	ed, err := replayScript(ctx, script, cfg.Viewport, logger)
	if err != nil {
		return err
	}

	out := opts.output
	if out == "" {
		out = strings.TrimSuffix(path, filepath.Ext(path)) + ".svg"
	}
	if err := errors.ValidatePath(out); err != nil {
		return err
	}

	svgOpts := []svg.Option{svg.WithPixelSize(ed.Viewbox().Size())}
	if opts.grid {
		svgOpts = append(svgOpts, svg.WithGrid())
	}
	if err := os.WriteFile(out, svg.Render(ed.Scene(), ed.Viewbox().Rect(), svgOpts...), 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", out)
	}

	m := ed.Board()
	printSuccess("Replayed %d events", len(script.Events))
	printStats(m.Len(), m.EdgeCount(), len(m.SelectedIDs()))
	printKeyValue("state", ed.State().Name())
	printKeyValue("view", ed.Viewbox().String())
	printFile(out)

	if opts.table && m.Len() > 0 {
		fmt.Println(blockTable(m))
	}
	if opts.text {
		w, h := ed.Viewbox().Size()
		cols := int(min(w/term.DefaultCellWidth, term.MaxCols))
		rows := int(min(h/term.DefaultCellHeight, term.MaxRows))
		fmt.Println(term.Render(ed.Scene(), ed.Viewbox(), term.WithSize(cols, rows), term.WithPlain()))
	}
	return nil
}

func readScript(path string) (*event.Script, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "script %s not found", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "open %s", path)
	}
	defer f.Close()
	return event.ReadScript(f)
}

// replayScript runs every event of s through a new editor. The script's
// viewport, when present, overrides vp.
func replayScript(ctx context.Context, s *event.Script, vp ViewportConfig, logger *log.Logger) (*editor.Editor, error) {
	width, height := vp.Width, vp.Height
	if s.Viewport != nil {
		width, height = s.Viewport.Width, s.Viewport.Height
	}
	ed := editor.New(editor.WithLogger(logger), editor.WithViewport(width, height))
	if err := applyScript(ctx, ed, s, logger); err != nil {
		return nil, err
	}
	return ed, nil
}

func applyScript(ctx context.Context, ed *editor.Editor, s *event.Script, logger *log.Logger) error {
	prog := newProgress(logger)
	for _, ev := range s.Events {
		if err := ctx.Err(); err != nil {
			return err
		}
		prog.observe(ed.Handle(ev))
	}
	prog.done("replayed script")
	return nil
}

// blockTable lists blocks in id order with their centers and outgoing
// arrow counts.
func blockTable(m *board.Machine) string {
	out := make(map[graph.VertexID]int)
	for e := range m.Edges() {
		out[e.From]++
	}

	var ids []graph.VertexID
	for id := range m.Blocks() {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	rows := make([][]string, 0, len(ids))
	for _, id := range ids {
		b, _ := m.Block(id)
		sel := ""
		if b.Selected {
			sel = iconSuccess
		}
		rows = append(rows, []string{
			strconv.FormatUint(uint64(id), 10),
			strconv.FormatFloat(b.Center.X, 'f', -1, 64),
			strconv.FormatFloat(b.Center.Y, 'f', -1, 64),
			strconv.Itoa(out[id]),
			sel,
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Block", "X", "Y", "Arrows", "Selected").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return styleHeader
			case row < len(ids) && rows[row][4] != "":
				return styleSelected
			default:
				return lipgloss.NewStyle()
			}
		}).
		Render()
}
