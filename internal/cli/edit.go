package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/blockboard/pkg/editor"
	"github.com/matzehuels/blockboard/pkg/errors"
	"github.com/matzehuels/blockboard/pkg/event"
	"github.com/matzehuels/blockboard/pkg/geom"
	"github.com/matzehuels/blockboard/pkg/graph"
	"github.com/matzehuels/blockboard/pkg/render/svg"
	"github.com/matzehuels/blockboard/pkg/render/term"
)

// wheelStep is the wheel delta sent per terminal scroll notch.
const wheelStep = 100

// editOpts holds the command-line flags for the edit command.
type editOpts struct {
	load    string // event script to replay before editing
	output  string // SVG written on exit
	logFile string // log destination while the terminal is taken over
	plain   bool   // render without colors
}

func (c *CLI) editCommand() *cobra.Command {
	var opts editOpts

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit a board in the terminal",
		Long: `Edit opens a full-screen board editor. Each terminal cell stands for a
patch of viewport pixels; the mouse works as on a canvas.

  n           new block at the cursor
  a           arrow from the selected blocks (then click the target)
  del, bksp   delete the selected blocks
  esc         cancel an arrow, or clear the selection
  click       select a block; ctrl+click adds to the selection
  drag        move selected blocks, or select a rectangle on empty space
  middle-drag pan
  wheel       zoom
  q, ctrl+c   quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			return c.runEdit(cmd.Context(), cfg, opts)
		},
	}

	cmd.Flags().StringVar(&opts.load, "load", "", "replay an event script before editing")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the board as SVG on exit")
	cmd.Flags().StringVar(&opts.logFile, "log-file", "", "write logs to this file while editing")
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "render without colors")

	return cmd
}

func (c *CLI) runEdit(ctx context.Context, cfg Config, opts editOpts) error {
	// The terminal belongs to bubbletea while the program runs, so logs go
	// to a file or nowhere.
	logger := log.New(io.Discard)
	if opts.logFile != "" {
		if err := errors.ValidatePath(opts.logFile); err != nil {
			return err
		}
		f, err := os.OpenFile(opts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "open log file")
		}
		defer f.Close()
		logger = newLogger(f, c.Logger.GetLevel())
	}

	ed := editor.New(editor.WithLogger(logger), editor.WithViewport(cfg.Viewport.Width, cfg.Viewport.Height))
	if opts.load != "" {
		s, err := readScript(opts.load)
		if err != nil {
			return err
		}
		if err := applyScript(ctx, ed, s, logger); err != nil {
			return err
		}
	}

	model := newEditModel(ed, opts.plain)
	model.prog = newProgress(logger)
	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}

	model.prog.done("edit session closed")

	m := ed.Board()
	printInfo("Closed board")
	printStats(m.Len(), m.EdgeCount(), len(m.SelectedIDs()))
	if opts.output != "" {
		if err := errors.ValidatePath(opts.output); err != nil {
			return err
		}
		svgOpts := []svg.Option{svg.WithPixelSize(ed.Viewbox().Size())}
		if cfg.Render.Grid {
			svgOpts = append(svgOpts, svg.WithGrid())
		}
		if err := os.WriteFile(opts.output, svg.Render(ed.Scene(), ed.Viewbox().Rect(), svgOpts...), 0o644); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "write %s", opts.output)
		}
		printFile(opts.output)
	}
	return nil
}

// =============================================================================
// editModel - bubbletea front-end for an editor
// =============================================================================

// editModel translates terminal input into editor events. A cell (x, y)
// stands for the viewport pixel at its center.
type editModel struct {
	ed    *editor.Editor
	cellW float64
	cellH float64
	cols  int
	rows  int // board rows, excluding the status bar
	plain bool

	hover   graph.VertexID
	pressed tea.MouseButton
	last    string
	prog    *progress
}

func newEditModel(ed *editor.Editor, plain bool) *editModel {
	m := &editModel{
		ed:      ed,
		cellW:   term.DefaultCellWidth,
		cellH:   term.DefaultCellHeight,
		plain:   plain,
		pressed: tea.MouseButtonNone,
		prog:    newProgress(log.New(io.Discard)),
	}
	w, h := ed.Viewbox().Size()
	m.cols, m.rows = int(w/m.cellW), int(h/m.cellH)
	return m
}

func (m *editModel) Init() tea.Cmd { return nil }

func (m *editModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.cols, m.rows = msg.Width, max(msg.Height-1, 1)
		m.ed.Resize(float64(m.cols)*m.cellW, float64(m.rows)*m.cellH)
	case tea.KeyMsg:
		return m, m.key(msg)
	case tea.MouseMsg:
		m.mouse(msg)
	}
	return m, nil
}

func (m *editModel) key(msg tea.KeyMsg) tea.Cmd {
	var key string
	switch msg.String() {
	case "ctrl+c", "q":
		return tea.Quit
	case "esc":
		key = event.KeyEscape
	case "delete", "backspace":
		key = event.KeyDelete
	default:
		key = msg.String()
	}
	var mods event.Modifiers
	if msg.Alt {
		mods |= event.ModAlt
	}
	m.handle(event.KeyDown{Key: key, Mods: mods})
	return nil
}

func (m *editModel) mouse(msg tea.MouseMsg) {
	pos := geom.V((float64(msg.X)+0.5)*m.cellW, (float64(msg.Y)+0.5)*m.cellH)

	switch msg.Action {
	case tea.MouseActionMotion:
		m.moveTo(pos)

	case tea.MouseActionPress:
		m.moveTo(pos)
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.handle(event.MouseWheel{DeltaY: -wheelStep})
			return
		case tea.MouseButtonWheelDown:
			m.handle(event.MouseWheel{DeltaY: wheelStep})
			return
		}
		btn, ok := mouseButton(msg.Button)
		if !ok {
			return
		}
		m.pressed = msg.Button
		mods := mouseMods(msg)
		if id, hit := m.blockAt(pos); hit {
			m.handle(event.BlockMouseDown{Button: btn, Block: id, Mods: mods})
		} else {
			m.handle(event.MouseDown{Button: btn, Pos: pos, Mods: mods})
		}

	case tea.MouseActionRelease:
		// Some terminals do not report which button was released.
		b := msg.Button
		if _, ok := mouseButton(b); !ok {
			b = m.pressed
		}
		m.pressed = tea.MouseButtonNone
		if btn, ok := mouseButton(b); ok {
			m.handle(event.MouseUp{Button: btn})
		}
	}
}

// moveTo reports a cursor move when pos differs from the last one, then
// emits block enter/leave events for whatever is under the pointer.
func (m *editModel) moveTo(pos geom.Viewport) {
	if pos != m.ed.Cursor() {
		m.handle(event.CursorMove{Pos: pos})
	}
	id, _ := m.blockAt(pos)
	if id == m.hover {
		return
	}
	if m.hover != 0 {
		m.handle(event.BlockMouseLeave{})
	}
	if id != 0 {
		m.handle(event.BlockMouseOver{Block: id})
	}
	m.hover = id
}

func (m *editModel) blockAt(pos geom.Viewport) (graph.VertexID, bool) {
	return m.ed.Board().BlockAt(m.ed.Viewbox().ToBoard(pos))
}

func (m *editModel) handle(ev event.Event) {
	m.prog.observe(m.ed.Handle(ev))
	m.last = ev.Kind()
}

func mouseButton(b tea.MouseButton) (event.Button, bool) {
	switch b {
	case tea.MouseButtonLeft:
		return event.Primary, true
	case tea.MouseButtonMiddle:
		return event.Auxiliary, true
	default:
		return 0, false
	}
}

func mouseMods(msg tea.MouseMsg) event.Modifiers {
	var mods event.Modifiers
	if msg.Ctrl {
		mods |= event.ModCtrl
	}
	if msg.Shift {
		mods |= event.ModShift
	}
	if msg.Alt {
		mods |= event.ModAlt
	}
	return mods
}

func (m *editModel) View() string {
	opts := []term.Option{term.WithSize(m.cols, m.rows), term.WithCellSize(m.cellW, m.cellH)}
	if m.plain {
		opts = append(opts, term.WithPlain())
	}
	return term.Render(m.ed.Scene(), m.ed.Viewbox(), opts...) + "\n" + m.statusBar()
}

func (m *editModel) statusBar() string {
	b := m.ed.Board()
	info := fmt.Sprintf(" %d blocks · %d arrows · %d selected · zoom %g · %s",
		b.Len(), b.EdgeCount(), len(b.SelectedIDs()), m.ed.Viewbox().Scale(), m.ed.CursorBoard())
	if m.last != "" {
		info += " · " + m.last
	}
	state := m.ed.State().Name()
	if m.plain {
		return "[" + state + "]" + info
	}
	key := styleStatusKey.Render(state)
	rest := styleStatusBar.Width(max(m.cols-lipgloss.Width(key), 0)).Render(info)
	return key + rest
}
