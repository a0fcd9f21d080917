package main

import (
	"context"
	"fmt"
	"image"
	"os"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/taigrr/atlas/internal/dashboard"
	"github.com/taigrr/atlas/internal/logger"
	"github.com/taigrr/atlas/pkg/render"
)

// Key names forwarded to the dashboard.
var viewKeys = []string{"up", "down", "left", "right", "+", "=", "-", "_", "r", "t", "g", "tab", "?"}

func newViewCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "Show both views in the terminal (default)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runView(cmd.Context())
		},
	}
}

// runView owns the terminal until ctx is cancelled or the user quits.
// Events, ticks and drawing all happen on this goroutine.
func (a *app) runView(ctx context.Context) error {
	// The alternate screen owns stdout; keep logs in the file only.
	if err := logger.Init(a.cfg.Logging.Level, a.cfg.Logging.LogFile, false); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	log := logger.Named("view")

	d, err := dashboard.New(a.cfg, log)
	if err != nil {
		return err
	}

	term := uv.DefaultTerminal()
	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}
	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	fmt.Fprint(os.Stdout, "\x1b[?1003h") // any-event mouse tracking
	fmt.Fprint(os.Stdout, "\x1b[?1006h") // SGR extended mouse mode

	cleanup := func() {
		d.Stop()
		fmt.Fprint(os.Stdout, "\x1b[?1003l")
		fmt.Fprint(os.Stdout, "\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}
	defer cleanup()

	layout := func() {
		// Rows 0 and height-1 hold the HUD.
		d.Layout(image.Rect(0, 1, width, max(height-1, 1)), 1, 2)
	}
	layout()
	d.Start()
	log.Info("terminal view started", zap.Int("width", width), zap.Int("height", height))

	ticker := render.NewTicker(a.cfg.Display.FPS)
	defer ticker.Stop()
	events := term.Events()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				width, height = ev.Width, ev.Height
				term.Erase()
				term.Resize(width, height)
				layout()

			case uv.KeyPressEvent:
				if ev.MatchString("escape", "ctrl+c") {
					return nil
				}
				if ev.MatchString("shift+/") {
					d.Key("?")
					continue
				}
				for _, k := range viewKeys {
					if ev.MatchString(k) {
						d.Key(k)
						break
					}
				}

			case uv.MouseClickEvent:
				if ev.Button == uv.MouseLeft {
					d.PointerDown(ev.X, ev.Y)
				}

			case uv.MouseReleaseEvent:
				d.PointerUp()

			case uv.MouseMotionEvent:
				d.PointerMove(ev.X, ev.Y)

			case uv.MouseWheelEvent:
				switch ev.Button {
				case uv.MouseWheelUp:
					d.Wheel(ev.X, ev.Y, 1)
				case uv.MouseWheelDown:
					d.Wheel(ev.X, ev.Y, -1)
				}
			}

		case <-ticker.C():
			d.Tick()
			for _, p := range d.Panes {
				if fb := p.Canvas().Framebuffer(); fb != nil {
					fb.Draw(term, uv.Rectangle(p.Bounds))
				}
			}
			if err := term.Display(); err != nil {
				return fmt.Errorf("display: %w", err)
			}
			drawHUD(d, width, height)
		}
	}
}

// drawHUD writes the status lines over the top and bottom rows.
func drawHUD(d *dashboard.Dashboard, width, height int) {
	const (
		reset     = "\x1b[0m"
		bgBlack   = "\x1b[40m"
		fgWhite   = "\x1b[97m"
		fgCyan    = "\x1b[96m"
		dim       = "\x1b[2m"
		clearLine = "\x1b[2K"
	)
	moveTo := func(row, col int) string {
		return fmt.Sprintf("\x1b[%d;%dH", row, col)
	}

	fmt.Print(moveTo(1, 1) + clearLine)
	fmt.Print(moveTo(height, 1) + clearLine)
	if !d.ShowHUD {
		return
	}

	for _, p := range d.Panes {
		status := truncate(d.Status(p), p.Bounds.Dx()-1)
		fmt.Print(moveTo(1, p.Bounds.Min.X+1) + bgBlack + fgCyan + status + reset)
	}
	fmt.Print(moveTo(height, 1) + bgBlack + fgWhite + dim + truncate(d.Footer(), width) + reset)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 {
		return ""
	}
	if len(r) > n {
		return string(r[:n])
	}
	return s
}
