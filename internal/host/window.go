//go:build cgo

// Package host runs the dashboard in a desktop window.
package host

import (
	"context"
	"errors"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/taigrr/atlas/internal/dashboard"
)

var keyNames = map[ebiten.Key]string{
	ebiten.KeyArrowUp:    "up",
	ebiten.KeyArrowDown:  "down",
	ebiten.KeyArrowLeft:  "left",
	ebiten.KeyArrowRight: "right",
	ebiten.KeyEqual:      "+",
	ebiten.KeyKPAdd:      "+",
	ebiten.KeyMinus:      "-",
	ebiten.KeyKPSubtract: "-",
	ebiten.KeyR:          "r",
	ebiten.KeyT:          "t",
	ebiten.KeyG:          "g",
	ebiten.KeyTab:        "tab",
	ebiten.KeySlash:      "?",
}

// WindowOptions configures RunWindow.
type WindowOptions struct {
	Title         string
	Width, Height int
	FPS           int
}

// RunWindow shows the dashboard in a resizable window. It blocks until the
// window closes, Escape is pressed or ctx is cancelled.
func RunWindow(ctx context.Context, d *dashboard.Dashboard, opts WindowOptions, log *zap.Logger) error {
	g := &windowGame{ctx: ctx, d: d, log: log}
	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowSize(opts.Width, opts.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(opts.FPS)

	d.Start()
	defer d.Stop()
	log.Info("window opened", zap.Int("width", opts.Width), zap.Int("height", opts.Height))
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

type windowGame struct {
	ctx    context.Context
	d      *dashboard.Dashboard
	log    *zap.Logger
	images []*ebiten.Image
	width  int
	height int
}

func (g *windowGame) Update() error {
	if g.ctx.Err() != nil || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	x, y := ebiten.CursorPosition()
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		g.d.PointerDown(x, y)
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		g.d.PointerUp()
	default:
		g.d.PointerMove(x, y)
	}
	if _, dy := ebiten.Wheel(); dy != 0 {
		g.d.Wheel(x, y, dy)
	}
	for key, name := range keyNames {
		if inpututil.IsKeyJustPressed(key) {
			g.d.Key(name)
		}
	}

	g.d.Tick()
	return nil
}

func (g *windowGame) Draw(screen *ebiten.Image) {
	if len(g.images) != len(g.d.Panes) {
		g.images = make([]*ebiten.Image, len(g.d.Panes))
	}
	for i, p := range g.d.Panes {
		fb := p.Canvas().Framebuffer()
		if fb == nil || fb.Width == 0 || fb.Height == 0 {
			continue
		}
		img := g.images[i]
		if img == nil || img.Bounds().Dx() != fb.Width || img.Bounds().Dy() != fb.Height {
			if img != nil {
				img.Deallocate()
			}
			img = ebiten.NewImage(fb.Width, fb.Height)
			g.images[i] = img
		}
		img.WritePixels(fb.ToImage().Pix)

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(float64(p.Bounds.Dx())/float64(fb.Width), float64(p.Bounds.Dy())/float64(fb.Height))
		op.GeoM.Translate(float64(p.Bounds.Min.X), float64(p.Bounds.Min.Y))
		screen.DrawImage(img, op)

		if g.d.ShowHUD {
			ebitenutil.DebugPrintAt(screen, g.d.Status(p), p.Bounds.Min.X+6, p.Bounds.Min.Y+4)
		}
	}
	if g.d.ShowHUD {
		ebitenutil.DebugPrintAt(screen, g.d.Footer(), 6, g.height-20)
	}
}

func (g *windowGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.log.Debug("window resized", zap.Int("width", outsideWidth), zap.Int("height", outsideHeight))
		g.d.Layout(image.Rect(0, 0, outsideWidth, outsideHeight), 1, 1)
	}
	return outsideWidth, outsideHeight
}
