//go:build !cgo

// Package host runs the dashboard in a desktop window.
package host

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/taigrr/atlas/internal/dashboard"
)

// WindowOptions configures RunWindow.
type WindowOptions struct {
	Title         string
	Width, Height int
	FPS           int
}

// RunWindow always fails: the desktop window needs cgo.
func RunWindow(_ context.Context, _ *dashboard.Dashboard, _ WindowOptions, _ *zap.Logger) error {
	return errors.New("window mode requires cgo (build with CGO_ENABLED=1)")
}
