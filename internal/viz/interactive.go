package viz

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/ballsim/internal/config"
	"github.com/san-kum/ballsim/internal/metrics"
	"github.com/san-kum/ballsim/internal/sim"
)

// Run builds the scene from cfg and drives it in the terminal until the user
// quits or ctx is done. Frames come from a sim.Loop and are posted to the
// program, so stepping and input handling share the program's goroutine.
func Run(ctx context.Context, cfg *config.Config, opts Options) error {
	w, err := cfg.NewWorld()
	if err != nil {
		return fmt.Errorf("build scene: %w", err)
	}

	if opts.DebugLog != "" {
		f, err := tea.LogToFile(opts.DebugLog, "ballsim")
		if err != nil {
			return fmt.Errorf("open debug log: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	SetTheme(cfg.Theme)
	if opts.MaxSpeed == 0 {
		opts.MaxSpeed = cfg.Physics.MaxSpeed
	}
	if opts.DoubleClick == 0 {
		opts.DoubleClick = time.Duration(cfg.DoubleClickMS) * time.Millisecond
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.Defaults()
	}

	p := tea.NewProgram(
		NewModel(w, opts),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(ctx),
	)

	loop := sim.NewLoop()
	if err := loop.Start(ctx, cfg.FPS, func(frame uint64) {
		p.Send(FrameMsg(frame))
	}); err != nil {
		return err
	}
	defer loop.Stop()

	log.Printf("starting: %d balls on %.0fx%.0f at %d fps", len(cfg.Balls), cfg.Surface.Width, cfg.Surface.Height, cfg.FPS)
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}
