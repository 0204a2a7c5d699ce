package carousel

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title     string
	Width     int
	Height    int
	ShowFPS   bool
	Resizable bool
}

// runGame wraps a Stage with window-level extras.
type runGame struct {
	stage *Stage
	fps   *fpsOverlay
}

func (g *runGame) Update() error {
	if err := g.stage.Update(); err != nil {
		return err
	}
	if g.fps != nil {
		g.fps.update(g.stage.lastDT)
	}
	return nil
}

func (g *runGame) Draw(screen *ebiten.Image) {
	g.stage.Draw(screen)
	if g.fps != nil {
		g.fps.draw(screen)
	}
}

func (g *runGame) Layout(w, h int) (int, int) {
	return g.stage.Layout(w, h)
}

// Run opens a window and runs the stage until the window is closed or the
// stage is closed. Tilt loops are stopped before Run returns.
func Run(s *Stage, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = int(s.cfg.ContainerWidth) + 80
	}
	if cfg.Height <= 0 {
		cfg.Height = int(s.cfg.ContainerHeight) + 120
	}
	if cfg.Title == "" {
		cfg.Title = "Carousel"
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}

	g := &runGame{stage: s}
	if cfg.ShowFPS {
		g.fps = &fpsOverlay{}
	}
	defer s.Close()
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("run carousel: %w", err)
	}
	return nil
}
