package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/phanxgames/carousel"
	"github.com/phanxgames/carousel/tui"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "carousel",
		Short:         "Gesture-driven slide carousel",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file (defaults to the built-in gallery)")

	root.AddCommand(newRunCmd(&configPath))
	root.AddCommand(newTUICmd(&configPath))
	root.AddCommand(newInspectCmd())
	return root
}

func loadConfig(path string) (*carousel.FileConfig, error) {
	if path == "" {
		return carousel.ParseFile(nil)
	}
	return carousel.LoadFile(path)
}

func newRunCmd(configPath *string) *cobra.Command {
	var assets, script string
	var debug, exit bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open the carousel in a window",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			if assets == "" {
				assets = "."
				if *configPath != "" {
					assets = filepath.Dir(*configPath)
				}
			}
			images, err := carousel.LoadImages(context.Background(), os.DirFS(assets), cfg.Slides, 0)
			switch {
			case errors.Is(err, fs.ErrNotExist) && *configPath == "":
				// The built-in gallery runs with placeholder cards when its
				// images are not on disk.
				_, _ = fmt.Fprintf(os.Stderr, "carousel: %v, using placeholders\n", err)
				images = nil
			case err != nil:
				return err
			}
			engine, err := carousel.NewEngine(cfg.Slides, cfg.Engine)
			if err != nil {
				return err
			}
			font, err := cfg.LoadFont(os.DirFS(assets))
			if err != nil {
				return err
			}
			sc := cfg.StageConfig()
			sc.Font = font
			stage := carousel.NewStage(engine, images, sc)
			stage.SetDebugMode(debug)
			var runner *carousel.TestRunner
			if script != "" {
				data, err := os.ReadFile(script)
				if err != nil {
					return fmt.Errorf("read test script: %w", err)
				}
				if runner, err = carousel.LoadTestScript(data); err != nil {
					return err
				}
				stage.SetTestRunner(runner)
				if exit {
					stage.SetUpdateFunc(exitAfter(runner))
				}
			}
			if err := carousel.Run(stage, cfg.RunConfig()); err != nil {
				return err
			}
			if runner != nil {
				if f := runner.Failures(); len(f) > 0 {
					return fmt.Errorf("test script: %d expectation(s) failed: %s", len(f), strings.Join(f, "; "))
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&assets, "assets", "", "directory slide sources are resolved against (defaults to the config's directory)")
	cmd.Flags().StringVar(&script, "script", "", "JSON test script to replay")
	cmd.Flags().BoolVar(&debug, "debug", false, "log per-frame stats to stderr")
	cmd.Flags().BoolVar(&exit, "exit", false, "close the window once the script finishes")
	return cmd
}

// exitAfter ends the game loop a couple of frames after runner finishes, so
// a screenshot queued by the last step is still drawn.
func exitAfter(runner *carousel.TestRunner) func() error {
	settle := 2
	return func() error {
		if !runner.Done() {
			return nil
		}
		if settle--; settle <= 0 {
			return ebiten.Termination
		}
		return nil
	}
}

func newTUICmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the carousel in the terminal",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			engine, err := carousel.NewEngine(cfg.Slides, cfg.Engine)
			if err != nil {
				return err
			}
			return tui.Run(engine)
		},
	}
}

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#74c7ec"))
	cellStyle    = lipgloss.NewStyle().Align(lipgloss.Right)
	culledStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6c7086"))
	centerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#a6e3a1"))
	inspectWidth = []int{6, 10, 10, 10, 10, 10, 8, 8}
)

func newInspectCmd() *cobra.Command {
	var index, slides int
	var offset float64
	var policy string

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print the transform of every slide for a given state",
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := carousel.ParsePolicy(policy)
			if err != nil {
				return err
			}
			if slides < 1 {
				return fmt.Errorf("slides must be at least 1, got %d", slides)
			}
			engine, err := carousel.NewEngine(make([]carousel.Slide, slides), carousel.Config{
				StartIndex: carousel.Index(index),
				Policy:     p,
			})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(out, row(headerStyle, "slide", "position", "translate", "rotate", "scale", "opacity", "z", "shown"))
			mapper := engine.Mapper()
			for i := 0; i < engine.Len(); i++ {
				pos := engine.Position(i) - offset
				t := mapper.Map(pos)
				style := lipgloss.NewStyle()
				switch {
				case !engine.Visible(pos):
					style = culledStyle
				case i == engine.ActiveIndex():
					style = centerStyle
				}
				_, _ = fmt.Fprintln(out, row(style,
					fmt.Sprint(i),
					fmt.Sprintf("%+.3f", pos),
					fmt.Sprintf("%+.1f%%", t.TranslateXPercent),
					fmt.Sprintf("%+.1f°", t.RotationDegrees),
					fmt.Sprintf("%.3f", t.Scale),
					fmt.Sprintf("%.2f", t.Opacity),
					fmt.Sprintf("%.0f", t.ZIndex),
					fmt.Sprint(engine.Visible(pos)),
				))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&index, "index", 1, "active slide index")
	cmd.Flags().IntVar(&slides, "slides", 8, "number of slides")
	cmd.Flags().Float64Var(&offset, "offset", 0, "drag offset fraction applied to every position")
	cmd.Flags().StringVar(&policy, "policy", "stepped", "mapper policy: stepped|continuous")
	return cmd
}

func row(style lipgloss.Style, cols ...string) string {
	cells := make([]string, len(cols))
	for i, c := range cols {
		cells[i] = style.Inherit(cellStyle).Width(inspectWidth[i]).Render(c)
	}
	return strings.Join(cells, " ")
}
