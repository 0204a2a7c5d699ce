package carousel

import (
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

const defaultFontSize = 14

// FileConfig is the on-disk configuration for a carousel program.
//
//	window:
//	  title: Gallery
//	  showFPS: true
//	engine:
//	  policy: continuous
//	  snapDistance: 0.2
//	slides:
//	  - title: Image One
//	    src: images/one.webp
type FileConfig struct {
	Window     WindowConfig     `yaml:"window"`
	Container  SizeConfig       `yaml:"container"`
	Card       SizeConfig       `yaml:"card"`
	Engine     Config           `yaml:"engine"`
	Tilt       TiltConfig       `yaml:"tilt"`
	Transition TransitionConfig `yaml:"transition"`
	Slides     []Slide          `yaml:"slides"`
}

// WindowConfig holds window settings.
type WindowConfig struct {
	Title     string `yaml:"title"`
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	ShowFPS   bool   `yaml:"showFPS"`
	Resizable bool   `yaml:"resizable"`

	Font     string  `yaml:"font"` // TTF/OTF path, resolved like slide sources
	FontSize float64 `yaml:"fontSize"`
}

// SizeConfig is a width/height pair in pixels.
type SizeConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// TransitionConfig controls card easing.
type TransitionConfig struct {
	Duration float32 `yaml:"duration"` // seconds; negative disables easing
	Ease     string  `yaml:"ease"`
	TiltLerp float64 `yaml:"tiltLerp"`
}

// ParseFile decodes and validates YAML configuration. A file without
// slides gets DefaultSlides.
func ParseFile(data []byte) (*FileConfig, error) {
	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if len(cfg.Slides) == 0 {
		cfg.Slides = DefaultSlides()
	}
	if name := cfg.Transition.Ease; name != "" {
		if _, ok := easeByName[name]; !ok {
			return nil, fmt.Errorf("parse config: unknown ease %q", name)
		}
	}
	if cfg.Engine.StartIndex != nil && *cfg.Engine.StartIndex < 0 {
		return nil, fmt.Errorf("parse config: negative startIndex %d", *cfg.Engine.StartIndex)
	}
	return &cfg, nil
}

// LoadFile reads and parses the YAML configuration at path.
func LoadFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return ParseFile(data)
}

// StageConfig returns the stage settings described by the file.
func (c *FileConfig) StageConfig() StageConfig {
	return StageConfig{
		ContainerWidth:  c.Container.Width,
		ContainerHeight: c.Container.Height,
		CardWidth:       c.Card.Width,
		CardHeight:      c.Card.Height,
		Transition:      c.Transition.Duration,
		Ease:            EaseFunc(c.Transition.Ease),
		Tilt:            c.Tilt,
		TiltLerp:        c.Transition.TiltLerp,
		ShowCounter:     true,
		ShowTitles:      true,
		ClearColor:      Color{R: 0.98, G: 0.98, B: 0.98, A: 1},
	}
}

// RunConfig returns the window settings described by the file.
func (c *FileConfig) RunConfig() RunConfig {
	return RunConfig{
		Title:     c.Window.Title,
		Width:     c.Window.Width,
		Height:    c.Window.Height,
		ShowFPS:   c.Window.ShowFPS,
		Resizable: c.Window.Resizable,
	}
}

// LoadFont loads the configured label font from fsys. It returns nil when
// no font is configured.
func (c *FileConfig) LoadFont(fsys fs.FS) (*Font, error) {
	src := cleanSource(c.Window.Font)
	if src == "" {
		return nil, nil
	}
	data, err := fs.ReadFile(fsys, src)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}
	size := c.Window.FontSize
	if size <= 0 {
		size = defaultFontSize
	}
	return LoadFont(data, size)
}

// DefaultSlides returns the demo gallery: six images, the first two
// repeated at the end.
func DefaultSlides() []Slide {
	return []Slide{
		{Title: "Image One", Source: "images/ab8c21a9741290ba5f9bb21dd1980caa.webp"},
		{Title: "Image Two", Source: "images/9d565b2dfe70719551ec688284f764eb.webp"},
		{Title: "Image Three", Source: "images/df174e738d4cb43c39208a3faeabc68d.webp"},
		{Title: "Image Four", Source: "images/9d03205f2bb020378b3bfb8c706f7047.webp"},
		{Title: "Image Five", Source: "images/7854f74890466b02996a576760e27a12.webp"},
		{Title: "Image Six", Source: "images/1ffa2858e9e9fb3ac5fb11fbf52489fe.webp"},
		{Title: "Image Seven", Source: "images/ab8c21a9741290ba5f9bb21dd1980caa.webp"},
		{Title: "Image Eight", Source: "images/9d565b2dfe70719551ec688284f764eb.webp"},
	}
}
