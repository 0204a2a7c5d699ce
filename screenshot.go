package carousel

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Screenshot queues a labeled capture of the frame being drawn. Files land
// in ScreenshotDir as <time>_<slide>_<label>.png, where slide is the
// 1-based active slide at capture time.
func (s *Stage) Screenshot(label string) {
	s.screenshotQueue = append(s.screenshotQueue, label)
}

func (s *Stage) screenshotPath(stamp, label string) string {
	name := fmt.Sprintf("%s_%02d_%s.png", stamp, s.engine.ActiveIndex()+1, sanitizeLabel(label))
	return filepath.Join(s.ScreenshotDir, name)
}

// flushScreenshots writes every queued capture. Called at the end of Draw.
func (s *Stage) flushScreenshots(screen *ebiten.Image) {
	if len(s.screenshotQueue) == 0 {
		return
	}
	labels := s.screenshotQueue
	s.screenshotQueue = s.screenshotQueue[:0]

	if err := os.MkdirAll(s.ScreenshotDir, 0o755); err != nil {
		logf("screenshot: mkdir %s: %v", s.ScreenshotDir, err)
		return
	}
	img := readFrame(screen)
	stamp := time.Now().Format("20060102_150405")
	for _, label := range labels {
		if err := writePNG(s.screenshotPath(stamp, label), img); err != nil {
			logf("screenshot: %v", err)
		}
	}
}

// readFrame wraps the screen's premultiplied pixels. The PNG encoder
// converts them to straight alpha.
func readFrame(screen *ebiten.Image) *image.RGBA {
	b := screen.Bounds()
	img := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	screen.ReadPixels(img.Pix)
	return img
}

func writePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}

// sanitizeLabel keeps letters, digits, '-' and '.', replacing anything
// else with '_'. Blank labels become "unlabeled".
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '.':
			return r
		}
		return '_'
	}, label)
}
