package carousel

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io/fs"
	"path"
	"strings"

	_ "golang.org/x/image/webp" // register WebP decoder
	"golang.org/x/sync/errgroup"
)

const defaultLoadWorkers = 4

// LoadImages decodes the image for every slide from fsys. Sources are
// slash-separated paths relative to fsys; a leading "/" is ignored. Slides
// that share a source share one decoded image, and slides with an empty
// source get a nil entry. The result is in slide order.
func LoadImages(ctx context.Context, fsys fs.FS, slides []Slide, workers int) ([]image.Image, error) {
	if workers <= 0 {
		workers = defaultLoadWorkers
	}

	unique := make([]string, 0, len(slides))
	seen := make(map[string]int, len(slides))
	for _, sl := range slides {
		src := cleanSource(sl.Source)
		if src == "" {
			continue
		}
		if _, ok := seen[src]; !ok {
			seen[src] = len(unique)
			unique = append(unique, src)
		}
	}

	decoded := make([]image.Image, len(unique))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, src := range unique {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			img, err := decodeFile(fsys, src)
			if err != nil {
				return err
			}
			decoded[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]image.Image, len(slides))
	for i, sl := range slides {
		if idx, ok := seen[cleanSource(sl.Source)]; ok {
			out[i] = decoded[idx]
		}
	}
	return out, nil
}

func decodeFile(fsys fs.FS, src string) (image.Image, error) {
	f, err := fsys.Open(src)
	if err != nil {
		return nil, fmt.Errorf("load image %s: %w", src, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", src, err)
	}
	return img, nil
}

// cleanSource turns a slide source into an fs.FS path.
func cleanSource(src string) string {
	src = strings.TrimSpace(src)
	if src == "" {
		return ""
	}
	return path.Clean(strings.TrimLeft(src, "/"))
}
