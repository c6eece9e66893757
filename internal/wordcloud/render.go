// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package wordcloud

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"

	"github.com/golang/freetype/truetype"
	"github.com/psykhi/wordclouds"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/pdiddy/cord-explorer/pkg/types"
)

// File is the fixed output name for the batch command.
const File = "wordcloud_titles.png"

// palette is a viridis-like set of word colors.
var palette = []color.Color{
	color.RGBA{R: 68, G: 1, B: 84, A: 255},
	color.RGBA{R: 59, G: 82, B: 139, A: 255},
	color.RGBA{R: 33, G: 145, B: 140, A: 255},
	color.RGBA{R: 94, G: 201, B: 98, A: 255},
	color.RGBA{R: 253, G: 231, B: 37, A: 255},
}

// DefaultConfig matches an 800x400 cloud of up to 200 words.
func DefaultConfig() types.WordCloudConfig {
	return types.WordCloudConfig{Width: 800, Height: 400, MaxWords: DefaultMaxWords}
}

// Render lays out freq on a white canvas. An empty freq yields a blank
// canvas. Without cfg.FontFile the embedded Go Regular font is used.
func Render(freq map[string]int, cfg types.WordCloudConfig) (image.Image, error) {
	if len(freq) == 0 {
		return blank(cfg.Width, cfg.Height), nil
	}

	fontFile := cfg.FontFile
	if fontFile == "" {
		path, cleanup, err := embeddedFont()
		if err != nil {
			return nil, err
		}
		defer cleanup()
		fontFile = path
	} else if err := checkFont(fontFile); err != nil {
		return nil, err
	}

	wc := wordclouds.NewWordcloud(freq,
		wordclouds.FontFile(fontFile),
		wordclouds.Width(cfg.Width),
		wordclouds.Height(cfg.Height),
		wordclouds.FontMaxSize(cfg.Height/5),
		wordclouds.FontMinSize(10),
		wordclouds.Colors(palette),
		wordclouds.BackgroundColor(color.White),
	)
	return wc.Draw(), nil
}

// SavePNG writes img to path.
func SavePNG(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return f.Close()
}

// checkFont parses path as a TrueType font. The layout library panics on a
// font it cannot load, so bad files are rejected here first.
func checkFont(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading font %s: %w", path, err)
	}
	if _, err := truetype.Parse(data); err != nil {
		return fmt.Errorf("parsing font %s: %w", path, err)
	}
	return nil
}

// embeddedFont writes the Go Regular TTF to a temporary file, since the
// layout library loads fonts by path.
func embeddedFont() (string, func(), error) {
	f, err := os.CreateTemp("", "cord-explorer-font-*.ttf")
	if err != nil {
		return "", nil, fmt.Errorf("creating font file: %w", err)
	}
	cleanup := func() { os.Remove(f.Name()) }
	if _, err := f.Write(goregular.TTF); err != nil {
		f.Close()
		cleanup()
		return "", nil, fmt.Errorf("writing font file: %w", err)
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("writing font file: %w", err)
	}
	return f.Name(), cleanup, nil
}

func blank(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	return img
}
