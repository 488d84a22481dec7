// Package render turns a subject into printable text: a styled banner for
// subjects with characters, ASCII art for radicals that only ship an SVG.
package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"

	"github.com/kingrea/kanikani/internal/wanikani"
)

const (
	DefaultColumns = 80
	DefaultRows    = 24

	maxRasterSide = 512
	alphaCutoff   = 127
	inkRune       = '#'
	blankRune     = ' '
)

// ErrNoImage is returned for a radical with neither characters nor artwork.
var ErrNoImage = errors.New("render: subject has no characters or image")

// DecodeError reports artwork that could not be turned into pixels.
type DecodeError struct {
	URL string
	Err error
}

func (e *DecodeError) Error() string {
	if e.URL == "" {
		return "render: decode svg: " + e.Err.Error()
	}
	return fmt.Sprintf("render: decode svg %s: %v", e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ImageFetcher downloads reference artwork. wanikani.Client satisfies it.
type ImageFetcher interface {
	FetchAsset(ctx context.Context, url string) ([]byte, error)
}

// Renderer implements session.Renderer.
type Renderer struct {
	fetcher ImageFetcher
	columns int
	rows    int
	banner  lipgloss.Style
}

// Option customizes a Renderer.
type Option func(*Renderer)

// WithSize sets the ASCII art grid used for image radicals.
func WithSize(columns, rows int) Option {
	return func(r *Renderer) {
		if columns > 0 && rows > 0 {
			r.columns, r.rows = columns, rows
		}
	}
}

// New returns a renderer that downloads artwork through fetcher.
func New(fetcher ImageFetcher, opts ...Option) *Renderer {
	r := &Renderer{
		fetcher: fetcher,
		columns: DefaultColumns,
		rows:    DefaultRows,
		banner: lipgloss.NewStyle().
			Bold(true).
			Padding(1, 4).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("205")),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Render returns the banner or ASCII art for subject.
func (r *Renderer) Render(ctx context.Context, subject *wanikani.Subject) (string, error) {
	if chars, ok := subject.Characters(); ok {
		return r.Banner(chars), nil
	}
	img, ok := subject.CharacterImage()
	if !ok || img.URL == "" {
		return "", ErrNoImage
	}
	if r.fetcher == nil {
		return "", fmt.Errorf("render: fetch %s: no image fetcher configured", img.URL)
	}
	data, err := r.fetcher.FetchAsset(ctx, img.URL)
	if err != nil {
		return "", fmt.Errorf("render: fetch %s: %w", img.URL, err)
	}
	raster, err := Rasterize(data)
	if err != nil {
		var decodeErr *DecodeError
		if errors.As(err, &decodeErr) {
			decodeErr.URL = img.URL
		}
		return "", err
	}
	return ASCII(raster, r.columns, r.rows), nil
}

// Banner frames chars for display.
func (r *Renderer) Banner(chars string) string {
	return r.banner.Render(chars)
}

// Rasterize draws an SVG document and keeps only coverage: pixels with
// alpha above half become white, everything else black.
func Rasterize(svg []byte) (*image.Gray, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(svg))
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	w, h := rasterSize(icon.ViewBox.W, icon.ViewBox.H)
	if w == 0 || h == 0 {
		return nil, &DecodeError{Err: fmt.Errorf("invalid dimensions %gx%g", icon.ViewBox.W, icon.ViewBox.H)}
	}

	icon.SetTarget(0, 0, float64(w), float64(h))
	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, rgba, rgba.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1)

	out := image.NewGray(rgba.Bounds())
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if rgba.RGBAAt(x, y).A > alphaCutoff {
				out.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return out, nil
}

func rasterSize(vw, vh float64) (int, int) {
	if vw <= 0 || vh <= 0 || math.IsNaN(vw) || math.IsNaN(vh) {
		return 0, 0
	}
	if longest := math.Max(vw, vh); longest > maxRasterSide {
		scale := maxRasterSide / longest
		vw, vh = vw*scale, vh*scale
	}
	return max(int(math.Round(vw)), 1), max(int(math.Round(vh)), 1)
}

// ASCII scales img to a columns x rows grid and prints bright cells as ink.
func ASCII(img image.Image, columns, rows int) string {
	if columns <= 0 || rows <= 0 {
		return ""
	}
	grid := image.NewGray(image.Rect(0, 0, columns, rows))
	draw.ApproxBiLinear.Scale(grid, grid.Bounds(), img, img.Bounds(), draw.Src, nil)

	var b strings.Builder
	b.Grow((columns + 1) * rows)
	for y := 0; y < rows; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < columns; x++ {
			if grid.GrayAt(x, y).Y > alphaCutoff {
				b.WriteRune(inkRune)
			} else {
				b.WriteRune(blankRune)
			}
		}
	}
	return b.String()
}
