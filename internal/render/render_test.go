package render

import (
	"context"
	"errors"
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kingrea/kanikani/internal/wanikani"
)

const squareSVG = `<svg xmlns="http://www.w3.org/2000/svg" width="100" height="100" viewBox="0 0 100 100">
  <path d="M0 0 L100 0 L100 100 L0 100 Z" fill="#000000"/>
</svg>`

type fakeFetcher struct {
	data map[string][]byte
	err  error
	urls []string
}

func (f *fakeFetcher) FetchAsset(_ context.Context, url string) ([]byte, error) {
	f.urls = append(f.urls, url)
	if f.err != nil {
		return nil, f.err
	}
	return f.data[url], nil
}

func imageRadical(url string) *wanikani.Subject {
	return &wanikani.Subject{ID: 8761, Kind: wanikani.KindRadical, Radical: &wanikani.RadicalData{
		Common: wanikani.Common{Meanings: []wanikani.Meaning{{Meaning: "Gun", Primary: true}}},
		CharacterImages: []wanikani.CharacterImage{
			{URL: url + ".png", ContentType: "image/png"},
			{URL: url, ContentType: "image/svg+xml"},
		},
	}}
}

func TestRenderCharactersAsBanner(t *testing.T) {
	fetcher := &fakeFetcher{}
	chars := "一"
	subject := &wanikani.Subject{ID: 1, Kind: wanikani.KindRadical, Radical: &wanikani.RadicalData{Characters: &chars}}

	out, err := New(fetcher).Render(context.Background(), subject)

	require.NoError(t, err)
	assert.Contains(t, out, "一")
	assert.Empty(t, fetcher.urls)
}

func TestRenderImageRadicalAsASCII(t *testing.T) {
	url := "https://files.example.com/gun.svg"
	fetcher := &fakeFetcher{data: map[string][]byte{url: []byte(squareSVG)}}

	out, err := New(fetcher, WithSize(20, 6)).Render(context.Background(), imageRadical(url))

	require.NoError(t, err)
	assert.Equal(t, []string{url}, fetcher.urls)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 6)
	for _, line := range lines {
		assert.Len(t, line, 20)
	}
	assert.Contains(t, lines[3], "##########")
}

func TestRenderFetchFailure(t *testing.T) {
	boom := errors.New("boom")
	fetcher := &fakeFetcher{err: boom}

	_, err := New(fetcher).Render(context.Background(), imageRadical("https://files.example.com/a.svg"))

	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "render: fetch https://files.example.com/a.svg")
}

func TestRenderDecodeFailure(t *testing.T) {
	url := "https://files.example.com/bad.svg"
	fetcher := &fakeFetcher{data: map[string][]byte{url: []byte("not an svg")}}

	_, err := New(fetcher).Render(context.Background(), imageRadical(url))

	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, url, decodeErr.URL)
}

func TestRenderRadicalWithoutArtwork(t *testing.T) {
	subject := &wanikani.Subject{ID: 2, Kind: wanikani.KindRadical, Radical: &wanikani.RadicalData{}}

	_, err := New(&fakeFetcher{}).Render(context.Background(), subject)

	assert.ErrorIs(t, err, ErrNoImage)
}

func TestRasterizeThresholdsAlpha(t *testing.T) {
	img, err := Rasterize([]byte(squareSVG))

	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 100, 100), img.Bounds())
	assert.Equal(t, uint8(255), img.GrayAt(50, 50).Y)
}

func TestRasterizeClampsLargeViewBox(t *testing.T) {
	svg := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 2000 1000"><path d="M0 0 L2000 0 L2000 1000 Z"/></svg>`

	img, err := Rasterize([]byte(svg))

	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 512, 256), img.Bounds())
}

func TestASCIIDimensionsAndInk(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 100, 100))
	for y := 0; y < 100; y++ {
		for x := 0; x < 50; x++ {
			src.SetGray(x, y, color.Gray{Y: 255})
		}
	}

	out := ASCII(src, 10, 4)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 4)
	for _, line := range lines {
		require.Len(t, line, 10)
		assert.Equal(t, byte('#'), line[0])
		assert.Equal(t, byte(' '), line[9])
	}
	assert.Empty(t, ASCII(src, 0, 4))
}
