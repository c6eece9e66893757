package wordcloud

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/cord-explorer/pkg/types"
)

func TestFrequencies(t *testing.T) {
	corpus := "COVID-19 and the Lancet: Coronavirus transmission in 2020 " +
		"Coronavirus vaccines; SARS-CoV-2's spike protein a b"

	got := Frequencies(corpus, 0)
	assert.Equal(t, map[string]int{
		"covid":        1,
		"lancet":       1,
		"coronavirus":  2,
		"transmission": 1,
		"vaccines":     1,
		"sars":         1,
		"cov":          1,
		"spike":        1,
		"protein":      1,
	}, got)
}

func TestFrequencies_CapsToMostFrequent(t *testing.T) {
	got := Frequencies("alpha alpha alpha beta beta gamma delta", 2)
	assert.Equal(t, map[string]int{"alpha": 3, "beta": 2}, got)

	tied := Frequencies("zulu yankee xray", 2)
	assert.Equal(t, map[string]int{"xray": 1, "yankee": 1}, tied, "ties broken alphabetically")
}

func TestFrequencies_Empty(t *testing.T) {
	assert.Empty(t, Frequencies("", 10))
	assert.Empty(t, Frequencies("the of and 2020 a", 10))
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"patients", "outcomes"}, tokenize("Patients' outcomes"))
	assert.Equal(t, []string{"don't", "panic"}, tokenize("Don’t panic!"))
	assert.Equal(t, []string{"mers", "cov"}, tokenize("MERS-CoV"))
}

func TestRender_EmptyIsBlankCanvas(t *testing.T) {
	img, err := Render(nil, DefaultConfig())
	require.NoError(t, err)

	b := img.Bounds()
	assert.Equal(t, 800, b.Dx())
	assert.Equal(t, 400, b.Dy())

	r, g, bl, _ := img.At(10, 10).RGBA()
	wr, wg, wb, _ := color.White.RGBA()
	assert.Equal(t, []uint32{wr, wg, wb}, []uint32{r, g, bl})
}

func TestRender_WritesPNG(t *testing.T) {
	cfg := types.WordCloudConfig{Width: 400, Height: 200, MaxWords: 50}
	img, err := Render(map[string]int{"coronavirus": 5, "vaccine": 3, "spike": 1}, cfg)
	require.NoError(t, err)
	assert.Equal(t, 400, img.Bounds().Dx())
	assert.Equal(t, 200, img.Bounds().Dy())

	path := filepath.Join(t.TempDir(), File)
	require.NoError(t, SavePNG(img, path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	_, err = png.Decode(f)
	assert.NoError(t, err)
}

func TestEmbeddedFontCleanup(t *testing.T) {
	path, cleanup, err := embeddedFont()
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	cleanup()
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestRender_RejectsNonTrueTypeFont(t *testing.T) {
	font := filepath.Join(t.TempDir(), "font.txt")
	require.NoError(t, os.WriteFile(font, []byte("hello"), 0o644))

	cfg := types.WordCloudConfig{Width: 400, Height: 200, MaxWords: 50, FontFile: font}
	require.NoError(t, types.Validate(cfg), "the path exists, so config validation passes")

	assert.NotPanics(t, func() {
		_, err := Render(map[string]int{"virus": 3, "covid": 2}, cfg)
		assert.ErrorContains(t, err, "parsing font")
	})
}

func TestRender_MissingFontFile(t *testing.T) {
	cfg := types.WordCloudConfig{Width: 400, Height: 200, MaxWords: 50, FontFile: filepath.Join(t.TempDir(), "none.ttf")}
	_, err := Render(map[string]int{"virus": 1}, cfg)
	assert.ErrorContains(t, err, "reading font")
}
