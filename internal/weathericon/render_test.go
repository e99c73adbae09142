package weathericon

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRenderProducesValidPNG(t *testing.T) {
	for _, kind := range []Kind{Alert, Storm, Snow, Showers, FewClouds, Overcast, Clear} {
		t.Run(kind.String(), func(t *testing.T) {
			data := Render(kind, "12°C")
			require.NotEmpty(t, data)

			img, err := png.Decode(bytes.NewReader(data))
			require.NoError(t, err)
			require.Equal(t, Size, img.Bounds().Dx())
			require.Equal(t, Size, img.Bounds().Dy())

			opaque := 0
			for y := 0; y < Size; y++ {
				for x := 0; x < Size; x++ {
					if _, _, _, a := img.At(x, y).RGBA(); a > 0 {
						opaque++
					}
				}
			}
			require.Greater(t, opaque, 50, "glyph and label should paint pixels")
		})
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	require.Equal(t, Render(Clear, "12°C"), Render(Clear, "12°C"))
}

func TestRenderVariesByKindAndLabel(t *testing.T) {
	clear := Render(Clear, "12°C")
	require.NotEqual(t, clear, Render(Overcast, "12°C"))
	require.NotEqual(t, clear, Render(Clear, "-3°C"))
	require.NotEqual(t, clear, Render(Clear, "N/A"))
}

func TestRenderEmptyLabel(t *testing.T) {
	data := Render(Clear, "")
	require.NotEmpty(t, data)
	_, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
}
