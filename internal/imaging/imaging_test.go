package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDecodePNG(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 12, 7))
	img, err := Decode(encodePNG(t, src))
	require.NoError(t, err)
	assert.Equal(t, 12, img.Bounds().Dx())
	assert.Equal(t, 7, img.Bounds().Dy())
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode([]byte("definitely not an image"))
	assert.Error(t, err)

	_, err = Decode(nil)
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestDecodeBase64DataURL(t *testing.T) {
	raw := encodePNG(t, image.NewGray(image.Rect(0, 0, 3, 3)))
	enc := base64.StdEncoding.EncodeToString(raw)

	data, err := DecodeBase64("data:image/png;base64," + enc)
	require.NoError(t, err)
	assert.Equal(t, raw, data)

	data, err = DecodeBase64(enc)
	require.NoError(t, err)
	assert.Equal(t, raw, data)

	_, err = DecodeBase64("data:image/png;base64,")
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestDecodeSVG(t *testing.T) {
	doc := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 40 20" width="40" height="20">
<rect x="10" y="5" width="20" height="10" fill="black"/>
</svg>`
	img, err := Decode([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 40, 20), img.Bounds())

	g := Gray(img)
	assert.Equal(t, uint8(255), g.GrayAt(1, 1).Y, "background stays white")
	assert.Less(t, g.GrayAt(20, 10).Y, uint8(64), "rect is filled dark")
}

func TestGray(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 3, 1))
	src.SetNRGBA(0, 0, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	src.SetNRGBA(1, 0, color.NRGBA{R: 255, A: 255})
	src.SetNRGBA(2, 0, color.NRGBA{})

	g := Gray(src)
	assert.Equal(t, uint8(255), g.GrayAt(0, 0).Y)
	assert.Equal(t, Luminance(255, 0, 0), g.GrayAt(1, 0).Y)
	assert.Equal(t, uint8(76), g.GrayAt(1, 0).Y)
	assert.Equal(t, uint8(255), g.GrayAt(2, 0).Y, "transparent is paper")
}

func TestThumbnail(t *testing.T) {
	big := image.NewRGBA(image.Rect(0, 0, 1600, 400))
	th := Thumbnail(big, 800)
	assert.Equal(t, image.Rect(0, 0, 800, 200), th.Bounds())

	tall := image.NewRGBA(image.Rect(0, 0, 100, 1000))
	assert.Equal(t, image.Rect(0, 0, 80, 800), Thumbnail(tall, 800).Bounds())

	small := image.NewRGBA(image.Rect(5, 5, 55, 35))
	assert.Equal(t, image.Rect(0, 0, 50, 30), Thumbnail(small, 800).Bounds())
}
