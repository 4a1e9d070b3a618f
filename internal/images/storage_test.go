package images

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func uploadHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["image"][0]
}

func TestStorageSave(t *testing.T) {
	storage, err := NewStorage(t.TempDir())
	require.NoError(t, err)

	t.Run("Stores a PNG with a thumbnail", func(t *testing.T) {
		rel, err := storage.Save(uploadHeader(t, "photo.png", encodePNG(t, 800, 600)))
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(rel, ".png"))

		_, err = os.Stat(filepath.Join(storage.Dir(), rel))
		assert.NoError(t, err)

		thumb := strings.TrimSuffix(rel, ".png") + "_thumb.webp"
		_, err = os.Stat(filepath.Join(storage.Dir(), thumb))
		assert.NoError(t, err)
	})

	t.Run("Rejects non-image content", func(t *testing.T) {
		_, err := storage.Save(uploadHeader(t, "notes.txt", []byte("just some text")))
		assert.Error(t, err)
	})

	t.Run("Rejects an image disguised by its filename", func(t *testing.T) {
		// Content sniffing decides, not the extension.
		_, err := storage.Save(uploadHeader(t, "sneaky.png", []byte("<script>alert(1)</script>")))
		assert.Error(t, err)
	})

	t.Run("Rejects oversized uploads", func(t *testing.T) {
		fh := uploadHeader(t, "big.png", encodePNG(t, 10, 10))
		fh.Size = MaxUploadBytes + 1
		_, err := storage.Save(fh)
		assert.Error(t, err)
	})
}

func TestNewStorageCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	storage, err := NewStorage(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, storage.Dir())

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
