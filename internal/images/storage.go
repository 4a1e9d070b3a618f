// Package images validates and stores post image attachments.
package images

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif" // register GIF decoder
	"image/jpeg"
	_ "image/png" // register PNG decoder
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/chai2010/webp"
	"github.com/google/uuid"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register WebP decoder
)

const (
	// MaxUploadBytes caps accepted attachment size.
	MaxUploadBytes = 10 << 20

	thumbnailMaxSize = 640
	webpQuality      = 70
	jpegQuality      = 82
)

var allowedFormats = map[string]string{
	"jpeg": ".jpg",
	"png":  ".png",
	"gif":  ".gif",
	"webp": ".webp",
}

// Storage writes uploads beneath a base directory.
type Storage struct {
	dir string
}

// NewStorage ensures dir exists and returns a Storage rooted there.
func NewStorage(dir string) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload dir: %w", err)
	}
	return &Storage{dir: dir}, nil
}

// Dir returns the base directory uploads are written to.
func (s *Storage) Dir() string {
	return s.dir
}

// Save validates and stores an uploaded image. It returns the stored file's
// path relative to the storage root, or an error for oversized or
// non-image uploads (jpeg, png, gif and webp are accepted).
func (s *Storage) Save(fh *multipart.FileHeader) (string, error) {
	if fh.Size > MaxUploadBytes {
		return "", fmt.Errorf("image exceeds %d bytes", int64(MaxUploadBytes))
	}

	file, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("opening upload: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, MaxUploadBytes+1))
	if err != nil {
		return "", fmt.Errorf("reading upload: %w", err)
	}
	if int64(len(data)) > MaxUploadBytes {
		return "", fmt.Errorf("image exceeds %d bytes", int64(MaxUploadBytes))
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("unsupported image type")
	}
	ext, ok := allowedFormats[format]
	if !ok {
		return "", fmt.Errorf("unsupported image type %q", format)
	}

	name := uuid.NewString()
	rel := name + ext
	if err := os.WriteFile(filepath.Join(s.dir, rel), data, 0o644); err != nil {
		return "", fmt.Errorf("writing upload: %w", err)
	}

	// Thumbnail generation is best-effort; a post renders fine without one.
	_ = s.writeThumbnail(name, img)

	return rel, nil
}

// writeThumbnail scales the image down and stores a WebP rendition next to
// the original under <name>_thumb.webp.
func (s *Storage) writeThumbnail(name string, img image.Image) error {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return fmt.Errorf("empty image")
	}

	scale := 1.0
	if w > h && w > thumbnailMaxSize {
		scale = float64(thumbnailMaxSize) / float64(w)
	} else if h >= w && h > thumbnailMaxSize {
		scale = float64(thumbnailMaxSize) / float64(h)
	}
	tw := int(float64(w) * scale)
	th := int(float64(h) * scale)
	if tw < 1 {
		tw = 1
	}
	if th < 1 {
		th = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, tw, th))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, xdraw.Over, nil)

	out, err := os.Create(filepath.Join(s.dir, name+"_thumb.webp"))
	if err != nil {
		return err
	}
	defer out.Close()

	return webp.Encode(out, dst, &webp.Options{Quality: webpQuality})
}

// ReencodeJPEG writes img as a JPEG to w at the storage quality setting.
// Used by the seeder to produce placeholder attachments.
func ReencodeJPEG(w io.Writer, img image.Image) error {
	return jpeg.Encode(w, img, &jpeg.Options{Quality: jpegQuality})
}
