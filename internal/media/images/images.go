// Package images validates and inspects uploaded bead photos.
package images

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"net/http"

	_ "golang.org/x/image/webp" // Register WebP decoder
)

// ErrUnsupportedType is returned for uploads that are not a supported
// image format.
var ErrUnsupportedType = errors.New("unsupported image type")

// allowedTypes are the upload content types we accept. Detection is done
// from the bytes, never from the client-supplied header.
var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// Info describes an inspected upload.
type Info struct {
	ContentType string `json:"content_type"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	SizeBytes   int    `json:"size_bytes"`
	BlurHash    string `json:"blurhash,omitempty"`
}

// DetectType sniffs the content type from the first bytes of data.
func DetectType(data []byte) string {
	return http.DetectContentType(data)
}

// Allowed reports whether contentType is an accepted upload format.
func Allowed(contentType string) bool {
	return allowedTypes[contentType]
}

// Inspect sniffs, validates, and decodes an upload. A BlurHash placeholder
// is computed on a best-effort basis; dimension decode failures are fatal,
// BlurHash failures are not.
func Inspect(data []byte) (*Info, error) {
	contentType := DetectType(data)
	if !Allowed(contentType) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, contentType)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image config: %w", err)
	}

	info := &Info{
		ContentType: contentType,
		Width:       cfg.Width,
		Height:      cfg.Height,
		SizeBytes:   len(data),
	}

	if img, _, err := image.Decode(bytes.NewReader(data)); err == nil {
		if hash, err := ComputeBlurHash(img); err == nil {
			info.BlurHash = hash
		}
	}

	return info, nil
}
