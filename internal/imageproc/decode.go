package imageproc

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var ErrDecode = errors.New("unable to decode image")

// Decode turns uploaded bytes into an image. It returns the codec name
// reported by image.Decode ("jpeg", "png", ...).
func Decode(data []byte) (image.Image, string, error) {
	if len(data) == 0 {
		return nil, "", fmt.Errorf("%w: empty upload", ErrDecode)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %s content: %v", ErrDecode, DetectContentType(data), err)
	}

	return img, format, nil
}

// DetectContentType sniffs the MIME type of an upload for logging and
// error messages.
func DetectContentType(data []byte) string {
	return mimetype.Detect(data).String()
}
