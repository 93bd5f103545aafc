package render

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"math"
	"strings"

	"github.com/disintegration/imaging"
)

// MaxSignatureWidth is the pixel cap applied to signature overlays before
// compositing. Wider overlays are downscaled preserving aspect ratio.
const MaxSignatureWidth = 200

// ErrInvalidSignatureData marks signature payloads that cannot be decoded
// into an image. It is distinct from I/O failures so callers can map it to
// a user-correctable error.
var ErrInvalidSignatureData = errors.New("signature data could not be decoded")

// DecodeSignatureString decodes a base64 signature payload. Data-URI style
// strings ("data:image/png;base64,....") are accepted: everything up
// through the first comma is stripped before decoding.
func DecodeSignatureString(data string) (image.Image, error) {
	if i := strings.Index(data, ","); i >= 0 {
		data = data[i+1:]
	}

	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignatureData, err)
	}

	return DecodeSignatureBytes(raw)
}

// DecodeSignatureBytes decodes raw signature image bytes.
func DecodeSignatureBytes(raw []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignatureData, err)
	}
	return img, nil
}

// ScaleOverlay enforces MaxSignatureWidth on the overlay. Overlays already
// at or under the cap come back unchanged; wider ones are resized with
// Lanczos resampling to width == cap, height recomputed from the ratio.
func ScaleOverlay(overlay image.Image) image.Image {
	w := overlay.Bounds().Dx()
	if w <= MaxSignatureWidth {
		return overlay
	}

	h := overlay.Bounds().Dy()
	newHeight := int(math.Round(float64(h) * float64(MaxSignatureWidth) / float64(w)))
	return imaging.Resize(overlay, MaxSignatureWidth, newHeight, imaging.Lanczos)
}

// Composite pastes the overlay onto the base at the given pixel offset
// using the overlay's own alpha channel as the mask. Both sides are
// normalized to RGBA first, so compositing is well defined for any source
// channel count. Offsets outside the base canvas clip, they never fail.
func Composite(base image.Image, overlay image.Image, x, y int) *image.NRGBA {
	canvas := imaging.Clone(base)
	scaled := ScaleOverlay(overlay)
	return imaging.Overlay(canvas, scaled, image.Pt(x, y), 1.0)
}

// Encode serializes the composited image in the format implied by ext.
// JPEG carries no alpha channel, so those outputs are flattened onto an
// opaque white background first.
func Encode(img image.Image, ext string) ([]byte, error) {
	var buf bytes.Buffer

	switch strings.ToLower(ext) {
	case ".png":
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("failed to encode png: %w", err)
		}
	case ".jpg", ".jpeg":
		flat := flatten(img)
		if err := jpeg.Encode(&buf, flat, &jpeg.Options{Quality: 90}); err != nil {
			return nil, fmt.Errorf("failed to encode jpeg: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported output image format: %s", ext)
	}

	return buf.Bytes(), nil
}

func flatten(img image.Image) *image.NRGBA {
	bounds := img.Bounds()
	white := imaging.New(bounds.Dx(), bounds.Dy(), color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	return imaging.Overlay(white, img, image.Pt(0, 0), 1.0)
}
