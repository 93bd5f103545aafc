package render

import (
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	fitz "github.com/gen2brain/go-fitz"

	"github.com/yukikurage/e-signature-api/internal/models"
)

var (
	// ErrUnsupportedDocumentType marks documents whose kind has no
	// rasterization path.
	ErrUnsupportedDocumentType = errors.New("unsupported document type")

	// ErrRenderFailed marks PDF documents the renderer could not turn into
	// a raster image. Callers may degrade to copying the original file.
	ErrRenderFailed = errors.New("document rendering failed")
)

// Rasterize loads the document at path as the base raster image for
// compositing, dispatching on the kind resolved at upload time. Image
// documents decode directly; PDF documents render one image per page and
// the last page is taken.
//
// Signing the last page is long-standing tool behavior (signature blocks
// sit at document end). Most workflows would expect page one; changing
// that is a deliberate product decision, not a bug fix to make silently.
func Rasterize(path string, kind models.DocumentKind) (image.Image, error) {
	switch kind {
	case models.KindImage:
		img, err := imaging.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open image document: %w", err)
		}
		return img, nil
	case models.KindPDF:
		return rasterizeLastPage(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDocumentType, kind)
	}
}

func rasterizeLastPage(path string) (image.Image, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}
	defer doc.Close()

	pages := doc.NumPage()
	if pages == 0 {
		return nil, fmt.Errorf("%w: document has no pages", ErrRenderFailed)
	}

	img, err := doc.Image(pages - 1)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}

	return img, nil
}
