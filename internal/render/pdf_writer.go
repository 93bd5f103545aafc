package render

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/jung-kurt/gofpdf"
)

// pdfDPI is the raster density assumed when sizing the output page.
const pdfDPI = 100.0

// EncodePDF wraps a composited page image into a single-page PDF sized to
// match the image. Signed PDF outputs stay PDFs even though the content is
// a rasterized page.
func EncodePDF(img image.Image) ([]byte, error) {
	var pngBuf bytes.Buffer
	if err := png.Encode(&pngBuf, img); err != nil {
		return nil, fmt.Errorf("failed to encode page image: %w", err)
	}

	bounds := img.Bounds()
	widthMM := float64(bounds.Dx()) * 25.4 / pdfDPI
	heightMM := float64(bounds.Dy()) * 25.4 / pdfDPI

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "mm",
		Size:    gofpdf.SizeType{Wd: widthMM, Ht: heightMM},
	})
	pdf.AddPage()

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("page", opts, &pngBuf)
	pdf.ImageOptions("page", 0, 0, widthMM, heightMM, false, opts, 0, "")

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, fmt.Errorf("failed to write pdf: %w", err)
	}

	return out.Bytes(), nil
}
