package labels

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"
	"strconv"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
	"github.com/jung-kurt/gofpdf"
)

// Entry is one label: a scannable matricula plus the employee's name as the
// caption.
type Entry struct {
	Matricula int64
	Nome      string
}

const (
	perPage = 10
	cols    = 2
	rows    = 5
	qrSize  = 40.0 // mm
)

// Generate renders one QR label per entry on Letter pages, ten labels per
// page in a 2x5 grid, the name centered above each code.
func Generate(entries []Entry) ([]byte, error) {
	if len(entries) == 0 {
		return nil, errors.New("no label entries to render")
	}

	pdf := gofpdf.New("P", "mm", "Letter", "")
	pageWidth, pageHeight := pdf.GetPageSize()

	hMargin := (pageWidth - cols*qrSize) / (cols + 1)
	itemHeight := qrSize + 10
	vMargin := (pageHeight - rows*itemHeight) / 2
	xPositions := [cols]float64{hMargin, hMargin*2 + qrSize}

	for i, entry := range entries {
		if i%perPage == 0 {
			pdf.AddPage()
		}

		slot := i % perPage
		x := xPositions[slot%cols]
		y := vMargin + float64(slot/cols)*itemHeight

		if err := drawQR(pdf, entry.Matricula, x, y+4); err != nil {
			return nil, err
		}

		pdf.SetFont("Helvetica", "", 8)
		nameWidth := pdf.GetStringWidth(entry.Nome)
		pdf.Text(x+qrSize/2-nameWidth/2, y+2, entry.Nome)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawQR(pdf *gofpdf.Fpdf, matricula int64, x, y float64) error {
	code, err := qr.Encode(strconv.FormatInt(matricula, 10), qr.L, qr.Auto)
	if err != nil {
		return err
	}
	scaled, err := barcode.Scale(code, 256, 256)
	if err != nil {
		return err
	}

	var img bytes.Buffer
	if err := png.Encode(&img, scaled); err != nil {
		return err
	}

	name := fmt.Sprintf("qr-%d", matricula)
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(name, opts, &img)
	pdf.ImageOptions(name, x, y, qrSize, qrSize, false, opts, 0, "")
	return pdf.Error()
}
