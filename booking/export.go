package booking

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strconv"
	"time"

	"alpacafarm/models"

	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
)

// Exporter renders bookings as PDF. Core PDF fonts have no Cyrillic glyphs,
// so FontPath should point at a UTF-8 TTF font in production.
type Exporter struct {
	FontPath string
	SlipKey  []byte
}

var exportColumns = []struct {
	title string
	width float64
}{
	{"Created", 32},
	{"Name", 45},
	{"Phone", 35},
	{"Email", 50},
	{"Visit date", 28},
	{"People", 16},
	{"Status", 24},
	{"Message", 47},
}

// Render lays the bookings out as one table row each.
func (e Exporter) Render(bookings []models.BookingView, generated time.Time) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Bookings", true)

	family := "Helvetica"
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	if e.FontPath != "" {
		pdf.AddUTF8Font("body", "", e.FontPath)
		pdf.AddUTF8Font("body", "B", e.FontPath)
		family = "body"
		tr = func(s string) string { return s }
	}

	pdf.AddPage()
	pdf.SetFont(family, "B", 16)
	pdf.Cell(0, 10, "Bookings")
	pdf.Ln(8)
	pdf.SetFont(family, "", 9)
	pdf.Cell(0, 6, fmt.Sprintf("Generated %s, %d total", generated.Format("2006-01-02 15:04"), len(bookings)))
	pdf.Ln(10)

	pdf.SetFont(family, "B", 9)
	for _, col := range exportColumns {
		pdf.CellFormat(col.width, 7, col.title, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont(family, "", 8)
	for _, b := range bookings {
		row := []string{
			b.CreatedAt.Format("2006-01-02 15:04"),
			b.Name,
			b.Phone,
			b.Email,
			formatDate(b.PreferredDate),
			formatCount(b.PeopleCount),
			string(b.Status),
			truncate(b.Message, 40),
		}
		for i, col := range exportColumns {
			pdf.CellFormat(col.width, 6, tr(row[i]), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("build bookings pdf: %w", err)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write bookings pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format("2006-01-02")
}

func formatCount(n *int) string {
	if n == nil {
		return "-"
	}
	return strconv.Itoa(*n)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

// SlipPayload is the text encoded in a slip's QR code: the booking id and an
// HMAC of it, so staff can tell a printed slip was issued by the farm.
func (e Exporter) SlipPayload(id string) string {
	h := hmac.New(sha256.New, e.SlipKey)
	h.Write([]byte("booking|" + id))
	return "booking|" + id + "|" + base64.RawURLEncoding.EncodeToString(h.Sum(nil))
}

// Slip renders a one-page visit confirmation with a QR code.
func (e Exporter) Slip(b models.BookingView) ([]byte, error) {
	qrPNG, err := qrcode.Encode(e.SlipPayload(b.ID), qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("encode slip qr: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A5", "")
	pdf.SetTitle("Booking "+b.ID, true)

	family := "Helvetica"
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	if e.FontPath != "" {
		pdf.AddUTF8Font("body", "", e.FontPath)
		pdf.AddUTF8Font("body", "B", e.FontPath)
		family = "body"
		tr = func(s string) string { return s }
	}

	pdf.AddPage()
	pdf.SetFont(family, "B", 16)
	pdf.Cell(0, 10, "Visit confirmation")
	pdf.Ln(12)

	pdf.SetFont(family, "", 11)
	lines := [][2]string{
		{"Booking", b.ID},
		{"Name", b.Name},
		{"Phone", b.Phone},
		{"Visit date", formatDate(b.PreferredDate)},
		{"People", formatCount(b.PeopleCount)},
		{"Status", string(b.Status)},
	}
	for _, l := range lines {
		pdf.Cell(30, 8, l[0]+":")
		pdf.Cell(0, 8, tr(l[1]))
		pdf.Ln(8)
	}

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", opts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 44, 100, 60, 60, false, opts, 0, "")

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("build slip pdf: %w", err)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write slip pdf: %w", err)
	}
	return buf.Bytes(), nil
}
