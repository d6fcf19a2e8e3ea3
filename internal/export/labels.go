package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/TablePlan/internal/model"
)

// PlacardInfo holds the data encoded into each table placard's QR code.
type PlacardInfo struct {
	RoomIndex   int    `json:"room"`
	RoomLabel   string `json:"room_label"`
	TableID     int    `json:"table"`
	Row         int    `json:"row"`
	Col         int    `json:"col"`
	Orientation string `json:"orientation"`
}

// Placard layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
const (
	labelMarginTop  = 12.7 // mm
	labelMarginLeft = 4.8  // mm
	labelWidth      = 66.7 // mm per label
	labelHeight     = 25.4 // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// CollectPlacards lists one placard per placed table, rooms in order and
// tables in grid order within a room.
func CollectPlacards(plans []model.PlanResult) []PlacardInfo {
	var placards []PlacardInfo
	for i, plan := range plans {
		for _, t := range plan.Tiles() {
			placards = append(placards, PlacardInfo{
				RoomIndex:   i + 1,
				RoomLabel:   roomTitle(plan.Room),
				TableID:     int(t.ID),
				Row:         t.Row,
				Col:         t.Col,
				Orientation: t.Orientation.String(),
			})
		}
	}
	return placards
}

// ExportPlacards generates a PDF of QR-coded placards for every placed
// table, laid out on a standard label sheet (Avery 5160, 3 columns x 10
// rows on US Letter).
func ExportPlacards(path string, plans []model.PlanResult) error {
	if len(plans) == 0 {
		return ErrNoPlans
	}

	placards := CollectPlacards(plans)
	if len(placards) == 0 {
		return fmt.Errorf("no tables placed to generate placards for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, p := range placards {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		x := labelMarginLeft + float64(posOnPage%labelCols)*labelWidth
		y := labelMarginTop + float64(posOnPage/labelCols)*labelHeight

		if err := renderPlacard(pdf, x, y, p); err != nil {
			return fmt.Errorf("placard for table %d in %q: %w", p.TableID, p.RoomLabel, err)
		}
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write placards %s: %w", path, err)
	}
	return nil
}

// renderPlacard draws a single placard at the given position.
func renderPlacard(pdf *fpdf.Fpdf, x, y float64, info PlacardInfo) error {
	// Cutting guide
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("marshal placard: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%d_%d", info.RoomIndex, info.TableID)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)
	pdf.CellFormat(textW, 5, fmt.Sprintf("Table %d", info.TableID), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+6)
	pdf.CellFormat(textW, 3.5, truncate(pdf, info.RoomLabel, textW), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+10)
	pos := fmt.Sprintf("Row %d, col %d, %s", info.Row, info.Col, info.Orientation)
	pdf.CellFormat(textW, 3, pos, "", 1, "L", false, 0, "")

	pdf.SetTextColor(0, 0, 0)
	return nil
}

// truncate shortens s with an ellipsis until it fits width.
func truncate(pdf *fpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	for len(s) > 0 && pdf.GetStringWidth(s+"...") > width {
		s = s[:len(s)-1]
	}
	return s + "..."
}
