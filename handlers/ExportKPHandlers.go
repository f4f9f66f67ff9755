package handlers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"net/http"
	"os"

	"poolcalc/models"
	"poolcalc/storage"
	"poolcalc/utils"

	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
	"github.com/skip2/go-qrcode"
	"github.com/xuri/excelize/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/inconsolata"
	"golang.org/x/image/math/fixed"
)

func loadProposal(db *sql.DB, c *gin.Context) (*models.SavedEstimate, *models.GenerateKPResponse, bool) {
	reference := c.Param("reference")

	est, err := storage.GetEstimateByReference(db, reference)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "КП не найдено: " + reference})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось получить КП", "details": err.Error()})
		}
		return nil, nil, false
	}

	var proposal models.GenerateKPResponse
	if err := json.Unmarshal([]byte(est.Payload), &proposal); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Поврежденные данные КП", "details": err.Error()})
		return nil, nil, false
	}
	return est, &proposal, true
}

// proposalURL is the link embedded in QR codes and emails. BASE_URL comes
// from .env so generated documents point at the public host.
func proposalURL(reference string) string {
	base := os.Getenv("BASE_URL")
	if base == "" {
		base = "http://localhost:9000"
	}
	return base + "/api/estimates/" + reference
}

// addLabel draws text onto an image at the given position.
func addLabel(img *image.RGBA, x, y int, label string) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.RGBA{0, 0, 0, 255}),
		Face: inconsolata.Bold8x16,
		Dot: fixed.Point26_6{
			X: fixed.Int26_6(x * 64),
			Y: fixed.Int26_6(y * 64),
		},
	}
	d.DrawString(label)
}

// proposalQRImage renders the proposal link as a QR code with the reference
// printed underneath.
func proposalQRImage(reference string, size int) (*image.RGBA, error) {
	qr, err := qrcode.New(proposalURL(reference), qrcode.Medium)
	if err != nil {
		return nil, err
	}
	qrImg := qr.Image(size)

	padding := 24
	lineHeight := 20
	totalHeight := size + padding + lineHeight

	combined := image.NewRGBA(image.Rect(0, 0, size, totalHeight))
	draw.Draw(combined, combined.Bounds(), &image.Uniform{color.White}, image.Point{}, draw.Src)
	draw.Draw(combined, image.Rect(0, 0, size, size), qrImg, image.Point{}, draw.Src)

	addLabel(combined, padding, size+lineHeight, reference)
	return combined, nil
}

// KPQRCodeHandler serves the proposal QR code as JPEG
// @Summary Proposal QR code
// @Tags Exports
// @Param reference path string true "Proposal reference"
// @Success 200 {file} file "JPEG image"
// @Failure 404 {object} map[string]string
// @Router /kp_qr/{reference} [get]
func KPQRCodeHandler(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		est, _, ok := loadProposal(db, c)
		if !ok {
			return
		}

		img, err := proposalQRImage(est.Reference, 512)
		if err != nil {
			c.String(http.StatusInternalServerError, "QR code generation failed")
			return
		}

		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, img, nil); err != nil {
			c.String(http.StatusInternalServerError, "JPEG encoding failed")
			return
		}
		c.Data(http.StatusOK, "image/jpeg", buf.Bytes())
	}
}

func pdfItemsTable(pdf *gofpdf.Fpdf, tr func(string) string, title string, items []models.KPItem) {
	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(190, 8, tr(title))
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(100, 7, tr("Наименование"), "1", 0, "L", true, 0, "")
	pdf.CellFormat(20, 7, tr("Ед."), "1", 0, "C", true, 0, "")
	pdf.CellFormat(20, 7, tr("Кол-во"), "1", 0, "C", true, 0, "")
	pdf.CellFormat(25, 7, tr("Цена"), "1", 0, "C", true, 0, "")
	pdf.CellFormat(25, 7, tr("Сумма"), "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 8)
	for _, item := range items {
		name := item.Name
		if len([]rune(name)) > 70 {
			name = string([]rune(name)[:67]) + "..."
		}
		pdf.CellFormat(100, 6, tr(name), "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 6, tr(item.Unit), "1", 0, "C", false, 0, "")
		pdf.CellFormat(20, 6, fmt.Sprintf("%.4g", item.Qty), "1", 0, "C", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%.2f", item.Price), "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%.2f", item.Qty*item.Price), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)
}

// KPPDFHandler renders a saved proposal as PDF
// @Summary Proposal PDF
// @Tags Exports
// @Param reference path string true "Proposal reference"
// @Success 200 "PDF file"
// @Failure 404 {object} map[string]string
// @Router /kp_pdf/{reference} [get]
func KPPDFHandler(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		est, proposal, ok := loadProposal(db, c)
		if !ok {
			return
		}

		pdf := gofpdf.New("P", "mm", "A4", "")
		tr := pdf.UnicodeTranslatorFromDescriptor("cp1251")
		pdf.AddPage()
		pdf.SetMargins(10, 10, 10)

		// Header
		pdf.SetFont("Arial", "B", 16)
		pdf.Cell(190, 10, tr("Коммерческое предложение "+est.Reference))
		pdf.Ln(10)

		pdf.SetFont("Arial", "", 10)
		pdf.Cell(190, 6, tr("Дата: "+proposal.GenerationDate))
		pdf.Ln(6)
		pdf.Cell(190, 6, tr("Заказчик: "+proposal.Customer.Name))
		pdf.Ln(6)
		pdf.Cell(190, 6, tr("Адрес: "+proposal.Customer.Address))
		pdf.Ln(6)
		pdf.Cell(190, 6, tr("Телефон: "+proposal.Customer.Phone))
		pdf.Ln(6)

		dims := proposal.PoolData.Dimensions
		pdf.Cell(190, 6, tr(fmt.Sprintf("Бассейн %.0fx%.0fx%.0f мм, профиль: %s",
			dims.Length, dims.Width, dims.Depth, proposal.PoolData.Profile.Name)))
		pdf.Ln(10)

		pdfItemsTable(pdf, tr, "Оборудование", proposal.KPItems.EquipmentItems)
		pdfItemsTable(pdf, tr, "Материалы", proposal.KPItems.MaterialsItems)
		pdfItemsTable(pdf, tr, "Работы", proposal.KPItems.WorksItems)

		// Totals
		pdf.SetFont("Arial", "B", 10)
		pdf.Cell(140, 7, tr("Оборудование"))
		pdf.CellFormat(50, 7, tr(utils.FormatRub(proposal.Costs.EquipmentTotal)), "1", 1, "R", false, 0, "")
		pdf.Cell(140, 7, tr("Материалы"))
		pdf.CellFormat(50, 7, tr(utils.FormatRub(proposal.Costs.MaterialsTotal)), "1", 1, "R", false, 0, "")
		pdf.Cell(140, 7, tr("Работы"))
		pdf.CellFormat(50, 7, tr(utils.FormatRub(proposal.Costs.WorksTotal)), "1", 1, "R", false, 0, "")
		pdf.Cell(140, 7, tr("ИТОГО"))
		pdf.CellFormat(50, 7, tr(utils.FormatRub(proposal.Costs.Total)), "1", 1, "R", false, 0, "")
		pdf.Ln(4)

		pdf.SetFont("Arial", "I", 9)
		pdf.MultiCell(190, 5, tr(proposal.TotalInWords), "", "L", false)
		pdf.Ln(4)

		// QR code linking to the saved proposal
		if qrImg, err := proposalQRImage(est.Reference, 256); err == nil {
			var buf bytes.Buffer
			if err := png.Encode(&buf, qrImg); err == nil {
				opts := gofpdf.ImageOptions{ImageType: "png"}
				pdf.RegisterImageOptionsReader("proposal_qr", opts, &buf)
				pdf.ImageOptions("proposal_qr", 160, pdf.GetY(), 30, 0, false, opts, 0, "")
			}
		}

		c.Header("Content-Type", "application/pdf")
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=kp_%s.pdf", est.Reference))
		if err := pdf.Output(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate PDF"})
			return
		}
	}
}

func excelItemsSection(f *excelize.File, sheet string, row int, title string, items []models.KPItem) int {
	cell, _ := excelize.CoordinatesToCellName(1, row)
	f.SetCellValue(sheet, cell, title)
	row++

	headers := []string{"Наименование", "Ед.", "Кол-во", "Цена", "Сумма"}
	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, row)
		f.SetCellValue(sheet, cell, h)
	}
	row++

	for _, item := range items {
		values := []interface{}{item.Name, item.Unit, item.Qty, item.Price, item.Qty * item.Price}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(sheet, cell, v)
		}
		row++
	}
	return row + 1
}

// KPExcelHandler renders a saved proposal as an Excel workbook
// @Summary Proposal spreadsheet
// @Tags Exports
// @Param reference path string true "Proposal reference"
// @Success 200 "XLSX file"
// @Failure 404 {object} map[string]string
// @Router /kp_excel/{reference} [get]
func KPExcelHandler(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		est, proposal, ok := loadProposal(db, c)
		if !ok {
			return
		}

		f := excelize.NewFile()
		sheet := "КП"
		index, err := f.NewSheet(sheet)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create sheet", "details": err.Error()})
			return
		}
		f.SetActiveSheet(index)
		f.DeleteSheet("Sheet1")

		f.SetCellValue(sheet, "A1", "Коммерческое предложение "+est.Reference)
		f.SetCellValue(sheet, "A2", "Дата")
		f.SetCellValue(sheet, "B2", proposal.GenerationDate)
		f.SetCellValue(sheet, "A3", "Заказчик")
		f.SetCellValue(sheet, "B3", proposal.Customer.Name)
		f.SetCellValue(sheet, "A4", "Адрес")
		f.SetCellValue(sheet, "B4", proposal.Customer.Address)
		f.SetCellValue(sheet, "A5", "Телефон")
		f.SetCellValue(sheet, "B5", proposal.Customer.Phone)

		dims := proposal.PoolData.Dimensions
		f.SetCellValue(sheet, "A6", "Бассейн")
		f.SetCellValue(sheet, "B6", fmt.Sprintf("%.0fx%.0fx%.0f мм", dims.Length, dims.Width, dims.Depth))
		f.SetCellValue(sheet, "A7", "Профиль")
		f.SetCellValue(sheet, "B7", proposal.PoolData.Profile.Name)

		row := 9
		row = excelItemsSection(f, sheet, row, "Оборудование", proposal.KPItems.EquipmentItems)
		row = excelItemsSection(f, sheet, row, "Материалы", proposal.KPItems.MaterialsItems)
		row = excelItemsSection(f, sheet, row, "Работы", proposal.KPItems.WorksItems)

		totals := [][2]interface{}{
			{"Оборудование, итого", proposal.Costs.EquipmentTotal},
			{"Материалы, итого", proposal.Costs.MaterialsTotal},
			{"Работы, итого", proposal.Costs.WorksTotal},
			{"ИТОГО", proposal.Costs.Total},
		}
		for _, t := range totals {
			labelCell, _ := excelize.CoordinatesToCellName(1, row)
			valueCell, _ := excelize.CoordinatesToCellName(5, row)
			f.SetCellValue(sheet, labelCell, t[0])
			f.SetCellValue(sheet, valueCell, t[1])
			row++
		}
		wordsCell, _ := excelize.CoordinatesToCellName(1, row+1)
		f.SetCellValue(sheet, wordsCell, proposal.TotalInWords)

		f.SetColWidth(sheet, "A", "A", 60)
		f.SetColWidth(sheet, "B", "E", 14)

		filename := fmt.Sprintf("kp_%s.xlsx", est.Reference)
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
		if err := f.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate spreadsheet"})
			return
		}
	}
}
