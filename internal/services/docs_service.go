package services

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"dealership/internal/config"
	"dealership/internal/domain"
	"dealership/internal/domain/models"
	"dealership/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// Page geometry in millimeters (A4 portrait).
const (
	pageMarginL = 10.0
	pageMarginT = 10.0
	pageMarginR = 10.0
	pageMarginB = 15.0
	pageHeight  = 297.0

	headerBlockH  = 24.0 // title + meta block repeated on every page
	footerReserve = 12.0
)

// DocsService generates the storefront's printable documents: the filtered
// vehicle catalog with clickable photo links, order invoices and stock-batch
// invoices. Generation is pure: it produces bytes plus a filename and the
// caller owns delivery.
type DocsService struct {
	Aggregator Aggregator
	Policy     config.PricingPolicy
	Measure    Measurer         // nil means the approximate metric
	Now        func() time.Time // nil means current UTC time, injectable for tests
	Font       string           // empty means Helvetica
	RequestID  string
}

// Export is a finished document handed to the delivery layer.
type Export struct {
	PDF      []byte
	Filename string
	Mode     Mode
}

func (s DocsService) font() string {
	if s.Font != "" {
		return s.Font
	}
	return "Helvetica"
}

func (s DocsService) measurer() Measurer {
	if s.Measure != nil {
		return s.Measure
	}
	return ApproxMeasurer{GlyphFactor: 0.5}
}

func (s DocsService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return utils.NowUTC()
}

// GenerateCatalog assembles the complete filtered record set, lays it out
// and renders the catalog PDF. An empty result still produces a placeholder
// document.
func (s DocsService) GenerateCatalog(ctx context.Context, filter models.CarFilter) (Export, error) {
	utils.LogEvent(s.RequestID, "docs", "fetching", "catalog export")
	cars, err := s.Aggregator.FetchAll(ctx, filter)
	if err != nil {
		return Export{}, err
	}

	utils.LogEvent(s.RequestID, "docs", "laying_out", fmt.Sprintf("records=%d", len(cars)))
	spec := catalogSpec()
	eng := LayoutEngine{Measure: s.measurer()}
	lay := eng.LayoutRows(spec, len(cars),
		func(i int) (Row, error) { return catalogRow(cars[i], i) },
		func(i int) string { return catalogFlatLine(cars[i], i) },
	)

	utils.LogEvent(s.RequestID, "docs", "rendering", "mode="+lay.Mode.String())
	now := s.now()
	raw, err := s.renderPDF(pdfDoc{
		Title: "Vehicle Catalog",
		Meta: []string{
			"Generated " + utils.FormatDateTime(now),
			fmt.Sprintf("%d vehicles", len(cars)),
		},
		Spec:      spec,
		Layout:    lay,
		EmptyNote: "No vehicles match the selected filters.",
	})
	if err != nil {
		return Export{}, domain.RenderError{Doc: "catalog", Err: err}
	}

	return Export{
		PDF:      raw,
		Filename: fmt.Sprintf("car-catalog-%s.pdf", utils.FormatDate(now)),
		Mode:     lay.Mode,
	}, nil
}

// GenerateInvoice renders the invoice for an already-known order.
func (s DocsService) GenerateInvoice(order models.Order) (Export, error) {
	if err := validateLines(order.Lines); err != nil {
		return Export{}, err
	}

	roll := ComputeRollup(order.Lines, s.Policy)
	lay, spec := s.layoutLines(order.Lines)

	utils.LogEvent(s.RequestID, "docs", "rendering",
		fmt.Sprintf("invoice=%s mode=%s", order.Number, lay.Mode))
	raw, err := s.renderPDF(pdfDoc{
		Title: "INVOICE",
		Meta: []string{
			"Invoice No: " + utils.SafeOr(order.Number, "-"),
			"Date: " + utils.SafeOr(order.CreatedAt, utils.FormatDate(s.now())),
			"Billed to: " + utils.SafeOr(order.CustomerName, "-"),
		},
		Spec:      spec,
		Layout:    lay,
		EmptyNote: "No items on this order.",
		Rollup:    &roll,
		TaxRate:   s.Policy.TaxRate,
	})
	if err != nil {
		return Export{}, domain.RenderError{Doc: "invoice", Err: err}
	}

	return Export{
		PDF:      raw,
		Filename: fmt.Sprintf("Invoice-%s.pdf", utils.SafeFilenamePart(order.Number)),
		Mode:     lay.Mode,
	}, nil
}

// GenerateStockInvoice renders the itemized invoice for a stock batch.
func (s DocsService) GenerateStockInvoice(batch models.StockBatch) (Export, error) {
	if err := validateLines(batch.Lines); err != nil {
		return Export{}, err
	}

	roll := ComputeRollup(batch.Lines, s.Policy)
	lay, spec := s.layoutLines(batch.Lines)

	utils.LogEvent(s.RequestID, "docs", "rendering",
		fmt.Sprintf("stock_invoice=%s mode=%s", batch.Number, lay.Mode))
	raw, err := s.renderPDF(pdfDoc{
		Title: "STOCK INVOICE",
		Meta: []string{
			"Batch No: " + utils.SafeOr(batch.Number, "-"),
			"Received: " + utils.SafeOr(batch.ReceivedAt, "-"),
			"Supplier: " + utils.SafeOr(batch.SupplierName, "-"),
		},
		Spec:      spec,
		Layout:    lay,
		EmptyNote: "No items in this batch.",
		Rollup:    &roll,
		TaxRate:   s.Policy.TaxRate,
	})
	if err != nil {
		return Export{}, domain.RenderError{Doc: "stock-invoice", Err: err}
	}

	return Export{
		PDF:      raw,
		Filename: fmt.Sprintf("Stock-Invoice-%s.pdf", utils.SafeFilenamePart(batch.Number)),
		Mode:     lay.Mode,
	}, nil
}

func (s DocsService) layoutLines(lines []models.OrderLine) (Layout, TableSpec) {
	spec := invoiceSpec()
	eng := LayoutEngine{Measure: s.measurer()}
	lay := eng.LayoutRows(spec, len(lines),
		func(i int) (Row, error) { return invoiceRow(lines[i], i) },
		func(i int) string { return invoiceFlatLine(lines[i], i) },
	)
	return lay, spec
}

func validateLines(lines []models.OrderLine) error {
	for i, l := range lines {
		if l.Quantity < 1 {
			return domain.ValidationError{Field: "quantity", Msg: fmt.Sprintf("line %d: quantity must be >= 1", i+1)}
		}
		if l.UnitPriceCents < 0 {
			return domain.ValidationError{Field: "unit_price", Msg: fmt.Sprintf("line %d: unit price must be >= 0", i+1)}
		}
	}
	return nil
}

// Catalog table: 190mm of usable width.
func catalogSpec() TableSpec {
	return TableSpec{
		Columns: []Column{
			{Header: "No", Width: 10},
			{Header: "Vehicle", Width: 38, Wrap: true},
			{Header: "Year", Width: 12},
			{Header: "Trans", Width: 18},
			{Header: "Fuel", Width: 16},
			{Header: "Color", Width: 18},
			{Header: "Mileage", Width: 22},
			{Header: "Price", Width: 28},
			{Header: "Photos", Width: 28, Wrap: true},
		},
		FontSize:   9,
		LineHeight: 5,
		BodyHeight: pageHeight - pageMarginT - headerBlockH - pageMarginB - footerReserve,
	}
}

// Invoice table: shorter body to leave room for the totals block.
func invoiceSpec() TableSpec {
	return TableSpec{
		Columns: []Column{
			{Header: "No", Width: 10},
			{Header: "Description", Width: 80, Wrap: true},
			{Header: "Qty", Width: 20},
			{Header: "Unit Price", Width: 35},
			{Header: "Amount", Width: 45},
		},
		FontSize:   9,
		LineHeight: 5,
		BodyHeight: pageHeight - pageMarginT - headerBlockH - pageMarginB - footerReserve - 40,
	}
}

func catalogRow(c models.Car, i int) (Row, error) {
	if strings.TrimSpace(c.Make) == "" && strings.TrimSpace(c.Model) == "" {
		return Row{}, fmt.Errorf("record %d: missing make/model", i+1)
	}

	veh := utils.NormalizeSpace(c.Make + " " + c.Model + " " + c.Variant)
	if g := gradeSummary(c.GradeScores); g != "" {
		veh += " " + g
	}

	links := make([]LinkTarget, 0, len(c.PhotoURLs))
	labels := make([]string, 0, len(c.PhotoURLs))
	for n, u := range c.PhotoURLs {
		label := strconv.Itoa(n + 1)
		links = append(links, LinkTarget{URL: u, Label: label})
		labels = append(labels, label)
	}

	return Row{Cells: []Cell{
		{Text: strconv.Itoa(i + 1)},
		{Text: veh},
		{Text: yearText(c.Year)},
		{Text: c.Transmission},
		{Text: c.Fuel},
		{Text: c.Color},
		{Text: utils.FormatThousand(c.MileageKM) + " km"},
		{Text: utils.FormatCents(c.PriceCents)},
		{Text: strings.Join(labels, " "), Links: links},
	}}, nil
}

func catalogFlatLine(c models.Car, i int) string {
	return fmt.Sprintf("%d. %s | %s | %s | %s | %s | %s km | %s | %d photos",
		i+1,
		utils.SafeOr(utils.NormalizeSpace(c.Make+" "+c.Model+" "+c.Variant), "-"),
		yearText(c.Year),
		utils.SafeOr(c.Transmission, "-"),
		utils.SafeOr(c.Fuel, "-"),
		utils.SafeOr(c.Color, "-"),
		utils.FormatThousand(c.MileageKM),
		utils.FormatCents(c.PriceCents),
		len(c.PhotoURLs),
	)
}

func invoiceRow(l models.OrderLine, i int) (Row, error) {
	if strings.TrimSpace(l.Description) == "" {
		return Row{}, fmt.Errorf("line %d: missing description", i+1)
	}
	return Row{Cells: []Cell{
		{Text: strconv.Itoa(i + 1)},
		{Text: l.Description},
		{Text: strconv.FormatInt(l.Quantity, 10)},
		{Text: utils.FormatCents(l.UnitPriceCents)},
		{Text: utils.FormatCents(l.UnitPriceCents * l.Quantity)},
	}}, nil
}

func invoiceFlatLine(l models.OrderLine, i int) string {
	return fmt.Sprintf("%d. %s x%d @ %s = %s",
		i+1,
		utils.SafeOr(l.Description, "-"),
		l.Quantity,
		utils.FormatCents(l.UnitPriceCents),
		utils.FormatCents(l.UnitPriceCents*l.Quantity),
	)
}

func yearText(y int) string {
	if y <= 0 {
		return "-"
	}
	return strconv.Itoa(y)
}

func gradeSummary(scores []float64) string {
	if len(scores) == 0 {
		return ""
	}
	var sum float64
	for _, s := range scores {
		sum += s
	}
	return fmt.Sprintf("(grade %.1f)", sum/float64(len(scores)))
}

// pdfDoc bundles everything renderPDF needs for one document.
type pdfDoc struct {
	Title     string
	Meta      []string
	Spec      TableSpec
	Layout    Layout
	EmptyNote string
	Rollup    *Rollup // totals block when present
	TaxRate   float64
}

// renderPDF assembles the final pages. Every page repeats the title block
// and, in normal mode, the column header row; the footer carries
// "Page X of Y".
func (s DocsService) renderPDF(doc pdfDoc) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(doc.Title, false)
	pdf.AliasNbPages("")
	pdf.SetMargins(pageMarginL, pageMarginT, pageMarginR)
	pdf.SetAutoPageBreak(false, pageMarginB)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-footerReserve)
		pdf.SetFont(s.font(), "I", 8)
		pdf.CellFormat(0, 6, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	if len(doc.Layout.Pages) == 0 {
		s.addPageHeader(pdf, doc)
		pdf.SetFont(s.font(), "I", 10)
		pdf.CellFormat(0, 8, doc.EmptyNote, "", 1, "L", false, 0, "")
	}

	for _, rows := range doc.Layout.Pages {
		s.addPageHeader(pdf, doc)
		if doc.Layout.Mode == ModeDegraded {
			s.drawFlatRows(pdf, doc.Spec, rows)
		} else {
			s.drawHeaderRow(pdf, doc.Spec)
			s.drawRows(pdf, doc.Spec, rows)
		}
	}

	if doc.Rollup != nil {
		s.drawTotals(pdf, doc, *doc.Rollup)
	}

	if pdf.Err() {
		return nil, pdf.Error()
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s DocsService) addPageHeader(pdf *gofpdf.Fpdf, doc pdfDoc) {
	pdf.AddPage()
	pdf.SetFont(s.font(), "B", 16)
	pdf.CellFormat(0, 9, doc.Title, "", 1, "L", false, 0, "")
	pdf.SetFont(s.font(), "", 9)
	pdf.SetTextColor(90, 90, 90)
	for _, m := range doc.Meta {
		pdf.CellFormat(0, 4.5, m, "", 1, "L", false, 0, "")
	}
	pdf.SetTextColor(0, 0, 0)
	pdf.SetY(pageMarginT + headerBlockH)
}

func (s DocsService) drawHeaderRow(pdf *gofpdf.Fpdf, spec TableSpec) {
	pdf.SetFont(s.font(), "B", spec.FontSize)
	pdf.SetFillColor(230, 230, 230)
	pdf.SetX(pageMarginL)
	for _, col := range spec.Columns {
		pdf.CellFormat(col.Width, 7, col.Header, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)
}

func (s DocsService) drawRows(pdf *gofpdf.Fpdf, spec TableSpec, rows []Row) {
	m := s.measurer()
	pdf.SetFont(s.font(), "", spec.FontSize)
	for _, row := range rows {
		x := pageMarginL
		y := pdf.GetY()
		for ci, cell := range row.Cells {
			col := spec.Columns[ci]
			pdf.Rect(x, y, col.Width, row.Height, "D")
			if len(cell.Links) > 0 {
				s.drawLinkCell(pdf, m, spec, x, y, col.Width, cell.Links)
			} else {
				for li, line := range cell.Lines {
					pdf.SetXY(x+cellPad, y+float64(li)*spec.LineHeight)
					pdf.CellFormat(col.Width-2*cellPad, spec.LineHeight, line, "", 0, "L", false, 0, "")
				}
			}
			x += col.Width
		}
		pdf.SetXY(pageMarginL, y+row.Height)
	}
}

// drawLinkCell renders each photo token at its computed rectangle and
// overlays the clickable region on exactly the same box, so the link area
// always bounds the glyphs the user sees.
func (s DocsService) drawLinkCell(pdf *gofpdf.Fpdf, m Measurer, spec TableSpec, x, y, w float64, links []LinkTarget) {
	rects := PlaceLinkRects(x+cellPad, y, w-2*cellPad, links, m, spec.FontSize, spec.LineHeight)
	pdf.SetTextColor(0, 0, 200)
	for i, r := range rects {
		pdf.SetXY(r.X, r.Y)
		pdf.CellFormat(r.W, r.H, links[i].Label, "", 0, "L", false, 0, "")
		pdf.LinkString(r.X, r.Y, r.W, r.H, links[i].URL)
	}
	pdf.SetTextColor(0, 0, 0)
}

func (s DocsService) drawFlatRows(pdf *gofpdf.Fpdf, spec TableSpec, rows []Row) {
	pdf.SetFont(s.font(), "", spec.FontSize)
	for _, row := range rows {
		line := ""
		if len(row.Cells) > 0 && len(row.Cells[0].Lines) > 0 {
			line = row.Cells[0].Lines[0]
		}
		pdf.SetX(pageMarginL)
		pdf.CellFormat(spec.TotalWidth(), spec.LineHeight, line, "", 1, "L", false, 0, "")
	}
}

func (s DocsService) drawTotals(pdf *gofpdf.Fpdf, doc pdfDoc, roll Rollup) {
	const rowH = 7.0
	needed := 4*rowH + 6
	if pdf.GetY()+needed > pageHeight-pageMarginB-footerReserve {
		s.addPageHeader(pdf, doc)
	}

	labelW := 35.0
	valueW := 45.0
	x := pageMarginL + doc.Spec.TotalWidth() - labelW - valueW

	pdf.Ln(3)
	line := func(label, value string, bold bool) {
		style := ""
		border := ""
		if bold {
			style = "B"
			border = "T"
		}
		pdf.SetFont(s.font(), style, doc.Spec.FontSize+1)
		pdf.SetX(x)
		pdf.CellFormat(labelW, rowH, label, border, 0, "R", false, 0, "")
		pdf.CellFormat(valueW, rowH, value, border, 1, "R", false, 0, "")
	}

	line("Subtotal", utils.FormatCents(roll.SubtotalCents), false)
	line(fmt.Sprintf("Tax (%.0f%%)", doc.TaxRate*100), utils.FormatCents(roll.TaxCents), false)
	shipping := utils.FormatCents(roll.ShippingCents)
	if roll.ShippingCents == 0 && roll.SubtotalCents > 0 {
		shipping = "FREE"
	}
	line("Shipping", shipping, false)
	line("Total", utils.FormatCents(roll.TotalCents), true)
}
