package pdf

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"taskmate/internal/models"
)

// Generator: интерфейс, удобно мокать в тестах
type Generator interface {
	RenderReport(data ReportData) ([]byte, error)
}

type ReportData struct {
	UserName    string
	Stats       models.Stats
	Text        string // markdown from the report generator
	GeneratedAt time.Time
}

// ReportGenerator renders productivity reports. With a FontPath pointing at a
// TTF file the text is embedded as UTF-8; otherwise the core Helvetica font
// is used and text is translated to cp1252.
type ReportGenerator struct {
	FontPath string
	fontName string
}

func NewReportGenerator(fontPath string) *ReportGenerator {
	return &ReportGenerator{FontPath: fontPath}
}

func (g *ReportGenerator) RenderReport(data ReportData) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Productivity report", true)
	pdf.SetAuthor("TaskMate", true)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)

	tr := g.setupFont(pdf)
	pdf.AddPage()

	// ===== Заголовок
	pdf.SetFont(g.fontName, "B", 18)
	pdf.CellFormat(0, 10, tr("Productivity report"), "", 1, "C", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
	sub := data.GeneratedAt.Format("02.01.2006 15:04")
	if data.UserName != "" {
		sub = data.UserName + "  |  " + sub
	}
	pdf.CellFormat(0, 7, tr(sub), "", 1, "C", false, 0, "")
	g.hr(pdf)

	// ===== Stats
	g.sectionTitle(pdf, tr("Task statistics"))
	g.kvLine(pdf, tr("Total"), fmt.Sprintf("%d", data.Stats.Total))
	g.kvLine(pdf, tr("Pending"), fmt.Sprintf("%d", data.Stats.Pending))
	g.kvLine(pdf, tr("In progress"), fmt.Sprintf("%d", data.Stats.InProgress))
	g.kvLine(pdf, tr("Completed"), fmt.Sprintf("%d", data.Stats.Completed))
	pdf.Ln(2)
	g.hr(pdf)

	// ===== Report body
	g.writeMarkdown(pdf, tr, data.Text)

	// ===== Нумерация страниц
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(g.fontName, "", 9)
		pdf.CellFormat(0, 10, fmt.Sprintf("%d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render report pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// writeMarkdown renders the subset the report prompt asks for:
// # and ## headers, "- " bullets and **bold** markers (dropped).
func (g *ReportGenerator) writeMarkdown(pdf *gofpdf.Fpdf, tr func(string) string, text string) {
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimRight(raw, " \t\r")
		switch {
		case line == "":
			pdf.Ln(3)
		case strings.HasPrefix(line, "## "):
			pdf.Ln(1)
			g.sectionTitle(pdf, tr(stripBold(line[3:])))
		case strings.HasPrefix(line, "# "):
			pdf.SetFont(g.fontName, "B", 15)
			pdf.MultiCell(0, 8, tr(stripBold(line[2:])), "", "L", false)
			pdf.SetFont(g.fontName, "", 11)
		case strings.HasPrefix(strings.TrimLeft(line, " "), "- "), strings.HasPrefix(strings.TrimLeft(line, " "), "* "):
			item := strings.TrimLeft(line, " ")[2:]
			pdf.SetFont(g.fontName, "", 11)
			pdf.SetX(25)
			pdf.MultiCell(0, 6, tr("- "+stripBold(item)), "", "L", false)
		default:
			pdf.SetFont(g.fontName, "", 11)
			pdf.MultiCell(0, 6, tr(stripBold(line)), "", "L", false)
		}
	}
}

func stripBold(s string) string {
	return strings.ReplaceAll(s, "**", "")
}

func (g *ReportGenerator) setupFont(pdf *gofpdf.Fpdf) func(string) string {
	if g.FontPath != "" {
		if _, err := os.Stat(g.FontPath); err == nil {
			g.fontName = "DejaVu"
			// AddUTF8Font принимает путь до TTF
			pdf.AddUTF8Font(g.fontName, "", g.FontPath)
			pdf.AddUTF8Font(g.fontName, "B", g.FontPath)
			return func(s string) string { return s }
		}
	}
	g.fontName = "Helvetica"
	return pdf.UnicodeTranslatorFromDescriptor("")
}

func (g *ReportGenerator) sectionTitle(pdf *gofpdf.Fpdf, s string) {
	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 7, s, "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
}

func (g *ReportGenerator) kvLine(pdf *gofpdf.Fpdf, key, val string) {
	pdf.SetFont(g.fontName, "B", 11)
	pdf.CellFormat(45, 6, key+":", "", 0, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, val, "", 1, "L", false, 0, "")
}

func (g *ReportGenerator) hr(pdf *gofpdf.Fpdf) {
	y := pdf.GetY() + 1.5
	pdf.SetLineWidth(0.2)
	pdf.Line(20, y, 190, y)
	pdf.SetY(y + 2)
}
