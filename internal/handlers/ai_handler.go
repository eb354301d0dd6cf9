package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskmate/internal/pdf"
	"taskmate/internal/services"
)

type AIHandler struct {
	reports services.ReportService
	pdf     pdf.Generator
}

func NewAIHandler(reports services.ReportService, gen pdf.Generator) *AIHandler {
	return &AIHandler{reports: reports, pdf: gen}
}

// @Summary      AI отчёт о продуктивности
// @Description  Aggregates task stats and returns the generated report text verbatim
// @Tags         AI
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]interface{}
// @Router       /ai/generate-report [post]
func (h *AIHandler) GenerateReport(c *gin.Context) {
	me, ok := currentUser(c)
	if !ok {
		return
	}
	report, err := h.reports.Generate(c.Request.Context(), me.ID)
	if err != nil {
		respondError(c, "ai.report", err, "Failed to generate report")
		return
	}
	respond(c, http.StatusOK, gin.H{"report": report.Text, "stats": report.Stats})
}

// @Summary   AI отчёт в PDF
// @Tags      AI
// @Produce   application/pdf
// @Success   200  {file}    binary
// @Failure   500  {object}  map[string]interface{}
// @Router    /ai/generate-report/pdf [post]
func (h *AIHandler) GenerateReportPDF(c *gin.Context) {
	me, ok := currentUser(c)
	if !ok {
		return
	}
	report, err := h.reports.Generate(c.Request.Context(), me.ID)
	if err != nil {
		respondError(c, "ai.report-pdf", err, "Failed to generate report")
		return
	}
	doc, err := h.pdf.RenderReport(pdf.ReportData{
		UserName:    me.Name,
		Stats:       report.Stats,
		Text:        report.Text,
		GeneratedAt: report.GeneratedAt,
	})
	if err != nil {
		respondError(c, "ai.report-pdf", err, "Failed to render report")
		return
	}
	filename := fmt.Sprintf("productivity-report-%s.pdf", report.GeneratedAt.Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", doc)
}
