package handlers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"focusboard/internal/services"
)

type ReportHandler struct {
	Service *services.ReportService
}

func NewReportHandler(service *services.ReportService) *ReportHandler {
	return &ReportHandler{Service: service}
}

func windowDaysParam(c *gin.Context) int {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))
	if days < 1 {
		days = 1
	}
	if days > 365 {
		days = 365
	}
	return days
}

// @Summary      Consistency window
// @Description  Per-day expected vs completed recurring tasks plus the overall ratio
// @Tags         Reports
// @Produce      json
// @Param        days  query  int  false  "Window length in days"  default(30)
// @Success      200  {object}  recurrence.ConsistencyReport
// @Router       /reports/consistency [get]
func (h *ReportHandler) Consistency(c *gin.Context) {
	report, err := h.Service.Consistency(c.Request.Context(), windowDaysParam(c), time.Now())
	if err != nil {
		log.Printf("[report][consistency][err] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build report"})
		return
	}
	c.JSON(http.StatusOK, report)
}

// @Summary      Consistency PDF
// @Tags         Reports
// @Produce      application/pdf
// @Param        days  query  int  false  "Window length in days"  default(30)
// @Success      200  {file}  binary
// @Router       /reports/consistency/pdf [get]
func (h *ReportHandler) ConsistencyPDF(c *gin.Context) {
	data, err := h.Service.ConsistencyPDF(c.Request.Context(), windowDaysParam(c), time.Now())
	if err != nil {
		log.Printf("[report][pdf][err] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render report"})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="consistency.pdf"`)
	c.Data(http.StatusOK, "application/pdf", data)
}
