package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests related to ledger reports
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

// newReportingHandler creates a new reportingHandler
func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

// RegisterReportingRoutes registers routes related to ledger reports
func RegisterReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	reportingGroup := rg.Group("/reports")
	{
		reportingGroup.GET("/trial-balance", h.getTrialBalance)
		reportingGroup.GET("/unbalanced-entries", h.getUnbalancedEntries)
		reportingGroup.GET("/draft-aging", h.getDraftAging)
	}
}

func asOfOrZero(p dto.AsOfParams) time.Time {
	if p.AsOf == nil {
		return time.Time{}
	}
	return *p.AsOf
}

// getTrialBalance godoc
// @Summary Generate trial balance report
// @Description Sums posted debit and credit activity per account as of a date
// @Tags reports
// @Produce json
// @Param workplaceID path string true "Workplace ID"
// @Param asOf query string false "Report date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} dto.TrialBalanceResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /workplaces/{workplaceID}/reports/trial-balance [get]
func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	scope, ok := scopeFromContext(c)
	if !ok {
		return
	}
	var params dto.AsOfParams
	if !bindQuery(c, scope.logger, &params) {
		return
	}

	report, err := h.reportingService.GetTrialBalance(c.Request.Context(), scope.workplaceID, asOfOrZero(params))
	if err != nil {
		respondWithError(c, scope.logger, err, "Failed to generate trial balance report")
		return
	}

	scope.logger.Info("Trial balance generated", slog.Int("rows", len(report.Rows)), slog.Bool("balanced", report.Balanced))
	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(report))
}

// getUnbalancedEntries godoc
// @Summary List drafts that cannot be posted as they stand
// @Tags reports
// @Produce json
// @Param workplaceID path string true "Workplace ID"
// @Success 200 {object} dto.ListEntrySummariesResponse
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /workplaces/{workplaceID}/reports/unbalanced-entries [get]
func (h *reportingHandler) getUnbalancedEntries(c *gin.Context) {
	scope, ok := scopeFromContext(c)
	if !ok {
		return
	}
	entries, err := h.reportingService.GetUnbalancedEntries(c.Request.Context(), scope.workplaceID)
	if err != nil {
		respondWithError(c, scope.logger, err, "Failed to list unbalanced entries")
		return
	}
	c.JSON(http.StatusOK, dto.ListEntrySummariesResponse{Entries: dto.ToEntrySummaryResponses(entries)})
}

// getDraftAging godoc
// @Summary Bucket outstanding drafts by age
// @Tags reports
// @Produce json
// @Param workplaceID path string true "Workplace ID"
// @Param asOf query string false "Reference date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} dto.DraftAgingResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /workplaces/{workplaceID}/reports/draft-aging [get]
func (h *reportingHandler) getDraftAging(c *gin.Context) {
	scope, ok := scopeFromContext(c)
	if !ok {
		return
	}
	var params dto.AsOfParams
	if !bindQuery(c, scope.logger, &params) {
		return
	}

	report, err := h.reportingService.GetDraftAging(c.Request.Context(), scope.workplaceID, asOfOrZero(params))
	if err != nil {
		respondWithError(c, scope.logger, err, "Failed to generate draft aging report")
		return
	}
	c.JSON(http.StatusOK, dto.ToDraftAgingResponse(report))
}
