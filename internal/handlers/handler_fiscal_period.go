package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/gin-gonic/gin"
)

// fiscalPeriodHandler handles HTTP requests related to fiscal periods.
type fiscalPeriodHandler struct {
	periodService portssvc.FiscalPeriodSvcFacade
	events        portssvc.EventPublisher
}

func newFiscalPeriodHandler(ps portssvc.FiscalPeriodSvcFacade, events portssvc.EventPublisher) *fiscalPeriodHandler {
	return &fiscalPeriodHandler{
		periodService: ps,
		events:        events,
	}
}

// RegisterFiscalPeriodRoutes registers fiscal period routes on a workplace group.
func RegisterFiscalPeriodRoutes(rg *gin.RouterGroup, periodService portssvc.FiscalPeriodSvcFacade, events portssvc.EventPublisher) {
	h := newFiscalPeriodHandler(periodService, events)

	periods := rg.Group("/fiscal-periods")
	{
		periods.POST("", h.openPeriod)
		periods.GET("", h.listPeriods)
		periods.GET("/for-date", h.getPeriodForDate)
		periods.GET("/:periodID", h.getPeriod)
		periods.POST("/:periodID/close", h.closePeriod)
	}
}

// openPeriod godoc
// @Summary Open a fiscal period
// @Description Creates an open period. Periods of a workplace may not share a day.
// @Tags fiscal-periods
// @Accept  json
// @Produce  json
// @Param   workplaceID path string true "Workplace ID"
// @Param   period body dto.OpenPeriodRequest true "Period details"
// @Success 201 {object} dto.FiscalPeriodResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Overlaps an existing period"
// @Security BearerAuth
// @Router /workplaces/{workplaceID}/fiscal-periods [post]
func (h *fiscalPeriodHandler) openPeriod(c *gin.Context) {
	scope, ok := scopeFromContext(c)
	if !ok {
		return
	}
	var req dto.OpenPeriodRequest
	if !bindJSON(c, scope.logger, &req) {
		return
	}

	period, err := h.periodService.OpenPeriod(c.Request.Context(), scope.workplaceID, req, scope.userID)
	if err != nil {
		respondWithError(c, scope.logger, err, "Failed to open fiscal period")
		return
	}

	scope.logger.Info("Fiscal period opened", slog.String("period_id", period.PeriodID), slog.String("name", period.Name))
	c.JSON(http.StatusCreated, dto.ToFiscalPeriodResponse(period))
}

// getPeriod godoc
// @Summary Get a fiscal period
// @Tags fiscal-periods
// @Produce  json
// @Param   workplaceID path string true "Workplace ID"
// @Param   periodID path string true "Period ID"
// @Success 200 {object} dto.FiscalPeriodResponse
// @Failure 404 {object} map[string]string "Period not found"
// @Security BearerAuth
// @Router /workplaces/{workplaceID}/fiscal-periods/{periodID} [get]
func (h *fiscalPeriodHandler) getPeriod(c *gin.Context) {
	scope, ok := scopeFromContext(c)
	if !ok {
		return
	}
	period, err := h.periodService.GetPeriodByID(c.Request.Context(), scope.workplaceID, c.Param("periodID"))
	if err != nil {
		respondWithError(c, scope.logger, err, "Failed to retrieve fiscal period")
		return
	}
	c.JSON(http.StatusOK, dto.ToFiscalPeriodResponse(period))
}

// getPeriodForDate godoc
// @Summary Find the period containing a date
// @Tags fiscal-periods
// @Produce  json
// @Param   workplaceID path string true "Workplace ID"
// @Param   date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} dto.FiscalPeriodResponse
// @Failure 400 {object} map[string]string "Invalid date"
// @Failure 404 {object} map[string]string "No period contains the date"
// @Security BearerAuth
// @Router /workplaces/{workplaceID}/fiscal-periods/for-date [get]
func (h *fiscalPeriodHandler) getPeriodForDate(c *gin.Context) {
	scope, ok := scopeFromContext(c)
	if !ok {
		return
	}
	var params dto.PeriodForDateParams
	if !bindQuery(c, scope.logger, &params) {
		return
	}

	period, err := h.periodService.GetPeriodForDate(c.Request.Context(), scope.workplaceID, params.Date)
	if err != nil {
		respondWithError(c, scope.logger, err, "Failed to find fiscal period")
		return
	}
	c.JSON(http.StatusOK, dto.ToFiscalPeriodResponse(period))
}

// listPeriods godoc
// @Summary List fiscal periods
// @Tags fiscal-periods
// @Produce  json
// @Param   workplaceID path string true "Workplace ID"
// @Param   fiscalYear query int false "Only periods of this fiscal year"
// @Success 200 {object} dto.ListPeriodsResponse
// @Security BearerAuth
// @Router /workplaces/{workplaceID}/fiscal-periods [get]
func (h *fiscalPeriodHandler) listPeriods(c *gin.Context) {
	scope, ok := scopeFromContext(c)
	if !ok {
		return
	}
	var params dto.ListPeriodsParams
	if !bindQuery(c, scope.logger, &params) {
		return
	}

	periods, err := h.periodService.ListPeriods(c.Request.Context(), scope.workplaceID, params)
	if err != nil {
		respondWithError(c, scope.logger, err, "Failed to list fiscal periods")
		return
	}
	c.JSON(http.StatusOK, dto.ListPeriodsResponse{Periods: dto.ToFiscalPeriodResponses(periods)})
}

// closePeriod godoc
// @Summary Close a fiscal period
// @Description Closes the period to further postings. Outstanding drafts are reported, or block the close in strict mode.
// @Tags fiscal-periods
// @Produce  json
// @Param   workplaceID path string true "Workplace ID"
// @Param   periodID path string true "Period ID"
// @Success 200 {object} dto.ClosePeriodResponse
// @Failure 404 {object} map[string]string "Period not found"
// @Failure 409 {object} map[string]string "Period already closed"
// @Failure 422 {object} map[string]string "Drafts outstanding in strict mode"
// @Security BearerAuth
// @Router /workplaces/{workplaceID}/fiscal-periods/{periodID}/close [post]
func (h *fiscalPeriodHandler) closePeriod(c *gin.Context) {
	scope, ok := scopeFromContext(c)
	if !ok {
		return
	}
	periodID := c.Param("periodID")
	logger := scope.logger.With(slog.String("period_id", periodID))

	result, err := h.periodService.ClosePeriod(c.Request.Context(), scope.workplaceID, periodID, scope.userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to close fiscal period")
		return
	}

	h.events.Publish(c.Request.Context(), result.Events)

	resp := dto.ClosePeriodResponse{
		Period:            dto.ToFiscalPeriodResponse(&result.Period),
		OutstandingDrafts: dto.ToJournalEntryResponses(result.OutstandingDrafts),
	}
	if n := len(result.OutstandingDrafts); n > 0 {
		resp.Warning = fmt.Sprintf("%d draft entries remain in the closed period and can no longer be posted into it", n)
	}
	logger.Info("Fiscal period closed", slog.Int("outstanding_drafts", len(result.OutstandingDrafts)))
	c.JSON(http.StatusOK, resp)
}
