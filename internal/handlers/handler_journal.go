package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/gin-gonic/gin"
)

// journalHandler handles HTTP requests related to journal entries.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
	events         portssvc.EventPublisher
}

func newJournalHandler(js portssvc.JournalSvcFacade, events portssvc.EventPublisher) *journalHandler {
	return &journalHandler{
		journalService: js,
		events:         events,
	}
}

// RegisterJournalRoutes registers journal entry routes on a workplace group.
// events receives the domain events of successful posts and reversals.
func RegisterJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade, events portssvc.EventPublisher) {
	h := newJournalHandler(journalService, events)

	entries := rg.Group("/journal-entries")
	{
		entries.POST("", h.createEntry)
		entries.GET("", h.listEntries)
		entries.GET("/by-number/:number", h.getEntryByNumber)
		entries.GET("/:entryID", h.getEntry)
		entries.PATCH("/:entryID", h.updateEntry)
		entries.POST("/:entryID/lines", h.addLine)
		entries.PUT("/:entryID/lines/:lineID", h.updateLine)
		entries.DELETE("/:entryID/lines/:lineID", h.removeLine)
		entries.POST("/:entryID/post", h.postEntry)
		entries.POST("/:entryID/reverse", h.reverseEntry)
	}
}

// createEntry godoc
// @Summary Create a draft journal entry
// @Description Creates a draft with optional lines. Drafts may be unbalanced.
// @Tags journal-entries
// @Accept  json
// @Produce  json
// @Param   workplaceID path string true "Workplace ID"
// @Param   entry body dto.CreateJournalEntryRequest true "Entry details"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Account or period not found"
// @Failure 422 {object} map[string]string "Account does not accept manual entries"
// @Security BearerAuth
// @Router /workplaces/{workplaceID}/journal-entries [post]
func (h *journalHandler) createEntry(c *gin.Context) {
	scope, ok := scopeFromContext(c)
	if !ok {
		return
	}
	var req dto.CreateJournalEntryRequest
	if !bindJSON(c, scope.logger, &req) {
		return
	}

	entry, err := h.journalService.CreateJournalEntry(c.Request.Context(), scope.workplaceID, req, scope.userID)
	if err != nil {
		respondWithError(c, scope.logger, err, "Failed to create journal entry")
		return
	}

	scope.logger.Info("Journal entry created", slog.String("entry_id", entry.EntryID), slog.String("entry_number", entry.EntryNumber))
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// getEntry godoc
// @Summary Get a journal entry with its lines
// @Tags journal-entries
// @Produce  json
// @Param   workplaceID path string true "Workplace ID"
// @Param   entryID path string true "Entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Security BearerAuth
// @Router /workplaces/{workplaceID}/journal-entries/{entryID} [get]
func (h *journalHandler) getEntry(c *gin.Context) {
	scope, ok := scopeFromContext(c)
	if !ok {
		return
	}
	entry, err := h.journalService.GetJournalEntryByID(c.Request.Context(), scope.workplaceID, c.Param("entryID"))
	if err != nil {
		respondWithError(c, scope.logger, err, "Failed to retrieve journal entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// updateEntry godoc
// @Summary Edit the header of a draft
// @Description Changes date, period, reference or description. A new date re-resolves the fiscal period.
// @Tags journal-entries
// @Accept  json
// @Produce  json
// @Param   workplaceID path string true "Workplace ID"
// @Param   entryID path string true "Entry ID"
// @Param   entry body dto.UpdateJournalEntryRequest true "Header fields to change"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Entry or period not found"
// @Failure 409 {object} map[string]string "Entry is not a draft"
// @Security BearerAuth
// @Router /workplaces/{workplaceID}/journal-entries/{entryID} [patch]
func (h *journalHandler) updateEntry(c *gin.Context) {
	scope, ok := scopeFromContext(c)
	if !ok {
		return
	}
	entryID := c.Param("entryID")
	logger := scope.logger.With(slog.String("entry_id", entryID))

	var req dto.UpdateJournalEntryRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	entry, err := h.journalService.UpdateJournalEntry(c.Request.Context(), scope.workplaceID, entryID, req, scope.userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to update journal entry")
		return
	}

	logger.Info("Journal entry updated", slog.String("fiscal_period_id", entry.FiscalPeriodID))
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// getEntryByNumber godoc
// @Summary Get a journal entry by its number
// @Tags journal-entries
// @Produce  json
// @Param   workplaceID path string true "Workplace ID"
// @Param   number path string true "Entry number, e.g. JE-000042"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Security BearerAuth
// @Router /workplaces/{workplaceID}/journal-entries/by-number/{number} [get]
func (h *journalHandler) getEntryByNumber(c *gin.Context) {
	scope, ok := scopeFromContext(c)
	if !ok {
		return
	}
	entry, err := h.journalService.GetJournalEntryByNumber(c.Request.Context(), scope.workplaceID, c.Param("number"))
	if err != nil {
		respondWithError(c, scope.logger, err, "Failed to retrieve journal entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// listEntries godoc
// @Summary List journal entries
// @Description Lists entry headers newest first with cursor pagination
// @Tags journal-entries
// @Produce  json
// @Param   workplaceID path string true "Workplace ID"
// @Param   status query string false "DRAFT, POSTED or REVERSED"
// @Param   from query string false "Earliest entry date (YYYY-MM-DD)"
// @Param   to query string false "Latest entry date (YYYY-MM-DD)"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Cursor from the previous page"
// @Success 200 {object} dto.ListJournalEntriesResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Security BearerAuth
// @Router /workplaces/{workplaceID}/journal-entries [get]
func (h *journalHandler) listEntries(c *gin.Context) {
	scope, ok := scopeFromContext(c)
	if !ok {
		return
	}
	var params dto.ListJournalEntriesParams
	if !bindQuery(c, scope.logger, &params) {
		return
	}

	entries, nextToken, err := h.journalService.ListJournalEntries(c.Request.Context(), scope.workplaceID, params)
	if err != nil {
		respondWithError(c, scope.logger, err, "Failed to list journal entries")
		return
	}
	c.JSON(http.StatusOK, dto.ListJournalEntriesResponse{
		Entries:   dto.ToJournalEntryResponses(entries),
		NextToken: nextToken,
	})
}

// addLine godoc
// @Summary Add a line to a draft
// @Tags journal-entries
// @Accept  json
// @Produce  json
// @Param   workplaceID path string true "Workplace ID"
// @Param   entryID path string true "Entry ID"
// @Param   line body dto.JournalLineRequest true "Line details"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Invalid line"
// @Failure 409 {object} map[string]string "Entry is not a draft"
// @Security BearerAuth
// @Router /workplaces/{workplaceID}/journal-entries/{entryID}/lines [post]
func (h *journalHandler) addLine(c *gin.Context) {
	scope, ok := scopeFromContext(c)
	if !ok {
		return
	}
	var req dto.JournalLineRequest
	if !bindJSON(c, scope.logger, &req) {
		return
	}

	entry, err := h.journalService.AddJournalLine(c.Request.Context(), scope.workplaceID, c.Param("entryID"), req, scope.userID)
	if err != nil {
		respondWithError(c, scope.logger, err, "Failed to add journal line")
		return
	}
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// updateLine godoc
// @Summary Replace a line of a draft
// @Tags journal-entries
// @Accept  json
// @Produce  json
// @Param   workplaceID path string true "Workplace ID"
// @Param   entryID path string true "Entry ID"
// @Param   lineID path string true "Line ID"
// @Param   line body dto.JournalLineRequest true "Line details"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 404 {object} map[string]string "Entry or line not found"
// @Failure 409 {object} map[string]string "Entry is not a draft"
// @Security BearerAuth
// @Router /workplaces/{workplaceID}/journal-entries/{entryID}/lines/{lineID} [put]
func (h *journalHandler) updateLine(c *gin.Context) {
	scope, ok := scopeFromContext(c)
	if !ok {
		return
	}
	var req dto.JournalLineRequest
	if !bindJSON(c, scope.logger, &req) {
		return
	}

	entry, err := h.journalService.UpdateJournalLine(c.Request.Context(), scope.workplaceID, c.Param("entryID"), c.Param("lineID"), req, scope.userID)
	if err != nil {
		respondWithError(c, scope.logger, err, "Failed to update journal line")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// removeLine godoc
// @Summary Remove a line from a draft
// @Tags journal-entries
// @Produce  json
// @Param   workplaceID path string true "Workplace ID"
// @Param   entryID path string true "Entry ID"
// @Param   lineID path string true "Line ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 404 {object} map[string]string "Entry or line not found"
// @Failure 409 {object} map[string]string "Entry is not a draft"
// @Security BearerAuth
// @Router /workplaces/{workplaceID}/journal-entries/{entryID}/lines/{lineID} [delete]
func (h *journalHandler) removeLine(c *gin.Context) {
	scope, ok := scopeFromContext(c)
	if !ok {
		return
	}
	entry, err := h.journalService.RemoveJournalLine(c.Request.Context(), scope.workplaceID, c.Param("entryID"), c.Param("lineID"), scope.userID)
	if err != nil {
		respondWithError(c, scope.logger, err, "Failed to remove journal line")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// postEntry godoc
// @Summary Post a draft
// @Description Validates balance and period, applies every line to its account and marks the entry posted.
// @Tags journal-entries
// @Produce  json
// @Param   workplaceID path string true "Workplace ID"
// @Param   entryID path string true "Entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Entry does not balance"
// @Failure 404 {object} map[string]string "Entry or account not found"
// @Failure 409 {object} map[string]string "Entry is not a draft"
// @Failure 422 {object} map[string]string "Period closed or account inactive"
// @Security BearerAuth
// @Router /workplaces/{workplaceID}/journal-entries/{entryID}/post [post]
func (h *journalHandler) postEntry(c *gin.Context) {
	scope, ok := scopeFromContext(c)
	if !ok {
		return
	}
	entryID := c.Param("entryID")
	logger := scope.logger.With(slog.String("entry_id", entryID))

	result, err := h.journalService.PostJournalEntry(c.Request.Context(), scope.workplaceID, entryID, scope.userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to post journal entry")
		return
	}

	h.events.Publish(c.Request.Context(), result.Events)
	logger.Info("Journal entry posted", slog.String("entry_number", result.Entry.EntryNumber))
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(&result.Entry))
}

// reverseEntry godoc
// @Summary Reverse a posted entry
// @Description Posts a mirror entry and marks the original reversed. The reversal date defaults to today.
// @Tags journal-entries
// @Accept  json
// @Produce  json
// @Param   workplaceID path string true "Workplace ID"
// @Param   entryID path string true "Entry ID"
// @Param   request body dto.ReverseJournalEntryRequest false "Optional reversal date"
// @Success 201 {object} dto.ReverseJournalEntryResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry is not posted"
// @Failure 422 {object} map[string]string "No open period for the reversal date"
// @Security BearerAuth
// @Router /workplaces/{workplaceID}/journal-entries/{entryID}/reverse [post]
func (h *journalHandler) reverseEntry(c *gin.Context) {
	scope, ok := scopeFromContext(c)
	if !ok {
		return
	}
	entryID := c.Param("entryID")
	logger := scope.logger.With(slog.String("entry_id", entryID))

	var req dto.ReverseJournalEntryRequest
	if !bindOptionalJSON(c, logger, &req) {
		return
	}
	var reversalDate time.Time
	if req.ReversalDate != nil {
		reversalDate = *req.ReversalDate
	}

	result, err := h.journalService.ReverseJournalEntry(c.Request.Context(), scope.workplaceID, entryID, reversalDate, scope.userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to reverse journal entry")
		return
	}

	h.events.Publish(c.Request.Context(), result.Events)
	logger.Info("Journal entry reversed", slog.String("reversal_number", result.Reversal.EntryNumber))
	c.JSON(http.StatusCreated, dto.ReverseJournalEntryResponse{
		Original: dto.ToJournalEntryResponse(&result.Original),
		Reversal: dto.ToJournalEntryResponse(&result.Reversal),
	})
}
