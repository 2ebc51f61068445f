package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests related to the chart of accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(as portssvc.AccountSvcFacade) *accountHandler {
	return &accountHandler{
		accountService: as,
	}
}

// RegisterAccountRoutes registers routes related to accounts on a workplace group.
func RegisterAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	h := newAccountHandler(accountService)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/by-number/:number", h.getAccountByNumber)
		accounts.GET("/:accountID", h.getAccount)
		accounts.PATCH("/:accountID", h.adjustAccount)
		accounts.DELETE("/:accountID", h.deleteAccount)
		accounts.GET("/:accountID/children", h.listChildren)
		accounts.GET("/:accountID/descendants", h.listDescendants)
	}
}

// createAccount godoc
// @Summary Create a new account
// @Description Creates an account. The account number is generated from the type's block when omitted.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   workplaceID path string true "Workplace ID"
// @Param   account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Parent account not found"
// @Failure 409 {object} map[string]string "Account number already used"
// @Failure 422 {object} map[string]string "Number block exhausted"
// @Failure 500 {object} map[string]string "Failed to create account"
// @Security BearerAuth
// @Router /workplaces/{workplaceID}/accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	scope, ok := scopeFromContext(c)
	if !ok {
		return
	}
	var req dto.CreateAccountRequest
	if !bindJSON(c, scope.logger, &req) {
		return
	}

	scope.logger.Info("Received request to create account", slog.String("account_name", req.Name), slog.String("account_type", req.AccountType))

	account, err := h.accountService.CreateAccount(c.Request.Context(), scope.workplaceID, req, scope.userID)
	if err != nil {
		respondWithError(c, scope.logger, err, "Failed to create account")
		return
	}

	scope.logger.Info("Account created successfully", slog.String("account_id", account.AccountID), slog.String("account_number", account.AccountNumber))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// getAccount godoc
// @Summary Get an account by ID
// @Tags accounts
// @Produce  json
// @Param   workplaceID path string true "Workplace ID"
// @Param   accountID path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to retrieve account"
// @Security BearerAuth
// @Router /workplaces/{workplaceID}/accounts/{accountID} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	scope, ok := scopeFromContext(c)
	if !ok {
		return
	}
	accountID := c.Param("accountID")

	account, err := h.accountService.GetAccountByID(c.Request.Context(), scope.workplaceID, accountID)
	if err != nil {
		respondWithError(c, scope.logger.With(slog.String("account_id", accountID)), err, "Failed to retrieve account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// getAccountByNumber godoc
// @Summary Get an account by number
// @Tags accounts
// @Produce  json
// @Param   workplaceID path string true "Workplace ID"
// @Param   number path string true "Account number"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /workplaces/{workplaceID}/accounts/by-number/{number} [get]
func (h *accountHandler) getAccountByNumber(c *gin.Context) {
	scope, ok := scopeFromContext(c)
	if !ok {
		return
	}
	number := c.Param("number")

	account, err := h.accountService.GetAccountByNumber(c.Request.Context(), scope.workplaceID, number)
	if err != nil {
		respondWithError(c, scope.logger.With(slog.String("account_number", number)), err, "Failed to retrieve account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// listAccounts godoc
// @Summary List accounts
// @Description Lists live accounts ordered by account number
// @Tags accounts
// @Produce  json
// @Param   workplaceID path string true "Workplace ID"
// @Param   accountType query string false "Filter by account type"
// @Param   isActive query bool false "Filter by active flag"
// @Param   limit query int false "Limit number of results" default(100)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListAccountsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to list accounts"
// @Security BearerAuth
// @Router /workplaces/{workplaceID}/accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	scope, ok := scopeFromContext(c)
	if !ok {
		return
	}
	var params dto.ListAccountsParams
	if !bindQuery(c, scope.logger, &params) {
		return
	}

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), scope.workplaceID, params)
	if err != nil {
		respondWithError(c, scope.logger, err, "Failed to list accounts")
		return
	}

	scope.logger.Info("Accounts listed successfully", slog.Int("count", len(accounts)))
	c.JSON(http.StatusOK, dto.ListAccountsResponse{Accounts: dto.ToListAccountResponse(accounts)})
}

// adjustAccount godoc
// @Summary Adjust an account
// @Description Updates name, description, sub-type, parent, flags or tags. The type can only change while the account has no posted activity.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   workplaceID path string true "Workplace ID"
// @Param   accountID path string true "Account ID"
// @Param   account body dto.AdjustAccountRequest true "Fields to change"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 422 {object} map[string]string "Type locked or hierarchy cycle"
// @Security BearerAuth
// @Router /workplaces/{workplaceID}/accounts/{accountID} [patch]
func (h *accountHandler) adjustAccount(c *gin.Context) {
	scope, ok := scopeFromContext(c)
	if !ok {
		return
	}
	accountID := c.Param("accountID")
	var req dto.AdjustAccountRequest
	if !bindJSON(c, scope.logger, &req) {
		return
	}

	logger := scope.logger.With(slog.String("account_id", accountID))
	account, err := h.accountService.AdjustAccount(c.Request.Context(), scope.workplaceID, accountID, req, scope.userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to update account")
		return
	}

	logger.Info("Account updated successfully")
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// deleteAccount godoc
// @Summary Delete an account
// @Description Soft-deletes an account. System accounts cannot be deleted.
// @Tags accounts
// @Param   workplaceID path string true "Workplace ID"
// @Param   accountID path string true "Account ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 422 {object} map[string]string "System account"
// @Security BearerAuth
// @Router /workplaces/{workplaceID}/accounts/{accountID} [delete]
func (h *accountHandler) deleteAccount(c *gin.Context) {
	scope, ok := scopeFromContext(c)
	if !ok {
		return
	}
	accountID := c.Param("accountID")
	logger := scope.logger.With(slog.String("account_id", accountID))

	if err := h.accountService.DeleteAccount(c.Request.Context(), scope.workplaceID, accountID, scope.userID); err != nil {
		respondWithError(c, logger, err, "Failed to delete account")
		return
	}

	logger.Info("Account deleted successfully")
	c.Status(http.StatusNoContent)
}

// listChildren godoc
// @Summary List direct children of an account
// @Tags accounts
// @Produce  json
// @Param   workplaceID path string true "Workplace ID"
// @Param   accountID path string true "Account ID"
// @Success 200 {object} dto.ListAccountsResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /workplaces/{workplaceID}/accounts/{accountID}/children [get]
func (h *accountHandler) listChildren(c *gin.Context) {
	scope, ok := scopeFromContext(c)
	if !ok {
		return
	}
	accounts, err := h.accountService.ListChildren(c.Request.Context(), scope.workplaceID, c.Param("accountID"))
	if err != nil {
		respondWithError(c, scope.logger, err, "Failed to list child accounts")
		return
	}
	c.JSON(http.StatusOK, dto.ListAccountsResponse{Accounts: dto.ToListAccountResponse(accounts)})
}

// listDescendants godoc
// @Summary List every account below an account
// @Tags accounts
// @Produce  json
// @Param   workplaceID path string true "Workplace ID"
// @Param   accountID path string true "Account ID"
// @Success 200 {object} dto.ListAccountsResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /workplaces/{workplaceID}/accounts/{accountID}/descendants [get]
func (h *accountHandler) listDescendants(c *gin.Context) {
	scope, ok := scopeFromContext(c)
	if !ok {
		return
	}
	accounts, err := h.accountService.ListDescendants(c.Request.Context(), scope.workplaceID, c.Param("accountID"))
	if err != nil {
		respondWithError(c, scope.logger, err, "Failed to list descendant accounts")
		return
	}
	c.JSON(http.StatusOK, dto.ListAccountsResponse{Accounts: dto.ToListAccountResponse(accounts)})
}
