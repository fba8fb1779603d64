package controller

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/personal-finance/tracker-api/internal/application/usecase/transaction"
	"github.com/personal-finance/tracker-api/internal/domain/entity"
	domainerror "github.com/personal-finance/tracker-api/internal/domain/error"
	"github.com/personal-finance/tracker-api/internal/integration/entrypoint/dto"
)

// TransactionController handles transaction endpoints.
type TransactionController struct {
	listUseCase       *transaction.ListTransactionsUseCase
	createUseCase     *transaction.CreateTransactionUseCase
	updateUseCase     *transaction.UpdateTransactionUseCase
	deleteUseCase     *transaction.DeleteTransactionUseCase
	exportUseCase     *transaction.ExportTransactionsUseCase
	categoriesUseCase *transaction.ListCategoriesUseCase
}

// NewTransactionController creates a new transaction controller instance.
func NewTransactionController(
	listUseCase *transaction.ListTransactionsUseCase,
	createUseCase *transaction.CreateTransactionUseCase,
	updateUseCase *transaction.UpdateTransactionUseCase,
	deleteUseCase *transaction.DeleteTransactionUseCase,
	exportUseCase *transaction.ExportTransactionsUseCase,
	categoriesUseCase *transaction.ListCategoriesUseCase,
) *TransactionController {
	return &TransactionController{
		listUseCase:       listUseCase,
		createUseCase:     createUseCase,
		updateUseCase:     updateUseCase,
		deleteUseCase:     deleteUseCase,
		exportUseCase:     exportUseCase,
		categoriesUseCase: categoriesUseCase,
	}
}

// List handles GET /transactions requests.
func (c *TransactionController) List(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	input, ok := parseListFilters(ctx, userID)
	if !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionListResponse(output))
}

// Export handles GET /transactions/export requests.
// It accepts the same filters as List and responds with a CSV attachment.
func (c *TransactionController) Export(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	input, ok := parseListFilters(ctx, userID)
	if !ok {
		return
	}

	output, err := c.exportUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", output.Filename))
	ctx.Data(http.StatusOK, "text/csv; charset=utf-8", output.Content)
}

// Categories handles GET /transactions/categories requests.
func (c *TransactionController) Categories(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	categories, err := c.categoriesUseCase.Execute(ctx.Request.Context(), userID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.CategoryListResponse{Categories: categories})
}

// Create handles POST /transactions requests.
func (c *TransactionController) Create(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req dto.CreateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Type, amount and category are required",
			string(domainerror.ErrCodeMissingTransactionFields),
			map[string]string{"body": err.Error()})
		return
	}

	input := transaction.CreateTransactionInput{
		UserID:      userID,
		Type:        entity.TransactionType(req.Type),
		Amount:      *req.Amount,
		Category:    req.Category,
		Description: req.Description,
	}

	if req.Date != "" {
		date, err := time.Parse(dto.DateLayout, req.Date)
		if err != nil {
			badRequest(ctx, "Invalid date format, expected YYYY-MM-DD",
				string(domainerror.ErrCodeInvalidTransactionDate),
				map[string]string{"date": req.Date})
			return
		}
		input.Date = date
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToTransactionResponse(output.Transaction))
}

// Update handles PATCH /transactions/:id requests.
func (c *TransactionController) Update(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	transactionID, ok := parseTransactionID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body",
			string(domainerror.ErrCodeMissingTransactionFields),
			map[string]string{"body": err.Error()})
		return
	}

	input := transaction.UpdateTransactionInput{
		TransactionID: transactionID,
		UserID:        userID,
		Amount:        req.Amount,
		Category:      req.Category,
		Description:   req.Description,
	}
	if req.Type != nil {
		txnType := entity.TransactionType(*req.Type)
		input.Type = &txnType
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionResponse(output.Transaction))
}

// Delete handles DELETE /transactions/:id requests.
func (c *TransactionController) Delete(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	transactionID, ok := parseTransactionID(ctx)
	if !ok {
		return
	}

	err := c.deleteUseCase.Execute(ctx.Request.Context(), transaction.DeleteTransactionInput{
		TransactionID: transactionID,
		UserID:        userID,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Transaction deleted successfully"})
}

func parseTransactionID(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		// Malformed ids cannot name a stored transaction
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: "transaction not found",
			Code:  string(domainerror.ErrCodeTransactionNotFound),
		})
		return uuid.Nil, false
	}
	return id, true
}

// parseListFilters reads the type, category, startDate and endDate query parameters.
// Both dates are inclusive calendar days.
func parseListFilters(ctx *gin.Context, userID uuid.UUID) (transaction.ListTransactionsInput, bool) {
	input := transaction.ListTransactionsInput{
		UserID:   userID,
		Category: ctx.Query("category"),
	}

	if typeStr := ctx.Query("type"); typeStr != "" {
		txnType := entity.TransactionType(typeStr)
		input.Type = &txnType
	}

	if startDateStr := ctx.Query("startDate"); startDateStr != "" {
		startDate, err := time.Parse(dto.DateLayout, startDateStr)
		if err != nil {
			badRequest(ctx, "Invalid startDate, expected YYYY-MM-DD",
				string(domainerror.ErrCodeInvalidTransactionDate),
				map[string]string{"startDate": startDateStr})
			return input, false
		}
		input.StartDate = &startDate
	}

	if endDateStr := ctx.Query("endDate"); endDateStr != "" {
		endDate, err := time.Parse(dto.DateLayout, endDateStr)
		if err != nil {
			badRequest(ctx, "Invalid endDate, expected YYYY-MM-DD",
				string(domainerror.ErrCodeInvalidTransactionDate),
				map[string]string{"endDate": endDateStr})
			return input, false
		}
		endOfDay := endDate.Add(24*time.Hour - time.Nanosecond)
		input.EndDate = &endOfDay
	}

	return input, true
}
