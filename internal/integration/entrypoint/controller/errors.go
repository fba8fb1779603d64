// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainerror "github.com/personal-finance/tracker-api/internal/domain/error"
	"github.com/personal-finance/tracker-api/internal/integration/entrypoint/dto"
	"github.com/personal-finance/tracker-api/internal/integration/entrypoint/middleware"
)

// codedError is the shape shared by the domain error types.
type codedError struct {
	code    string
	message string
}

// asCodedError extracts the code and message of any domain error in the chain.
func asCodedError(err error) (codedError, bool) {
	var (
		authErr        *domainerror.AuthError
		transactionErr *domainerror.TransactionError
		budgetErr      *domainerror.BudgetError
		statisticsErr  *domainerror.StatisticsError
		insightErr     *domainerror.InsightError
	)

	switch {
	case errors.As(err, &authErr):
		return codedError{code: string(authErr.Code), message: authErr.Message}, true
	case errors.As(err, &transactionErr):
		return codedError{code: string(transactionErr.Code), message: transactionErr.Message}, true
	case errors.As(err, &budgetErr):
		return codedError{code: string(budgetErr.Code), message: budgetErr.Message}, true
	case errors.As(err, &statisticsErr):
		return codedError{code: string(statisticsErr.Code), message: statisticsErr.Message}, true
	case errors.As(err, &insightErr):
		return codedError{code: string(insightErr.Code), message: insightErr.Message}, true
	}
	return codedError{}, false
}

// statusForCode maps the category digits of an XXX-CCNNNN code to an HTTP status.
func statusForCode(code string) int {
	_, suffix, ok := strings.Cut(code, "-")
	if !ok || len(suffix) < 2 {
		return http.StatusInternalServerError
	}

	switch suffix[:2] {
	case "01":
		return http.StatusBadRequest
	case "02":
		return http.StatusNotFound
	case "03":
		return http.StatusUnauthorized
	case "04":
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the error response matching a domain error.
// Anything else is an internal error and is logged, never echoed.
func respondError(ctx *gin.Context, err error) {
	if coded, ok := asCodedError(err); ok {
		ctx.JSON(statusForCode(coded.code), dto.ErrorResponse{
			Error: coded.message,
			Code:  coded.code,
		})
		return
	}

	slog.ErrorContext(ctx.Request.Context(), "Request failed",
		"method", ctx.Request.Method,
		"path", ctx.FullPath(),
		"error", err,
	)
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// badRequest writes a validation error response.
func badRequest(ctx *gin.Context, message, code string, details map[string]string) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error:   message,
		Code:    code,
		Details: details,
	})
}

// requireUser returns the authenticated user, writing a 401 when there is none.
func requireUser(ctx *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
	}
	return userID, ok
}
