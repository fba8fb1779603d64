package controller

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/personal-finance/tracker-api/internal/application/usecase/insight"
	domainerror "github.com/personal-finance/tracker-api/internal/domain/error"
	"github.com/personal-finance/tracker-api/internal/integration/entrypoint/dto"
)

// InsightController handles the AI insight endpoint.
type InsightController struct {
	insightUseCase *insight.GetInsightUseCase
}

// NewInsightController creates a new insight controller instance.
func NewInsightController(insightUseCase *insight.GetInsightUseCase) *InsightController {
	return &InsightController{insightUseCase: insightUseCase}
}

// Generate handles POST /insights requests.
// An unavailable or failing generator still answers 200 with the fallback text.
func (c *InsightController) Generate(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req dto.InsightRequest
	// An empty body asks for an insight on the user's own totals
	if err := ctx.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		badRequest(ctx, "Invalid request body",
			string(domainerror.ErrCodeInvalidInsightRequest),
			map[string]string{"body": err.Error()})
		return
	}

	output, err := c.insightUseCase.Execute(ctx.Request.Context(), insight.GetInsightInput{
		UserID:  userID,
		Summary: req.Summary,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToInsightResponse(output))
}
