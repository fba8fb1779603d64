package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/personal-finance/tracker-api/internal/application/usecase/statistics"
	domainerror "github.com/personal-finance/tracker-api/internal/domain/error"
	"github.com/personal-finance/tracker-api/internal/integration/entrypoint/dto"
)

// StatisticsController handles statistics endpoints.
type StatisticsController struct {
	overviewUseCase   *statistics.GetStatisticsUseCase
	monthlyUseCase    *statistics.GetMonthlyStatisticsUseCase
	categoriesUseCase *statistics.GetCategorySummaryUseCase
}

// NewStatisticsController creates a new statistics controller instance.
func NewStatisticsController(
	overviewUseCase *statistics.GetStatisticsUseCase,
	monthlyUseCase *statistics.GetMonthlyStatisticsUseCase,
	categoriesUseCase *statistics.GetCategorySummaryUseCase,
) *StatisticsController {
	return &StatisticsController{
		overviewUseCase:   overviewUseCase,
		monthlyUseCase:    monthlyUseCase,
		categoriesUseCase: categoriesUseCase,
	}
}

// Overview handles GET /stats requests.
func (c *StatisticsController) Overview(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	output, err := c.overviewUseCase.Execute(ctx.Request.Context(), statistics.GetStatisticsInput{UserID: userID})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToStatisticsResponse(output))
}

// Monthly handles GET /stats/monthly requests.
func (c *StatisticsController) Monthly(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	input := statistics.GetMonthlyStatisticsInput{UserID: userID}

	if pageStr := ctx.Query("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil {
			badRequest(ctx, "page must be a positive integer",
				string(domainerror.ErrCodeInvalidPage),
				map[string]string{"page": pageStr})
			return
		}
		input.Page = page
	}

	if limitStr := ctx.Query("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			badRequest(ctx, "limit must be a positive integer",
				string(domainerror.ErrCodeInvalidPageSize),
				map[string]string{"limit": limitStr})
			return
		}
		input.Limit = limit
	}

	output, err := c.monthlyUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToMonthlyStatisticsResponse(output))
}

// Categories handles GET /stats/categories requests.
func (c *StatisticsController) Categories(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	output, err := c.categoriesUseCase.Execute(ctx.Request.Context(), statistics.GetCategorySummaryInput{UserID: userID})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategorySummaryResponse(output))
}
