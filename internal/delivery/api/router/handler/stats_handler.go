package handler

import (
	"net/http"

	"coderr/internal/delivery/api/response"
	"coderr/internal/usecase"

	"github.com/labstack/echo/v4"
)

// StatsHandler serves the platform summary.
type StatsHandler struct {
	statsUC usecase.StatsUsecase
}

// NewStatsHandler is the constructor for StatsHandler.
func NewStatsHandler(statsUC usecase.StatsUsecase) *StatsHandler {
	return &StatsHandler{statsUC: statsUC}
}

type baseInfoResponse struct {
	ReviewCount          int64   `json:"review_count"`
	AverageRating        float64 `json:"average_rating"`
	BusinessProfileCount int64   `json:"business_profile_count"`
	OfferCount           int64   `json:"offer_count"`
}

// BaseInfo handles GET /api/base-info/.
func (h *StatsHandler) BaseInfo(c echo.Context) error {
	summary, err := h.statsUC.Summary(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}

	return response.Success(c, http.StatusOK, baseInfoResponse{
		ReviewCount:          summary.ReviewCount,
		AverageRating:        summary.AverageRating,
		BusinessProfileCount: summary.BusinessProfileCount,
		OfferCount:           summary.OfferCount,
	})
}

// HealthCheck answers liveness checks.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"})
}
