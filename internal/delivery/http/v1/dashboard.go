package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/taskboard/internal/dashboard"
)

type getDashboardResponse struct {
	Tasks     []getTaskResponse `json:"tasks"`
	Dashboard dashboard.Summary `json:"dashboard"`
}

func (h *handlerImpl) HandleGetDashboard(c *gin.Context) {
	userID, ok := h.userIDFromContext(c)
	if !ok {
		return
	}

	result, err := h.dashboard.GetDashboard(c, userID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to get dashboard")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	if result.Summary.TotalTaskCount == 0 {
		h.logger.Warn().Msg("no tasks found")
	}

	h.logger.Info().Msg("fetched dashboard")
	c.JSON(http.StatusOK, getDashboardResponse{
		Tasks:     newGetTasksResponse(result.Tasks),
		Dashboard: result.Summary,
	})
}
