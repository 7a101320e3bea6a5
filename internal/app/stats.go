package router

import (
	"net/http"

	"github.com/Renal37/delux-perfumes/internal/middlewares"
	"github.com/Renal37/delux-perfumes/internal/models"
)

type statsResponse struct {
	Success bool         `json:"success"`
	Stats   models.Stats `json:"stats"`
}

// GetStats отдает сводную статистику по заказам
func GetStats(w http.ResponseWriter, r *http.Request) {
	statsService := middlewares.GetServiceFromContext[models.StatsService](w, r, middlewares.StatsServiceKey)
	if statsService == nil {
		return
	}

	stats, err := (*statsService).GetStats(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	middlewares.EncodeJSONResponse(w, http.StatusOK, statsResponse{Success: true, Stats: stats})
}
