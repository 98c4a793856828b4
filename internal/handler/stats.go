package handler

import (
	"net/http"

	"github.com/pkordes/triplog/internal/domain"
	"github.com/pkordes/triplog/internal/report"
)

// StatsResponse is the body of GET /api/stats.
type StatsResponse struct {
	Filter  domain.Filter  `json:"filter"`
	Period  string         `json:"period"`
	Summary report.Summary `json:"summary"`
}

// GetStats handles GET /api/stats. It accepts the same filter parameters as
// GET /api/trips and serves the dashboard, daily and range report views.
func (s *Server) GetStats(w http.ResponseWriter, r *http.Request) {
	params, err := bindListParams(r)
	if err != nil {
		s.writeServiceError(w, r, err, "")
		return
	}

	rep, err := s.reports.Build(r.Context(), params.filter())
	if err != nil {
		s.writeServiceError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, StatsResponse{
		Filter:  rep.Filter,
		Period:  rep.Period,
		Summary: rep.Summary,
	})
}
