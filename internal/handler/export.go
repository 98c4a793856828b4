package handler

import (
	"mime"
	"net/http"
	"strconv"

	"github.com/pkordes/triplog/internal/service"
)

// exportHandler serves GET /api/export.{csv,html,pdf}.
// Each accepts the trip filter parameters. Documents are sent as attachments,
// except the print page which opens inline unless ?download=1 is given.
func (s *Server) exportHandler(format service.Format) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := bindListParams(r)
		if err != nil {
			s.writeServiceError(w, r, err, "")
			return
		}

		doc, err := s.exports.Export(r.Context(), params.filter(), format)
		if err != nil {
			s.writeServiceError(w, r, err, "")
			return
		}

		disposition := "attachment"
		if format == service.FormatHTML && r.URL.Query().Get("download") != "1" {
			disposition = "inline"
		}
		w.Header().Set("Content-Type", doc.ContentType)
		w.Header().Set("Content-Disposition", mime.FormatMediaType(disposition, map[string]string{"filename": doc.Filename}))
		w.Header().Set("Content-Length", strconv.Itoa(len(doc.Body)))
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(doc.Body)
	}
}
