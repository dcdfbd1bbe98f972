package http

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"complaints/internal/core"
	"complaints/internal/log"
)

// downloadSaver hands an export to the browser as an attachment.
type downloadSaver struct {
	w http.ResponseWriter
}

func (d downloadSaver) Save(_ context.Context, filename string, data []byte) error {
	h := d.w.Header()
	h.Set("Content-Type", core.ExportContentType)
	h.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	h.Set("Content-Length", strconv.Itoa(len(data)))
	h.Set("Cache-Control", "no-store")
	d.w.WriteHeader(http.StatusOK)
	_, err := d.w.Write(data)
	return err
}

// handleExport downloads the current view as CSV.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	selection := selectionFrom(r)
	if err := s.session.Export(r.Context(), selection, downloadSaver{w: w}); err != nil {
		s.access.LogError(r.Context(), "Export failed", err, log.ComponentExport, log.OpExport,
			log.NewFields().WithCategory(selection).WithRequestID(w.Header().Get("X-Request-ID")))
		// Headers are already sent once Save starts writing.
		if w.Header().Get("Content-Disposition") == "" {
			InternalServerError("Export failed").Write(w)
		}
	}
}
