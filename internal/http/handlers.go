package http

import (
	"net/http"
	"time"

	"complaints/internal/core"
	"complaints/internal/log"
)

// pageData feeds index.html and its partials.
type pageData struct {
	Categories  []string
	Selected    string
	Submissions []core.Submission
	Unmatched   int
	Total       int
}

// handleHealth performs basic liveness check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(s.started).String(),
	})
}

// handleReady reports not_ready until the session has loaded once.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	status := "ready"
	httpStatus := http.StatusOK
	checks := make(map[string]any)

	if s.templates == nil {
		checks["templates"] = "failed: templates not loaded"
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	} else {
		checks["templates"] = "ok"
	}

	if s.session == nil || !s.session.Loaded() {
		checks["session"] = "loading"
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	} else {
		checks["session"] = "ok"
		checks["categories"] = len(s.session.Categories())
		checks["submissions"] = len(s.session.Submissions())
	}
	checks["rate_limit_clients"] = s.limiter.ActiveClients()
	checks["security"] = s.secMetrics.snapshot()

	writeJSON(w, httpStatus, map[string]any{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
		"checks":    checks,
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		NotFoundError("page not found").Write(w)
		return
	}
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	s.render(w, r, "index.html", s.pageData(selectionFrom(r)))
}

// handleSubmissionsPartial renders the filtered table for HTMX swaps.
func (s *Server) handleSubmissionsPartial(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	s.render(w, r, "submissions_table", s.pageData(selectionFrom(r)))
}

func (s *Server) handleAPISubmissions(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	view := s.session.View(selectionFrom(r))
	if view == nil {
		view = []core.Submission{}
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleAPICategories(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	cats := s.session.Categories()
	if cats == nil {
		cats = []string{}
	}
	writeJSON(w, http.StatusOK, cats)
}

// handleAPIDistribution returns the pie chart series. Labels and values are aligned.
func (s *Server) handleAPIDistribution(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	d := s.session.Distribution()
	writeJSON(w, http.StatusOK, map[string]any{
		"labels":    d.Labels(),
		"values":    d.Values(),
		"unmatched": d.Unmatched,
	})
}

// handleReload refetches both collections from the store.
func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	ctx, cancel := s.storeContext(r.Context())
	defer cancel()

	if err := s.session.Reload(ctx); err != nil {
		log.FromContext(ctx).ErrorContext(ctx, "Reload failed",
			log.FieldError, err,
			log.FieldOperation, log.OpLoad)
		BadGatewayError("Could not reload data").
			TriggerViewRefresh().
			TriggerErrorNotification("Could not reload data").
			Write(w)
		return
	}
	NewHTMXResponse().
		Status(http.StatusNoContent).
		TriggerViewRefresh().
		TriggerSuccessNotification("Data reloaded").
		Write(w)
}

func (s *Server) pageData(selection string) pageData {
	d := s.session.Distribution()
	return pageData{
		Categories:  s.session.Categories(),
		Selected:    selection,
		Submissions: s.session.View(selection),
		Unmatched:   d.Unmatched,
		Total:       d.Total(),
	}
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	if s.templates == nil {
		s.logger.ErrorContext(r.Context(), "Templates not loaded",
			log.FieldPath, r.URL.Path,
			log.FieldComponent, log.ComponentTemplate)
		InternalServerError("templates not loaded").Write(w)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Template execution failed",
			log.FieldError, err,
			"template", name)
	}
}
