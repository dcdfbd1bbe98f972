package http

import (
	"bytes"
	"errors"
	"net/http"

	"complaints/internal/core"
	"complaints/internal/log"
)

// handleCreateCategory appends a category from the add-category form and
// returns the refreshed selector options.
func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	if err := r.ParseForm(); err != nil {
		BadRequestError("invalid form").Write(w)
		return
	}
	name := sanitizeInput(r.Form.Get("name"))

	ctx, cancel := s.storeContext(r.Context())
	defer cancel()

	stored, err := s.session.AddCategory(ctx, name)
	switch {
	case errors.Is(err, core.ErrEmptyCategory):
		UnprocessableEntityError("Category name cannot be empty").
			TriggerInfoNotification("Please enter a category name").
			Write(w)
		return
	case errors.Is(err, core.ErrDuplicateCategory):
		ConflictError("Category already exists").
			TriggerWarningNotification("Category already exists").
			Write(w)
		return
	case err != nil:
		s.access.LogError(ctx, "Add category failed", err, log.ComponentAdmin, log.OpAppend,
			log.NewFields().WithCategory(name).WithRequestID(w.Header().Get("X-Request-ID")))
		BadGatewayError("Error adding category").
			TriggerErrorNotification("Error adding category").
			Write(w)
		return
	}

	var buf bytes.Buffer
	if s.templates != nil {
		if err := s.templates.ExecuteTemplate(&buf, "category_options", s.pageData(core.AllCategories)); err != nil {
			log.FromContext(ctx).ErrorContext(ctx, "Category options render failed", log.FieldError, err)
		}
	}
	s.access.LogCategoryAdded(ctx, stored, len(s.session.Categories()))

	NewHTMXResponse().
		Status(http.StatusCreated).
		TriggerCategoryCreated(stored).
		TriggerFormReset().
		TriggerSuccessNotification("Category added successfully!").
		BodyHTML(buf.String()).
		Write(w)
}
