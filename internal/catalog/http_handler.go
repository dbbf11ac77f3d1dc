package catalog

import (
	"errors"
	"net/http"

	"coursecatalog/internal/httpx"
)

type HTTPHandler struct {
	svc *Service
}

func NewHTTPHandler(svc *Service) *HTTPHandler {
	return &HTTPHandler{svc: svc}
}

// LatestTerm handles GET /catalog/term
// @Summary Latest synced term
// @Tags catalog
// @Produce json
// @Success 200 {object} httpx.SuccessResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /catalog/term [get]
func (h *HTTPHandler) LatestTerm(w http.ResponseWriter, r *http.Request) {
	rec, err := h.svc.LatestTerm(r.Context())
	if err != nil {
		writeLookupError(w, r, err, "No term has been synced yet")
		return
	}
	httpx.JSONSuccess(w, r, rec, nil)
}

// Subjects handles GET /catalog/subjects
// @Summary List stored subjects
// @Tags catalog
// @Produce json
// @Success 200 {object} httpx.SuccessResponse
// @Router /catalog/subjects [get]
func (h *HTTPHandler) Subjects(w http.ResponseWriter, r *http.Request) {
	subjects, err := h.svc.Subjects(r.Context())
	if err != nil {
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	if subjects == nil {
		subjects = []string{}
	}
	httpx.JSONSuccess(w, r, subjects, map[string]any{"total": len(subjects)})
}

// Subject handles GET /catalog/subjects/{subject}
// @Summary Course numbers for one subject
// @Tags catalog
// @Produce json
// @Param subject path string true "Subject code"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /catalog/subjects/{subject} [get]
func (h *HTTPHandler) Subject(w http.ResponseWriter, r *http.Request) {
	subject := r.PathValue("subject")
	if subject == "" {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "subject is required", nil)
		return
	}

	sc, err := h.svc.Subject(r.Context(), subject)
	if err != nil {
		writeLookupError(w, r, err, "Subject not found in catalog")
		return
	}
	httpx.JSONSuccess(w, r, sc, nil)
}

func writeLookupError(w http.ResponseWriter, r *http.Request, err error, notFoundMsg string) {
	if errors.Is(err, ErrNotFound) {
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", notFoundMsg, nil)
		return
	}
	httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
}
