package ingest

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"coursecatalog/internal/catalog"
	"coursecatalog/internal/httpx"
)

type HTTPHandler struct {
	svc    *Service
	secret string
}

func NewHTTPHandler(svc *Service, secret string) *HTTPHandler {
	return &HTTPHandler{svc: svc, secret: secret}
}

type syncResponse struct {
	RunID        string `json:"run_id"`
	Status       Status `json:"status"`
	TermID       string `json:"term_id,omitempty"`
	TermName     string `json:"term_name,omitempty"`
	RecordCount  int    `json:"record_count"`
	SubjectCount int    `json:"subject_count"`
	Written      int    `json:"written"`
}

// Sync handles POST /internal/jobs/sync
// @Summary Trigger catalog sync
// @Description Resolve the latest term and, when it changed (or force=true), rebuild course data
// @Tags internal
// @Produce json
// @Param X-Internal-Secret header string true "Internal secret for authentication"
// @Param force query bool false "Re-sync even when the term is unchanged"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Failure 403 {object} httpx.ErrorResponse
// @Failure 409 {object} httpx.ErrorResponse
// @Failure 502 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /internal/jobs/sync [post]
func (h *HTTPHandler) Sync(w http.ResponseWriter, r *http.Request) {
	if h.secret == "" {
		httpx.JSONError(w, r, http.StatusForbidden, "SYNC_DISABLED", "sync trigger is not configured", nil)
		return
	}
	secret := r.Header.Get("X-Internal-Secret")
	if subtle.ConstantTimeCompare([]byte(secret), []byte(h.secret)) != 1 {
		httpx.JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "invalid internal secret", nil)
		return
	}

	var opts RunOptions
	if v := r.URL.Query().Get("force"); v != "" {
		force, err := strconv.ParseBool(v)
		if err != nil {
			httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "force must be a boolean", nil)
			return
		}
		opts.Force = force
	}

	res, err := h.svc.Run(r.Context(), opts)
	if err != nil {
		writeSyncError(w, r, res, err)
		return
	}

	httpx.JSONSuccess(w, r, syncResponse{
		RunID:        res.RunID,
		Status:       res.Status,
		TermID:       res.Term.ID,
		TermName:     res.Term.Name,
		RecordCount:  res.RecordCount,
		SubjectCount: res.SubjectCount,
		Written:      res.Written,
	}, nil)
}

func writeSyncError(w http.ResponseWriter, r *http.Request, res Result, err error) {
	var (
		fetchErr  *catalog.FetchError
		malformed *catalog.MalformedDataError
		partial   *catalog.PartialFailure
	)
	switch {
	case errors.Is(err, ErrSyncInProgress):
		httpx.JSONError(w, r, http.StatusConflict, "SYNC_IN_PROGRESS", err.Error(), nil)
	case errors.As(err, &fetchErr):
		httpx.JSONError(w, r, http.StatusBadGateway, "UPSTREAM_FETCH_FAILED", err.Error(), nil)
	case errors.As(err, &malformed):
		httpx.JSONError(w, r, http.StatusBadGateway, "UPSTREAM_MALFORMED", err.Error(), nil)
	case errors.As(err, &partial):
		details := make([]httpx.ErrorDetail, 0, len(partial.Failures))
		for _, f := range partial.Failures {
			details = append(details, httpx.ErrorDetail{Field: f.Subject, Message: f.Phase + ": " + f.Err.Error()})
		}
		httpx.JSONError(w, r, http.StatusInternalServerError, "PARTIAL_FAILURE",
			fmt.Sprintf("run %s: %d subjects written, %d failed", res.RunID, res.Written, len(details)), details)
	default:
		httpx.JSONError(w, r, http.StatusInternalServerError, "SYNC_FAILED", err.Error(), nil)
	}
}
