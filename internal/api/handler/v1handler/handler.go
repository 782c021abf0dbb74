// Package v1handler implements the v1 HTTP endpoints of the pricing API.
package v1handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"pricelens/internal/analysis"
	"pricelens/internal/lookup"
	"pricelens/internal/pricing"
	"pricelens/pkg/logger"
	"pricelens/pkg/serrors"
)

// maxBodyBytes caps request bodies; price batches are small JSON documents.
const maxBodyBytes = 4 << 20

// Deps are the collaborators the v1 endpoints are built on.
type Deps struct {
	Lookup     lookup.Lookup
	Normalizer *pricing.Normalizer
	Analyzer   *analysis.Analyzer
}

// Handler serves the v1 endpoints.
type Handler struct {
	deps Deps
}

func New(deps Deps) *Handler {
	return &Handler{deps: deps}
}

// Register attaches the v1 routes to mux, wrapping each endpoint with the
// security handler.
func (h Handler) Register(mux *http.ServeMux, sec *SecHandler) {
	mux.Handle("POST /v1/normalize", sec.Wrap(http.HandlerFunc(h.Normalize)))
	mux.Handle("POST /v1/analysis/best", sec.Wrap(http.HandlerFunc(h.AnalysisBest)))
	mux.Handle("POST /v1/analysis/full", sec.Wrap(http.HandlerFunc(h.AnalysisFull)))
	mux.Handle("POST /v1/analysis/compare", sec.Wrap(http.HandlerFunc(h.AnalysisCompare)))
	mux.Handle("POST /v1/lookup", sec.Wrap(http.HandlerFunc(h.LookupProduct)))
}

// ErrorResponse is the JSON error body shared by every endpoint.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorStatus pairs an HTTP status with its error body.
type ErrorStatus struct {
	StatusCode int
	Response   ErrorResponse
}

// kindStatuses maps semantic error kinds to their HTTP status and the
// message used when the error carries none of its own.
var kindStatuses = []struct {
	kind       serrors.Kind
	status     int
	defaultMsg string
}{
	{serrors.ErrBadRequest, http.StatusBadRequest, "bad request"},
	{serrors.ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
	{serrors.ErrNotFound, http.StatusNotFound, "resource not found"},
	{serrors.ErrRateLimited, http.StatusTooManyRequests, "rate limited"},
	{serrors.ErrTimeout, http.StatusGatewayTimeout, "timed out"},
	{serrors.ErrUnavailable, http.StatusServiceUnavailable, "service unavailable"},
}

// NewError converts any error into its HTTP representation. Semantic kinds
// map to their status; everything else is an opaque internal error so
// implementation details never leak to callers.
func (h Handler) NewError(ctx context.Context, err error) *ErrorStatus {
	logger.Error(ctx, err.Error())

	for _, m := range kindStatuses {
		if !errors.Is(err, m.kind) {
			continue
		}

		msg := m.defaultMsg
		var serr *serrors.Error
		if errors.As(err, &serr) && serr.Message() != "" {
			msg = serr.Message()
		}

		return &ErrorStatus{
			StatusCode: m.status,
			Response:   ErrorResponse{Code: m.kind.Error(), Message: msg},
		}
	}

	return &ErrorStatus{
		StatusCode: http.StatusInternalServerError,
		Response:   ErrorResponse{Code: serrors.ErrInternal.Error(), Message: "internal error"},
	}
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	res := Handler{}.NewError(ctx, err)
	writeJSON(ctx, w, res.StatusCode, res.Response)
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error(ctx, "could not encode response: "+err.Error())
	}
}

// readJSON decodes the request body into v, rejecting unknown fields and
// oversized bodies so malformed payloads fail fast with a clear message.
func readJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return serrors.Wrap(serrors.ErrBadRequest, err, "invalid payload: %s", err.Error())
	}

	return nil
}
