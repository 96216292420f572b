package server

import (
	stderrors "errors"
	"io"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/matzehuels/codecity/pkg/buildinfo"
	"github.com/matzehuels/codecity/pkg/city"
	"github.com/matzehuels/codecity/pkg/errors"
	"github.com/matzehuels/codecity/pkg/pipeline"
)

type layoutRequest struct {
	City    *city.City       `json:"city"`
	Options pipeline.Options `json:"options"`
}

type layoutResponse struct {
	ID     string       `json:"id"`
	Layout *city.Layout `json:"layout"`
	Cached bool         `json:"cached"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (h *Handler) handleLayout(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			h.writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{
				Code:    string(errors.ErrCodeInvalidInput),
				Message: "request body too large",
			})
			return
		}
		h.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request"))
		return
	}
	var req layoutRequest
	if err := json.Unmarshal(body, &req); err != nil {
		h.writeError(w, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode request"))
		return
	}
	if req.City == nil {
		h.writeError(w, errors.New(errors.ErrCodeInvalidInput, "city is required"))
		return
	}

	id := uuid.NewString()
	req.Options.Logger = h.log.With("job", id)
	res, err := h.runner.Run(r.Context(), req.City, req.Options)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, layoutResponse{ID: id, Layout: res.Layout, Cached: res.CacheHit})
}

// statusFor maps error codes onto HTTP statuses: malformed requests are
// 400, well-formed cities the engine cannot lay out are 422.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidInput, errors.ErrCodeInvalidArgument,
		errors.ErrCodeInvalidLayout, errors.ErrCodeInvalidScale:
		return http.StatusBadRequest
	case errors.ErrCodeNoRoots, errors.ErrCodeMultipleRoots, errors.ErrCodeUnsupportedShape:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := statusFor(code)
	msg := errors.UserMessage(err)
	if status == http.StatusInternalServerError {
		h.log.Error("layout failed", "err", err)
		msg = "internal error"
		if code == "" {
			code = errors.ErrCodeInternal
		}
	}
	h.writeJSON(w, status, errorResponse{Code: string(code), Message: msg})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Warn("write response", "err", err)
	}
}
