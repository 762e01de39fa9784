package handlers

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/naijavoice/naijavoice-api/internal/synthesis"
)

const maxBodyBytes = 1 << 20

type SynthesizeHandler struct {
	svc *synthesis.Service
}

func NewSynthesizeHandler(svc *synthesis.Service) *SynthesizeHandler {
	return &SynthesizeHandler{svc: svc}
}

// Synthesize adapts an HTTP request to synthesis.Service.Handle. It accepts
// every method; the service does the method gate.
func (h *SynthesizeHandler) Synthesize(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		err = fmt.Errorf("read request body: %w", err)
		slog.ErrorContext(r.Context(), "synthesis request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, synthesis.BodyFor(err))
		return
	}

	resp := h.svc.Handle(r.Context(), synthesis.Request{Method: r.Method, Body: body})
	if resp.Body == nil {
		w.WriteHeader(resp.Status)
		return
	}
	writeJSON(w, resp.Status, resp.Body)
}
