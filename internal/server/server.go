// Package server exposes sessions over HTTP with JSON bodies.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"math"
	"net/http"
	"time"

	"github.com/tatianab/absurd-path/internal/engine"
	"github.com/tatianab/absurd-path/internal/models"
	"github.com/tatianab/absurd-path/internal/session"
)

const shutdownTimeout = 5 * time.Second

// maxIndex bounds accepted choice indexes; no node has that many choices.
const maxIndex = 1 << 31

// Handler serves the session routes.
type Handler struct {
	sessions *session.Store
	mux      *http.ServeMux
}

type viewResponse struct {
	ID   string          `json:"id"`
	View engine.NodeView `json:"view"`
}

type snapshotResponse struct {
	ID       string          `json:"id"`
	Snapshot models.Snapshot `json:"snapshot"`
}

type chooseRequest struct {
	Index *float64 `json:"index"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// NewHandler builds the route table over sessions.
func NewHandler(sessions *session.Store) *Handler {
	h := &Handler{sessions: sessions, mux: http.NewServeMux()}
	h.mux.HandleFunc("GET /healthz", h.health)
	h.mux.HandleFunc("POST /engine/session", h.create)
	h.mux.HandleFunc("GET /engine/{id}/view", h.view)
	h.mux.HandleFunc("POST /engine/{id}/choose", h.choose)
	h.mux.HandleFunc("GET /engine/{id}/snapshot", h.snapshot)
	h.mux.HandleFunc("DELETE /engine/{id}", h.delete)
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	id, view, err := h.sessions.Create(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewResponse{ID: id, View: view})
}

func (h *Handler) view(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	view, err := h.sessions.View(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewResponse{ID: id, View: view})
}

func (h *Handler) choose(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req chooseRequest
	index, ok := 0, false
	if err := json.NewDecoder(r.Body).Decode(&req); err == nil {
		index, ok = parseIndex(req.Index)
	}

	// An unknown session is a 404 whatever the body holds.
	if _, err := h.sessions.Snapshot(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "index required"})
		return
	}

	view, err := h.sessions.Choose(r.Context(), id, index)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewResponse{ID: id, View: view})
}

// parseIndex accepts any JSON number with an integral value, so 1 and 1.0
// name the same choice. Strings and fractions are rejected.
func parseIndex(f *float64) (int, bool) {
	if f == nil || math.Trunc(*f) != *f {
		return 0, false
	}
	if math.Abs(*f) > maxIndex {
		return -1, true
	}
	return int(*f), true
}

func (h *Handler) snapshot(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	snap, err := h.sessions.Snapshot(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshotResponse{ID: id, Snapshot: snap})
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, session.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, engine.ErrMissingNode):
		status = http.StatusNotFound
	case errors.Is(err, engine.ErrInvalidChoice):
		status = http.StatusBadRequest
	}
	msg := err.Error()
	if status == http.StatusInternalServerError {
		log.Printf("%s %s: %v", r.Method, r.URL.Path, err)
		msg = "internal error"
	}
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response: %v", err)
	}
}

// ListenAndServe serves h on addr until ctx is cancelled.
func ListenAndServe(ctx context.Context, addr string, h http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("api listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Printf("api shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
