package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"wargame/communication"

	"github.com/rs/zerolog/log"
)

// Server relays moves between two game instances. Every URL path is a separate game:
// POST appends a move, GET returns the latest one, GET ?history=1 lists them all and DELETE
// clears the game.
type Server struct {
	addr  string
	store MoveStore
}

func NewServer(addr string, store MoveStore) *Server {
	return &Server{addr: addr, store: store}
}

// Start serves until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info().Msgf("broker listening on %s", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("broker shutdown: %w", err)
		}
		return nil
	}
}

func (s *Server) Handler() http.Handler {
	return http.HandlerFunc(s.handle)
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	game := gameName(r.URL.Path)
	log.Debug().Msgf("broker %s %s", r.Method, r.URL.Path)

	switch r.Method {
	case http.MethodPost:
		s.handlePost(w, r, game)
	case http.MethodGet:
		if r.URL.Query().Has("history") {
			s.handleHistory(w, r, game)
			return
		}
		s.handleGet(w, r, game)
	case http.MethodDelete:
		if err := s.store.Reset(r.Context(), game); err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, communication.Envelope{Success: true})
	default:
		writeError(w, http.StatusMethodNotAllowed, fmt.Errorf("method %s not allowed", r.Method))
	}
}

func (s *Server) handlePost(w http.ResponseWriter, r *http.Request, game string) {
	var msg communication.MoveMessage
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decode move: %w", err))
		return
	}
	if msg.Turn < 1 {
		writeError(w, http.StatusBadRequest, errors.New("turn must be positive"))
		return
	}

	if err := s.store.Append(r.Context(), game, msg); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, ErrUnexpectedTurn) {
			status = http.StatusConflict
		}
		writeError(w, status, err)
		return
	}
	writeJSON(w, http.StatusOK, communication.Envelope{Success: true, Data: &msg})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request, game string) {
	latest, err := s.store.Latest(r.Context(), game)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, communication.Envelope{Success: latest != nil, Data: latest})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request, game string) {
	moves, err := s.store.History(r.Context(), game)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Success bool                        `json:"success"`
		Data    []communication.MoveMessage `json:"data"`
	}{Success: true, Data: moves})
}

func gameName(path string) string {
	name := strings.Trim(path, "/")
	if name == "" {
		return "default"
	}
	return name
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Warn().Err(err).Msg("failed to write broker response")
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	log.Debug().Err(err).Int("status", status).Msg("broker request failed")
	writeJSON(w, status, communication.Envelope{Success: false, Error: err.Error()})
}
