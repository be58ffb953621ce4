// Package api exposes the small authenticated read surface the reminder
// components consume: the medicines list the client matcher polls and the
// AI chat endpoint. Full records CRUD lives outside this service.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"healthnudge/internal/insights"
	"healthnudge/internal/session"
	"healthnudge/internal/store"
)

type ctxKey int

const ctxUserID ctxKey = iota

// Server holds the handler dependencies.
type Server struct {
	store    *store.Store
	sessions *session.Manager
	insights *insights.Client
	logger   *log.Logger
}

// New creates an API server.
func New(st *store.Store, sessions *session.Manager, ai *insights.Client, logger *log.Logger) *Server {
	return &Server{
		store:    st,
		sessions: sessions,
		insights: ai,
		logger:   logger,
	}
}

// Router builds the HTTP routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Use(s.requireSession)
		r.Get("/medicines", s.handleListMedicines)
		r.Post("/ai/chat", s.handleChat)
	})
	return r
}

// requireSession validates the bearer token and stores the user id in the
// request context.
func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			s.writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		userID, err := s.sessions.Verify(token)
		if err != nil {
			if errors.Is(err, session.ErrExpired) {
				s.writeError(w, http.StatusUnauthorized, "session expired")
				return
			}
			s.writeError(w, http.StatusUnauthorized, "invalid session token")
			return
		}

		ctx := context.WithValue(r.Context(), ctxUserID, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) handleListMedicines(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(ctxUserID).(uint)

	medicines, err := s.store.ActiveMedicinesForUser(userID)
	if err != nil {
		s.logger.Printf("api: list medicines for user %d: %v", userID, err)
		s.writeError(w, http.StatusInternalServerError, "could not list medicines")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"medicines": medicines,
	})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(ctxUserID).(uint)

	var req struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		s.writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	user, err := s.store.UserByID(userID)
	if err != nil {
		s.logger.Printf("api: load user %d: %v", userID, err)
		s.writeError(w, http.StatusInternalServerError, "could not load profile")
		return
	}

	profile := insights.Profile{Name: user.Name, AllowData: user.AIDataAccess}
	if user.AIDataAccess {
		if profile.Medicines, err = s.store.ActiveMedicinesForUser(userID); err != nil {
			s.logger.Printf("api: chat context medicines for user %d: %v", userID, err)
		}
		if profile.Logs, err = s.store.RecentHealthLogs(userID, 5); err != nil {
			s.logger.Printf("api: chat context logs for user %d: %v", userID, err)
		}
	}

	answer, err := s.insights.Chat(r.Context(), req.Message, insights.BuildContext(profile))
	if err != nil {
		s.logger.Printf("api: chat for user %d: %v", userID, err)
		s.writeError(w, http.StatusBadGateway, "AI assistant unavailable")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"response": answer,
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Printf("api: encode response: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]any{
		"success": false,
		"message": message,
	})
}
