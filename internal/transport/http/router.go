package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"timed-quiz-service/internal/app"
	"timed-quiz-service/internal/domain"
	"timed-quiz-service/internal/scoring"
)

// NewRouter mounts the websocket endpoint and the read-only REST API.
func NewRouter(service *app.QuizService, allowedOrigins []string) http.Handler {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	ws := NewWSHandler(service)

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		ExposedHeaders: []string{"Content-Length"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Get("/ws", ws.ServeWS)
	r.Route("/api", func(api chi.Router) {
		api.Get("/quizzes/{quizID}/pattern", patternHandler(service))
		api.Get("/sessions/{sessionID}", sessionHandler(service))
		api.Get("/sessions/{sessionID}/report", reportHandler(service))
	})
	return r
}

type reportResponse struct {
	State  domain.SessionState      `json:"state"`
	Report scoring.Report           `json:"report"`
	Review []scoring.QuestionReview `json:"review,omitempty"`
}

func patternHandler(service *app.QuizService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pattern, err := service.Pattern(r.Context(), chi.URLParam(r, "quizID"))
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, pattern)
	}
}

func sessionHandler(service *app.QuizService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := service.Session(chi.URLParam(r, "sessionID"))
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, session.View())
	}
}

func reportHandler(service *app.QuizService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := service.Session(chi.URLParam(r, "sessionID"))
		if err != nil {
			respondError(w, err)
			return
		}
		resp := reportResponse{State: session.State(), Report: session.Report()}
		if review, err := session.Review(); err == nil {
			resp.Review = review
		}
		respondJSON(w, http.StatusOK, resp)
	}
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrSessionNotFound), errors.Is(err, domain.ErrQuizNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrLoadFailure):
		status = http.StatusUnprocessableEntity
	}
	respondJSON(w, status, errorPayload{Message: err.Error()})
}
