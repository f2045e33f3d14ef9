package http

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type RouterConfig struct {
	CandidateHandler *CandidateHandler
	VoteHandler      *VoteHandler
	ResultHandler    *ResultHandler
	AuthHandler      *AuthHandler
	AdminVerifier    TokenVerifier
	StaticDir        string
	DB               *sql.DB
}

func NewHandler(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(CORS)

	r.Route("/api", func(r chi.Router) {
		r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
			if err := cfg.DB.PingContext(req.Context()); err != nil {
				respondJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "database unavailable"})
				return
			}
			respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})

		r.Route("/candidates", func(r chi.Router) {
			r.Get("/", cfg.CandidateHandler.ListCandidates)

			r.Group(func(r chi.Router) {
				r.Use(RequireAdmin(cfg.AdminVerifier))
				r.Post("/", cfg.CandidateHandler.CreateCandidate)
				r.Put("/{id}", cfg.CandidateHandler.UpdateCandidate)
				r.Delete("/{id}", cfg.CandidateHandler.DeleteCandidate)
			})
		})

		r.Route("/votes", func(r chi.Router) {
			r.Post("/", cfg.VoteHandler.CastVote)

			r.Group(func(r chi.Router) {
				r.Use(RequireAdmin(cfg.AdminVerifier))
				r.Delete("/", cfg.VoteHandler.ResetVotes)
			})
		})

		r.Route("/voters", func(r chi.Router) {
			r.Get("/", cfg.VoteHandler.ListVoters)
			r.Get("/{name}/check", cfg.VoteHandler.CheckVoter)
		})

		r.Route("/results", func(r chi.Router) {
			r.Get("/", cfg.ResultHandler.GetResults)

			r.Group(func(r chi.Router) {
				r.Use(RequireAdmin(cfg.AdminVerifier))
				r.Post("/publish", cfg.ResultHandler.PublishResults)
			})
		})

		r.Get("/settings", cfg.ResultHandler.GetSettings)

		r.Post("/admin/login", cfg.AuthHandler.AdminLogin)
	})

	if cfg.StaticDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(cfg.StaticDir)))
	}

	return r
}
