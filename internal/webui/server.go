// Package webui serves a finished report over HTTP so dashboards and
// teammates can browse results without shell access to the runner box.
package webui

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"sort"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/YassineDev91/smart-contract-eval/internal/report"
	"github.com/YassineDev91/smart-contract-eval/internal/state"
)

var errNotFound = errors.New("not found")

// Server exposes one report file, read fresh on every request so a rerun
// shows up without restarting.
type Server struct {
	ReportPath     string
	Runs           *state.Store // optional run log behind /api/runs
	AllowedOrigins []string
}

// Handler builds the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := chi.NewRouter()

	if len(s.AllowedOrigins) > 0 {
		mux.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.AllowedOrigins,
			AllowedMethods: []string{"GET", "OPTIONS"},
		}))
	}

	mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.Get("/", s.wrap(s.handleIndex))
	mux.Get("/api/report", s.wrap(s.handleReport))
	mux.Get("/api/targets", s.wrap(s.handleTargets))
	mux.Get("/api/stats", s.wrap(s.handleStats))
	mux.Get("/api/contracts/{model}/{contract}", s.wrap(s.handleContract))
	mux.Get("/api/runs", s.wrap(s.handleRuns))

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

func (s *Server) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := h(w, req); err != nil {
			if os.IsNotExist(err) {
				http.Error(w, "no report yet, run `sceval analyze` first", http.StatusNotFound)
				return
			}
			if errors.Is(err, errNotFound) {
				http.Error(w, "not found", http.StatusNotFound)
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}

// GET / renders the report as a standalone HTML page.
func (s *Server) handleIndex(w http.ResponseWriter, req *http.Request) error {
	r, err := report.Load(s.ReportPath)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return (&report.HTMLFormatter{}).Format(w, r)
}

// GET /api/report streams the report file exactly as it was written.
func (s *Server) handleReport(w http.ResponseWriter, req *http.Request) error {
	data, err := os.ReadFile(s.ReportPath)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	_, err = w.Write(data)
	return err
}

// GET /api/targets lists the report keys.
func (s *Server) handleTargets(w http.ResponseWriter, req *http.Request) error {
	r, err := report.Load(s.ReportPath)
	if err != nil {
		return err
	}

	targets := make([]string, 0, len(r))
	for key := range r {
		targets = append(targets, key)
	}
	sort.Strings(targets)

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(map[string]any{
		"count":   len(targets),
		"targets": targets,
	})
}

// GET /api/stats returns the aggregate pass counts.
func (s *Server) handleStats(w http.ResponseWriter, req *http.Request) error {
	r, err := report.Load(s.ReportPath)
	if err != nil {
		return err
	}

	stats := r.Stats()
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(map[string]any{
		"targets":        stats.Targets,
		"solc_passed":    stats.SolcPassed,
		"slither_passed": stats.SlitherPassed,
		"models":         len(r.Models()),
	})
}

// GET /api/contracts/{model}/{contract} returns a single record.
func (s *Server) handleContract(w http.ResponseWriter, req *http.Request) error {
	r, err := report.Load(s.ReportPath)
	if err != nil {
		return err
	}

	key := chi.URLParam(req, "model") + "/" + chi.URLParam(req, "contract")
	entry, ok := r[key]
	if !ok {
		return errNotFound
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(entry)
}

// GET /api/runs lists recent runs from the local run log.
func (s *Server) handleRuns(w http.ResponseWriter, req *http.Request) error {
	w.Header().Set("Content-Type", "application/json")
	if s.Runs == nil {
		return json.NewEncoder(w).Encode([]any{})
	}
	return json.NewEncoder(w).Encode(s.Runs.Recent(0))
}
