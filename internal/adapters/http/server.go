// Package http exposes a read-only JSON API over the workshop service,
// plus Prometheus metrics. Mutations go through the MCP surface.
package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aretw0/bigpicture/internal/presentation/graph"
	"github.com/aretw0/bigpicture/pkg/domain"
	"github.com/aretw0/bigpicture/pkg/flow"
	"github.com/aretw0/bigpicture/pkg/query"
	"github.com/aretw0/bigpicture/pkg/workshop"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server serves the read-only workshop API.
type Server struct {
	svc *workshop.Service
	log *slog.Logger
}

// NewHandler creates the HTTP handler for the workshop API.
func NewHandler(svc *workshop.Service, log *slog.Logger) http.Handler {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	s := &Server{svc: svc, log: log}

	r := chi.NewRouter()
	r.Use(metricsMiddleware)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/workshops", func(r chi.Router) {
		r.Get("/", s.listWorkshops)
		r.Route("/{workshopID}", func(r chi.Router) {
			r.Get("/", s.getWorkshop)
			r.Get("/search", s.searchElements)
			r.Get("/timeline", s.getTimeline)
			r.Get("/contexts", s.getContexts)
			r.Get("/stats", s.getStatistics)
			r.Get("/flow", s.getFlow)
			r.Get("/graph", s.getGraph)
			r.Get("/export", s.exportWorkshop)
		})
	})

	return r
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("response encode failed", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrWorkshopNotFound),
		errors.Is(err, domain.ErrElementNotFound),
		errors.Is(err, domain.ErrContextNotFound):
		status = http.StatusNotFound
	}
	var verr *workshop.ValidationError
	if errors.As(err, &verr) {
		status = http.StatusBadRequest
	}
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) listWorkshops(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.svc.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"workshops": summaries,
		"total":     len(summaries),
	})
}

func (s *Server) getWorkshop(w http.ResponseWriter, r *http.Request) {
	ws, err := s.svc.Get(r.Context(), chi.URLParam(r, "workshopID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, ws)
}

func (s *Server) searchElements(w http.ResponseWriter, r *http.Request) {
	res, err := s.svc.Search(r.Context(), chi.URLParam(r, "workshopID"),
		r.URL.Query().Get("q"), filterFromQuery(r), pageFromQuery(r))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"query":      r.URL.Query().Get("q"),
		"matches":    res.Elements,
		"pagination": res.Page,
	})
}

func (s *Server) getTimeline(w http.ResponseWriter, r *http.Request) {
	res, err := s.svc.Timeline(r.Context(), chi.URLParam(r, "workshopID"),
		filterFromQuery(r), pageFromQuery(r))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"timeline":   res.Elements,
		"pagination": res.Page,
	})
}

type contextOverviewResponse struct {
	Context       *domain.BoundedContext     `json:"context"`
	Elements      []*domain.Element          `json:"elements"`
	Pagination    query.Page                 `json:"pagination"`
	TypeBreakdown map[domain.ElementType]int `json:"type_breakdown"`
	TotalElements int                        `json:"total_elements"`
}

func (s *Server) getContexts(w http.ResponseWriter, r *http.Request) {
	res, err := s.svc.ContextOverviews(r.Context(), chi.URLParam(r, "workshopID"),
		r.URL.Query().Get("context_id"), pageFromQuery(r))
	if err != nil {
		s.writeError(w, err)
		return
	}

	out := make([]contextOverviewResponse, 0, len(res.Overviews))
	for _, ov := range res.Overviews {
		out = append(out, contextOverviewResponse{
			Context:       ov.Context,
			Elements:      ov.Elements,
			Pagination:    ov.Page,
			TypeBreakdown: ov.TypeBreakdown,
			TotalElements: ov.TotalElements,
		})
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) getStatistics(w http.ResponseWriter, r *http.Request) {
	res, err := s.svc.Statistics(r.Context(), chi.URLParam(r, "workshopID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, res.Statistics)
}

func (s *Server) getFlow(w http.ResponseWriter, r *http.Request) {
	opts := flow.Options{
		MaxDepth:    intQuery(r, "max_depth"),
		MaxElements: intQuery(r, "max_elements"),
	}
	res, err := s.svc.TraceFlow(r.Context(), chi.URLParam(r, "workshopID"),
		r.URL.Query().Get("start"), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, res.Trace)
}

func (s *Server) getGraph(w http.ResponseWriter, r *http.Request) {
	ws, err := s.svc.Get(r.Context(), chi.URLParam(r, "workshopID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(graph.GenerateMermaid(ws)))
}

func (s *Server) exportWorkshop(w http.ResponseWriter, r *http.Request) {
	includeMetadata := r.URL.Query().Get("include_metadata") != "false"
	payload, err := s.svc.Export(r.Context(), chi.URLParam(r, "workshopID"), includeMetadata)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(payload)
}

func filterFromQuery(r *http.Request) query.Filter {
	return query.Filter{
		Type:      domain.ElementType(r.URL.Query().Get("type")),
		ContextID: r.URL.Query().Get("context_id"),
	}
}

func pageFromQuery(r *http.Request) workshop.PageInput {
	return workshop.PageInput{
		Page:     intQuery(r, "page"),
		PageSize: intQuery(r, "page_size"),
	}
}

func intQuery(r *http.Request, key string) int {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return 0
	}
	return v
}
