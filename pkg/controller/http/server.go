package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/secmon-lab/casebook/pkg/usecase"
)

type Server struct {
	router *chi.Mux
	uc     *usecase.UseCases
}

func New(uc *usecase.UseCases) *Server {
	r := chi.NewRouter()
	s := &Server{
		router: r,
		uc:     uc,
	}

	r.Use(loggingMiddleware)
	r.Use(panicRecoveryMiddleware)

	r.Route("/api", func(r chi.Router) {
		r.Route("/incidents", func(r chi.Router) {
			r.Post("/", s.createIncident)
			r.Get("/", s.listIncidents)

			r.Route("/{incidentID}", func(r chi.Router) {
				r.Get("/", s.getIncident)
				r.Delete("/", s.deleteIncident)
				r.Put("/status", s.updateIncidentStatus)

				r.Post("/waves", s.addWave)
				r.Get("/waves", s.listWaves)

				r.Post("/mitigations", s.addMitigation)
				r.Get("/mitigations", s.listMitigations)

				r.Post("/evidence", s.addManualEvidence)
				r.Get("/evidence", s.listEvidence)
				r.Post("/evidence/upload", s.uploadEvidence)

				r.Post("/sync", s.syncSnapshot)
				r.Post("/status-update", s.postStatusUpdate)
				r.Post("/alert-rule", s.provisionAlertRule)

				r.Get("/audit", s.listAuditEntries)
				r.Get("/communications", s.listCommunications)
			})
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			handleError(w, r, err)
		}
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
