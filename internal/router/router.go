package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "pet-care-log/docs"
	"pet-care-log/internal/domain/careevents"
	"pet-care-log/internal/domain/conversation"
	"pet-care-log/internal/middleware"
	"pet-care-log/internal/platform/logger"
	"pet-care-log/internal/ports/messaging"
)

type Options struct {
	// Sin repo el store se reporta como no disponible (503 / respuesta de configuración).
	Events careevents.Repository

	Parser   messaging.EventParser
	Replier  messaging.Replier
	Profiles messaging.ProfileLookup

	// Vacío => la API de lectura responde 404.
	AdminToken string

	Logger logger.Logger
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	if opts.Events == nil {
		log.Error("no care event store configured", nil)
	}

	// Services por módulo
	eventsSvc := careevents.NewService(opts.Events)
	convSvc := conversation.NewService(conversation.Options{
		Events:   eventsSvc,
		Profiles: opts.Profiles,
		Replier:  opts.Replier,
		Logger:   log,
	})

	// Rutas por módulo
	if opts.Parser != nil {
		conversation.RegisterRoutes(r, convSvc, opts.Parser)
	}

	r.Group(func(ar chi.Router) {
		ar.Use(middleware.AdminToken(opts.AdminToken))
		careevents.RegisterRoutes(ar, eventsSvc)
	})

	return r
}
