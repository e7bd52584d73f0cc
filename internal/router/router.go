package router

import (
	"github.com/go-chi/chi/v5"

	"frotacheck/internal/auth"
	"frotacheck/internal/handler"
	mw "frotacheck/internal/middleware"
	"frotacheck/internal/models"
)

func New(
	jwtSecret string,
	authH *handler.AuthHandler,
	templateH *handler.TemplateHandler,
	equipH *handler.EquipmentHandler,
	inspH *handler.InspectionHandler,
	legendH *handler.LegendHandler,
	journeyH *handler.JourneyHandler,
	dashH *handler.DashboardHandler,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(mw.Recovery)
	r.Use(mw.Logger)
	r.Use(mw.CORS)

	r.Route("/api/v1", func(r chi.Router) {
		// Public routes
		r.Post("/auth/login", authH.Login)
		r.Post("/auth/register", authH.Register)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(jwtSecret))

			// Auth
			r.Get("/auth/me", authH.Me)

			// Equipment (drivers pick one when starting an inspection)
			r.Get("/equipamentos", equipH.List)
			r.Get("/equipamentos/{equipId}", equipH.Get)

			// Legends are read by the inspection screens
			r.Get("/legendas", legendH.List)

			// Inspection sessions
			r.Post("/inspecoes/sessoes", inspH.Start)
			r.Get("/inspecoes/sessoes/{sessionId}", inspH.Get)
			r.Put("/inspecoes/sessoes/{sessionId}/equipamento", inspH.SelectEquipment)
			r.Put("/inspecoes/sessoes/{sessionId}/respostas", inspH.Answer)
			r.Post("/inspecoes/sessoes/{sessionId}/enviar", inspH.Submit)

			// Submission history and viewer
			r.Get("/inspecoes/historico", inspH.History)
			r.Get("/inspecoes/resolvidos/{subId}", inspH.GetSubmission)

			// Work journey
			r.Get("/jornada/atual", journeyH.Current)
			r.Post("/jornada", journeyH.Clock)

			// Admin-only routes
			r.Group(func(r chi.Router) {
				r.Use(auth.RequireRole(models.RoleAdmin))

				r.Get("/dashboard", dashH.Dashboard)

				r.Get("/templates", templateH.List)
				r.Post("/templates", templateH.Create)
				r.Get("/templates/{templateId}", templateH.Get)
				r.Put("/templates/{templateId}", templateH.Update)
				r.Delete("/templates/{templateId}", templateH.Delete)

				r.Post("/equipamentos", equipH.Create)
				r.Get("/equipamentos/pendentes/lista", equipH.Pending)
				r.Put("/equipamentos/{equipId}/checklist", equipH.Link)
				r.Delete("/equipamentos/{equipId}/checklist", equipH.Unlink)

				r.Post("/legendas", legendH.Create)
				r.Put("/legendas/{legendId}", legendH.Update)
				r.Delete("/legendas/{legendId}", legendH.Delete)
			})
		})
	})

	return r
}
