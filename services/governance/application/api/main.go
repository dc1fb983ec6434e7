package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/tocampus/governance/pkg/app"
	"github.com/tocampus/governance/pkg/config"
	"github.com/tocampus/governance/services/governance/application/handlers"
	appsvcs "github.com/tocampus/governance/services/governance/application/services"
)

// GovernanceRoutes registers content governance endpoints on the provided chi router.
func GovernanceRoutes(r chi.Router, a *app.Application) {
	production := a.Config != nil && a.Config.Environment == config.EnvProduction
	Mount(r, appsvcs.New(a), production)
}

// Mount registers the governance endpoints backed by svcs.
func Mount(r chi.Router, svcs *appsvcs.Services, production bool) {
	r.Group(func(r chi.Router) {
		r.Route("/content", func(r chi.Router) {
			r.Post("/", handlers.NewSubmitContentHandler(svcs, production).Execute)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", handlers.NewGetContentHandler(svcs, production).Execute)
				r.Get("/review", handlers.NewReviewContentHandler(svcs, production).Execute)
				r.Get("/audit", handlers.NewContentAuditHandler(svcs, production).Execute)
				r.Post("/approve", handlers.NewApproveContentHandler(svcs, production).Execute)
				r.Post("/reject", handlers.NewRejectContentHandler(svcs, production).Execute)
				r.Post("/publish", handlers.NewPublishContentHandler(svcs, production).Execute)
				r.Post("/resubmit", handlers.NewResubmitContentHandler(svcs, production).Execute)
			})
		})
		r.Get("/audit", handlers.NewListAuditHandler(svcs, production).Execute)
	})
}
