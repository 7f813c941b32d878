package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/stallmarket/pkg/app"
	"github.com/ghuser/stallmarket/pkg/auth"
	"github.com/ghuser/stallmarket/services/item/application/handlers"
	appsvcs "github.com/ghuser/stallmarket/services/item/application/services"
)

// ItemRoutes registers item endpoints on the provided chi router.
// Reads and the sold transition are open; create and delete require an
// authenticated session because they are owner-stamped or owner-scoped.
func ItemRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)
	r.Route("/items", func(r chi.Router) {
		r.Get("/", handlers.NewGetItemsHandler(svcs).Execute)
		r.Get("/{itemID}", handlers.NewGetItemHandler(svcs).Execute)
		r.Patch("/{itemID}/status", handlers.NewMarkItemSoldHandler(svcs).Execute)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(a.SessionStore, a.Logger))
			r.Post("/", handlers.NewPostItemHandler(svcs).Execute)
			r.Delete("/{itemID}", handlers.NewDeleteItemHandler(svcs).Execute)
		})
	})
}
