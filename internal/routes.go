package internal

import (
	"chronos/internal/controllers"
	"chronos/internal/providers"
	"net/http"
)

func InitRoutes(documentController *controllers.DocumentController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/timers", http.HandlerFunc(documentController.GetTimers))
	routers.Put("/timers", http.HandlerFunc(documentController.PutTimers))
	return routers
}
