package internal

import (
	"net/http"

	"informant/internal/controllers"
	"informant/internal/providers"
)

func InitRoutes(apiController *controllers.ApiController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/days", http.HandlerFunc(apiController.GetDays))
	routers.Get("/day", http.HandlerFunc(apiController.GetDay))
	routers.Get("/fields", http.HandlerFunc(apiController.GetFields))
	routers.Get("/series", http.HandlerFunc(apiController.GetSeries))
	routers.Get("/gaps", http.HandlerFunc(apiController.GetGaps))
	routers.Post("/reload", http.HandlerFunc(apiController.Reload))
	return routers
}
