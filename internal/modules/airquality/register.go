package airquality

import (
	"net/http"

	"airquality-server/internal/modules/airquality/controller"
	"airquality-server/internal/modules/airquality/service"
)

func RegisterFeature(mux *http.ServeMux, router *service.Router, opts controller.Options) {
	airQualityController := controller.NewAirQualityController(router, opts)
	airQualityController.RegisterRoutes(mux)
}
