package controllers

import (
	"net/http"

	"github.com/buildmat/buildmat-backend/api/responses"
	"github.com/buildmat/buildmat-backend/pkg/config"
)

// VehicleOptions serves the market's vehicle classes for the slot editor.
func VehicleOptions(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, cfg.Delivery.VehicleCatalog())
	}
}
