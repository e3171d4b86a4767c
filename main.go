package main

import (
	"github.com/Akius1/cv-review-sub000/core/logger"
	"github.com/Akius1/cv-review-sub000/core/server"
)

// @title CV Review Consultations API
// @version 1.0
// @description Availability slots, capacity-safe bookings and meeting links for CV review consultations

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:7070
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token. Example: "Bearer {token}"

func main() {
	if err := server.Run(); err != nil {
		logger.Error("run server error", err)
	}
}
