package app

import (
	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/http/middleware"
	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/platform/logger"
)

type Middleware struct {
	Auth *middleware.AuthMiddleware
}

func wireMiddleware(log *logger.Logger, serviceset Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: middleware.NewAuthMiddleware(log, serviceset.Auth),
	}
}
