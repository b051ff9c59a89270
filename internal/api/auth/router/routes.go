// Package router đăng ký các route thuộc domain Auth: refresh claims.
package router

import (
	"github.com/gofiber/fiber/v3"

	authhdl "github.com/CarolZhiLi/GB-quiz-portal/internal/api/auth/handler"
	"github.com/CarolZhiLi/GB-quiz-portal/internal/api/middleware"
	apirouter "github.com/CarolZhiLi/GB-quiz-portal/internal/api/router"
)

// Register đăng ký tất cả route auth lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	authHandler := authhdl.NewAuthHandler()

	portalMiddleware := middleware.RequirePortal()
	apirouter.RegisterRouteWithMiddleware(v1, "/auth", "POST", "/refresh-claims", []fiber.Handler{portalMiddleware}, authHandler.RefreshClaims)

	return nil
}
