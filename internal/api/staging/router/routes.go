// Package router đăng ký các route thuộc domain Staging: tạo batch, thêm item, liệt kê.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	authmodels "github.com/CarolZhiLi/GB-quiz-portal/internal/api/auth/models"
	"github.com/CarolZhiLi/GB-quiz-portal/internal/api/middleware"
	apirouter "github.com/CarolZhiLi/GB-quiz-portal/internal/api/router"
	staginghdl "github.com/CarolZhiLi/GB-quiz-portal/internal/api/staging/handler"
)

// Register đăng ký tất cả route staging lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	stagingHandler, err := staginghdl.NewStagingHandler()
	if err != nil {
		return fmt.Errorf("create staging handler: %w", err)
	}

	portalMiddleware := middleware.RequirePortal()
	adminMiddleware := middleware.RequireRoles(authmodels.RoleAdmin)

	apirouter.RegisterRouteWithMiddleware(v1, "/staging/batches", "POST", "/", []fiber.Handler{portalMiddleware}, stagingHandler.CreateBatch)
	apirouter.RegisterRouteWithMiddleware(v1, "/staging/batches", "POST", "/:id/items", []fiber.Handler{portalMiddleware}, stagingHandler.AddItem)
	apirouter.RegisterRouteWithMiddleware(v1, "/staging/batches", "GET", "/:id/items", []fiber.Handler{portalMiddleware}, stagingHandler.ListItems)
	apirouter.RegisterRouteWithMiddleware(v1, "/staging/batches", "GET", "/mine", []fiber.Handler{portalMiddleware}, stagingHandler.ListMine)

	// Danh sách toàn bộ batch chỉ dành cho người duyệt
	apirouter.RegisterRouteWithMiddleware(v1, "/staging/batches", "GET", "/", []fiber.Handler{adminMiddleware}, stagingHandler.ListAll)

	return nil
}
