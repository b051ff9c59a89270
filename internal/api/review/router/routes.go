// Package router đăng ký các route thuộc domain Review: duyệt, từ chối, gửi lại, dọn dẹp batch.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	authmodels "github.com/CarolZhiLi/GB-quiz-portal/internal/api/auth/models"
	"github.com/CarolZhiLi/GB-quiz-portal/internal/api/middleware"
	reviewhdl "github.com/CarolZhiLi/GB-quiz-portal/internal/api/review/handler"
	apirouter "github.com/CarolZhiLi/GB-quiz-portal/internal/api/router"
)

// Register đăng ký tất cả route review lên v1.
// Duyệt/từ chối chỉ dành cho admin; gửi lại và dọn dẹp mở cho tác giả của batch.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	reviewHandler, err := reviewhdl.NewReviewHandler()
	if err != nil {
		return fmt.Errorf("create review handler: %w", err)
	}

	adminMiddleware := middleware.RequireRoles(authmodels.RoleAdmin)
	portalMiddleware := middleware.RequirePortal()

	apirouter.RegisterRouteWithMiddleware(v1, "/review/batches", "GET", "/pending", []fiber.Handler{adminMiddleware}, reviewHandler.ListPending)
	apirouter.RegisterRouteWithMiddleware(v1, "/review/batches", "POST", "/:id/approve", []fiber.Handler{adminMiddleware}, reviewHandler.Approve)
	apirouter.RegisterRouteWithMiddleware(v1, "/review/batches", "POST", "/:id/reject", []fiber.Handler{adminMiddleware}, reviewHandler.Reject)
	// Gửi lại và dọn dẹp mở cho tác giả của batch; quyền sở hữu kiểm tra ở service
	apirouter.RegisterRouteWithMiddleware(v1, "/review/batches", "POST", "/:id/resubmit", []fiber.Handler{portalMiddleware}, reviewHandler.Resubmit)
	apirouter.RegisterRouteWithMiddleware(v1, "/review/batches", "DELETE", "/:id/cleanup", []fiber.Handler{portalMiddleware}, reviewHandler.Cleanup)

	return nil
}
