// Package router đăng ký các route thuộc domain Question: CRUD + danh sách đã sắp xếp.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	authmodels "github.com/CarolZhiLi/GB-quiz-portal/internal/api/auth/models"
	"github.com/CarolZhiLi/GB-quiz-portal/internal/api/middleware"
	questionhdl "github.com/CarolZhiLi/GB-quiz-portal/internal/api/question/handler"
	apirouter "github.com/CarolZhiLi/GB-quiz-portal/internal/api/router"
)

// Register đăng ký tất cả route question lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	questionHandler, err := questionhdl.NewQuestionHandler()
	if err != nil {
		return fmt.Errorf("create question handler: %w", err)
	}

	// Đọc: mọi vai trò portal. Ghi: chỉ admin.
	r.RegisterCRUDRoutes(v1, "/questions", questionHandler, apirouter.ReadWriteConfig, authmodels.RoleAdmin)

	portalMiddleware := middleware.RequirePortal()
	apirouter.RegisterRouteWithMiddleware(v1, "/questions", "GET", "/list", []fiber.Handler{portalMiddleware}, questionHandler.List)

	return nil
}
