// Package router đăng ký route gửi thay đổi câu hỏi.
package router

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v3"

	"github.com/CarolZhiLi/GB-quiz-portal/internal/api/middleware"
	apirouter "github.com/CarolZhiLi/GB-quiz-portal/internal/api/router"
	submissionhdl "github.com/CarolZhiLi/GB-quiz-portal/internal/api/submission/handler"
)

// Register đăng ký route submission lên v1. Mọi vai trò portal đều dùng được,
// service tự rẽ nhánh theo vai trò của người gửi.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	submissionHandler, err := submissionhdl.NewSubmissionHandler(context.Background())
	if err != nil {
		return fmt.Errorf("create submission handler: %w", err)
	}

	portalMiddleware := middleware.RequirePortal()
	apirouter.RegisterRouteWithMiddleware(v1, "/submission", "POST", "/submit", []fiber.Handler{portalMiddleware}, submissionHandler.Submit)

	return nil
}
