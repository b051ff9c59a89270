// Package router đăng ký route sinh câu hỏi.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	generationhdl "github.com/CarolZhiLi/GB-quiz-portal/internal/api/generation/handler"
	"github.com/CarolZhiLi/GB-quiz-portal/internal/api/middleware"
	apirouter "github.com/CarolZhiLi/GB-quiz-portal/internal/api/router"
	"github.com/CarolZhiLi/GB-quiz-portal/internal/logger"
)

// Register đăng ký route generation lên v1. Mọi vai trò portal đều dùng được.
// Khi dịch vụ sinh câu hỏi chưa cấu hình, route bị bỏ qua và server vẫn chạy.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	generationHandler, err := generationhdl.NewGenerationHandler()
	if err != nil {
		logger.GetAppLogger().WithError(fmt.Errorf("create generation handler: %w", err)).
			Warn("🤖 [GENERATION] Bỏ qua route sinh câu hỏi do thiếu cấu hình")
		return nil
	}

	portalMiddleware := middleware.RequirePortal()
	apirouter.RegisterRouteWithMiddleware(v1, "/generation", "POST", "/generate", []fiber.Handler{portalMiddleware}, generationHandler.Generate)

	return nil
}
