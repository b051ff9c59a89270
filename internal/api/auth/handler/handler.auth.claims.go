package authhdl

import (
	"github.com/gofiber/fiber/v3"

	basehdl "github.com/CarolZhiLi/GB-quiz-portal/internal/api/base/handler"
	authsvc "github.com/CarolZhiLi/GB-quiz-portal/internal/api/auth/service"
	"github.com/CarolZhiLi/GB-quiz-portal/internal/common"
)

// AuthHandler xử lý các request liên quan đến xác thực và vai trò
type AuthHandler struct {
	AuthService *authsvc.AuthService
}

// NewAuthHandler tạo mới AuthHandler
func NewAuthHandler() *AuthHandler {
	return &AuthHandler{AuthService: authsvc.NewAuthService()}
}

// RefreshClaims đọc lại claims của người dùng đang gọi từ identity provider.
// Trả về RoleState mới nhất để client cập nhật quyền mà không cần đăng nhập lại.
func (h *AuthHandler) RefreshClaims(c fiber.Ctx) error {
	uid, ok := c.Locals("user_uid").(string)
	if !ok || uid == "" {
		basehdl.HandleResponse(c, nil, common.ErrTokenMissing)
		return nil
	}

	rs, err := h.AuthService.RefreshClaims(c.Context(), uid)
	basehdl.HandleResponse(c, rs, err)
	return nil
}
