package middleware

import (
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v3"

	authmodels "github.com/CarolZhiLi/GB-quiz-portal/internal/api/auth/models"
	authsvc "github.com/CarolZhiLi/GB-quiz-portal/internal/api/auth/service"
	"github.com/CarolZhiLi/GB-quiz-portal/internal/common"
	"github.com/CarolZhiLi/GB-quiz-portal/internal/utility"
)

// LocalRoleState là key lưu RoleState trong fiber locals
const LocalRoleState = "roleState"

// AuthManager quản lý xác thực và phân quyền người dùng
type AuthManager struct {
	AuthService *authsvc.AuthService
	Cache       *utility.Cache
}

var (
	authManagerInstance *AuthManager
	authManagerOnce     sync.Once
)

// GetAuthManager trả về instance duy nhất của AuthManager (singleton pattern)
func GetAuthManager() *AuthManager {
	authManagerOnce.Do(func() {
		authManagerInstance = &AuthManager{
			AuthService: authsvc.NewAuthService(),
			// Cache RoleState theo token với thời gian sống 5 phút và dọn dẹp 10 phút
			Cache: utility.NewCache(5*time.Minute, 10*time.Minute),
		}
	})
	return authManagerInstance
}

// extractBearerToken lấy token từ header Authorization: Bearer <token>
func extractBearerToken(c fiber.Ctx) (string, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", common.ErrTokenMissing
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", common.ErrTokenInvalid
	}
	return parts[1], nil
}

// resolveRoleState xác thực token (qua cache) và trả về RoleState
func (am *AuthManager) resolveRoleState(c fiber.Ctx, token string) (authmodels.RoleState, error) {
	cacheKey := "role_state:" + token
	if cached, found := am.Cache.Get(cacheKey); found {
		if rs, ok := cached.(authmodels.RoleState); ok {
			return rs, nil
		}
	}

	rs, err := am.AuthService.VerifyToken(c.Context(), token)
	if err != nil {
		return authmodels.RoleState{}, err
	}

	am.Cache.Set(cacheKey, rs)
	return rs, nil
}

// RequireRoles trả về middleware yêu cầu người dùng có ít nhất một trong các vai trò.
// Không có token hợp lệ → 401; có token nhưng thiếu vai trò → 403.
func RequireRoles(roles ...string) fiber.Handler {
	return func(c fiber.Ctx) error {
		token, err := extractBearerToken(c)
		if err != nil {
			HandleErrorResponse(c, err)
			return nil
		}

		rs, err := GetAuthManager().resolveRoleState(c, token)
		if err != nil {
			HandleErrorResponse(c, err)
			return nil
		}

		if !rs.HasAnyRole(roles...) {
			HandleErrorResponse(c, common.ErrNoPortalRole)
			return nil
		}

		c.Locals(LocalRoleState, rs)
		c.Locals("user_uid", rs.UID)
		c.Locals("user_email", rs.Email)
		return c.Next()
	}
}

// RequirePortal trả về middleware yêu cầu quyền truy cập portal (admin hoặc operational)
func RequirePortal() fiber.Handler {
	return RequireRoles(authmodels.RoleAdmin, authmodels.RoleOperational)
}

// GetRoleState lấy RoleState từ fiber locals (đã được middleware lưu)
func GetRoleState(c fiber.Ctx) (authmodels.RoleState, bool) {
	rs, ok := c.Locals(LocalRoleState).(authmodels.RoleState)
	return rs, ok
}
