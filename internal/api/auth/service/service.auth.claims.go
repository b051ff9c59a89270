package authsvc

import (
	"context"

	authmodels "github.com/CarolZhiLi/GB-quiz-portal/internal/api/auth/models"
	"github.com/CarolZhiLi/GB-quiz-portal/internal/logger"
	"github.com/CarolZhiLi/GB-quiz-portal/internal/utility"
)

// AuthService xử lý xác thực token và vai trò người dùng
type AuthService struct{}

// NewAuthService tạo mới AuthService
func NewAuthService() *AuthService {
	return &AuthService{}
}

// VerifyToken xác thực ID token và dựng RoleState từ claims trong token
func (s *AuthService) VerifyToken(ctx context.Context, idToken string) (authmodels.RoleState, error) {
	token, err := utility.VerifyIDToken(ctx, idToken)
	if err != nil {
		return authmodels.RoleState{}, err
	}

	email := ""
	if v, ok := token.Claims["email"].(string); ok {
		email = v
	}

	return authmodels.BuildRoleState(token.UID, email, token.Claims), nil
}

// RefreshClaims đọc lại user record từ identity provider để lấy claims mới nhất.
// Dùng khi người dùng vừa được cấp vai trò và cần hiệu lực ngay mà không phải đăng nhập lại.
func (s *AuthService) RefreshClaims(ctx context.Context, uid string) (authmodels.RoleState, error) {
	user, err := utility.GetUserByUID(ctx, uid)
	if err != nil {
		return authmodels.RoleState{}, err
	}

	claims := user.CustomClaims
	if claims == nil {
		claims = map[string]interface{}{}
	}

	rs := authmodels.BuildRoleState(uid, user.Email, claims)

	logger.GetLogger("auth").WithFields(map[string]interface{}{
		"uid":           uid,
		"isAdmin":       rs.IsAdminRole,
		"isOperational": rs.IsOperational,
	}).Info("🔄 [AUTH] Đã làm mới claims cho người dùng")

	return rs, nil
}
