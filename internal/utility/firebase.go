package utility

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"github.com/CarolZhiLi/GB-quiz-portal/config"
	"github.com/CarolZhiLi/GB-quiz-portal/internal/common"
	"github.com/CarolZhiLi/GB-quiz-portal/internal/logger"
)

// ==========================================================================================
// Firebase - khởi tạo và truy cập Firebase App, Auth và Storage
// ==========================================================================================

var (
	firebaseApp  *firebase.App
	firebaseAuth *auth.Client
	firebaseMu   sync.RWMutex
)

// resolveCredentialsPath xác định đường dẫn file credentials của Firebase.
// Ưu tiên cấu hình, sau đó đến biến môi trường GOOGLE_APPLICATION_CREDENTIALS.
func resolveCredentialsPath(cfg *config.Configuration) string {
	if cfg != nil && cfg.FirebaseCredentialsPath != "" {
		return cfg.FirebaseCredentialsPath
	}
	return os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
}

// InitFirebase khởi tạo Firebase App và Auth client từ cấu hình hệ thống.
// Hàm này phải được gọi một lần lúc khởi động, trước khi sử dụng các hàm Get bên dưới.
func InitFirebase(cfg *config.Configuration) error {
	firebaseMu.Lock()
	defer firebaseMu.Unlock()

	if firebaseApp != nil {
		return nil
	}

	ctx := context.Background()
	fbConfig := &firebase.Config{
		ProjectID:     cfg.FirebaseProjectID,
		StorageBucket: cfg.FirebaseStorageBucket,
	}

	var opts []option.ClientOption
	if credPath := resolveCredentialsPath(cfg); credPath != "" {
		if _, err := os.Stat(credPath); err != nil {
			return common.NewError(common.ErrCodeExternalService,
				fmt.Sprintf("Không tìm thấy file credentials Firebase: %s", credPath),
				common.StatusInternalServerError, err)
		}
		opts = append(opts, option.WithCredentialsFile(credPath))
	}

	app, err := firebase.NewApp(ctx, fbConfig, opts...)
	if err != nil {
		return common.NewError(common.ErrCodeExternalService,
			"Không thể khởi tạo Firebase App",
			common.StatusInternalServerError, err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return common.NewError(common.ErrCodeExternalService,
			"Không thể khởi tạo Firebase Auth client",
			common.StatusInternalServerError, err)
	}

	firebaseApp = app
	firebaseAuth = authClient

	logger.GetAppLogger().WithField("project_id", cfg.FirebaseProjectID).Info("✅ Firebase đã được khởi tạo")
	return nil
}

// GetFirebaseAuth trả về Firebase Auth client đã khởi tạo
func GetFirebaseAuth() (*auth.Client, error) {
	firebaseMu.RLock()
	defer firebaseMu.RUnlock()
	if firebaseAuth == nil {
		return nil, common.NewError(common.ErrCodeExternalService,
			"Firebase chưa được khởi tạo",
			common.StatusInternalServerError, nil)
	}
	return firebaseAuth, nil
}

// GetFirebaseStorageBucket trả về bucket mặc định của Firebase Storage
func GetFirebaseStorageBucket(ctx context.Context) (*storage.BucketHandle, error) {
	firebaseMu.RLock()
	app := firebaseApp
	firebaseMu.RUnlock()
	if app == nil {
		return nil, common.NewError(common.ErrCodeExternalService,
			"Firebase chưa được khởi tạo",
			common.StatusInternalServerError, nil)
	}

	storageClient, err := app.Storage(ctx)
	if err != nil {
		return nil, common.NewError(common.ErrCodeExternalService,
			"Không thể khởi tạo Firebase Storage client",
			common.StatusInternalServerError, err)
	}

	bucket, err := storageClient.DefaultBucket()
	if err != nil {
		return nil, common.NewError(common.ErrCodeExternalService,
			"Không thể truy cập bucket mặc định của Firebase Storage",
			common.StatusInternalServerError, err)
	}
	return bucket, nil
}

// VerifyIDToken xác thực Firebase ID token và trả về thông tin token đã decode.
// Token hết hạn hoặc không hợp lệ sẽ trả về lỗi xác thực tương ứng.
func VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error) {
	authClient, err := GetFirebaseAuth()
	if err != nil {
		return nil, err
	}

	token, err := authClient.VerifyIDToken(ctx, idToken)
	if err != nil {
		if strings.Contains(err.Error(), "expired") {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrTokenInvalid
	}
	return token, nil
}

// GetUserByUID lấy thông tin người dùng Firebase theo UID
func GetUserByUID(ctx context.Context, uid string) (*auth.UserRecord, error) {
	authClient, err := GetFirebaseAuth()
	if err != nil {
		return nil, err
	}

	user, err := authClient.GetUser(ctx, uid)
	if err != nil {
		return nil, common.ErrUserNotFound
	}
	return user, nil
}
