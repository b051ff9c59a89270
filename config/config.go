package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
)

// Configuration chứa thông tin tĩnh cần thiết để chạy ứng dụng
type Configuration struct {
	Address               string `env:"ADDRESS" envDefault:":8080"`                // Địa chỉ server
	MongoDB_ConnectionURI string `env:"MONGODB_CONNECTION_URI,required"`           // URL kết nối cơ sở dữ liệu
	MongoDB_DBName        string `env:"MONGODB_DBNAME,required"`                   // Tên cơ sở dữ liệu quiz portal
	CORS_Origins          string `env:"CORS_ORIGINS" envDefault:"*"`               // Các origins được phép (phân cách bởi dấu phẩy, * = tất cả)
	CORS_AllowCredentials bool   `env:"CORS_ALLOW_CREDENTIALS" envDefault:"false"` // Cho phép gửi credentials
	RateLimit_Max         int    `env:"RATE_LIMIT_MAX" envDefault:"100"`           // Số request tối đa trong window (0 = disable rate limit)
	RateLimit_Window      int    `env:"RATE_LIMIT_WINDOW" envDefault:"60"`         // Thời gian window (giây)
	RateLimit_Enabled     bool   `env:"RATE_LIMIT_ENABLED" envDefault:"true"`      // Bật/tắt rate limiting

	// Firebase Configuration
	FirebaseProjectID       string `env:"FIREBASE_PROJECT_ID"`       // Firebase Project ID
	FirebaseCredentialsPath string `env:"FIREBASE_CREDENTIALS_PATH"` // Đường dẫn đến service account JSON
	FirebaseStorageBucket   string `env:"FIREBASE_STORAGE_BUCKET"`   // Bucket chứa ảnh câu hỏi

	// Generation API Configuration
	GenerationAPIKey  string `env:"GENERATION_API_KEY"`                   // API key cho dịch vụ sinh câu hỏi
	GenerationModel   string `env:"GENERATION_MODEL" envDefault:"gpt-4o"` // Model mặc định
	GenerationBaseURL string `env:"GENERATION_BASE_URL"`                  // Base URL (để trống = mặc định của provider)

	// Retention / worker
	RetentionDays         int `env:"RETENTION_DAYS" envDefault:"14"`          // Số ngày giữ batch đã duyệt/từ chối
	RetentionSweepMinutes int `env:"RETENTION_SWEEP_MINUTES" envDefault:"60"` // Chu kỳ quét dọn batch hết hạn (phút)
}

// getEnvPath trả về đường dẫn đến file env dựa trên môi trường
func getEnvPath() string {
	// Mặc định sử dụng môi trường development
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	currentDir, err := os.Getwd()
	if err != nil {
		// Sử dụng fmt.Printf vì logger có thể chưa được init ở đây
		fmt.Printf("Không thể lấy được thư mục hiện tại: %v\n", err)
		return ""
	}

	// Tìm thư mục config/env bằng cách đi lên dần
	for {
		envDir := filepath.Join(currentDir, "config", "env")
		if _, err := os.Stat(envDir); err == nil {
			return filepath.Join(envDir, fmt.Sprintf("%s.env", env))
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return ""
		}
		currentDir = parentDir
	}
}

// NewConfig sẽ đọc dữ liệu cấu hình từ file env
func NewConfig() *Configuration {
	envPath := getEnvPath()
	if envPath != "" {
		if err := godotenv.Load(envPath); err != nil {
			// Không fatal: cho phép chạy với env đã export sẵn (container, CI)
			fmt.Printf("Không thể load file env tại %s: %v\n", envPath, err)
		}
	}

	cfg := Configuration{}
	if err := env.Parse(&cfg); err != nil {
		fmt.Printf("Lỗi khi parse config: %+v\n", err)
		return nil
	}

	return &cfg
}
