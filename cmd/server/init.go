package main

import (
	"github.com/sirupsen/logrus"

	"github.com/CarolZhiLi/GB-quiz-portal/config"
	"github.com/CarolZhiLi/GB-quiz-portal/internal/database"
	"github.com/CarolZhiLi/GB-quiz-portal/internal/global"
	"github.com/CarolZhiLi/GB-quiz-portal/internal/utility"
)

// Hàm khởi tạo các biến toàn cục
func InitGlobal() {
	initColNames()         // Khởi tạo tên các collection trong database
	initValidator()        // Khởi tạo validator
	initConfig()           // Khởi tạo cấu hình server
	initDatabase_MongoDB() // Khởi tạo kết nối database
	initFirebase()         // Khởi tạo Firebase
}

// Hàm khởi tạo tên các collection trong database
func initColNames() {
	global.MongoDB_ColNames.QuizQuestions = "quiz_questions"
	global.MongoDB_ColNames.StagingBatches = "staging_batches"
	global.MongoDB_ColNames.StagingBatchItems = "staging_batch_items"

	logrus.Info("Initialized collection names") // Ghi log thông báo đã khởi tạo tên các collection
}

// Hàm khởi tạo validator (dùng global.InitValidator để đăng ký custom validators: no_xss, quiz_options, user_types)
func initValidator() {
	global.InitValidator()
	logrus.Info("Initialized validator") // Ghi log thông báo đã khởi tạo validator
}

// Hàm khởi tạo cấu hình server
func initConfig() {
	global.ServerConfig = config.NewConfig()
	if global.ServerConfig == nil {
		logrus.Fatalf("Failed to initialize config: config is nil") // Ghi log lỗi nếu khởi tạo cấu hình thất bại
	}
	logrus.Info("Initialized server config") // Ghi log thông báo đã khởi tạo cấu hình server
}

// Hàm khởi tạo kết nối database
func initDatabase_MongoDB() {
	var err error
	global.MongoDB_Session, err = database.GetInstance(global.ServerConfig)
	if err != nil {
		logrus.Fatalf("Failed to get database instance: %v", err) // Ghi log lỗi nếu kết nối database thất bại
	}
	logrus.Info("Connected to MongoDB") // Ghi log thông báo đã kết nối database thành công
}

// initFirebase khởi tạo Firebase Admin SDK
func initFirebase() {
	cfg := global.ServerConfig

	// Identity provider là bắt buộc cho portal: không có Firebase thì middleware
	// xác thực không hoạt động, nhưng vẫn cho server chạy để phục vụ health check
	if cfg.FirebaseProjectID == "" {
		logrus.Warn("Firebase config không đầy đủ, bỏ qua khởi tạo Firebase")
		return
	}

	if err := utility.InitFirebase(cfg); err != nil {
		logrus.Errorf("Failed to initialize Firebase: %v", err)
		return
	}

	logrus.Info("Firebase initialized successfully")
}
