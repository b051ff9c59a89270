package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/CarolZhiLi/GB-quiz-portal/internal/database"
	"github.com/CarolZhiLi/GB-quiz-portal/internal/global"
	"github.com/CarolZhiLi/GB-quiz-portal/internal/logger"
	"github.com/CarolZhiLi/GB-quiz-portal/internal/worker"
)

// initLogger khởi tạo và cấu hình logger cho toàn bộ ứng dụng
func initLogger() {
	// Logger tự đọc environment variables để cấu hình
	if err := logger.Init(nil); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	log := logger.GetAppLogger()
	log.Info("Logger system initialized successfully")
}

// main_thread khởi tạo và chạy Fiber server
func main_thread(app *fiber.App) {
	cfg := global.ServerConfig
	address := cfg.Address

	log := logger.GetAppLogger()
	log.WithFields(map[string]interface{}{
		"address":  address,
		"protocol": "HTTP",
	}).Info("Starting Fiber server...")

	listenConfig := fiber.ListenConfig{
		DisableStartupMessage: false,
	}
	if err := app.Listen(address, listenConfig); err != nil {
		log.Fatalf("Error in Fiber Listen: %v", err)
	}
}

// Hàm main
func main() {
	// Khởi tạo logger
	initLogger()

	// Khởi tạo các biến toàn cục
	InitGlobal()

	// Khởi tạo registry
	InitRegistry()

	log := logger.GetAppLogger()

	// Context điều khiển vòng đời các background worker
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Khởi tạo và chạy Retention Worker (dọn dẹp batch hết hạn)
	sweepInterval := time.Duration(global.ServerConfig.RetentionSweepMinutes) * time.Minute
	retentionWorker, err := worker.NewRetentionWorker(sweepInterval)
	if err != nil {
		log.WithError(err).Error("Failed to create retention worker, continuing without retention worker")
	} else {
		go func() {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(map[string]interface{}{
						"panic": r,
					}).Error("🧹 [RETENTION] Worker goroutine panic")
				}
			}()
			retentionWorker.Start(ctx)
		}()
		log.Info("🧹 [RETENTION] Retention Worker started successfully")
	}

	// Khởi tạo app với cấu hình
	app := InitFiberApp()

	// Bắt tín hiệu shutdown để dừng worker và server gọn gàng
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh

		log.WithFields(map[string]interface{}{
			"signal": sig.String(),
		}).Info("Shutdown signal received, stopping...")

		cancel()
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.WithError(err).Error("Error during server shutdown")
		}
		if err := database.CloseInstance(global.MongoDB_Session); err != nil {
			log.WithError(err).Error("Error closing MongoDB connection")
		}
	}()

	// Chạy Fiber server trên main thread
	main_thread(app)

	log.Info("Server stopped")
}
