// Package worker - RetentionWorker dọn dẹp các staging batch đã duyệt/từ chối
// quá thời gian retention, cùng toàn bộ item của chúng.
package worker

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	authmodels "github.com/CarolZhiLi/GB-quiz-portal/internal/api/auth/models"
	reviewsvc "github.com/CarolZhiLi/GB-quiz-portal/internal/api/review/service"
	"github.com/CarolZhiLi/GB-quiz-portal/internal/logger"
)

// retentionActor là danh tính hệ thống của worker, có quyền người duyệt
// để dọn dẹp batch của mọi tác giả.
var retentionActor = authmodels.RoleState{UID: "retention-worker", IsAdminRole: true}

// RetentionWorker quét định kỳ các batch hết hạn retention và xóa chúng.
//
// Batch approved/rejected được giữ lại một thời gian để người gửi còn xem
// được kết quả duyệt; quá hạn thì batch và item của nó bị xóa hẳn.
type RetentionWorker struct {
	reviewService *reviewsvc.ReviewService
	interval      time.Duration // Khoảng thời gian giữa các lần quét (vd: 1h)
	sweepTimeout  time.Duration // Timeout cho một lần quét
}

// NewRetentionWorker tạo worker mới.
//
// Tham số:
//   - interval: Khoảng cách giữa các lần quét (mặc định: 1h)
func NewRetentionWorker(interval time.Duration) (*RetentionWorker, error) {
	reviewService, err := reviewsvc.NewReviewService()
	if err != nil {
		return nil, err
	}
	if interval < time.Minute {
		interval = time.Hour
	}
	return &RetentionWorker{
		reviewService: reviewService,
		interval:      interval,
		sweepTimeout:  10 * time.Minute,
	}, nil
}

// Start chạy worker trong vòng lặp.
func (w *RetentionWorker) Start(ctx context.Context) {
	log := logger.GetAppLogger()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	log.WithFields(map[string]interface{}{
		"interval": w.interval.String(),
	}).Info("🧹 [RETENTION] Starting Retention Worker...")

	for {
		select {
		case <-ctx.Done():
			log.Info("🧹 [RETENTION] Retention Worker stopped")
			return
		case <-ticker.C:
			w.sweep(ctx, log)
		}
	}
}

// sweep chạy một lần quét: tìm các batch đủ điều kiện dọn dẹp rồi xóa từng batch.
func (w *RetentionWorker) sweep(ctx context.Context, log *logrus.Logger) {
	defer func() {
		if r := recover(); r != nil {
			log.WithFields(map[string]interface{}{
				"panic": r,
			}).Error("🧹 [RETENTION] Panic khi dọn dẹp, sẽ tiếp tục lần quét tiếp theo")
		}
	}()

	sweepCtx, cancel := context.WithTimeout(ctx, w.sweepTimeout)
	defer cancel()

	candidates, err := w.reviewService.ListCleanupCandidates(sweepCtx, time.Now())
	if err != nil {
		log.WithError(err).Error("🧹 [RETENTION] Lỗi lấy danh sách batch hết hạn")
		return
	}
	if len(candidates) == 0 {
		return
	}

	cleaned := 0
	for _, batch := range candidates {
		if err := w.reviewService.CleanupBatch(sweepCtx, batch.ID, retentionActor); err != nil {
			log.WithError(err).WithFields(map[string]interface{}{
				"batchId": batch.ID.Hex(),
			}).Warn("🧹 [RETENTION] Dọn dẹp batch thất bại, bỏ qua")
			continue
		}
		cleaned++
	}

	log.WithFields(map[string]interface{}{
		"candidates": len(candidates),
		"cleaned":    cleaned,
	}).Info("🧹 [RETENTION] Hoàn tất lần quét dọn dẹp")
}
