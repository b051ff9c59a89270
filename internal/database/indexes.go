package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/CarolZhiLi/GB-quiz-portal/internal/logger"
)

// EnsureQuizIndexes tạo các index cần thiết cho các collection của portal.
// Gọi một lần khi khởi động; CreateMany bỏ qua index đã tồn tại.
func EnsureQuizIndexes(ctx context.Context, db *mongo.Database, questionCol, batchCol, itemCol string) {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	log := logger.GetAppLogger()

	ensure := func(colName string, models []mongo.IndexModel) {
		_, err := db.Collection(colName).Indexes().CreateMany(ctx, models)
		if err != nil {
			log.WithError(err).Warnf("Failed to ensure indexes for %s", colName)
			return
		}
		log.Infof("Ensured indexes for %s", colName)
	}

	ensure(questionCol, []mongo.IndexModel{
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "level", Value: 1}}},
	})

	ensure(batchCol, []mongo.IndexModel{
		{Keys: bson.D{{Key: "createdByUid", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	})

	ensure(itemCol, []mongo.IndexModel{
		{Keys: bson.D{{Key: "batchId", Value: 1}}, Options: options.Index()},
	})
}
