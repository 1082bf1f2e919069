package service

import (
	"testing"

	"tamanedu_backend/internal/model"
	"tamanedu_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func init() {
	logger.Log = zap.NewNop()
}

// newTestDB opens a per-test in-memory database with the grading schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger:                                   gormlogger.Default.LogMode(gormlogger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.GradingSession{},
		&model.Student{},
		&model.Worksheet{},
		&model.AnswerKeyEntry{},
		&model.Response{},
		&model.Grade{},
	))
	return db
}

// newTestCache returns a client pointing nowhere; cache calls in the code
// under test ignore Del/Set errors, so an unreachable backend is fine.
func newTestCache() *redis.Client {
	return redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
}
