package service

import (
	"context"
	"strings"
	"testing"

	"tamanedu_backend/internal/config"
	"tamanedu_backend/internal/model"
	"tamanedu_backend/internal/repository"
	"tamanedu_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newWorksheetService(t *testing.T) (*WorksheetService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)

	cfg := &config.Config{}
	cfg.Storage.Type = "local"
	cfg.Storage.LocalPath = t.TempDir()
	cfg.Grading.MaxUploadSizeMB = 20

	return NewWorksheetService(
		repository.NewWorksheetRepository(db),
		repository.NewResponseRepository(db),
		repository.NewSessionRepository(db),
		repository.NewStudentRepository(db),
		NewStorageService(cfg),
		nil,
		newTestCache(),
		cfg,
	), db
}

func TestUploadScanRejectsStudentOutsideSession(t *testing.T) {
	svc, db := newWorksheetService(t)

	foreign := model.Student{SessionID: 2, Name: "Budi"}
	require.NoError(t, db.Create(&foreign).Error)

	_, err := svc.UploadScan(context.Background(), 1, foreign.ID, 1,
		"scan.png", strings.NewReader("img"), 3)
	assert.ErrorIs(t, err, util.ErrStudentNotFound)

	_, err = svc.UploadScan(context.Background(), 1, 999, 1,
		"scan.png", strings.NewReader("img"), 3)
	assert.ErrorIs(t, err, util.ErrStudentNotFound)

	var count int64
	require.NoError(t, db.Model(&model.Worksheet{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUploadScanStoresPendingWorksheet(t *testing.T) {
	svc, db := newWorksheetService(t)

	student := model.Student{SessionID: 1, Name: "Sari"}
	require.NoError(t, db.Create(&student).Error)

	ws, err := svc.UploadScan(context.Background(), 1, student.ID, 2,
		"page two.jpg", strings.NewReader("img"), 3)
	require.NoError(t, err)

	assert.Equal(t, model.WorksheetPending, ws.Status)
	assert.Equal(t, 2, ws.PageNumber)
	assert.Equal(t, "page two.jpg", ws.FileName)
	// Stored under a generated name, never the upload's.
	assert.NotContains(t, ws.LocalPath, "page two")
	assert.True(t, strings.HasSuffix(ws.LocalPath, ".jpg"))
}

func TestUploadScanRejectsUnsupportedType(t *testing.T) {
	svc, db := newWorksheetService(t)

	student := model.Student{SessionID: 1, Name: "Sari"}
	require.NoError(t, db.Create(&student).Error)

	_, err := svc.UploadScan(context.Background(), 1, student.ID, 1,
		"answers.pdf", strings.NewReader("x"), 1)
	assert.Error(t, err)
}
