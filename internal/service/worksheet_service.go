package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"

	"tamanedu_backend/internal/config"
	"tamanedu_backend/internal/grading"
	"tamanedu_backend/internal/model"
	"tamanedu_backend/internal/ocr"
	"tamanedu_backend/internal/repository"
	"tamanedu_backend/internal/util"
	"tamanedu_backend/pkg/logger"
	"tamanedu_backend/pkg/monitoring"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type WorksheetService struct {
	WorksheetRepo *repository.WorksheetRepository
	ResponseRepo  *repository.ResponseRepository
	SessionRepo   *repository.SessionRepository
	StudentRepo   *repository.StudentRepository
	Storage       *StorageService
	OCR           *ocr.Client
	Cache         *redis.Client
	Cfg           *config.Config
}

func NewWorksheetService(
	worksheetRepo *repository.WorksheetRepository,
	responseRepo *repository.ResponseRepository,
	sessionRepo *repository.SessionRepository,
	studentRepo *repository.StudentRepository,
	storage *StorageService,
	ocrClient *ocr.Client,
	cache *redis.Client,
	cfg *config.Config,
) *WorksheetService {
	return &WorksheetService{
		WorksheetRepo: worksheetRepo,
		ResponseRepo:  responseRepo,
		SessionRepo:   sessionRepo,
		StudentRepo:   studentRepo,
		Storage:       storage,
		OCR:           ocrClient,
		Cache:         cache,
		Cfg:           cfg,
	}
}

// UploadScan stores one worksheet image and records it as pending. The
// stored name is a UUID so uploads never collide; the original name is kept
// for display only.
func (s *WorksheetService) UploadScan(ctx context.Context, sessionID, studentID uint, pageNumber int, originalName string, reader io.Reader, size int64) (*model.Worksheet, error) {
	student, err := s.StudentRepo.FindByID(studentID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrStudentNotFound
	}
	if err != nil {
		return nil, err
	}
	if student.SessionID != sessionID {
		return nil, util.ErrStudentNotFound
	}

	contentType := util.ImageContentType(originalName)
	if contentType == "" {
		return nil, fmt.Errorf("unsupported image type: %s", filepath.Ext(originalName))
	}

	maxSize := int64(s.Cfg.Grading.MaxUploadSizeMB) * 1024 * 1024
	if maxSize > 0 && size > maxSize {
		return nil, fmt.Errorf("file too large: %d bytes (limit %d MB)", size, s.Cfg.Grading.MaxUploadSizeMB)
	}

	if pageNumber <= 0 {
		pageNumber = 1
	}

	storedName := uuid.New().String() + strings.ToLower(filepath.Ext(originalName))
	url, err := s.Storage.Upload(ctx, storedName, reader, size, contentType)
	if err != nil {
		return nil, fmt.Errorf("store scan: %w", err)
	}

	ws := &model.Worksheet{
		SessionID:  sessionID,
		StudentID:  studentID,
		PageNumber: pageNumber,
		FileName:   originalName,
		FileURL:    url,
		LocalPath:  storedName,
		Status:     model.WorksheetPending,
	}
	if err := s.WorksheetRepo.Create(ws); err != nil {
		return nil, err
	}
	return ws, nil
}

func (s *WorksheetService) List(sessionID uint) ([]model.Worksheet, error) {
	return s.WorksheetRepo.ListBySession(sessionID)
}

func (s *WorksheetService) Get(id uint) (*model.Worksheet, error) {
	return s.WorksheetRepo.FindByID(id)
}

func (s *WorksheetService) Delete(ctx context.Context, ws *model.Worksheet) error {
	if ws.LocalPath != "" {
		if err := s.Storage.Delete(ctx, ws.LocalPath); err != nil {
			logger.Log.Warn("delete stored scan",
				zap.Uint("worksheet_id", ws.ID),
				zap.Error(err))
		}
	}
	return s.WorksheetRepo.Delete(ws.ID)
}

// ProcessResult summarizes one batch extraction run.
type ProcessResult struct {
	Processed int `json:"processed"`
	Failed    int `json:"failed"`
}

// ProcessPending runs OCR extraction over every pending worksheet in a
// session. Images are processed concurrently, bounded by the configured
// worker count; one bad image fails alone and never aborts the batch.
func (s *WorksheetService) ProcessPending(ctx context.Context, sessionID uint) (*ProcessResult, error) {
	pending, err := s.WorksheetRepo.ListPendingBySession(sessionID)
	if err != nil {
		return nil, err
	}
	if len(pending) == 0 {
		return nil, util.ErrNothingToProcess
	}

	workers := s.Cfg.OCR.Workers
	if workers <= 0 {
		workers = 1
	}

	var (
		wg        sync.WaitGroup
		sem       = make(chan struct{}, workers)
		mu        sync.Mutex
		processed int
		failed    int
	)

	for i := range pending {
		ws := pending[i]
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			if err := s.processOne(ctx, &ws); err != nil {
				logger.Log.Error("worksheet extraction failed",
					zap.Uint("worksheet_id", ws.ID),
					zap.Uint("session_id", ws.SessionID),
					zap.Uint("student_id", ws.StudentID),
					zap.Error(err))
				if dbErr := s.WorksheetRepo.MarkFailed(ws.ID, err.Error()); dbErr != nil {
					logger.Log.Error("mark worksheet failed", zap.Uint("worksheet_id", ws.ID), zap.Error(dbErr))
				}
				monitoring.WorksheetsProcessed.WithLabelValues("failed").Inc()
				mu.Lock()
				failed++
				mu.Unlock()
				return
			}

			if dbErr := s.WorksheetRepo.MarkProcessed(ws.ID); dbErr != nil {
				logger.Log.Error("mark worksheet processed", zap.Uint("worksheet_id", ws.ID), zap.Error(dbErr))
			}
			monitoring.WorksheetsProcessed.WithLabelValues("processed").Inc()
			mu.Lock()
			processed++
			mu.Unlock()
		}()
	}
	wg.Wait()

	if processed > 0 {
		if err := s.SessionRepo.UpdateStatus(sessionID, model.SessionScanned); err != nil {
			logger.Log.Error("update session status", zap.Uint("session_id", sessionID), zap.Error(err))
		}
	}
	s.Cache.Del(ctx, reportCacheKey(sessionID))

	return &ProcessResult{Processed: processed, Failed: failed}, nil
}

// processOne runs one worksheet image through the sidecar and persists the
// extracted answers.
func (s *WorksheetService) processOne(ctx context.Context, ws *model.Worksheet) error {
	imagePath, err := s.Storage.LocalPath(ctx, ws.LocalPath)
	if err != nil {
		return fmt.Errorf("fetch scan: %w", err)
	}

	tokens, err := s.OCR.ExtractImage(ctx, imagePath)
	if err != nil {
		return err
	}

	extractor := grading.NewExtractor(grading.ExtractorOptions{
		FlagThreshold: s.Cfg.Grading.FlagThreshold,
		ImplicitFloor: s.Cfg.Grading.ImplicitFloor,
		BufferCap:     s.Cfg.Grading.BufferCap,
	})

	streamTokens := make([]grading.Token, 0, len(tokens))
	for _, t := range tokens {
		streamTokens = append(streamTokens, grading.Token{Text: t.Text, Confidence: t.Confidence})
	}

	answers := extractor.Extract(streamTokens, ws.PageNumber)
	if len(answers) == 0 {
		logger.Log.Warn("no answers recovered from scan",
			zap.Uint("worksheet_id", ws.ID),
			zap.Int("tokens", len(tokens)))
		return nil
	}

	responses := make([]model.Response, 0, len(answers))
	for _, a := range answers {
		responses = append(responses, model.Response{
			SessionID:        ws.SessionID,
			StudentID:        ws.StudentID,
			QuestionNumber:   a.QuestionNumber,
			RawAnswer:        a.RawAnswer,
			NormalizedAnswer: grading.Normalize(a.RawAnswer),
			Confidence:       a.Confidence,
			IsFlagged:        a.Flagged,
			PageNumber:       a.PageNumber,
		})
		if a.Flagged {
			monitoring.AnswersFlagged.Inc()
		}
	}
	monitoring.AnswersExtracted.Add(float64(len(answers)))

	return s.ResponseRepo.UpsertBatch(responses)
}
