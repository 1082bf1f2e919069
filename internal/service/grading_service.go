package service

import (
	"context"
	"fmt"

	"tamanedu_backend/internal/config"
	"tamanedu_backend/internal/grading"
	"tamanedu_backend/internal/model"
	"tamanedu_backend/internal/repository"
	"tamanedu_backend/internal/util"
	"tamanedu_backend/pkg/logger"
	"tamanedu_backend/pkg/monitoring"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func reportCacheKey(sessionID uint) string {
	return fmt.Sprintf("tamanedu:report:%d", sessionID)
}

type GradingService struct {
	DB           *gorm.DB
	GradeRepo    *repository.GradeRepository
	ResponseRepo *repository.ResponseRepository
	KeyRepo      *repository.AnswerKeyRepository
	StudentRepo  *repository.StudentRepository
	SessionRepo  *repository.SessionRepository
	Cache        *redis.Client
	Cfg          *config.Config

	computer *grading.Computer
}

func NewGradingService(
	db *gorm.DB,
	gradeRepo *repository.GradeRepository,
	responseRepo *repository.ResponseRepository,
	keyRepo *repository.AnswerKeyRepository,
	studentRepo *repository.StudentRepository,
	sessionRepo *repository.SessionRepository,
	cache *redis.Client,
	cfg *config.Config,
) *GradingService {
	return &GradingService{
		DB:           db,
		GradeRepo:    gradeRepo,
		ResponseRepo: responseRepo,
		KeyRepo:      keyRepo,
		StudentRepo:  studentRepo,
		SessionRepo:  sessionRepo,
		Cache:        cache,
		Cfg:          cfg,
		computer:     grading.NewComputer(),
	}
}

// GradeRunResult summarizes one grading run over a session.
type GradeRunResult struct {
	StudentsGraded int `json:"studentsGraded"`
	StudentsFailed int `json:"studentsFailed"`
	GradesWritten  int `json:"gradesWritten"`
}

// GradeSession regrades every student in the session against the current
// answer key. Each student's grade set is replaced atomically; one failing
// student is logged and skipped, the rest still get graded.
func (s *GradingService) GradeSession(ctx context.Context, sessionID uint) (*GradeRunResult, error) {
	keyRows, err := s.KeyRepo.ListBySession(sessionID)
	if err != nil {
		return nil, err
	}
	if len(keyRows) == 0 {
		return nil, util.ErrNoAnswerKey
	}

	students, err := s.StudentRepo.ListBySession(sessionID)
	if err != nil {
		return nil, err
	}
	if len(students) == 0 {
		return nil, util.ErrNothingToGrade
	}

	key := make([]grading.KeyEntry, 0, len(keyRows))
	for i := range keyRows {
		key = append(key, grading.KeyEntry{
			QuestionNumber: keyRows[i].QuestionNumber,
			CorrectAnswer:  keyRows[i].CorrectAnswer,
			Variants:       keyRows[i].VariantList(),
			Points:         keyRows[i].Points,
		})
	}

	result := &GradeRunResult{}
	for _, student := range students {
		written, err := s.gradeStudent(sessionID, student.ID, key)
		if err != nil {
			logger.Log.Error("grade student failed",
				zap.Uint("session_id", sessionID),
				zap.Uint("student_id", student.ID),
				zap.Error(err))
			result.StudentsFailed++
			continue
		}
		result.StudentsGraded++
		result.GradesWritten += written
	}

	if result.StudentsGraded > 0 {
		if err := s.SessionRepo.UpdateStatus(sessionID, model.SessionGraded); err != nil {
			logger.Log.Error("update session status", zap.Uint("session_id", sessionID), zap.Error(err))
		}
	}
	monitoring.GradingRuns.Inc()
	s.Cache.Del(ctx, reportCacheKey(sessionID))

	return result, nil
}

func (s *GradingService) gradeStudent(sessionID, studentID uint, key []grading.KeyEntry) (int, error) {
	stored, err := s.ResponseRepo.ListByStudent(sessionID, studentID)
	if err != nil {
		return 0, err
	}

	responses := make([]grading.Response, 0, len(stored))
	for _, r := range stored {
		responses = append(responses, grading.Response{
			QuestionNumber:   r.QuestionNumber,
			NormalizedAnswer: r.NormalizedAnswer,
			Flagged:          r.IsFlagged,
		})
	}

	computed := s.computer.Grade(responses, key)
	grades := make([]model.Grade, 0, len(computed))
	for _, g := range computed {
		grades = append(grades, model.Grade{
			SessionID:      sessionID,
			StudentID:      studentID,
			QuestionNumber: g.QuestionNumber,
			IsCorrect:      g.IsCorrect,
			PointsEarned:   g.PointsEarned,
			PointsPossible: g.PointsPossible,
		})
	}

	if err := s.GradeRepo.ReplaceForStudent(sessionID, studentID, grades); err != nil {
		return 0, err
	}
	return len(grades), nil
}

func (s *GradingService) ListFlagged(sessionID uint) ([]model.Response, error) {
	return s.ResponseRepo.ListFlaggedBySession(sessionID)
}

// EditResponse applies a manual correction to one extracted answer. The
// corrected text is re-normalized and re-matched against the key; the
// response update and its grade update commit together. Responses outside
// sessionID are reported not-found before anything is written.
func (s *GradingService) EditResponse(ctx context.Context, sessionID, responseID uint, newAnswer string) (*model.Response, error) {
	resp, err := s.ResponseRepo.FindByID(responseID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrResponseNotFound
	}
	if err != nil {
		return nil, err
	}
	if resp.SessionID != sessionID {
		return nil, util.ErrResponseNotFound
	}

	resp.RawAnswer = newAnswer
	resp.NormalizedAnswer = grading.Normalize(newAnswer)
	resp.ManuallyEdited = true
	resp.IsFlagged = false

	entry, keyErr := s.KeyRepo.FindBySessionAndQuestion(resp.SessionID, resp.QuestionNumber)

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(resp).Error; err != nil {
			return err
		}
		if keyErr != nil {
			// No key entry for this question yet; the next full grading
			// run picks the edit up.
			return nil
		}

		computed := s.computer.Grade(
			[]grading.Response{{
				QuestionNumber:   resp.QuestionNumber,
				NormalizedAnswer: resp.NormalizedAnswer,
			}},
			[]grading.KeyEntry{{
				QuestionNumber: entry.QuestionNumber,
				CorrectAnswer:  entry.CorrectAnswer,
				Variants:       entry.VariantList(),
				Points:         entry.Points,
			}},
		)
		if len(computed) == 0 {
			return nil
		}

		return s.GradeRepo.UpsertOne(tx, &model.Grade{
			SessionID:      resp.SessionID,
			StudentID:      resp.StudentID,
			QuestionNumber: resp.QuestionNumber,
			IsCorrect:      computed[0].IsCorrect,
			PointsEarned:   computed[0].PointsEarned,
			PointsPossible: computed[0].PointsPossible,
		})
	})
	if err != nil {
		return nil, err
	}

	s.Cache.Del(ctx, reportCacheKey(resp.SessionID))
	return resp, nil
}
