package service

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"tamanedu_backend/internal/config"
	"tamanedu_backend/internal/grading"
	"tamanedu_backend/internal/model"
	"tamanedu_backend/internal/repository"
	"tamanedu_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

type ReportService struct {
	GradeRepo    *repository.GradeRepository
	StudentRepo  *repository.StudentRepository
	ResponseRepo *repository.ResponseRepository
	Cache        *redis.Client
	Cfg          *config.Config

	computer *grading.Computer
}

func NewReportService(
	gradeRepo *repository.GradeRepository,
	studentRepo *repository.StudentRepository,
	responseRepo *repository.ResponseRepository,
	cache *redis.Client,
	cfg *config.Config,
) *ReportService {
	return &ReportService{
		GradeRepo:    gradeRepo,
		StudentRepo:  studentRepo,
		ResponseRepo: responseRepo,
		Cache:        cache,
		Cfg:          cfg,
		computer:     grading.NewComputer(),
	}
}

type StudentReport struct {
	StudentID  uint                   `json:"studentId"`
	Name       string                 `json:"name"`
	ExternalID string                 `json:"externalId"`
	Summary    grading.StudentSummary `json:"summary"`
}

type QuestionStat struct {
	QuestionNumber int     `json:"questionNumber"`
	Graded         int     `json:"graded"`
	Correct        int     `json:"correct"`
	CorrectRate    float64 `json:"correctRate"`
}

type SessionReport struct {
	SessionID uint                 `json:"sessionId"`
	Students  []StudentReport      `json:"students"`
	Class     grading.ClassSummary `json:"class"`
	Questions []QuestionStat       `json:"questions"`
}

// GetReport returns the session report, served from Redis when a cached
// copy exists. Grading, extraction and manual edits all drop the cached
// copy, so a hit is never stale.
func (s *ReportService) GetReport(ctx context.Context, sessionID uint) (*SessionReport, error) {
	key := reportCacheKey(sessionID)
	if cached, err := s.Cache.Get(ctx, key).Bytes(); err == nil {
		var report SessionReport
		if err := json.Unmarshal(cached, &report); err == nil {
			return &report, nil
		}
		s.Cache.Del(ctx, key)
	}

	report, err := s.buildReport(sessionID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(report); err == nil {
		ttl := time.Duration(s.Cfg.Grading.ReportCacheTTL) * time.Second
		if err := s.Cache.Set(ctx, key, data, ttl).Err(); err != nil {
			logger.Log.Warn("cache session report", zap.Uint("session_id", sessionID), zap.Error(err))
		}
	}

	return report, nil
}

func (s *ReportService) buildReport(sessionID uint) (*SessionReport, error) {
	students, err := s.StudentRepo.ListBySession(sessionID)
	if err != nil {
		return nil, err
	}

	report := &SessionReport{SessionID: sessionID}
	summaries := make([]grading.StudentSummary, 0, len(students))

	for _, student := range students {
		rows, err := s.GradeRepo.ListByStudent(sessionID, student.ID)
		if err != nil {
			return nil, err
		}

		grades := make([]grading.Grade, 0, len(rows))
		for _, g := range rows {
			grades = append(grades, grading.Grade{
				QuestionNumber: g.QuestionNumber,
				IsCorrect:      g.IsCorrect,
				PointsEarned:   g.PointsEarned,
				PointsPossible: g.PointsPossible,
			})
		}

		flagged, err := s.ResponseRepo.CountFlaggedByStudent(sessionID, student.ID)
		if err != nil {
			return nil, err
		}

		summary := s.computer.Summarize(grades, int(flagged))
		summaries = append(summaries, summary)
		report.Students = append(report.Students, StudentReport{
			StudentID:  student.ID,
			Name:       student.Name,
			ExternalID: student.ExternalID,
			Summary:    summary,
		})
	}

	report.Class = grading.SummarizeClass(summaries)

	all, err := s.GradeRepo.ListBySession(sessionID)
	if err != nil {
		return nil, err
	}
	report.Questions = questionStats(all)

	return report, nil
}

func questionStats(grades []model.Grade) []QuestionStat {
	byQuestion := make(map[int]*QuestionStat)
	for _, g := range grades {
		stat, ok := byQuestion[g.QuestionNumber]
		if !ok {
			stat = &QuestionStat{QuestionNumber: g.QuestionNumber}
			byQuestion[g.QuestionNumber] = stat
		}
		stat.Graded++
		if g.IsCorrect {
			stat.Correct++
		}
	}

	stats := make([]QuestionStat, 0, len(byQuestion))
	for _, stat := range byQuestion {
		if stat.Graded > 0 {
			stat.CorrectRate = grading.Round2(100 * float64(stat.Correct) / float64(stat.Graded))
		}
		stats = append(stats, *stat)
	}
	sort.Slice(stats, func(i, j int) bool {
		return stats[i].QuestionNumber < stats[j].QuestionNumber
	})
	return stats
}

// WriteCSV renders the report as a spreadsheet-friendly roster, one row per
// student plus a class summary row.
func WriteCSV(w io.Writer, report *SessionReport) error {
	cw := csv.NewWriter(w)

	header := []string{"student", "external_id", "earned", "possible", "percentage", "letter", "correct", "graded", "flagged"}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, sr := range report.Students {
		record := []string{
			sr.Name,
			sr.ExternalID,
			formatFloat(sr.Summary.TotalEarned),
			formatFloat(sr.Summary.TotalPossible),
			formatFloat(sr.Summary.Percentage),
			sr.Summary.LetterGrade,
			strconv.Itoa(sr.Summary.Correct),
			strconv.Itoa(sr.Summary.Graded),
			strconv.Itoa(sr.Summary.Flagged),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	classRow := []string{
		fmt.Sprintf("CLASS (%d students)", report.Class.Students),
		"",
		"",
		"",
		formatFloat(report.Class.AveragePct),
		"",
		"",
		"",
		strconv.Itoa(report.Class.TotalFlagged),
	}
	if err := cw.Write(classRow); err != nil {
		return err
	}

	cw.Flush()
	return cw.Error()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}
