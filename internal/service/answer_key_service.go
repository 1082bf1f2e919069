package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"tamanedu_backend/internal/model"
	"tamanedu_backend/internal/repository"
)

type AnswerKeyService struct {
	KeyRepo *repository.AnswerKeyRepository
}

func NewAnswerKeyService(keyRepo *repository.AnswerKeyRepository) *AnswerKeyService {
	return &AnswerKeyService{KeyRepo: keyRepo}
}

// Upload parses a CSV answer key and wholesale-replaces the session's
// prior key.
func (s *AnswerKeyService) Upload(sessionID uint, r io.Reader) ([]model.AnswerKeyEntry, error) {
	entries, err := ParseAnswerKeyCSV(r)
	if err != nil {
		return nil, err
	}

	for i := range entries {
		entries[i].SessionID = sessionID
	}

	if err := s.KeyRepo.ReplaceForSession(sessionID, entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *AnswerKeyService) List(sessionID uint) ([]model.AnswerKeyEntry, error) {
	return s.KeyRepo.ListBySession(sessionID)
}

// ParseAnswerKeyCSV reads rows with columns question_number (or question),
// answer (or correct_answer) and optional points. The answer cell is split
// on "|": first segment is the correct answer, the rest are accepted
// variants. Rows need not be sorted; question numbers must be unique.
func ParseAnswerKeyCSV(r io.Reader) ([]model.AnswerKeyEntry, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("answer key: empty file")
	}
	if err != nil {
		return nil, fmt.Errorf("answer key: read header: %w", err)
	}

	questionCol, answerCol, pointsCol := -1, -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "question_number", "question":
			questionCol = i
		case "answer", "correct_answer":
			answerCol = i
		case "points":
			pointsCol = i
		}
	}
	if questionCol < 0 || answerCol < 0 {
		return nil, fmt.Errorf("answer key: missing question_number or answer column")
	}

	var entries []model.AnswerKeyEntry
	seen := make(map[int]bool)

	for row := 2; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("answer key: row %d: %w", row, err)
		}
		if questionCol >= len(record) || answerCol >= len(record) {
			return nil, fmt.Errorf("answer key: row %d: too few columns", row)
		}

		number, err := strconv.Atoi(strings.TrimSpace(record[questionCol]))
		if err != nil || number <= 0 {
			return nil, fmt.Errorf("answer key: row %d: invalid question number %q", row, record[questionCol])
		}
		if seen[number] {
			return nil, fmt.Errorf("answer key: row %d: duplicate question number %d", row, number)
		}
		seen[number] = true

		segments := strings.Split(record[answerCol], "|")
		correct := strings.TrimSpace(segments[0])
		if correct == "" {
			return nil, fmt.Errorf("answer key: row %d: empty answer", row)
		}

		var variants []string
		for _, seg := range segments[1:] {
			if v := strings.TrimSpace(seg); v != "" {
				variants = append(variants, v)
			}
		}

		points := 1.0
		if pointsCol >= 0 && pointsCol < len(record) && strings.TrimSpace(record[pointsCol]) != "" {
			points, err = strconv.ParseFloat(strings.TrimSpace(record[pointsCol]), 64)
			if err != nil || points <= 0 {
				return nil, fmt.Errorf("answer key: row %d: invalid points %q", row, record[pointsCol])
			}
		}

		entries = append(entries, model.AnswerKeyEntry{
			QuestionNumber: number,
			CorrectAnswer:  correct,
			Variants:       strings.Join(variants, "|"),
			Points:         points,
		})
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("answer key: no data rows")
	}

	return entries, nil
}
