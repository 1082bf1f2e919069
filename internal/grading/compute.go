package grading

import (
	"math"
	"sort"
)

// Response is the graded view of a stored student answer.
type Response struct {
	QuestionNumber   int
	NormalizedAnswer string
	Flagged          bool
}

// KeyEntry is one answer-key row.
type KeyEntry struct {
	QuestionNumber int
	CorrectAnswer  string
	Variants       []string
	Points         float64
}

// Grade is the per-question result.
type Grade struct {
	QuestionNumber int
	IsCorrect      bool
	PointsEarned   float64
	PointsPossible float64
}

// StudentSummary aggregates one student's grades.
type StudentSummary struct {
	TotalEarned   float64 `json:"totalEarned"`
	TotalPossible float64 `json:"totalPossible"`
	Percentage    float64 `json:"percentage"`
	LetterGrade   string  `json:"letterGrade"`
	Graded        int     `json:"graded"`
	Correct       int     `json:"correct"`
	Flagged       int     `json:"flagged"`
}

// ClassSummary aggregates per-student summaries for reporting. It is never
// persisted.
type ClassSummary struct {
	Students     int     `json:"students"`
	AveragePct   float64 `json:"averagePct"`
	MinPct       float64 `json:"minPct"`
	MaxPct       float64 `json:"maxPct"`
	TotalFlagged int     `json:"totalFlagged"`
}

// Computer turns responses plus an answer key into grades. It is stateless;
// the same inputs always produce the identical grade list.
type Computer struct {
	matcher *Matcher
}

func NewComputer() *Computer {
	return &Computer{matcher: NewMatcher()}
}

// Grade matches each response against the key entry with the same question
// number. Responses without a key entry are skipped, not errors. Output is
// ordered by question number.
func (c *Computer) Grade(responses []Response, key []KeyEntry) []Grade {
	byQuestion := make(map[int]KeyEntry, len(key))
	for _, entry := range key {
		byQuestion[entry.QuestionNumber] = entry
	}

	grades := make([]Grade, 0, len(responses))
	for _, resp := range responses {
		entry, ok := byQuestion[resp.QuestionNumber]
		if !ok {
			continue
		}

		correct := c.matcher.IsCorrect(resp.NormalizedAnswer, entry.CorrectAnswer, entry.Variants)
		earned := 0.0
		if correct {
			earned = entry.Points
		}
		grades = append(grades, Grade{
			QuestionNumber: resp.QuestionNumber,
			IsCorrect:      correct,
			PointsEarned:   earned,
			PointsPossible: entry.Points,
		})
	}

	sort.Slice(grades, func(i, j int) bool {
		return grades[i].QuestionNumber < grades[j].QuestionNumber
	})
	return grades
}

// Summarize computes one student's totals. flagged is the student's count of
// flagged responses, carried through for the review queue.
func (c *Computer) Summarize(grades []Grade, flagged int) StudentSummary {
	s := StudentSummary{Flagged: flagged, Graded: len(grades)}
	for _, g := range grades {
		s.TotalEarned += g.PointsEarned
		s.TotalPossible += g.PointsPossible
		if g.IsCorrect {
			s.Correct++
		}
	}
	if s.TotalPossible > 0 {
		s.Percentage = Round2(100 * s.TotalEarned / s.TotalPossible)
	}
	s.LetterGrade = LetterGrade(s.Percentage)
	return s
}

// SummarizeClass folds per-student summaries into class statistics.
func SummarizeClass(summaries []StudentSummary) ClassSummary {
	cs := ClassSummary{Students: len(summaries)}
	if len(summaries) == 0 {
		return cs
	}

	cs.MinPct = summaries[0].Percentage
	cs.MaxPct = summaries[0].Percentage
	sum := 0.0
	for _, s := range summaries {
		sum += s.Percentage
		if s.Percentage < cs.MinPct {
			cs.MinPct = s.Percentage
		}
		if s.Percentage > cs.MaxPct {
			cs.MaxPct = s.Percentage
		}
		cs.TotalFlagged += s.Flagged
	}
	cs.AveragePct = Round2(sum / float64(len(summaries)))
	return cs
}

var letterBreakpoints = []struct {
	min    float64
	letter string
}{
	{97, "A+"}, {93, "A"}, {90, "A-"},
	{87, "B+"}, {83, "B"}, {80, "B-"},
	{77, "C+"}, {73, "C"}, {70, "C-"},
	{67, "D+"}, {63, "D"}, {60, "D-"},
}

func LetterGrade(percentage float64) string {
	for _, bp := range letterBreakpoints {
		if percentage >= bp.min {
			return bp.letter
		}
	}
	return "F"
}

func Round2(f float64) float64 {
	return math.Round(f*100) / 100
}
