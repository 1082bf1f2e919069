package grading

// Matcher decides correctness of a student answer against a correct answer
// and its accepted variants. Matching is exact string equality after
// normalization; there is no partial credit or distance tolerance.
type Matcher struct{}

func NewMatcher() *Matcher {
	return &Matcher{}
}

func (m *Matcher) IsCorrect(studentAnswer, correctAnswer string, variants []string) bool {
	student := Normalize(studentAnswer)

	if student == Normalize(correctAnswer) {
		return true
	}
	for _, v := range variants {
		if student == Normalize(v) {
			return true
		}
	}
	return false
}

// Flagged reports whether an OCR confidence is low enough to route the
// answer to manual review.
func Flagged(confidence, threshold float64) bool {
	return confidence < threshold
}
