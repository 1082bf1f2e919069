package grading

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Defaults for the extraction tuning knobs. They are overridable through
// ExtractorOptions; nothing below reads them directly.
const (
	DefaultFlagThreshold = 0.65
	DefaultImplicitFloor = 0.35
	DefaultBufferCap     = 100
)

// Token is one recognized text fragment from the OCR backend.
type Token struct {
	Text       string
	Confidence float64
}

// ExtractedAnswer is one recovered "question N -> answer" pair.
type ExtractedAnswer struct {
	QuestionNumber int
	RawAnswer      string
	Confidence     float64
	PageNumber     int
	Flagged        bool
}

type ExtractorOptions struct {
	// FlagThreshold routes answers below this confidence to manual review.
	FlagThreshold float64
	// ImplicitFloor is the minimum confidence for the implicit
	// short-answer path.
	ImplicitFloor float64
	// BufferCap clears the accumulation buffer once it grows past this
	// many characters without a match.
	BufferCap int
}

// Extractor recovers numbered answers from an OCR token stream. The OCR
// engine has no notion of worksheet layout, so the extractor folds tokens
// left to right and watches the accumulated buffer for question-number
// patterns.
type Extractor struct {
	opts ExtractorOptions
}

func NewExtractor(opts ExtractorOptions) *Extractor {
	if opts.FlagThreshold == 0 {
		opts.FlagThreshold = DefaultFlagThreshold
	}
	if opts.ImplicitFloor == 0 {
		opts.ImplicitFloor = DefaultImplicitFloor
	}
	if opts.BufferCap == 0 {
		opts.BufferCap = DefaultBufferCap
	}
	return &Extractor{opts: opts}
}

// Question-number patterns, tried in priority order against the buffer.
var (
	// "3. answer", "3) answer", "3: answer"
	numberedPattern = regexp.MustCompile(`^(\d{1,3})\s*[.):]\s*(.*\S)\s*$`)
	// "question 3. answer", "q3) answer"
	wordPattern = regexp.MustCompile(`(?i)^q(?:uestion)?\s*(\d{1,3})\s*[.):]?\s+(.*\S)\s*$`)
	// "3 answer"
	barePattern = regexp.MustCompile(`^(\d{1,3})\s+(\S.*?)\s*$`)
)

// foldState is the whole of the extraction state. Each intermediate state
// is independently assertable in tests.
type foldState struct {
	buffer         string
	lastQuestion   int
	lastConfidence float64
}

// Extract folds the token stream for one page into an ordered answer list.
// Emitted question numbers are strictly increasing; anything that would
// violate that is dropped, not reordered.
func (e *Extractor) Extract(tokens []Token, pageNumber int) []ExtractedAnswer {
	var answers []ExtractedAnswer
	var st foldState

	for _, tok := range tokens {
		var emitted *ExtractedAnswer
		st, emitted = e.step(st, tok, pageNumber)
		if emitted != nil {
			answers = append(answers, *emitted)
		}
	}

	if final := e.finish(st, pageNumber); final != nil {
		answers = append(answers, *final)
	}

	return answers
}

// step advances the fold by one token, possibly emitting an answer.
func (e *Extractor) step(st foldState, tok Token, pageNumber int) (foldState, *ExtractedAnswer) {
	trimmed := strings.TrimSpace(tok.Text)
	if !containsAlphanumeric(trimmed) {
		// Punctuation-only tokens never enter the buffer.
		return st, nil
	}

	if st.buffer == "" {
		st.buffer = trimmed
	} else {
		st.buffer += " " + trimmed
	}
	st.lastConfidence = tok.Confidence

	if number, answer, ok := matchQuestionPattern(st.buffer); ok {
		if number <= st.lastQuestion {
			// Out-of-order or duplicate number: drop the match and
			// keep accumulating.
			return st, nil
		}
		st.lastQuestion = number
		st.buffer = ""
		return st, &ExtractedAnswer{
			QuestionNumber: number,
			RawAnswer:      answer,
			Confidence:     tok.Confidence,
			PageNumber:     pageNumber,
			Flagged:        Flagged(tok.Confidence, e.opts.FlagThreshold),
		}
	}

	// Implicit path: a short plain-text group with decent confidence is
	// taken as the answer to the next question. Handles worksheets where
	// OCR drops the printed question number.
	if isShortAnswer(st.buffer) && tok.Confidence > e.opts.ImplicitFloor {
		answer := st.buffer
		st.lastQuestion++
		st.buffer = ""
		return st, &ExtractedAnswer{
			QuestionNumber: st.lastQuestion,
			RawAnswer:      answer,
			Confidence:     tok.Confidence,
			PageNumber:     pageNumber,
			Flagged:        Flagged(tok.Confidence, e.opts.FlagThreshold),
		}
	}

	// Keep unrelated text from merging into one oversized answer.
	if len(st.buffer) > e.opts.BufferCap {
		st.buffer = ""
	}

	return st, nil
}

// finish flushes a plausible trailing answer that was never confirmed by a
// pattern match. It is always flagged for manual review.
func (e *Extractor) finish(st foldState, pageNumber int) *ExtractedAnswer {
	if st.buffer == "" || st.lastQuestion == 0 || !isShortAnswer(st.buffer) {
		return nil
	}
	return &ExtractedAnswer{
		QuestionNumber: st.lastQuestion + 1,
		RawAnswer:      st.buffer,
		Confidence:     st.lastConfidence,
		PageNumber:     pageNumber,
		Flagged:        true,
	}
}

func matchQuestionPattern(buffer string) (int, string, bool) {
	for _, re := range []*regexp.Regexp{numberedPattern, wordPattern, barePattern} {
		m := re.FindStringSubmatch(buffer)
		if m == nil {
			continue
		}
		number, err := strconv.Atoi(m[1])
		if err != nil || number <= 0 {
			continue
		}
		return number, strings.TrimSpace(m[2]), true
	}
	return 0, "", false
}

// isShortAnswer reports whether the buffer looks like a free-standing
// answer: at most three words, letters/digits/spaces only.
func isShortAnswer(buffer string) bool {
	words := strings.Fields(buffer)
	if len(words) == 0 || len(words) > 3 {
		return false
	}
	for _, r := range buffer {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

func containsAlphanumeric(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
