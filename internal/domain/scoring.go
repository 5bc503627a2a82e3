package domain

import "slices"

// Points on the fixed scale used by every question type.
const (
	PointsPerQuestion      = 4
	MultipleCorrectPenalty = -2
	SingleAnswerPenalty    = -1
)

// Evaluation is the derived result of one answered question.
// IsCorrect and IsPartial are independent predicates: a complete
// multiple-correct answer satisfies both.
type Evaluation struct {
	IsCorrect bool
	IsPartial bool
	Score     int
}

// Evaluate scores submitted against q. It never fails: a nil question or an
// empty submission evaluates to zero.
func Evaluate(q *Question, submitted []int, negativeMarking bool) Evaluation {
	return Evaluation{
		IsCorrect: IsCorrect(q, submitted),
		IsPartial: IsPartial(q, submitted),
		Score:     Score(q, submitted, negativeMarking),
	}
}

// IsCorrect requires an exact set match for multiple-correct questions and an
// exact ordered match for the single-answer types.
func IsCorrect(q *Question, submitted []int) bool {
	if q == nil || len(submitted) == 0 {
		return false
	}
	if q.Type == QuestionTypeMultipleCorrect {
		return setEqual(newIntSet(submitted), newIntSet(q.CorrectAnswers))
	}
	return slices.Equal(submitted, q.CorrectAnswers)
}

// IsPartial is only meaningful for multiple-correct questions: at least one
// correct option chosen and nothing outside the correct set.
func IsPartial(q *Question, submitted []int) bool {
	if q == nil || len(submitted) == 0 || q.Type != QuestionTypeMultipleCorrect {
		return false
	}
	hits, misses := compare(newIntSet(submitted), newIntSet(q.CorrectAnswers))
	return hits > 0 && misses == 0
}

// Score returns the signed point value of the answer.
func Score(q *Question, submitted []int, negativeMarking bool) int {
	if q == nil || len(submitted) == 0 {
		return 0
	}
	switch q.Type {
	case QuestionTypeMultipleCorrect:
		return scoreMultipleCorrect(q, submitted, negativeMarking)
	default:
		return scoreSingleAnswer(q, submitted, negativeMarking)
	}
}

func scoreMultipleCorrect(q *Question, submitted []int, negativeMarking bool) int {
	correct := newIntSet(q.CorrectAnswers)
	hits, misses := compare(newIntSet(submitted), correct)

	if negativeMarking && misses > 0 {
		return MultipleCorrectPenalty
	}
	// Extra wrong picks do not block the full award without negative marking.
	if len(correct) > 0 && hits == len(correct) {
		return PointsPerQuestion
	}
	return hits
}

func scoreSingleAnswer(q *Question, submitted []int, negativeMarking bool) int {
	if IsCorrect(q, submitted) {
		return PointsPerQuestion
	}
	if negativeMarking {
		return SingleAnswerPenalty
	}
	return 0
}

type intSet map[int]struct{}

func newIntSet(values []int) intSet {
	s := make(intSet, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

// compare counts members of submitted inside and outside correct.
func compare(submitted, correct intSet) (hits, misses int) {
	for v := range submitted {
		if _, ok := correct[v]; ok {
			hits++
		} else {
			misses++
		}
	}
	return hits, misses
}

func setEqual(a, b intSet) bool {
	if len(a) != len(b) {
		return false
	}
	for v := range a {
		if _, ok := b[v]; !ok {
			return false
		}
	}
	return true
}
