package domain

import (
	"time"

	"topic-quiz/internal/util"
)

// QuizAttempt is the immutable record of one finished quiz session.
// The counters and Score are stored as submitted by the client.
type QuizAttempt struct {
	ID                string
	UserID            string
	TopicID           int64
	TopicName         string
	Subtopic          string
	TotalTimeTaken    int
	Score             int
	CorrectAttempts   int
	IncorrectAttempts int
	PartialAttempts   int
	Unattempted       int
	NegativeMarking   bool
	CreatedAt         time.Time

	QuestionAttempts []*QuestionAttempt
}

func (a *QuizAttempt) TotalQuestions() int {
	return a.CorrectAttempts + a.IncorrectAttempts + a.PartialAttempts + a.Unattempted
}

func (a *QuizAttempt) TotalPossibleScore() int {
	return a.TotalQuestions() * PointsPerQuestion
}

// ScorePercentage is 0 for empty or negative attempts, otherwise the score
// share rounded half-to-even to two decimals.
func (a *QuizAttempt) ScorePercentage() float64 {
	total := a.TotalPossibleScore()
	if total == 0 || a.Score < 0 {
		return 0
	}
	return util.RoundHalfEven(float64(a.Score)/float64(total)*100, 2)
}

// QuestionType summarises the attempt by the type of its first answered
// question. It returns nil when the attempt has no question attempts or the
// question could not be loaded.
func (a *QuizAttempt) QuestionType() *QuestionType {
	if len(a.QuestionAttempts) == 0 || a.QuestionAttempts[0].Question == nil {
		return nil
	}
	t := a.QuestionAttempts[0].Question.Type
	return &t
}

// Evaluate scores a question attempt under the attempt's marking policy.
func (a *QuizAttempt) Evaluate(qa *QuestionAttempt) Evaluation {
	return qa.Evaluate(a.NegativeMarking)
}

// QuestionAttempt is one answered question. An empty SubmittedAnswer means
// the question was left unattempted.
type QuestionAttempt struct {
	ID              string
	QuizAttemptID   string
	QuestionID      int64
	Position        int
	TimeTaken       int
	SubmittedAnswer []int

	Question *Question
}

func (qa *QuestionAttempt) IsUnattempted() bool {
	return len(qa.SubmittedAnswer) == 0
}

func (qa *QuestionAttempt) Evaluate(negativeMarking bool) Evaluation {
	return Evaluate(qa.Question, qa.SubmittedAnswer, negativeMarking)
}

// AttemptTally is the aggregate the scoring engine derives for a set of
// answers. Each answer lands in exactly one counter.
type AttemptTally struct {
	Correct     int
	Incorrect   int
	Partial     int
	Unattempted int
	Score       int
}

func (t AttemptTally) Total() int {
	return t.Correct + t.Incorrect + t.Partial + t.Unattempted
}

// Tally classifies every answer. Correctness wins over partial credit.
func Tally(answers []*QuestionAttempt, negativeMarking bool) AttemptTally {
	var t AttemptTally
	for _, qa := range answers {
		if qa.IsUnattempted() {
			t.Unattempted++
			continue
		}
		ev := qa.Evaluate(negativeMarking)
		t.Score += ev.Score
		switch {
		case ev.IsCorrect:
			t.Correct++
		case ev.IsPartial:
			t.Partial++
		default:
			t.Incorrect++
		}
	}
	return t
}

// Matches reports whether the attempt's stored counters agree with t.
func (t AttemptTally) Matches(a *QuizAttempt) bool {
	return t.Correct == a.CorrectAttempts &&
		t.Incorrect == a.IncorrectAttempts &&
		t.Partial == a.PartialAttempts &&
		t.Unattempted == a.Unattempted &&
		t.Score == a.Score
}
