package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuizAttempt_Aggregates(t *testing.T) {
	tests := []struct {
		name         string
		attempt      QuizAttempt
		wantTotal    int
		wantPossible int
		wantPercent  float64
	}{
		{
			name:        "no questions",
			attempt:     QuizAttempt{Score: 0},
			wantTotal:   0,
			wantPercent: 0,
		},
		{
			name:         "negative score",
			attempt:      QuizAttempt{Score: -3, IncorrectAttempts: 3},
			wantTotal:    3,
			wantPossible: 12,
			wantPercent:  0,
		},
		{
			name:         "perfect",
			attempt:      QuizAttempt{Score: 8, CorrectAttempts: 2},
			wantTotal:    2,
			wantPossible: 8,
			wantPercent:  100,
		},
		{
			name:         "all counters count",
			attempt:      QuizAttempt{Score: 5, CorrectAttempts: 1, IncorrectAttempts: 1, PartialAttempts: 1, Unattempted: 1},
			wantTotal:    4,
			wantPossible: 16,
			wantPercent:  31.25,
		},
		{
			name:         "repeating fraction",
			attempt:      QuizAttempt{Score: 1, CorrectAttempts: 1, IncorrectAttempts: 2},
			wantTotal:    3,
			wantPossible: 12,
			wantPercent:  8.33,
		},
		{
			name:         "exact tie rounds to even",
			attempt:      QuizAttempt{Score: 1, Unattempted: 8},
			wantTotal:    8,
			wantPossible: 32,
			wantPercent:  3.12,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantTotal, tt.attempt.TotalQuestions())
			assert.Equal(t, tt.wantPossible, tt.attempt.TotalPossibleScore())
			assert.Equal(t, tt.wantPercent, tt.attempt.ScorePercentage())
		})
	}
}

func TestQuizAttempt_QuestionType(t *testing.T) {
	t.Run("no question attempts", func(t *testing.T) {
		a := &QuizAttempt{}
		assert.Nil(t, a.QuestionType())
	})

	t.Run("first question decides", func(t *testing.T) {
		a := &QuizAttempt{QuestionAttempts: []*QuestionAttempt{
			{Question: multipleCorrectAB()},
			{Question: singleChoiceB()},
		}}
		got := a.QuestionType()
		require.NotNil(t, got)
		assert.Equal(t, QuestionTypeMultipleCorrect, *got)
	})
}

func TestQuizAttempt_EvaluateUsesMarkingPolicy(t *testing.T) {
	qa := &QuestionAttempt{Question: singleChoiceB(), SubmittedAnswer: []int{optA}}

	assert.Equal(t, -1, (&QuizAttempt{NegativeMarking: true}).Evaluate(qa).Score)
	assert.Equal(t, 0, (&QuizAttempt{NegativeMarking: false}).Evaluate(qa).Score)
}

func TestTally(t *testing.T) {
	answers := []*QuestionAttempt{
		{Question: singleChoiceB(), SubmittedAnswer: []int{optB}},           // correct, 4
		{Question: singleChoiceB(), SubmittedAnswer: []int{optC}},           // incorrect, -1
		{Question: multipleCorrectAB(), SubmittedAnswer: []int{optA}},       // partial, 1
		{Question: multipleCorrectAB(), SubmittedAnswer: []int{optA, optB}}, // correct, 4
		{Question: multipleCorrectAB(), SubmittedAnswer: []int{optA, optD}}, // incorrect, -2
		{Question: multipleCorrectAB()},                                     // unattempted
	}

	got := Tally(answers, true)

	assert.Equal(t, AttemptTally{Correct: 2, Incorrect: 2, Partial: 1, Unattempted: 1, Score: 6}, got)
	assert.Equal(t, len(answers), got.Total())

	attempt := &QuizAttempt{CorrectAttempts: 2, IncorrectAttempts: 2, PartialAttempts: 1, Unattempted: 1, Score: 6}
	assert.True(t, got.Matches(attempt))
	attempt.Score = 7
	assert.False(t, got.Matches(attempt))
}
