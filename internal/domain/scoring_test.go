package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	optA = iota
	optB
	optC
	optD
)

func multipleCorrectAB() *Question {
	return &Question{
		ID:             1,
		Type:           QuestionTypeMultipleCorrect,
		Options:        []string{"A", "B", "C", "D"},
		CorrectAnswers: []int{optA, optB},
	}
}

func singleChoiceB() *Question {
	return &Question{
		ID:             2,
		Type:           QuestionTypeSingleChoice,
		Options:        []string{"A", "B", "C", "D"},
		CorrectAnswers: []int{optB},
	}
}

func TestEvaluate_MultipleCorrect(t *testing.T) {
	tests := []struct {
		name            string
		submitted       []int
		negativeMarking bool
		want            Evaluation
	}{
		{"empty", nil, false, Evaluation{IsCorrect: false, IsPartial: false, Score: 0}},
		{"empty with negative marking", []int{}, true, Evaluation{Score: 0}},
		{"one of two", []int{optA}, false, Evaluation{IsCorrect: false, IsPartial: true, Score: 1}},
		{"one of two with negative marking", []int{optB}, true, Evaluation{IsPartial: true, Score: 1}},
		{"full set", []int{optA, optB}, false, Evaluation{IsCorrect: true, IsPartial: true, Score: 4}},
		{"full set reversed", []int{optB, optA}, true, Evaluation{IsCorrect: true, IsPartial: true, Score: 4}},
		{"duplicates collapse", []int{optA, optB, optA}, false, Evaluation{IsCorrect: true, IsPartial: true, Score: 4}},
		{"hit and miss with negative marking", []int{optA, optC}, true, Evaluation{Score: -2}},
		{"hit and miss without negative marking", []int{optA, optC}, false, Evaluation{Score: 1}},
		{"only misses with negative marking", []int{optC, optD}, true, Evaluation{Score: -2}},
		{"only misses without negative marking", []int{optC}, false, Evaluation{Score: 0}},
		{"full set plus extra without negative marking", []int{optA, optB, optC}, false, Evaluation{Score: 4}},
		{"full set plus extra with negative marking", []int{optA, optB, optC}, true, Evaluation{Score: -2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(multipleCorrectAB(), tt.submitted, tt.negativeMarking)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvaluate_SingleAnswer(t *testing.T) {
	trueFalse := &Question{Type: QuestionTypeTrueFalse, Options: []string{"True", "False"}, CorrectAnswers: []int{0}}

	tests := []struct {
		name            string
		question        *Question
		submitted       []int
		negativeMarking bool
		want            Evaluation
	}{
		{"correct", singleChoiceB(), []int{optB}, false, Evaluation{IsCorrect: true, Score: 4}},
		{"correct with negative marking", singleChoiceB(), []int{optB}, true, Evaluation{IsCorrect: true, Score: 4}},
		{"wrong with negative marking", singleChoiceB(), []int{optA}, true, Evaluation{Score: -1}},
		{"wrong without negative marking", singleChoiceB(), []int{optA}, false, Evaluation{Score: 0}},
		{"empty with negative marking", singleChoiceB(), nil, true, Evaluation{Score: 0}},
		{"empty without negative marking", singleChoiceB(), []int{}, false, Evaluation{Score: 0}},
		{"two picks never match", singleChoiceB(), []int{optB, optA}, true, Evaluation{Score: -1}},
		{"true-false correct", trueFalse, []int{0}, true, Evaluation{IsCorrect: true, Score: 4}},
		{"true-false wrong", trueFalse, []int{1}, true, Evaluation{Score: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Evaluate(tt.question, tt.submitted, tt.negativeMarking))
		})
	}
}

func TestEvaluate_UnknownTypeUsesSingleAnswerRules(t *testing.T) {
	q := &Question{Type: QuestionType("essay"), CorrectAnswers: []int{optC}}

	assert.Equal(t, Evaluation{IsCorrect: true, Score: 4}, Evaluate(q, []int{optC}, true))
	assert.Equal(t, Evaluation{Score: -1}, Evaluate(q, []int{optA}, true))
	assert.False(t, IsPartial(q, []int{optC}))
}

func TestEvaluate_NeverFails(t *testing.T) {
	t.Run("nil question", func(t *testing.T) {
		assert.Equal(t, Evaluation{}, Evaluate(nil, []int{optA}, true))
	})

	t.Run("multiple-correct without correct answers", func(t *testing.T) {
		q := &Question{Type: QuestionTypeMultipleCorrect}
		assert.Equal(t, Evaluation{Score: 0}, Evaluate(q, []int{optA}, false))
		assert.Equal(t, Evaluation{Score: -2}, Evaluate(q, []int{optA}, true))
	})

	t.Run("single-choice without correct answers", func(t *testing.T) {
		q := &Question{Type: QuestionTypeSingleChoice}
		assert.Equal(t, Evaluation{Score: -1}, Evaluate(q, []int{optA}, true))
	})

	t.Run("out of range indices", func(t *testing.T) {
		assert.Equal(t, Evaluation{Score: -2}, Evaluate(multipleCorrectAB(), []int{-1, 99}, true))
	})
}

func TestEvaluate_Idempotent(t *testing.T) {
	q := multipleCorrectAB()
	submitted := []int{optA, optC}

	first := Evaluate(q, submitted, true)
	second := Evaluate(q, submitted, true)

	assert.Equal(t, first, second)
	assert.Equal(t, []int{optA, optC}, submitted, "submission must not be mutated")
	assert.Equal(t, []int{optA, optB}, q.CorrectAnswers, "question must not be mutated")
}
