package main

import (
	"context"
	"fmt"
	"strings"

	"topic-quiz/cmd/seed/internal/seedmodels"
	"topic-quiz/internal/domain"

	"go.uber.org/zap"
)

const questionSourceSeed = "seed"

type seeder struct {
	topics    domain.TopicRepository
	questions domain.QuestionRepository
	txManager domain.TransactionManager
	log       *zap.Logger
}

// seedTopic creates the topic when missing and adds every valid question whose
// text is not stored yet, all in one transaction. It returns how many
// questions were created.
func (s *seeder) seedTopic(ctx context.Context, st seedmodels.SeedTopic) (int, error) {
	name := strings.TrimSpace(st.Name)
	if name == "" {
		return 0, domain.NewMissingFieldError("topic_name")
	}

	created := 0
	err := s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		topic, err := s.topics.GetTopicByName(ctx, name)
		if err != nil {
			return fmt.Errorf("error checking topic %s: %w", name, err)
		}
		if topic == nil {
			topic = &domain.Topic{Name: name, Content: st.Content}
			if err := s.topics.CreateTopic(ctx, topic); err != nil {
				return fmt.Errorf("failed to save topic %s: %w", name, err)
			}
			s.log.Info("Created topic", zap.Int64("id", topic.ID), zap.String("name", name))
		}

		for i, sq := range st.Questions {
			q := &domain.Question{
				TopicID:        topic.ID,
				Subtopic:       strings.TrimSpace(sq.Subtopic),
				Type:           domain.ParseQuestionType(sq.Type),
				Text:           strings.TrimSpace(sq.Question),
				Options:        sq.Options,
				CorrectAnswers: sq.CorrectAnswers,
				Explanation:    sq.Explanation,
				Source:         questionSourceSeed,
			}
			if err := q.Validate(); err != nil {
				s.log.Warn("Skipping invalid seed question", zap.String("topic", name), zap.Int("index", i), zap.Error(err))
				continue
			}

			existing, err := s.questions.GetQuestionByText(ctx, q.Text)
			if err != nil {
				return fmt.Errorf("error checking question %d of %s: %w", i, name, err)
			}
			if existing != nil {
				continue
			}
			if err := s.questions.CreateQuestion(ctx, q); err != nil {
				return fmt.Errorf("failed to save question %d of %s: %w", i, name, err)
			}
			created++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}
