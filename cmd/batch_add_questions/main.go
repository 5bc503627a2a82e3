package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"topic-quiz/internal/adapter"
	"topic-quiz/internal/adapter/llm"
	"topic-quiz/internal/cache"
	"topic-quiz/internal/config"
	"topic-quiz/internal/database"
	"topic-quiz/internal/domain"
	"topic-quiz/internal/dto"
	"topic-quiz/internal/logger"
	"topic-quiz/internal/repository"
	"topic-quiz/internal/service"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type batchOptions struct {
	subtopic    string
	types       []string
	count       int
	concurrency int
}

func main() {
	opts := batchOptions{}
	cmd := &cobra.Command{
		Use:   "batch_add_questions <topic> [topic...]",
		Short: "Generate and store new questions for the given topics",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), args, opts)
		},
	}
	cmd.Flags().StringVar(&opts.subtopic, "subtopic", "", "subtopic to generate questions for")
	cmd.Flags().StringSliceVar(&opts.types, "types", []string{"mcq", "true-false", "multiple-correct"}, "question types to generate")
	cmd.Flags().IntVar(&opts.count, "count", 10, "questions per topic and type")
	cmd.Flags().IntVar(&opts.concurrency, "concurrency", 2, "parallel LLM requests")

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, topics []string, opts batchOptions) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		return err
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		return err
	}
	defer logger.Sync()
	log := logger.Get()
	log.Info("Batch process starting up...")

	db, err := database.NewSQLXOracleDB(ctx, cfg.GetDSN())
	if err != nil {
		log.Error("Failed to connect to Oracle database", zap.Error(err))
		return err
	}
	defer db.Close()

	var cacheAdapter domain.Cache
	if cfg.Redis.Address != "" {
		redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Warn("Redis unavailable, running without cache", zap.Error(err))
		} else {
			defer redisClient.Close()
			cacheAdapter = adapter.NewRedisCacheAdapter(redisClient)
		}
	}

	generator, err := llm.New(ctx, cfg.LLM)
	if err != nil {
		log.Error("Failed to create LLM client", zap.Error(err))
		return err
	}

	// Reuse is disabled so every call asks the model for fresh questions.
	contentSvc := service.NewContentService(
		repository.NewTopicRepository(db),
		repository.NewQuestionRepository(db),
		repository.NewTransactionManagerAdapter(db),
		generator,
		cacheAdapter,
		service.ContentOptions{ReuseProbability: 0, CacheTTL: cfg.Redis.ContentTTL},
	)

	total, err := addQuestions(ctx, contentSvc, topics, opts, log)
	if err != nil {
		log.Error("Batch process failed", zap.Error(err))
		return err
	}
	log.Info("Batch process completed successfully.", zap.Int("questions", total))
	return nil
}

// addQuestions makes sure every topic exists, then generates questions for
// each topic and type with at most opts.concurrency requests in flight.
func addQuestions(ctx context.Context, svc service.ContentService, topics []string, opts batchOptions, log *zap.Logger) (int, error) {
	for _, topic := range topics {
		if _, err := svc.Search(ctx, &dto.SearchRequest{SearchQuery: topic}); err != nil {
			return 0, fmt.Errorf("failed to prepare topic %s: %w", topic, err)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.concurrency, 1))
	counts := make([]int, len(topics)*len(opts.types))

	for i, topic := range topics {
		for j, qt := range opts.types {
			slot := i*len(opts.types) + j
			topic, qt := topic, strings.TrimSpace(qt)
			g.Go(func() error {
				resp, err := svc.GenerateQuiz(gctx, &dto.GenerateQuizRequest{
					Topic:        topic,
					Subtopic:     opts.subtopic,
					QuestionType: qt,
					NumQuestions: opts.count,
				})
				if err != nil {
					return fmt.Errorf("failed to generate %s questions for %s: %w", qt, topic, err)
				}
				counts[slot] = len(resp.Quiz.Quiz)
				log.Info("Generated questions", zap.String("topic", topic), zap.String("type", qt), zap.Int("count", counts[slot]))
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	total := 0
	for _, n := range counts {
		total += n
	}
	return total, nil
}
