package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"topic-quiz/cmd/seed/internal/seedmodels"
	"topic-quiz/internal/config"
	"topic-quiz/internal/database"
	"topic-quiz/internal/logger"
	"topic-quiz/internal/repository"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const defaultSeedFile = "configs/seed_data/topics.json"

func main() {
	cmd := &cobra.Command{
		Use:   "seed [file]",
		Short: "Load topics and starter questions from a JSON file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultSeedFile
			if len(args) == 1 {
				path = args[0]
			}
			return run(cmd.Context(), path)
		},
	}
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, path string) error {
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

	topics, err := loadSeedFile(path)
	if err != nil {
		log.Error("Failed to load seed data", zap.String("path", path), zap.Error(err))
		return err
	}
	log.Info("Loaded seed data", zap.String("path", path), zap.Int("topics", len(topics)))

	db, err := database.NewSQLXOracleDB(ctx, cfg.GetDSN())
	if err != nil {
		log.Error("Failed to connect to Oracle database", zap.Error(err))
		return err
	}
	defer db.Close()

	s := &seeder{
		topics:    repository.NewTopicRepository(db),
		questions: repository.NewQuestionRepository(db),
		txManager: repository.NewTransactionManagerAdapter(db),
		log:       log,
	}

	var failed int
	for _, st := range topics {
		created, err := s.seedTopic(ctx, st)
		if err != nil {
			failed++
			log.Error("Error seeding topic, transaction rolled back", zap.String("topic", st.Name), zap.Error(err))
			continue
		}
		log.Info("Seeded topic", zap.String("topic", st.Name), zap.Int("questions_created", created))
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d topics failed to seed", failed, len(topics))
	}
	log.Info("Seeding completed")
	return nil
}

func loadSeedFile(path string) ([]seedmodels.SeedTopic, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	var topics []seedmodels.SeedTopic
	if err := json.Unmarshal(raw, &topics); err != nil {
		return nil, fmt.Errorf("failed to unmarshal seed data: %w", err)
	}
	return topics, nil
}
