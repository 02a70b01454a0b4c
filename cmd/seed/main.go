package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"quiz-catalog/internal/config"
	"quiz-catalog/internal/database"
	"quiz-catalog/internal/domain"
	"quiz-catalog/internal/logger"
	"quiz-catalog/internal/repository"
	"quiz-catalog/internal/util"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// seedConcurrency bounds how many categories are seeded at once. Each
// category gets its own transaction, so the limit also bounds open
// transactions against the pool.
const seedConcurrency = 4

// SeedCategory is one category tree in the seed catalog file.
type SeedCategory struct {
	Title     string         `json:"title"`
	Questions []SeedQuestion `json:"questions"`
}

// SeedQuestion is one question entry in the seed catalog file.
type SeedQuestion struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// seedFilePath resolves the catalog file, whether the command runs from the
// repository root or from a test two directories below it.
func seedFilePath() string {
	for _, path := range []string{"database/seed/initial_catalog.json", "../../database/seed/initial_catalog.json"} {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return "database/seed/initial_catalog.json"
}

func main() {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()

	log.Info("Starting catalog seeding process...")
	db, err := database.NewSQLXOracleDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to Oracle database", zap.Error(err))
	}
	defer db.Close()

	path := seedFilePath()
	log.Info("Loading seed data from file", zap.String("path", path))
	byteValue, err := os.ReadFile(path)
	if err != nil {
		log.Fatal("Failed to read seed file", zap.String("path", path), zap.Error(err))
	}

	var seedCategories []SeedCategory
	if err := json.Unmarshal(byteValue, &seedCategories); err != nil {
		log.Fatal("Failed to unmarshal seed data", zap.Error(err))
	}
	log.Info("Successfully unmarshalled seed data", zap.Int("categories_loaded", len(seedCategories)))

	txManager := repository.NewTransactionManagerAdapter(db)
	categoryRepo := repository.NewCategoryDatabaseAdapter(db)
	questionRepo := repository.NewQuestionDatabaseAdapter(db)

	// Each category tree is independent, so categories seed concurrently,
	// one transaction per category.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(seedConcurrency)
	for _, sc := range seedCategories {
		sc := sc // per-iteration copy; required for Go <1.22 loop semantics
		g.Go(func() error {
			return seedCategoryTree(gctx, txManager, categoryRepo, questionRepo, log, sc)
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatal("Seeding failed, unfinished categories rolled back", zap.Error(err))
	}
	log.Info("Catalog seeding process completed.")
}

// seedCategoryTree inserts one category and its questions inside a single
// transaction. A category whose slug already exists is skipped entirely,
// which makes reruns of the seeder safe.
func seedCategoryTree(
	ctx context.Context,
	txManager domain.TransactionManager,
	categoryRepo domain.CategoryRepository,
	questionRepo domain.QuestionRepository,
	log *zap.Logger,
	seedCat SeedCategory,
) error {
	return txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		slug := util.Slugify(seedCat.Title)
		if slug == "" {
			return fmt.Errorf("category %q yields an empty slug", seedCat.Title)
		}

		existing, err := categoryRepo.GetCategoryBySlug(txCtx, slug)
		if err != nil {
			return fmt.Errorf("failed to check category %q: %w", seedCat.Title, err)
		}
		if existing != nil {
			log.Info("Category exists, skipping.", zap.String("slug", slug))
			return nil
		}

		created, err := categoryRepo.SaveCategory(txCtx, domain.NewCategory(seedCat.Title, slug))
		if err != nil {
			return fmt.Errorf("failed to save category %q: %w", seedCat.Title, err)
		}
		log.Info("Created category.", zap.Int64("id", created.ID), zap.String("slug", created.Slug))

		for _, sq := range seedCat.Questions {
			question := util.SanitizeText(sq.Question)
			answer := util.SanitizeText(sq.Answer)
			questionSlug := util.Slugify(question)
			if questionSlug == "" {
				return fmt.Errorf("question %q yields an empty slug", sq.Question)
			}

			saved, err := questionRepo.SaveQuestion(txCtx, domain.NewQuestion(question, answer, questionSlug, created.ID))
			if err != nil {
				return fmt.Errorf("failed to save question %q: %w", questionSlug, err)
			}
			log.Info("Created question.", zap.Int64("id", saved.ID), zap.String("slug", saved.Slug))
		}
		return nil
	})
}
