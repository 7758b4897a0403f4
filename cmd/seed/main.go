// Command seed replaces the projects, skills and journey entries with sample data.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"portfolio-api/internal/config"
	"portfolio-api/internal/db"
	"portfolio-api/internal/logx"
	"portfolio-api/internal/store"
	"portfolio-api/internal/validation"
)

var seedLogger = logx.GetScope("seed")

type summary struct {
	Projects, Skills, Journeys int
}

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()
	if err := cfg.Validate(); err != nil {
		seedLogger.Error("invalid config", zap.Error(err))
		os.Exit(1)
	}
	logx.Init(cfg.Log.Level, cfg.Log.Format)
	defer logx.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	stores, closeDB, err := db.Open(ctx, cfg)
	if err != nil {
		seedLogger.Error("open db", zap.Error(err))
		os.Exit(1)
	}
	defer closeDB()

	sum, err := seed(ctx, stores)
	if err != nil {
		seedLogger.Error("seeding failed", zap.Error(err))
		closeDB()
		os.Exit(1)
	}
	seedLogger.Info("database seeded",
		zap.Int("projects", sum.Projects),
		zap.Int("skills", sum.Skills),
		zap.Int("journeys", sum.Journeys),
	)
}

func seed(ctx context.Context, stores *db.Stores) (summary, error) {
	for name, c := range map[string]any{"projects": stores.Projects, "skills": stores.Skills, "journeys": stores.Journeys} {
		clr, ok := c.(db.Clearer)
		if !ok {
			return summary{}, fmt.Errorf("%s: collection cannot be cleared", name)
		}
		n, err := clr.Clear(ctx)
		if err != nil {
			return summary{}, fmt.Errorf("clear %s: %w", name, err)
		}
		seedLogger.Sugar().Infof("cleared %d %s", n, name)
	}

	var sum summary
	var err error
	if sum.Projects, err = insert(ctx, stores.Projects, sampleProjects()); err != nil {
		return sum, fmt.Errorf("projects: %w", err)
	}
	if sum.Skills, err = insert(ctx, stores.Skills, sampleSkills()); err != nil {
		return sum, fmt.Errorf("skills: %w", err)
	}
	if sum.Journeys, err = insert(ctx, stores.Journeys, sampleJourney()); err != nil {
		return sum, fmt.Errorf("journeys: %w", err)
	}
	return sum, nil
}

// insert runs the same normalisation and checks as the API before writing.
func insert[T any](ctx context.Context, c store.Collection[T], docs []*T) (int, error) {
	for _, d := range docs {
		if err := validation.Apply(ctx, d); err != nil {
			return 0, err
		}
		if err := c.Create(ctx, d); err != nil {
			return 0, err
		}
	}
	return len(docs), nil
}
