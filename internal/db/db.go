// Package db opens the configured backend and binds the resource collections.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"portfolio-api/internal/config"
	"portfolio-api/internal/logx"
	"portfolio-api/internal/model"
	"portfolio-api/internal/store"
	"portfolio-api/internal/store/mongostore"
	"portfolio-api/internal/store/sqlstore"
)

var dbLogger = logx.GetScope("db")

// Stores holds one collection per resource.
type Stores struct {
	Contacts store.Collection[model.Contact]
	Projects store.Collection[model.Project]
	Skills   store.Collection[model.Skill]
	Journeys store.Collection[model.Journey]

	pool *sql.DB
}

// Clearer is implemented by collections that can be emptied in one call.
type Clearer interface {
	Clear(ctx context.Context) (int64, error)
}

// Open connects to cfg.DB.Driver and prepares indexes or tables.
func Open(ctx context.Context, cfg *config.Config) (*Stores, func(), error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if cfg.DB.Driver == "mongo" {
		database, closer, err := mongostore.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database, uint64(cfg.DB.MaxOpenConns))
		if err != nil {
			return nil, func() {}, err
		}
		contacts := mongostore.New[model.Contact](database, store.ContactPolicy)
		projects := mongostore.New[model.Project](database, store.ProjectPolicy)
		skills := mongostore.New[model.Skill](database, store.SkillPolicy)
		journeys := mongostore.New[model.Journey](database, store.JourneyPolicy)
		for _, ix := range []interface{ EnsureIndexes(context.Context) error }{contacts, projects, skills, journeys} {
			if err := ix.EnsureIndexes(ctx); err != nil {
				closer()
				return nil, func() {}, err
			}
		}
		dbLogger.Sugar().Infof("connected to mongo database %s", cfg.Mongo.Database)
		return &Stores{Contacts: contacts, Projects: projects, Skills: skills, Journeys: journeys}, closer, nil
	}

	drv, closer, err := sqlstore.Open(cfg.DB.Driver, cfg.DB.URL, cfg.DB.MaxOpenConns, cfg.DB.MaxIdleConns)
	if err != nil {
		return nil, func() {}, err
	}
	stores, err := NewSQL(ctx, drv)
	if err != nil {
		closer()
		return nil, func() {}, err
	}
	dbLogger.Sugar().Infof("connected to %s database", cfg.DB.Driver)
	return stores, closer, nil
}

// NewSQL migrates drv and binds the SQL collections.
func NewSQL(ctx context.Context, drv *entsql.Driver) (*Stores, error) {
	if err := sqlstore.Migrate(ctx, drv, store.ContactPolicy, store.ProjectPolicy, store.SkillPolicy, store.JourneyPolicy); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Stores{
		Contacts: sqlstore.New[model.Contact](drv, store.ContactPolicy),
		Projects: sqlstore.New[model.Project](drv, store.ProjectPolicy),
		Skills:   sqlstore.New[model.Skill](drv, store.SkillPolicy),
		Journeys: sqlstore.New[model.Journey](drv, store.JourneyPolicy),
		pool:     drv.DB(),
	}, nil
}

// UpdatePool updates SQL pool settings at runtime. No-op for Mongo.
func (s *Stores) UpdatePool(maxOpen, maxIdle int) {
	if s.pool == nil {
		return
	}
	if maxOpen > 0 {
		s.pool.SetMaxOpenConns(maxOpen)
	}
	if maxIdle >= 0 {
		s.pool.SetMaxIdleConns(maxIdle)
	}
}
