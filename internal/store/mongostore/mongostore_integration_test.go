//go:build integration
// +build integration

package mongostore

import (
	"context"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go/modules/mongodb"

	"portfolio-api/internal/model"
	"portfolio-api/internal/store"
)

func Test_Collection_With_MongoContainer(t *testing.T) {
	ctx := context.Background()

	mc, err := mongodb.Run(ctx, "mongo:7")
	if err != nil {
		t.Fatalf("start mongo: %v", err)
	}
	t.Cleanup(func() { _ = mc.Terminate(ctx) })

	uri, err := mc.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("connection string: %v", err)
	}
	db, closeFn, err := Connect(ctx, uri, "portfolio_test", 5)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer closeFn()

	ctx2, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	skills := New[model.Skill](db, store.SkillPolicy)
	if err := skills.EnsureIndexes(ctx2); err != nil {
		t.Fatalf("indexes: %v", err)
	}

	goSkill := model.NewSkill()
	goSkill.Name, goSkill.Category = "Go", model.SkillCategoryBackend
	if err := skills.Create(ctx2, goSkill); err != nil {
		t.Fatalf("create: %v", err)
	}
	dup := model.NewSkill()
	dup.Name, dup.Category = "Go", model.SkillCategoryTools
	if err := skills.Create(ctx2, dup); !store.IsDuplicate(err) {
		t.Fatalf("expected duplicate key, got %v", err)
	}

	got, err := skills.FindByID(ctx2, goSkill.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.Name != "Go" || got.Level != model.DefaultSkillLevel || !got.CreatedAt.Equal(goSkill.CreatedAt) {
		t.Fatalf("unexpected skill: %+v", got)
	}

	updated, err := skills.Update(ctx2, goSkill.ID, func(s *model.Skill) error {
		s.Level = 95
		return nil
	})
	if err != nil || updated.Level != 95 {
		t.Fatalf("update: %v %+v", err, updated)
	}

	if _, err := skills.FindByID(ctx2, "not-an-object-id"); err != store.ErrNotFound {
		t.Fatalf("expected not found, got %v", err)
	}

	journeys := New[model.Journey](db, store.JourneyPolicy)
	for _, d := range []string{"2019-09-01", "2023-01-10", "2021-05-20"} {
		j := model.NewJourney()
		j.Title, j.Organization, j.Type, j.Description = d, "Org", model.JourneyTypeWork, "desc"
		j.StartDate = model.MustDate(d)
		if err := journeys.Create(ctx2, j); err != nil {
			t.Fatalf("create journey: %v", err)
		}
	}
	list, err := journeys.Find(ctx2, store.Query{Filter: store.Filter{"type": model.JourneyTypeWork}})
	if err != nil {
		t.Fatalf("find journeys: %v", err)
	}
	if len(list) != 3 || list[0].Title != "2023-01-10" || list[2].Title != "2019-09-01" {
		t.Fatalf("unexpected order: %+v", list)
	}

	if err := skills.Delete(ctx2, goSkill.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := skills.Delete(ctx2, goSkill.ID); err != store.ErrNotFound {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}
