package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-api/internal/db/dbtest"
	"portfolio-api/internal/model"
	"portfolio-api/internal/store"
)

func TestSeed_ReplacesSampleData(t *testing.T) {
	stores := dbtest.New(t)
	ctx := context.Background()

	stale := &model.Skill{Name: "COBOL", Category: model.SkillCategoryOther, Level: 10}
	require.NoError(t, stores.Skills.Create(ctx, stale))
	contact := &model.Contact{Name: "Ada", Email: "ada@example.com", Message: "hi"}
	require.NoError(t, stores.Contacts.Create(ctx, contact))

	sum, err := seed(ctx, stores)
	require.NoError(t, err)
	assert.Equal(t, summary{Projects: 3, Skills: 20, Journeys: 4}, sum)

	// running twice does not trip the unique skill names
	_, err = seed(ctx, stores)
	require.NoError(t, err)

	n, err := stores.Skills.Count(ctx, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 20, n)
	_, err = stores.Skills.FindByID(ctx, stale.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	// contacts are left alone
	_, err = stores.Contacts.FindByID(ctx, contact.ID)
	assert.NoError(t, err)

	featured, err := stores.Projects.Find(ctx, store.Query{Filter: store.Filter{"featured": true}})
	require.NoError(t, err)
	require.Len(t, featured, 2)
	assert.Equal(t, "Portfolio Website", featured[0].Title)
}
