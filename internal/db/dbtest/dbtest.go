// Package dbtest opens throwaway stores for tests.
package dbtest

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"portfolio-api/internal/db"
	"portfolio-api/internal/store/sqlstore"
)

// New returns stores on a private in-memory SQLite database named after t.
func New(t testing.TB) *db.Stores {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_", "#", "_").Replace(t.Name())
	drv, closer, err := sqlstore.Open("sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared", name), 1, 1)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(closer)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	stores, err := db.NewSQL(ctx, drv)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return stores
}
