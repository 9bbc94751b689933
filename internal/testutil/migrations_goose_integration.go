//go:build integration

package testutil

import (
	"context"
	"fmt"
	"time"

	pgstore "github.com/Gunvolt24/purchase-order/internal/repo/postgres"
)

// ApplyMigrationsGoose: применяет встроенные миграции хранилища к базе контейнера.
func ApplyMigrationsGoose(dsn string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := pgstore.Migrate(ctx, dsn); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
