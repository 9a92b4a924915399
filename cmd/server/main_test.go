package main

import (
	"context"
	"testing"

	"github.com/mars1-events-planning/eventool-backend/config"
	"github.com/mars1-events-planning/eventool-backend/internal/cache"
	"github.com/mars1-events-planning/eventool-backend/internal/repository/memstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInitPersistence(t *testing.T) {
	ctx := context.Background()
	log := zap.NewNop()

	t.Run("Success - memory driver", func(t *testing.T) {
		cfg := config.LoadTestConfig()

		uow, eventCache, cleanup, err := initPersistence(ctx, cfg, log)

		require.NoError(t, err)
		defer cleanup()
		assert.IsType(t, &memstore.Store{}, uow)
		assert.Equal(t, cache.NopEventCache{}, eventCache)
	})

	t.Run("Failed - unreachable database returns an error", func(t *testing.T) {
		cfg := config.LoadTestConfig()
		cfg.Server.StorageDriver = config.StorageDriverPostgres
		cfg.Database.Host, cfg.Database.Port = "127.0.0.1", "1"

		uow, eventCache, cleanup, err := initPersistence(ctx, cfg, log)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "initialize database")
		assert.Nil(t, uow)
		assert.Nil(t, eventCache)
		assert.Nil(t, cleanup)
	})
}
