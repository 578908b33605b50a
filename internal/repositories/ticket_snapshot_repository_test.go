package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plantillas-system/internal/entities"
	apperrors "plantillas-system/pkg/errors"
)

type memoryCache struct {
	data map[string]string
	ttls map[string]time.Duration
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (m *memoryCache) Set(_ context.Context, key string, value interface{}, expiration time.Duration) error {
	switch v := value.(type) {
	case []byte:
		m.data[key] = string(v)
	case string:
		m.data[key] = v
	}
	m.ttls[key] = expiration
	return nil
}

func (m *memoryCache) Get(_ context.Context, key string) (string, error) {
	v, ok := m.data[key]
	if !ok {
		return "", apperrors.ErrNotFound
	}
	return v, nil
}

func (m *memoryCache) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func TestTicketSnapshot_SaveLoad(t *testing.T) {
	cache := newMemoryCache()
	repo := NewTicketSnapshotRepository(cache, time.Hour)
	entrega := "2025-09-01"
	tickets := []entities.Ticket{{
		Numero:       5932,
		Horma:        "PADE/14793 4.5",
		FechaEntrega: &entrega,
		Tallas:       map[string]int{"T36": 2, "T39": 3},
		Pares:        5,
	}}

	require.NoError(t, repo.Save(context.Background(), tickets))
	assert.Equal(t, time.Hour, cache.ttls[ticketSnapshotKey])

	loaded, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, tickets, loaded)
}

func TestTicketSnapshot_LoadMissing(t *testing.T) {
	repo := NewTicketSnapshotRepository(newMemoryCache(), 0)

	_, err := repo.Load(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
