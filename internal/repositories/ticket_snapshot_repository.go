package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"plantillas-system/internal/entities"
)

const ticketSnapshotKey = "plantillas:tickets:snapshot"

// TicketSnapshotRepositoryInterface keeps the last good ticket list outside the process.
type TicketSnapshotRepositoryInterface interface {
	Save(ctx context.Context, tickets []entities.Ticket) error
	Load(ctx context.Context) ([]entities.Ticket, error)
}

type TicketSnapshotRepository struct {
	cache CacheRepositoryInterface
	ttl   time.Duration
}

// NewTicketSnapshotRepository stores snapshots in cache; ttl 0 keeps them forever.
func NewTicketSnapshotRepository(cache CacheRepositoryInterface, ttl time.Duration) TicketSnapshotRepositoryInterface {
	return &TicketSnapshotRepository{cache: cache, ttl: ttl}
}

func (r *TicketSnapshotRepository) Save(ctx context.Context, tickets []entities.Ticket) error {
	payload, err := json.Marshal(tickets)
	if err != nil {
		return fmt.Errorf("serializar snapshot de tickets: %w", err)
	}
	return r.cache.Set(ctx, ticketSnapshotKey, payload, r.ttl)
}

func (r *TicketSnapshotRepository) Load(ctx context.Context) ([]entities.Ticket, error) {
	raw, err := r.cache.Get(ctx, ticketSnapshotKey)
	if err != nil {
		return nil, err
	}
	var tickets []entities.Ticket
	if err := json.Unmarshal([]byte(raw), &tickets); err != nil {
		return nil, fmt.Errorf("leer snapshot de tickets: %w", err)
	}
	return tickets, nil
}
