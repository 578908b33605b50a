package services

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"plantillas-system/internal/entities"
	"plantillas-system/internal/events"
	"plantillas-system/internal/repositories"
	apperrors "plantillas-system/pkg/errors"
	"plantillas-system/pkg/eventbus"
)

const DefaultTicketCacheTTL = 5 * time.Minute

var errEmptyFeed = errors.New("el archivo de producción no contiene tickets")

// TicketFetcher loads the full ticket list from the feed.
type TicketFetcher func(ctx context.Context) ([]entities.Ticket, error)

type TicketCacheInterface interface {
	GetTickets(ctx context.Context) ([]entities.Ticket, error)
	ForceRefresh(ctx context.Context) ([]entities.Ticket, error)
	FindTicket(ctx context.Context, numero int) (entities.Ticket, error)
	LastRefreshedAt() time.Time
}

type TicketCacheConfig struct {
	Fetch     TicketFetcher
	TTL       time.Duration
	Now       func() time.Time
	Snapshots repositories.TicketSnapshotRepositoryInterface // optional second tier
	Publisher eventbus.Publisher                             // optional
}

type ticketSnapshot struct {
	tickets     []entities.Ticket
	refreshedAt time.Time
}

// TicketCache serves the feed from memory for TTL and falls back to the last
// good list when a refresh fails. The list and its timestamp are swapped as one
// value; concurrent refreshes may race and the last writer wins.
//
// Returned slices are shared between callers and must not be modified.
type TicketCache struct {
	fetch     TicketFetcher
	ttl       time.Duration
	now       func() time.Time
	snapshots repositories.TicketSnapshotRepositoryInterface
	publisher eventbus.Publisher
	current   atomic.Pointer[ticketSnapshot]
	logger    *zap.Logger
}

func NewTicketCache(cfg TicketCacheConfig, logger *zap.Logger) *TicketCache {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTicketCacheTTL
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &TicketCache{
		fetch:     cfg.Fetch,
		ttl:       cfg.TTL,
		now:       cfg.Now,
		snapshots: cfg.Snapshots,
		publisher: cfg.Publisher,
		logger:    logger.Named("ticket_cache"),
	}
}

func (c *TicketCache) GetTickets(ctx context.Context) ([]entities.Ticket, error) {
	prev := c.current.Load()
	if prev != nil && len(prev.tickets) > 0 && c.now().Sub(prev.refreshedAt) < c.ttl {
		return prev.tickets, nil
	}

	tickets, err := c.refresh(ctx)
	if err == nil {
		return tickets, nil
	}

	if prev != nil && len(prev.tickets) > 0 {
		c.logger.Warn("sirviendo tickets en caché tras fallo de actualización",
			zap.Error(err),
			zap.Time("actualizado", prev.refreshedAt),
			zap.Int("total", len(prev.tickets)),
		)
		return prev.tickets, nil
	}

	if stored := c.loadSnapshot(ctx); len(stored) > 0 {
		c.logger.Warn("sirviendo snapshot de redis tras fallo de actualización",
			zap.Error(err),
			zap.Int("total", len(stored)),
		)
		// zero timestamp: the next call retries the feed first
		c.current.Store(&ticketSnapshot{tickets: stored})
		return stored, nil
	}

	return nil, err
}

// ForceRefresh drops the cached list and fetches again. Failures propagate.
func (c *TicketCache) ForceRefresh(ctx context.Context) ([]entities.Ticket, error) {
	c.current.Store(nil)
	return c.refresh(ctx)
}

func (c *TicketCache) FindTicket(ctx context.Context, numero int) (entities.Ticket, error) {
	tickets, err := c.GetTickets(ctx)
	if err != nil {
		return entities.Ticket{}, err
	}
	t, ok := entities.FindTicket(tickets, numero)
	if !ok {
		return entities.Ticket{}, apperrors.ErrNotFound
	}
	return t, nil
}

func (c *TicketCache) LastRefreshedAt() time.Time {
	if snap := c.current.Load(); snap != nil {
		return snap.refreshedAt
	}
	return time.Time{}
}

func (c *TicketCache) refresh(ctx context.Context) ([]entities.Ticket, error) {
	tickets, err := c.fetch(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrUpstreamFetch) {
			return nil, err
		}
		return nil, apperrors.UpstreamError("feed de tickets", err)
	}
	if len(tickets) == 0 {
		return nil, apperrors.UpstreamError("feed de tickets", errEmptyFeed)
	}

	refreshedAt := c.now()
	c.current.Store(&ticketSnapshot{tickets: tickets, refreshedAt: refreshedAt})
	c.logger.Info("tickets actualizados", zap.Int("total", len(tickets)))

	if c.snapshots != nil {
		if err := c.snapshots.Save(ctx, tickets); err != nil {
			c.logger.Warn("no se pudo guardar el snapshot de tickets", zap.Error(err))
		}
	}
	if c.publisher != nil {
		c.publisher.Publish(ctx, events.TicketsActualizados{Total: len(tickets), RefreshedAt: refreshedAt})
	}
	return tickets, nil
}

func (c *TicketCache) loadSnapshot(ctx context.Context) []entities.Ticket {
	if c.snapshots == nil {
		return nil
	}
	stored, err := c.snapshots.Load(ctx)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			c.logger.Warn("no se pudo leer el snapshot de tickets", zap.Error(err))
		}
		return nil
	}
	return stored
}
