package integrations

import (
	"context"
	"io"

	"plantillas-system/internal/entities"
)

// TicketProvider is a source of production tickets.
type TicketProvider interface {
	Name() string
	FetchTickets(ctx context.Context) ([]entities.Ticket, error)
}

// WorkbookParser converts a workbook export into tickets.
type WorkbookParser interface {
	Parse(r io.Reader) ([]entities.Ticket, error)
}
