// Package localfile reads the production workbook from disk.
package localfile

import (
	"context"
	"fmt"
	"os"

	"plantillas-system/internal/entities"
	"plantillas-system/internal/integrations"
)

const ProviderName = "localfile"

type Provider struct {
	path   string
	parser integrations.WorkbookParser
}

func New(path string, parser integrations.WorkbookParser) integrations.TicketProvider {
	return &Provider{path: path, parser: parser}
}

func (p *Provider) Name() string {
	return ProviderName
}

func (p *Provider) FetchTickets(ctx context.Context) ([]entities.Ticket, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(p.path)
	if err != nil {
		return nil, fmt.Errorf("error abriendo %s: %w", p.path, err)
	}
	defer f.Close()

	return p.parser.Parse(f)
}
