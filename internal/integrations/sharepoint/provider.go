// Package sharepoint downloads the production workbook over HTTP.
package sharepoint

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"plantillas-system/internal/entities"
	"plantillas-system/internal/integrations"
)

const ProviderName = "sharepoint"

type Provider struct {
	httpClient  *http.Client
	downloadURL string
	accessToken string
	parser      integrations.WorkbookParser
	logger      *zap.Logger
}

// New builds the provider. accessToken is optional and sent as a bearer token;
// acquiring it is outside this service.
func New(downloadURL, accessToken string, parser integrations.WorkbookParser, logger *zap.Logger) integrations.TicketProvider {
	return &Provider{
		httpClient:  &http.Client{Timeout: 60 * time.Second},
		downloadURL: downloadURL,
		accessToken: accessToken,
		parser:      parser,
		logger:      logger.Named("sharepoint_provider"),
	}
}

func (p *Provider) Name() string {
	return ProviderName
}

func (p *Provider) FetchTickets(ctx context.Context) ([]entities.Ticket, error) {
	if p.downloadURL == "" {
		return nil, fmt.Errorf("SHAREPOINT_DOWNLOAD_URL no configurado")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.downloadURL, nil)
	if err != nil {
		return nil, fmt.Errorf("error creando la solicitud de descarga: %w", err)
	}
	if p.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+p.accessToken)
	}

	p.logger.Info("Leyendo Excel de SharePoint...")
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error descargando el Excel: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("la descarga del Excel devolvió el estado: %s", resp.Status)
	}

	tickets, err := p.parser.Parse(resp.Body)
	if err != nil {
		return nil, err
	}
	p.logger.Info("registros leídos de SharePoint", zap.Int("count", len(tickets)))
	return tickets, nil
}
