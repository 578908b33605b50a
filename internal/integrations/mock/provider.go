package mock

import (
	"context"
	"errors"

	"plantillas-system/internal/entities"
)

const ProviderName = "mock"

var ErrMockFailure = errors.New("mock: fallo simulado del proveedor")

// Provider serves a fixed set of tickets; used for local development and tests.
type Provider struct {
	ShouldFail bool
	Tickets    []entities.Ticket
}

func NewMockProvider() *Provider {
	return &Provider{Tickets: FixtureTickets()}
}

func (m *Provider) Name() string {
	return ProviderName
}

func (m *Provider) FetchTickets(ctx context.Context) ([]entities.Ticket, error) {
	if m.ShouldFail {
		return nil, ErrMockFailure
	}
	out := make([]entities.Ticket, len(m.Tickets))
	copy(out, m.Tickets)
	return out, nil
}

func strPtr(s string) *string { return &s }

func sizes(t34, t35, t36, t37, t38, t39, t40, t41, t42, t43 int) map[string]int {
	return map[string]int{
		"T34": t34, "T35": t35, "T36": t36, "T37": t37, "T38": t38,
		"T39": t39, "T40": t40, "T41": t41, "T42": t42, "T43": t43,
	}
}

// FixtureTickets returns three representative production tickets.
func FixtureTickets() []entities.Ticket {
	return []entities.Ticket{
		{
			Numero:       5932,
			Referencia:   "1610 SXT ST",
			Material:     "NOBUCK",
			Color:        "NEGRO",
			Lote:         417,
			FechaEntrega: strPtr("2025-09-01"),
			EstadoTicket: "NO PIEL / FORROS",
			EstadoSuela:  "TERMINADO",
			Horma:        "PADE/14793 4.5",
			PlantArmado:  "PLANT PADE 14793 ALT 4.5 SHAN DOBLE BOTA",
			Cliente:      "INVERSIONES STIVALI SAS",
			Tallas:       sizes(0, 0, 2, 2, 2, 3, 0, 0, 0, 0),
			Pares:        9,
		},
		{
			Numero:       6222,
			Referencia:   "1871 SXV SU",
			Material:     "SEVILLA",
			Color:        "MIEL",
			Lote:         427,
			FechaEntrega: strPtr("2025-08-23"),
			EstadoTicket: "GUARNICION",
			EstadoSuela:  "TERMINADO",
			Horma:        "SALMA/41035 2.5",
			PlantArmado:  "PLANT SALMA 41035 ALT 2.5 SHAN DOBLE ZAPATO",
			Cliente:      "SOBREMEDIDAS INV STIVALI",
			Tallas:       sizes(0, 1, 0, 0, 1, 1, 0, 0, 0, 0),
			Pares:        3,
		},
		{
			Numero:       6638,
			Referencia:   "2402 SXT ST",
			Material:     "CARNAZA X FOLIA X ANTE",
			Color:        "NEGRO X NEGRO X NEGRO",
			Lote:         462,
			FechaEntrega: strPtr("2025-10-30"),
			EstadoTicket: "MONTAJE",
			EstadoSuela:  "TERMINADO",
			Horma:        "INCA/E393 4.5",
			PlantArmado:  "PLANT INCA E393 ALT 4.5 SHAN DOBLE",
			Cliente:      "INVERSIONES STIVALI SAS",
			Tallas:       sizes(0, 1, 1, 2, 2, 1, 1, 1, 0, 0),
			Pares:        9,
		},
	}
}
