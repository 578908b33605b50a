package events

import "time"

const (
	PlantillaActualizadaName = "plantilla.actualizada"
	TicketsActualizadosName  = "tickets.actualizados"
)

// PlantillaActualizada is published after any write to a registration.
type PlantillaActualizada struct {
	TicketID   int    `json:"ticket_id"`
	RegistroID uint64 `json:"registro_id"`
	Accion     string `json:"accion"`
	Tipo       string `json:"tipo_plantilla"`
	Estado     string `json:"estado"`
}

func (e PlantillaActualizada) Name() string { return PlantillaActualizadaName }

// TicketsActualizados is published after a successful feed refresh.
type TicketsActualizados struct {
	Total       int       `json:"total"`
	RefreshedAt time.Time `json:"refreshed_at"`
}

func (e TicketsActualizados) Name() string { return TicketsActualizadosName }
