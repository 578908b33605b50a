package dto

import (
	"time"

	"github.com/aarondl/null/v8"

	"plantillas-system/internal/entities"
)

// PlantillaResumenDTO is the fulfillment summary nested in every ticket view.
// Tickets without an active registration carry Estado "sin_plantilla" and nulls.
type PlantillaResumenDTO struct {
	ID                   *uint64        `json:"id"`
	Tipo                 *string        `json:"tipo"`
	Estado               string         `json:"estado"`
	NumeroPrograma       *string        `json:"numero_programa"`
	FechaProgramacion    *time.Time     `json:"fecha_programacion"`
	FechaFabricacion     null.Time      `json:"fecha_fabricacion"`
	PersonalAsignado     null.String    `json:"personal_asignado"`
	Proveedor            null.String    `json:"proveedor"`
	Observaciones        null.String    `json:"observaciones"`
	CantidadesFabricadas map[string]int `json:"cantidades_fabricadas,omitempty"`
	CantidadesCompradas  map[string]int `json:"cantidades_compradas,omitempty"`
}

// TicketViewDTO is a ticket merged with its fulfillment state. HORMA is
// replaced by the mold id; the heel code is exposed as HEEL and TACON.
type TicketViewDTO struct {
	entities.Ticket
	Horma           *string             `json:"HORMA"`
	Heel            *string             `json:"HEEL"`
	Tacon           *string             `json:"TACON"`
	Plantilla       PlantillaResumenDTO `json:"plantilla"`
	TienePlantilla  bool                `json:"tiene_plantilla"`
	EstadoPlantilla string              `json:"estado_plantilla"`
	NumeroPrograma  *string             `json:"numero_programa"`
}

// TicketDetailDTO adds the raw rows of the active registration.
type TicketDetailDTO struct {
	TicketViewDTO
	Registro       *entities.PlantillaRegistro `json:"registro"`
	Programacion   *entities.Programacion      `json:"programacion"`
	Programaciones []entities.Programacion     `json:"programaciones"`
	Tallas         []entities.TallaDetalle     `json:"tallas"`
}

type TicketsMetaDTO struct {
	Total         int       `json:"total"`
	Timestamp     time.Time `json:"timestamp"`
	ActualizadoEn time.Time `json:"actualizado_en"`
}
