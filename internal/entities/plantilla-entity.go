package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

// PlantillaRegistro is a template registration (table plantillas_registro).
// At most one row per ticket has Activo = true.
type PlantillaRegistro struct {
	ID                           uint64      `json:"id"`
	TicketID                     int         `json:"ticket_id"`
	TipoPlantilla                string      `json:"tipo_plantilla"`
	Estado                       string      `json:"estado"`
	PersonalAsignado             null.String `json:"personal_asignado"`
	Proveedor                    null.String `json:"proveedor"`
	Observaciones                null.String `json:"observaciones"`
	FechaRegistro                time.Time   `json:"fecha_registro"`
	FechaCompletacionFabricacion null.Time   `json:"fecha_completacion_fabricacion"`
	Activo                       bool        `json:"activo"`
}

// TallaDetalle is a per-size row of a mixed registration (table plantillas_tallas_detalle).
type TallaDetalle struct {
	ID                  uint64 `json:"id"`
	PlantillaRegistroID uint64 `json:"plantilla_registro_id"`
	Talla               string `json:"talla"`
	Cantidad            int    `json:"cantidad"`
	Tipo                string `json:"tipo"`
	Estado              string `json:"estado"`
}

// Programacion is one scheduling event (table programacion_plantillas). Append-only;
// the row with the highest id is the current one.
type Programacion struct {
	ID                  uint64      `json:"id"`
	TicketID            int         `json:"ticket_id"`
	PlantillaRegistroID uint64      `json:"plantilla_registro_id"`
	NumeroProgramacion  string      `json:"numero_programacion"`
	FechaProgramacion   time.Time   `json:"fecha_programacion"`
	Operario            null.String `json:"operario"`
	Estado              string      `json:"estado"`
}

// PlantillaPatch is the allow-listed sparse update of a registration.
// A nil field is left untouched.
type PlantillaPatch struct {
	TipoPlantilla                *string
	Estado                       *string
	PersonalAsignado             *null.String
	Proveedor                    *null.String
	Observaciones                *null.String
	FechaCompletacionFabricacion *null.Time
	Activo                       *bool
}

func (p PlantillaPatch) IsEmpty() bool {
	return p.TipoPlantilla == nil && p.Estado == nil && p.PersonalAsignado == nil &&
		p.Proveedor == nil && p.Observaciones == nil && p.FechaCompletacionFabricacion == nil &&
		p.Activo == nil
}

// ApplyTo returns a copy of r with the patch applied.
func (p PlantillaPatch) ApplyTo(r PlantillaRegistro) PlantillaRegistro {
	if p.TipoPlantilla != nil {
		r.TipoPlantilla = *p.TipoPlantilla
	}
	if p.Estado != nil {
		r.Estado = *p.Estado
	}
	if p.PersonalAsignado != nil {
		r.PersonalAsignado = *p.PersonalAsignado
	}
	if p.Proveedor != nil {
		r.Proveedor = *p.Proveedor
	}
	if p.Observaciones != nil {
		r.Observaciones = *p.Observaciones
	}
	if p.FechaCompletacionFabricacion != nil {
		r.FechaCompletacionFabricacion = *p.FechaCompletacionFabricacion
	}
	if p.Activo != nil {
		r.Activo = *p.Activo
	}
	return r
}
