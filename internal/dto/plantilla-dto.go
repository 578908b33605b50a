package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/aarondl/null/v8"

	"plantillas-system/internal/entities"
	"plantillas-system/pkg/utils"
)

// TicketNumber accepts a ticket number sent either as a JSON number or a numeric string.
type TicketNumber int

func (n *TicketNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if strings.TrimSpace(s) == "" {
			*n = 0
			return nil
		}
		v, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("ticket_id %q no es un número", s)
		}
		*n = TicketNumber(v)
		return nil
	}
	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*n = TicketNumber(v)
	return nil
}

// SizeQuantities maps a size label to a quantity. It also accepts the older
// bare list of labels, where every entry counts as one pair.
type SizeQuantities map[string]int

func (q *SizeQuantities) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*q = nil
		return nil
	}
	if len(data) > 0 && data[0] == '[' {
		var labels []string
		if err := json.Unmarshal(data, &labels); err != nil {
			return err
		}
		out := make(SizeQuantities, len(labels))
		for _, l := range labels {
			out[l]++
		}
		*q = out
		return nil
	}
	var m map[string]int
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*q = m
	return nil
}

// Labels returns the size labels in ascending order.
func (q SizeQuantities) Labels() []string {
	labels := make([]string, 0, len(q))
	for l := range q {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return labels
}

// PlantillaActionDTO is the body of POST /api/plantillas. Several fields have
// aliases kept for older clients; use the Resolved* accessors.
type PlantillaActionDTO struct {
	TicketID             TicketNumber   `json:"ticket_id" validate:"required"`
	Accion               string         `json:"accion"`
	Tipo                 string         `json:"tipo" validate:"tipo_plantilla"`
	TipoPlantilla        string         `json:"tipo_plantilla" validate:"tipo_plantilla"`
	Estado               string         `json:"estado" validate:"estado_plantilla"`
	PersonalAsignado     null.String    `json:"personal_asignado"`
	Operario             null.String    `json:"operario"`
	Proveedor            null.String    `json:"proveedor"`
	Observaciones        null.String    `json:"observaciones"`
	TallasFabricadas     SizeQuantities `json:"tallas_fabricadas" validate:"omitempty,dive,keys,talla,endkeys,min=1"`
	CantidadesFabricadas SizeQuantities `json:"cantidades_fabricadas" validate:"omitempty,dive,keys,talla,endkeys,min=1"`
	TallasCompradas      SizeQuantities `json:"tallas_compradas" validate:"omitempty,dive,keys,talla,endkeys,min=1"`
	CantidadesCompradas  SizeQuantities `json:"cantidades_compradas" validate:"omitempty,dive,keys,talla,endkeys,min=1"`
	NumeroPrograma       string         `json:"numero_programa"`
	NumeroProgramacion   string         `json:"numero_programacion"`
	NumeroProgramacionJS string         `json:"numeroProgramacion"`
	FechaProgramacion    string         `json:"fecha_programacion"`

	// Top-level keys present in the request body.
	Sent map[string]bool `json:"-"`
}

func (d PlantillaActionDTO) ResolvedTipo() string {
	return utils.FirstNonEmpty(d.Tipo, d.TipoPlantilla)
}

func (d PlantillaActionDTO) ResolvedNumeroPrograma() string {
	return strings.TrimSpace(utils.FirstNonEmpty(d.NumeroPrograma, d.NumeroProgramacion, d.NumeroProgramacionJS))
}

// ResolvedOperario is the operator for a schedule row; personal_asignado is the fallback.
func (d PlantillaActionDTO) ResolvedOperario() null.String {
	if d.Operario.Valid && d.Operario.String != "" {
		return d.Operario
	}
	if d.PersonalAsignado.Valid && d.PersonalAsignado.String != "" {
		return d.PersonalAsignado
	}
	return null.String{}
}

// Fabricadas prefers the quantity map over the legacy list.
func (d PlantillaActionDTO) Fabricadas() SizeQuantities {
	if len(d.CantidadesFabricadas) > 0 {
		return d.CantidadesFabricadas
	}
	return d.TallasFabricadas
}

func (d PlantillaActionDTO) Compradas() SizeQuantities {
	if len(d.CantidadesCompradas) > 0 {
		return d.CantidadesCompradas
	}
	return d.TallasCompradas
}

// UpdatePatch builds the sparse patch for the update path: only keys present in
// the body are written.
func (d PlantillaActionDTO) UpdatePatch() entities.PlantillaPatch {
	var p entities.PlantillaPatch
	if tipo := d.ResolvedTipo(); tipo != "" {
		p.TipoPlantilla = &tipo
	}
	if d.Estado != "" {
		estado := d.Estado
		p.Estado = &estado
	}
	p.PersonalAsignado = utils.PatchString(d.Sent, "personal_asignado", d.PersonalAsignado)
	p.Proveedor = utils.PatchString(d.Sent, "proveedor", d.Proveedor)
	p.Observaciones = utils.PatchString(d.Sent, "observaciones", d.Observaciones)
	return p
}

// PatchPlantillaDTO is the body of PATCH /api/plantillas/:id.
type PatchPlantillaDTO struct {
	TipoPlantilla                *string     `json:"tipo_plantilla" validate:"omitempty,tipo_plantilla"`
	Tipo                         *string     `json:"tipo" validate:"omitempty,tipo_plantilla"`
	Estado                       *string     `json:"estado" validate:"omitempty,estado_plantilla"`
	PersonalAsignado             null.String `json:"personal_asignado"`
	Proveedor                    null.String `json:"proveedor"`
	Observaciones                null.String `json:"observaciones"`
	FechaCompletacionFabricacion null.Time   `json:"fecha_completacion_fabricacion"`
	Activo                       *bool       `json:"activo"`

	Sent map[string]bool `json:"-"`
}

var patchableFields = map[string]bool{
	"tipo_plantilla":                 true,
	"tipo":                           true,
	"estado":                         true,
	"personal_asignado":              true,
	"proveedor":                      true,
	"observaciones":                  true,
	"fecha_completacion_fabricacion": true,
	"activo":                         true,
}

// UnknownFields returns the sent keys outside the allow-list, sorted.
func (d PatchPlantillaDTO) UnknownFields() []string {
	var unknown []string
	for k := range d.Sent {
		if !patchableFields[k] {
			unknown = append(unknown, k)
		}
	}
	sort.Strings(unknown)
	return unknown
}

func (d PatchPlantillaDTO) ToPatch() entities.PlantillaPatch {
	var p entities.PlantillaPatch
	if d.TipoPlantilla != nil {
		p.TipoPlantilla = d.TipoPlantilla
	} else if d.Tipo != nil {
		p.TipoPlantilla = d.Tipo
	}
	p.Estado = d.Estado
	p.PersonalAsignado = utils.PatchString(d.Sent, "personal_asignado", d.PersonalAsignado)
	p.Proveedor = utils.PatchString(d.Sent, "proveedor", d.Proveedor)
	p.Observaciones = utils.PatchString(d.Sent, "observaciones", d.Observaciones)
	if d.Sent["fecha_completacion_fabricacion"] {
		fecha := d.FechaCompletacionFabricacion
		p.FechaCompletacionFabricacion = &fecha
	}
	p.Activo = d.Activo
	return p
}

// PlantillaResultDTO is the data of a POST /api/plantillas response.
type PlantillaResultDTO struct {
	Plantilla    *entities.PlantillaRegistro `json:"plantilla"`
	Programacion *entities.Programacion      `json:"programacion,omitempty"`
	Tallas       []entities.TallaDetalle     `json:"tallas,omitempty"`
}
