// Package excel turns the production workbook export into tickets.
package excel

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"plantillas-system/internal/entities"
	"plantillas-system/pkg/constants"
	"plantillas-system/pkg/utils"
)

const (
	DefaultSheet       = "produccion"
	DefaultRecencyDays = 30

	// Row 1 holds the sheet title, row 2 the headers (1-indexed).
	headerRowIndex = 1
)

// Header names of the production sheet.
const (
	ColTicket            = "TICKET"
	ColReferencia        = "Referencia"
	ColMaterial          = "Material"
	ColColor             = "Color"
	ColLote              = "LOTE"
	ColFechaEntrega      = "FECHA_DE_ENTREGA"
	ColEstadoTicket      = "ESTADO_TICKET"
	ColEstadoSuela       = "ESTADO_SUELA"
	ColHorma             = "HORMA"
	ColPlantArmado       = "PLANT_ARMADO"
	ColCliente           = "CLIENTE"
	ColPares             = "PARES"
	ColRecibidoTerminado = "FECHA_RECIBIDO_TERMINADO"
)

// Serial numbers below this are not treated as Excel dates.
const minExcelDateSerial = 20000

var leadingInt = regexp.MustCompile(`^[+-]?\d+`)

type Parser struct {
	sheet       string
	recencyDays int
	now         func() time.Time
}

func NewParser(sheet string, recencyDays int, now func() time.Time) *Parser {
	if sheet == "" {
		sheet = DefaultSheet
	}
	if recencyDays <= 0 {
		recencyDays = DefaultRecencyDays
	}
	if now == nil {
		now = time.Now
	}
	return &Parser{sheet: sheet, recencyDays: recencyDays, now: now}
}

// Parse reads the workbook from r and returns the tickets of the production sheet.
func (p *Parser) Parse(r io.Reader) ([]entities.Ticket, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("error abriendo el libro: %w", err)
	}
	defer f.Close()

	idx, err := f.GetSheetIndex(p.sheet)
	if err != nil {
		return nil, fmt.Errorf("error buscando la hoja %q: %w", p.sheet, err)
	}
	if idx == -1 {
		return nil, fmt.Errorf("no se encontró la hoja %q en el Excel", p.sheet)
	}

	rows, err := f.GetRows(p.sheet)
	if err != nil {
		return nil, fmt.Errorf("error leyendo filas de %q: %w", p.sheet, err)
	}
	return p.parseRows(f, rows)
}

func (p *Parser) parseRows(f *excelize.File, rows [][]string) ([]entities.Ticket, error) {
	tickets := make([]entities.Ticket, 0)
	if len(rows) <= headerRowIndex {
		return tickets, nil
	}

	columns := headerIndexes(rows[headerRowIndex])
	if _, ok := columns[ColTicket]; !ok {
		return nil, fmt.Errorf("la fila de encabezados no contiene la columna %s", ColTicket)
	}

	cutoff := utils.StartOfDay(p.now()).AddDate(0, 0, -p.recencyDays)

	for i := headerRowIndex + 1; i < len(rows); i++ {
		rr := rowReader{f: f, sheet: p.sheet, row: rows[i], rowNum: i + 1, columns: columns}

		if rr.str(ColTicket) == "" {
			continue
		}

		if received, ok := rr.date(ColRecibidoTerminado); ok && utils.StartOfDay(received).Before(cutoff) {
			continue
		}

		tickets = append(tickets, rr.ticket())
	}
	return tickets, nil
}

// headerIndexes maps header text to column position. Blank header cells keep
// their position so data columns stay aligned; the first occurrence wins.
func headerIndexes(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		if _, seen := columns[h]; !seen {
			columns[h] = i
		}
	}
	return columns
}

type rowReader struct {
	f       *excelize.File
	sheet   string
	row     []string
	rowNum  int
	columns map[string]int
}

// str returns the trimmed cell value under header. A blank cell holding a
// formula is replaced by the formula's computed result.
func (r rowReader) str(header string) string {
	col, ok := r.columns[header]
	if !ok {
		return ""
	}
	var value string
	if col < len(r.row) {
		value = strings.TrimSpace(r.row[col])
	}
	if value != "" || r.f == nil {
		return value
	}

	cell, err := excelize.CoordinatesToCellName(col+1, r.rowNum)
	if err != nil {
		return ""
	}
	formula, err := r.f.GetCellFormula(r.sheet, cell)
	if err != nil || formula == "" {
		return ""
	}
	computed, err := r.f.CalcCellValue(r.sheet, cell)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(computed)
}

func (r rowReader) num(header string) int {
	return toInt(r.str(header))
}

func (r rowReader) optional(header string) *string {
	v := r.str(header)
	if v == "" {
		return nil
	}
	return &v
}

// date reads header's cell without its number format, so a date-typed cell
// arrives as its serial whatever the display format is. Text cells go through
// the day-first layouts of utils.ParseFlexibleDate.
func (r rowReader) date(header string) (time.Time, bool) {
	v := r.raw(header)
	if v == "" {
		return time.Time{}, false
	}
	if serial, err := strconv.ParseFloat(v, 64); err == nil && serial >= minExcelDateSerial {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return time.Time{}, false
		}
		// Serials carry no zone; keep the wall clock in local time.
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.Local), true
	}
	return utils.ParseFlexibleDate(v)
}

// raw returns the unformatted cell value under header, falling back to the
// formatted row value when the workbook is not available.
func (r rowReader) raw(header string) string {
	col, ok := r.columns[header]
	if !ok {
		return ""
	}
	if r.f == nil {
		return r.str(header)
	}
	cell, err := excelize.CoordinatesToCellName(col+1, r.rowNum)
	if err != nil {
		return ""
	}
	v, err := r.f.GetCellValue(r.sheet, cell, excelize.Options{RawCellValue: true})
	if err != nil {
		return ""
	}
	return strings.TrimSpace(v)
}

func (r rowReader) ticket() entities.Ticket {
	tallas := make(map[string]int, len(constants.SizeLabels))
	for _, label := range constants.SizeLabels {
		tallas[label] = r.num(label)
	}

	return entities.Ticket{
		Numero:       r.num(ColTicket),
		Referencia:   r.str(ColReferencia),
		Material:     r.str(ColMaterial),
		Color:        r.str(ColColor),
		Lote:         r.num(ColLote),
		FechaEntrega: r.optional(ColFechaEntrega),
		EstadoTicket: r.str(ColEstadoTicket),
		EstadoSuela:  r.str(ColEstadoSuela),
		Horma:        r.str(ColHorma),
		PlantArmado:  r.str(ColPlantArmado),
		Cliente:      r.str(ColCliente),
		Tallas:       tallas,
		Pares:        r.num(ColPares),
	}
}

// toInt coerces a cell to an integer, defaulting to zero.
func toInt(v string) int {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return int(f)
	}
	if m := leadingInt.FindString(v); m != "" {
		if n, err := strconv.Atoi(m); err == nil {
			return n
		}
	}
	return 0
}
