package entities

// Ticket is one production ticket read from the production sheet.
// Tickets are read-only and replaced wholesale on every feed refresh.
type Ticket struct {
	Numero       int            `json:"TICKET"`
	Referencia   string         `json:"Referencia"`
	Material     string         `json:"Material"`
	Color        string         `json:"Color"`
	Lote         int            `json:"LOTE"`
	FechaEntrega *string        `json:"FECHA_DE_ENTREGA"`
	EstadoTicket string         `json:"ESTADO_TICKET"`
	EstadoSuela  string         `json:"ESTADO_SUELA"`
	Horma        string         `json:"HORMA"`
	PlantArmado  string         `json:"PLANT_ARMADO"`
	Cliente      string         `json:"CLIENTE"`
	Tallas       map[string]int `json:"tallas"`
	Pares        int            `json:"PARES"`
}

// FindTicket returns the ticket with the given number from a snapshot.
func FindTicket(tickets []Ticket, numero int) (Ticket, bool) {
	for _, t := range tickets {
		if t.Numero == numero {
			return t, true
		}
	}
	return Ticket{}, false
}
