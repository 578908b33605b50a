package constants

// Fulfillment types (plantillas_registro.tipo_plantilla)
const (
	TipoFabricada = "fabricada"
	TipoComprada  = "comprada"
	TipoMixta     = "mixta"
)

// Registration states (plantillas_registro.estado)
const (
	EstadoPendiente  = "pendiente"
	EstadoProgramada = "programada"
	EstadoCompletada = "completada"
	EstadoParcial    = "parcial"
	EstadoLista      = "lista"
	EstadoRecibida   = "recibida"

	// Merge-layer sentinel for tickets without an active registration.
	EstadoSinPlantilla = "sin_plantilla"
)

// Size detail sub-types (plantillas_tallas_detalle.tipo)
const (
	TallaFabricada = "fabricada"
	TallaComprada  = "comprada"
)

// Actions accepted by POST /api/plantillas
const (
	AccionRegistrar = "registrar"
	AccionProgramar = "programar"
	AccionFabricada = "fabricada"
	AccionLista     = "lista"
)

// SizeLabels is the fixed set of shoe-size columns in the production sheet.
var SizeLabels = []string{"T34", "T35", "T36", "T37", "T38", "T39", "T40", "T41", "T42", "T43"}

var TiposPlantilla = []string{TipoFabricada, TipoComprada, TipoMixta}

var EstadosPlantilla = []string{
	EstadoPendiente,
	EstadoProgramada,
	EstadoCompletada,
	EstadoParcial,
	EstadoLista,
	EstadoRecibida,
}

func IsSizeLabel(label string) bool {
	return contains(SizeLabels, label)
}

func IsTipoPlantilla(tipo string) bool {
	return contains(TiposPlantilla, tipo)
}

func IsEstadoPlantilla(estado string) bool {
	return contains(EstadosPlantilla, estado)
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
