package entities

// Operario is a workshop operator available for scheduling.
type Operario struct {
	ID     uint64 `json:"id"`
	Nombre string `json:"nombre"`
	Activo bool   `json:"activo"`
}

// Proveedor is a supplier of purchased templates.
type Proveedor struct {
	ID     uint64 `json:"id"`
	Nombre string `json:"nombre"`
	Activo bool   `json:"activo"`
}
