package seeders

var operariosData = []string{
	"Carlos Gómez",
	"Luz Marina Restrepo",
	"Andrés Cárdenas",
	"Paola Quintero",
	"Jhon Fredy Ospina",
}

var proveedoresData = []string{
	"Plantillas del Valle",
	"Suelas y Hormas Medellín",
	"Insumos Calzado Bucaramanga",
}
