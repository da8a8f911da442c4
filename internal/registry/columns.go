package registry

// Common columns present in every audit table.
const (
	ColumnAuditID    = "auditoria_id"
	ColumnAction     = "accion"
	ColumnActor      = "usuario_modificacion"
	ColumnModifiedAt = "fecha_modificacion"
	ColumnIP         = "ip_modificacion"
)

// CommonColumns lists the audit bookkeeping columns; everything else in a row
// is the entity snapshot.
var CommonColumns = []string{ColumnAuditID, ColumnAction, ColumnActor, ColumnModifiedAt, ColumnIP}

// searchColumns maps an entity key to the text columns a free-text search
// looks at. Entities missing here search their "<entity>_codigo" column only.
var searchColumns = map[string][]string{
	"reserva":          {"reserva_codigo", "reserva_nombres_cliente", "reserva_apellidos_cliente", "reserva_telefono_cliente", "reserva_email_cliente"},
	"vehiculo":         {"vehiculo_codigo", "vehiculo_placa", "vehiculo_marca", "vehiculo_modelo"},
	"persona":          {"persona_codigo", "persona_nombres", "persona_apellidos", "persona_telefono", "persona_email"},
	"agencia":          {"agencia_codigo", "agencia_razon_social", "agencia_nit", "agencia_email"},
	"contacto_agencia": {"contacto_agencia_codigo", "contacto_agencia_nombres", "contacto_agencia_apellidos", "contacto_agencia_telefono"},
	"usuario":          {"usuario_codigo", "usuario_alias"},
	"ruta":             {"ruta_codigo", "ruta_origen", "ruta_destino"},
	"servicio":         {"servicio_codigo", "servicio_nombre"},
}

// displayRules maps an entity key to ordered candidates for the "affected
// record" column of the detailed report. Each candidate is a group of
// columns joined with a space; the first non-empty candidate wins.
var displayRules = map[string][][]string{
	"reserva":          {{"reserva_nombres_cliente", "reserva_apellidos_cliente"}, {"reserva_codigo"}},
	"persona":          {{"persona_nombres", "persona_apellidos"}, {"persona_codigo"}},
	"vehiculo":         {{"vehiculo_placa"}, {"vehiculo_codigo"}},
	"agencia":          {{"agencia_razon_social"}, {"agencia_codigo"}},
	"contacto_agencia": {{"contacto_agencia_nombres", "contacto_agencia_apellidos"}, {"contacto_agencia_codigo"}},
	"usuario":          {{"usuario_alias"}, {"usuario_codigo"}},
	"ruta":             {{"ruta_origen", "ruta_destino"}, {"ruta_codigo"}},
	"servicio":         {{"servicio_nombre"}, {"servicio_codigo"}},
}

func codeColumn(entity string) string { return entity + "_codigo" }

func idColumn(entity string) string { return entity + "_id" }

// SearchColumns returns the searchable text columns for an entity.
func SearchColumns(entity string) []string {
	if cols, ok := searchColumns[entity]; ok {
		out := make([]string, len(cols))
		copy(out, cols)
		return out
	}
	return []string{codeColumn(entity)}
}

// DisplayRule returns the display candidates for an entity, always ending
// with the entity's own id column.
func DisplayRule(entity string) [][]string {
	rule, ok := displayRules[entity]
	if !ok {
		rule = [][]string{{codeColumn(entity)}}
	}
	out := make([][]string, 0, len(rule)+1)
	out = append(out, rule...)
	return append(out, []string{idColumn(entity)})
}

// Columns returns every snapshot column this service reads for an entity:
// the entity id, its search columns and its display columns, deduplicated
// and in first-seen order.
func Columns(entity string) []string {
	seen := map[string]bool{}
	var out []string
	add := func(c string) {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	add(idColumn(entity))
	for _, c := range SearchColumns(entity) {
		add(c)
	}
	for _, group := range DisplayRule(entity) {
		for _, c := range group {
			add(c)
		}
	}
	return out
}
