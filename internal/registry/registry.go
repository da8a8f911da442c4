// Package registry holds the fixed, ordered list of audit tables the service
// knows about, plus the per-entity column knowledge used for search and display.
package registry

import "strings"

// TableSuffix is appended to an entity key to form its audit table name.
const TableSuffix = "_auditoria"

// Table describes one audit shadow table.
type Table struct {
	Name   string `json:"tabla"`
	Label  string `json:"nombre"`
	Entity string `json:"entidad"`
}

// tables is ordered; fan-out queries and reports iterate in this order.
var tables = []Table{
	{Name: "tipo_persona_auditoria", Label: "Tipos de Persona", Entity: "tipo_persona"},
	{Name: "rol_auditoria", Label: "Roles", Entity: "rol"},
	{Name: "estado_auditoria", Label: "Estados", Entity: "estado"},
	{Name: "servicio_auditoria", Label: "Servicios", Entity: "servicio"},
	{Name: "ruta_auditoria", Label: "Rutas", Entity: "ruta"},
	{Name: "agencia_auditoria", Label: "Agencias", Entity: "agencia"},
	{Name: "persona_auditoria", Label: "Personas", Entity: "persona"},
	{Name: "vehiculo_auditoria", Label: "Vehículos", Entity: "vehiculo"},
	{Name: "contacto_agencia_auditoria", Label: "Contactos de Agencia", Entity: "contacto_agencia"},
	{Name: "usuario_auditoria", Label: "Usuarios", Entity: "usuario"},
	{Name: "ruta_activada_auditoria", Label: "Rutas Activadas", Entity: "ruta_activada"},
	{Name: "reserva_auditoria", Label: "Reservas", Entity: "reserva"},
}

var byName = func() map[string]Table {
	m := make(map[string]Table, len(tables))
	for _, t := range tables {
		m[t.Name] = t
	}
	return m
}()

// All returns the registry entries in iteration order.
func All() []Table {
	out := make([]Table, len(tables))
	copy(out, tables)
	return out
}

// Names returns the table names in iteration order.
func Names() []string {
	out := make([]string, len(tables))
	for i, t := range tables {
		out[i] = t.Name
	}
	return out
}

// Lookup resolves a table by its full name ("reserva_auditoria") or by its
// entity key ("reserva"). Matching ignores case and surrounding whitespace.
func Lookup(name string) (Table, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return Table{}, false
	}
	if t, ok := byName[key]; ok {
		return t, true
	}
	t, ok := byName[key+TableSuffix]
	return t, ok
}

// Label returns the display label for a table name, or the name itself when
// the table is not registered.
func Label(name string) string {
	if t, ok := byName[name]; ok {
		return t.Label
	}
	return name
}

// EntityKey strips the audit suffix from a table name.
func EntityKey(table string) string {
	return strings.TrimSuffix(table, TableSuffix)
}
