package catalog

// Selection es la categoría elegida en el filtro. Es un opcional
// explícito: el valor cero significa "todas las categorías", evitando
// punteros nil repartidos por los call sites.
type Selection struct {
	label string
	some  bool
}

// None devuelve la selección vacía (todas las categorías).
func None() Selection {
	return Selection{}
}

// Some devuelve la selección de una categoría concreta.
func Some(label string) Selection {
	return Selection{label: label, some: true}
}

// Label entrega la etiqueta seleccionada, con ok=false si no hay selección.
func (s Selection) Label() (string, bool) {
	return s.label, s.some
}

// IsNone indica si no hay categoría seleccionada.
func (s Selection) IsNone() bool {
	return !s.some
}

// Toggle aplica la regla de los chips de categoría: tocar la categoría
// ya seleccionada la limpia, tocar cualquier otra la reemplaza.
func Toggle(current Selection, clicked string) Selection {
	if label, ok := current.Label(); ok && label == clicked {
		return None()
	}
	return Some(clicked)
}
