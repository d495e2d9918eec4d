// Package catalog contiene la lógica pura de filtrado del catálogo:
// filtro por texto y categoría, índice de categorías y la regla de
// toggle de los chips. Sin estado, sin I/O.
package catalog

import (
	"sort"
	"strings"

	"shopfront/internal/models"
)

// Query es el filtro vigente del usuario. Es efímero: se reconstruye
// en cada request / cada cambio de la UI.
type Query struct {
	Text     string
	Category Selection
}

// IsEmpty indica si la query no restringe nada.
func (q Query) IsEmpty() bool {
	return strings.TrimSpace(q.Text) == "" && q.Category.IsNone()
}

// Filter devuelve los productos que pasan la query, preservando el
// orden relativo de entrada. Un producto pasa si el texto (insensible
// a mayúsculas) aparece en el nombre o la descripción, o la query no
// trae texto, Y la categoría seleccionada coincide exactamente
// (sensible a mayúsculas), o no hay selección. Sin coincidencias el
// resultado es vacío, nunca un error.
func Filter(products []models.Product, q Query) []models.Product {
	text := strings.ToLower(strings.TrimSpace(q.Text))

	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if !matchesText(p, text) {
			continue
		}
		if label, ok := q.Category.Label(); ok && p.Category != label {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matchesText(p models.Product, text string) bool {
	if text == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), text) ||
		strings.Contains(strings.ToLower(p.Description), text)
}

// Categories devuelve las categorías distintas presentes en el
// catálogo, en orden lexicográfico ascendente. Las etiquetas vacías se
// omiten: no se pueden renderizar como chip ni viajar como query param.
func Categories(products []models.Product) []string {
	seen := make(map[string]struct{}, len(products))
	out := make([]string, 0, len(products))
	for _, p := range products {
		if p.Category == "" {
			continue
		}
		if _, dup := seen[p.Category]; dup {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	sort.Strings(out)
	return out
}
