// Package viewstate mantiene el estado de la pantalla de catálogo como
// transiciones explícitas (funciones puras sobre State) más un Store que
// las aplica y notifica a los suscriptores por canal. El cómputo del
// estado queda separado de la entrega, y es testeable sin UI.
package viewstate

import (
	"shopfront/internal/catalog"
	"shopfront/internal/models"
)

// State es una foto inmutable del estado de la pantalla. Los campos
// derivados (Visible, Categories) se recalculan en cada transición para
// que nunca queden desfasados respecto del catálogo o la query.
type State struct {
	Loading      bool
	LoadErr      string
	Catalog      []models.Product
	Query        catalog.Query
	Visible      []models.Product
	Categories   []string
	Confirmation string
}

// startLoad entra al estado de carga. Limpia el error anterior para que
// el retry no muestre el mensaje viejo mientras carga.
func startLoad(s State) State {
	s.Loading = true
	s.LoadErr = ""
	return s
}

// resolveCatalog completa la carga con un catálogo nuevo y deriva la
// lista visible y los chips de categoría.
func resolveCatalog(s State, products []models.Product) State {
	s.Loading = false
	s.LoadErr = ""
	s.Catalog = products
	s.Categories = catalog.Categories(products)
	s.Visible = catalog.Filter(products, s.Query)
	return s
}

// resolveError completa la carga con un error. El catálogo anterior se
// conserva: la pantalla puede seguir filtrando datos stale sin fallar.
func resolveError(s State, msg string) State {
	s.Loading = false
	s.LoadErr = msg
	return s
}

func setQuery(s State, q catalog.Query) State {
	s.Query = q
	s.Visible = catalog.Filter(s.Catalog, q)
	return s
}

func setConfirmation(s State, msg string) State {
	s.Confirmation = msg
	return s
}
