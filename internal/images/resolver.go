// Package images resuelve las referencias opacas de imagen de los
// productos a URLs servibles.
package images

import (
	"net/url"
	"strings"
)

// DefaultPlaceholder se devuelve cuando un producto no trae imagen.
const DefaultPlaceholder = "/static/placeholder.png"

// Resolver arma la URL final de una imagen a partir de su referencia.
// La resolución nunca falla: una referencia vacía cae al placeholder.
type Resolver struct {
	base        *url.URL
	placeholder string
}

// NewResolver valida la URL base una sola vez, en la construcción.
func NewResolver(baseURL, placeholder string) (*Resolver, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}
	if placeholder == "" {
		placeholder = DefaultPlaceholder
	}
	return &Resolver{base: base, placeholder: placeholder}, nil
}

// Resolve devuelve la URL de la imagen, o el placeholder si la
// referencia viene vacía.
func (r *Resolver) Resolve(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return r.placeholder
	}
	return r.base.JoinPath(ref).String()
}
