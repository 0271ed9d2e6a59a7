// Package search normaliza términos de búsqueda del catálogo: minúsculas y
// sin diacríticos, para que "telefono" encuentre "Teléfono" y "kilif" "Kılıf".
package search

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripper = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)), // elimina marcas combinantes (tildes, diéresis)
	norm.NFC,
)

// Normalize devuelve el término en minúsculas y sin diacríticos, con espacios
// colapsados. Si la transformación falla devuelve el término en minúsculas.
func Normalize(term string) string {
	lowered := strings.ToLower(strings.TrimSpace(term))
	out, _, err := transform.String(stripper, lowered)
	if err != nil {
		out = lowered
	}
	return strings.Join(strings.Fields(out), " ")
}
