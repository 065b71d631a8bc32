package recipes

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Los nombres de recetas vienen en portugués con acentos ("Pão de Queijo");
// la unicidad se compara sobre la forma normalizada.
var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeName devuelve el nombre en minúsculas, sin acentos y sin espacios
// sobrantes, para comparación de unicidad entre recetas activas.
func NormalizeName(name string) string {
	out, _, err := transform.String(stripAccents, name)
	if err != nil {
		out = name
	}
	return strings.ToLower(strings.TrimSpace(out))
}
