package costing

import (
	"context"
	"strings"

	"github.com/jhoicas/Pasteleria-api/internal/domain/entity"
	"github.com/jhoicas/Pasteleria-api/internal/domain/repository"
	"github.com/jhoicas/Pasteleria-api/pkg/logger"
)

// Cota de profundidad del recorrido: los catálogos reales tienen decenas de
// recetas, nunca cadenas de composición de este tamaño.
const maxTraversalDepth = 64

// CircularCheckResult resultado de la verificación de dependencia circular.
// Diagnostic queda no vacío cuando alguna rama no pudo recorrerse (receta
// faltante o error de lectura) y el resultado puede ser incompleto.
type CircularCheckResult struct {
	HasCircularDependency bool     `json:"has_circular_dependency"`
	Path                  []string `json:"path,omitempty"`
	Message               string   `json:"message,omitempty"`
	Diagnostic            string   `json:"diagnostic,omitempty"`
}

// GraphValidator verifica que agregar una sub-receta a una receta no cree un
// ciclo en el grafo de composición. Las recetas son nodos; cada ítem de tipo
// sub-receta es una arista saliente.
type GraphValidator struct {
	recipes repository.RecipeRepository
	log     *logger.Logger
}

// NewGraphValidator construye el validador.
func NewGraphValidator(recipes repository.RecipeRepository, log *logger.Logger) *GraphValidator {
	return &GraphValidator{recipes: recipes, log: log}
}

// CheckCircular recorre en profundidad la clausura transitiva de sub-recetas
// de subRecipeID buscando parentID. Nunca devuelve error: un fallo de
// lectura se reporta como "sin ciclo" con mensaje de diagnóstico, para que
// una degradación del entorno no bloquee escrituras no relacionadas. Ese
// trade-off es deliberado y está cubierto por tests propios.
//
// El recorrido es iterativo con conjunto de visitados: el grafo existente
// puede ser un DAG con sub-recetas compartidas, y puede contener ciclos
// preexistentes escritos por otras vías; ambos casos quedan acotados.
func (v *GraphValidator) CheckCircular(ctx context.Context, parentID, subRecipeID string) CircularCheckResult {
	// Auto-referencia directa
	if parentID == subRecipeID {
		return CircularCheckResult{
			HasCircularDependency: true,
			Path:                  []string{parentID},
			Message:               "una receta no puede referenciarse a sí misma",
		}
	}

	type frame struct {
		id    string
		depth int
		path  []string
	}

	visited := make(map[string]bool)
	stack := []frame{{id: subRecipeID, depth: 0, path: []string{subRecipeID}}}
	var diagnostic string

	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			diagnostic = "verificación cancelada: " + err.Error()
			break
		}
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if top.id == parentID {
			return CircularCheckResult{
				HasCircularDependency: true,
				Path:                  top.path,
				Message:               "dependencia circular detectada: la receta " + parentID + " no puede usar la receta " + subRecipeID,
			}
		}
		if visited[top.id] {
			continue
		}
		visited[top.id] = true

		if top.depth >= maxTraversalDepth {
			diagnostic = "profundidad máxima de recorrido alcanzada en " + top.id
			continue
		}

		recipe, err := v.recipes.GetByID(top.id)
		if err != nil {
			// No bloquear escrituras por un fallo de lectura: se asume sin
			// ciclo en esta rama y se deja constancia.
			v.log.Warn().Err(err).Str("recipe_id", top.id).
				Msg("verificación de ciclo: no se pudo leer la receta, rama omitida")
			diagnostic = "no se pudo leer la receta " + top.id + ", verificación incompleta"
			continue
		}
		if recipe == nil {
			diagnostic = "sub-receta " + top.id + " no encontrada, rama omitida"
			continue
		}

		for _, subID := range recipe.SubRecipeIDs() {
			path := make([]string, len(top.path), len(top.path)+1)
			copy(path, top.path)
			stack = append(stack, frame{id: subID, depth: top.depth + 1, path: append(path, subID)})
		}
	}

	return CircularCheckResult{HasCircularDependency: false, Diagnostic: diagnostic}
}

// ValidateItems verifica todos los ítems de sub-receta de una lista contra
// el grafo actual; devuelve el primer resultado con ciclo, o un resultado
// limpio con los diagnósticos de todas las ramas degradadas acumulados.
func (v *GraphValidator) ValidateItems(ctx context.Context, parentID string, items []entity.RecipeItem) CircularCheckResult {
	var diagnostics []string
	for _, item := range items {
		if item.Type != entity.ItemTypeSubRecipe || item.SubRecipeID == "" {
			continue
		}
		res := v.CheckCircular(ctx, parentID, item.SubRecipeID)
		if res.HasCircularDependency {
			return res
		}
		if res.Diagnostic != "" {
			diagnostics = append(diagnostics, res.Diagnostic)
		}
	}
	return CircularCheckResult{Diagnostic: strings.Join(diagnostics, "; ")}
}
