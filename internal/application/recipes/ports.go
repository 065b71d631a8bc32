package recipes

import (
	"context"

	"github.com/jhoicas/Pasteleria-api/internal/domain/repository"
)

// TxRunner ejecuta una función con un repositorio de recetas atado a una
// transacción. La re-verificación de ciclo y la escritura de la receta
// ocurren dentro de la misma transacción para cerrar la ventana
// check-then-write (TOCTOU).
type TxRunner interface {
	RunRecipes(ctx context.Context, fn func(recipeRepo repository.RecipeRepository) error) error
}
