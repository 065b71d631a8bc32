package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrCircularDependency = errors.New("dependencia circular entre recetas")
	ErrMaxDepth           = errors.New("profundidad máxima de sub-recetas excedida")
)
