// Package suppliers gestiona el directorio de proveedores de ingredientes.
package suppliers

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Pasteleria-api/internal/domain"
	"github.com/jhoicas/Pasteleria-api/internal/domain/entity"
	"github.com/jhoicas/Pasteleria-api/internal/domain/repository"
)

// UseCase CRUD de proveedores.
type UseCase struct {
	suppliers repository.SupplierRepository
}

// NewUseCase construye el caso de uso de proveedores.
func NewUseCase(suppliers repository.SupplierRepository) *UseCase {
	return &UseCase{suppliers: suppliers}
}

// Input datos de un proveedor en operaciones de escritura.
type Input struct {
	Name          string
	ContactPerson string
	Phone         string
	Email         string
	Rating        int
	Categories    []string
	Notes         string
}

func (in Input) validate() error {
	if in.Name == "" {
		return fmt.Errorf("nombre de proveedor requerido: %w", domain.ErrInvalidInput)
	}
	if in.Rating < 0 || in.Rating > 5 {
		return fmt.Errorf("rating debe estar entre 0 y 5: %w", domain.ErrInvalidInput)
	}
	return nil
}

// Create valida y persiste un proveedor nuevo.
func (uc *UseCase) Create(ctx context.Context, in Input) (*entity.Supplier, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	now := time.Now()
	supplier := &entity.Supplier{
		ID:            uuid.New().String(),
		Name:          in.Name,
		ContactPerson: in.ContactPerson,
		Phone:         in.Phone,
		Email:         in.Email,
		Rating:        in.Rating,
		Categories:    in.Categories,
		IsActive:      true,
		Notes:         in.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.suppliers.Create(supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

// Get devuelve un proveedor por ID.
func (uc *UseCase) Get(ctx context.Context, id string) (*entity.Supplier, error) {
	supplier, err := uc.suppliers.GetByID(id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, fmt.Errorf("proveedor %s: %w", id, domain.ErrNotFound)
	}
	return supplier, nil
}

// List devuelve proveedores activos.
func (uc *UseCase) List(ctx context.Context) ([]*entity.Supplier, error) {
	return uc.suppliers.List(true)
}

// Update actualiza un proveedor existente.
func (uc *UseCase) Update(ctx context.Context, id string, in Input) (*entity.Supplier, error) {
	existing, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	existing.Name = in.Name
	existing.ContactPerson = in.ContactPerson
	existing.Phone = in.Phone
	existing.Email = in.Email
	existing.Rating = in.Rating
	existing.Categories = in.Categories
	existing.Notes = in.Notes
	existing.UpdatedAt = time.Now()
	if err := uc.suppliers.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// Delete hace borrado lógico del proveedor.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.Get(ctx, id); err != nil {
		return err
	}
	return uc.suppliers.Delete(id)
}
