package entity

import "time"

// Supplier representa un proveedor de ingredientes.
type Supplier struct {
	ID            string
	Name          string
	ContactPerson string
	Phone         string
	Email         string
	Rating        int // 1-5
	Categories    []string
	IsActive      bool
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
