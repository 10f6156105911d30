package patient

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrPatientNotFound is returned when a patient does not exist.
var ErrPatientNotFound = errors.New("patient not found")

type Repository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	Update(ctx context.Context, p *Patient) error
	List(ctx context.Context, limit, offset int) ([]*Patient, int, error)
	Search(ctx context.Context, name string, limit, offset int) ([]*Patient, int, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}
