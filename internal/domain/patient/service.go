package patient

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreatePatient(ctx context.Context, p *Patient) error {
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	if p.Species == "" {
		return fmt.Errorf("species is required")
	}
	p.IsActive = true
	return s.repo.Create(ctx, p)
}

func (s *Service) GetPatient(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) UpdatePatient(ctx context.Context, p *Patient) error {
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	return s.repo.Update(ctx, p)
}

func (s *Service) ListPatients(ctx context.Context, name string, limit, offset int) ([]*Patient, int, error) {
	if name != "" {
		return s.repo.Search(ctx, name, limit, offset)
	}
	return s.repo.List(ctx, limit, offset)
}

// DeactivatePatient retires a patient record. History is kept; new exams for
// the patient are rejected by the exam service.
func (s *Service) DeactivatePatient(ctx context.Context, id uuid.UUID) error {
	return s.repo.SetActive(ctx, id, false)
}

// ReactivatePatient restores a retired patient record.
func (s *Service) ReactivatePatient(ctx context.Context, id uuid.UUID) error {
	return s.repo.SetActive(ctx, id, true)
}
