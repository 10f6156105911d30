package exam

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/Kaseketi/kaseketi-vet-clinic/internal/domain/catalog"
	"github.com/Kaseketi/kaseketi-vet-clinic/internal/domain/patient"
)

// ErrPatientInactive is returned when a new exam references a retired patient.
var ErrPatientInactive = errors.New("patient is inactive")

// PatientDirectory is the slice of the patient service the exam service
// needs: read-only signalment lookup.
type PatientDirectory interface {
	GetPatient(ctx context.Context, id uuid.UUID) (*patient.Patient, error)
}

type Service struct {
	repo     Repository
	patients PatientDirectory
	catalog  *catalog.Catalog
	renderer *Renderer
}

func NewService(repo Repository, patients PatientDirectory, cat *catalog.Catalog, clinicName string) *Service {
	return &Service{
		repo:     repo,
		patients: patients,
		catalog:  cat,
		renderer: NewRenderer(clinicName, cat),
	}
}

var validSeverities = map[string]bool{
	catalog.SeverityMild:     true,
	catalog.SeverityModerate: true,
	catalog.SeveritySevere:   true,
}

// CreateExamRequest carries the fields needed to open a new draft exam.
type CreateExamRequest struct {
	PatientID           uuid.UUID  `json:"patient_id"`
	ExaminerName        string     `json:"examiner_name"`
	ExamDate            *time.Time `json:"exam_date,omitempty"`
	PresentingComplaint string     `json:"presenting_complaint"`
}

// CreateExam opens a draft exam for an active patient, with every catalog
// system pre-recorded as normal, and stores the initially rendered report.
func (s *Service) CreateExam(ctx context.Context, req CreateExamRequest) (*Exam, error) {
	if req.PatientID == uuid.Nil {
		return nil, fmt.Errorf("patient_id is required")
	}
	p, err := s.patients.GetPatient(ctx, req.PatientID)
	if err != nil {
		return nil, fmt.Errorf("patient lookup: %w", err)
	}
	if !p.IsActive {
		return nil, ErrPatientInactive
	}

	examDate := time.Now().UTC()
	if req.ExamDate != nil {
		examDate = *req.ExamDate
	}

	state := NewState(s.catalog)
	state.Patient = SignalmentFromPatient(p, examDate)
	state.ExamDate = examDate
	state.SetExaminer(req.ExaminerName)
	state.SetPresentingComplaint(req.PresentingComplaint)

	report, err := s.renderer.Render(state)
	if err != nil {
		return nil, err
	}

	e := &Exam{
		PatientID:           req.PatientID,
		ExaminerName:        req.ExaminerName,
		ExamDate:            examDate,
		PresentingComplaint: req.PresentingComplaint,
		Status:              StatusDraft,
		GeneratedReport:     report,
		Findings:            FindingsFromState(uuid.Nil, state),
	}
	if err := s.repo.Save(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// UpdateExam replaces an unsigned exam's content, normalizes its findings,
// re-renders the report and saves everything atomically. Signing is not
// reachable through update; the status "signed" is rejected here.
func (s *Service) UpdateExam(ctx context.Context, e *Exam) (*Exam, error) {
	existing, err := s.repo.GetByID(ctx, e.ID)
	if err != nil {
		return nil, err
	}
	if !existing.Editable() {
		return nil, ErrExamSigned
	}
	if e.Status == "" {
		e.Status = existing.Status
	}
	if e.Status == StatusSigned {
		return nil, fmt.Errorf("status %q can only be reached by signing", StatusSigned)
	}
	if !validStatuses[e.Status] {
		return nil, fmt.Errorf("invalid status: %s", e.Status)
	}
	e.PatientID = existing.PatientID
	if e.ExamDate.IsZero() {
		e.ExamDate = existing.ExamDate
	}

	for _, f := range e.Findings {
		if f.IsNormal {
			f.Severity = nil
		}
		if f.Severity != nil && !validSeverities[*f.Severity] {
			return nil, fmt.Errorf("invalid severity: %s", *f.Severity)
		}
	}

	p, err := s.patients.GetPatient(ctx, existing.PatientID)
	if err != nil {
		return nil, fmt.Errorf("patient lookup: %w", err)
	}
	state := StateFromExam(e, SignalmentFromPatient(p, e.ExamDate))
	report, renderErr := s.renderer.Render(state)
	if renderErr != nil {
		return nil, renderErr
	}
	e.GeneratedReport = report

	if err := s.repo.Save(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Service) GetExam(ctx context.Context, id uuid.UUID) (*Exam, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListExams(ctx context.Context, limit, offset int) ([]*Exam, int, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *Service) ListExamsByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Exam, int, error) {
	return s.repo.ListByPatient(ctx, patientID, limit, offset)
}

// SignExam finalizes the exam: the transition happens at most once and fixes
// the examiner identity to the signer when none was recorded.
func (s *Service) SignExam(ctx context.Context, id uuid.UUID, signerID uuid.UUID, signerName string) (*Exam, error) {
	if signerID == uuid.Nil {
		return nil, fmt.Errorf("signer id is required")
	}
	if err := s.repo.Sign(ctx, id, signerID, signerName); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) DeleteExam(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// Report returns the stored report text for an exam.
func (s *Service) Report(ctx context.Context, id uuid.UUID) (string, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return e.GeneratedReport, nil
}

// Preview renders a report for an in-progress state without persisting
// anything. The UI calls this on every field change.
func (s *Service) Preview(state *State) (string, error) {
	return s.renderer.Render(state)
}

// Catalog exposes the service's catalog for form construction.
func (s *Service) Catalog() *catalog.Catalog { return s.catalog }

// SignalmentFromPatient formats a patient record into the display snapshot
// the renderer consumes. Missing optional attributes stay empty and render
// as "Not specified".
func SignalmentFromPatient(p *patient.Patient, at time.Time) Signalment {
	sig := Signalment{
		Name:       p.Name,
		Species:    p.Species,
		Breed:      p.Breed,
		Sex:        p.Sex,
		ClientName: p.ClientName,
		Age:        p.AgeAt(at),
	}
	if p.Neutered != nil {
		if *p.Neutered {
			sig.Neutered = "Yes"
		} else {
			sig.Neutered = "No"
		}
	}
	if p.WeightKG != nil && *p.WeightKG > 0 {
		sig.Weight = strconv.FormatFloat(*p.WeightKG, 'f', -1, 64) + " kg"
	}
	return sig
}
