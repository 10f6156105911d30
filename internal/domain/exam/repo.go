package exam

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the persistence gateway for exams. It is the sole authority
// on the signed-lock: every write checks the stored status, and Save writes
// the exam row and its finding rows atomically.
type Repository interface {
	Save(ctx context.Context, e *Exam) error
	GetByID(ctx context.Context, id uuid.UUID) (*Exam, error)
	List(ctx context.Context, limit, offset int) ([]*Exam, int, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Exam, int, error)

	// Sign transitions the exam to signed exactly once, recording the signer
	// and fixing the examiner identity. Returns ErrExamSigned when the exam
	// was already signed.
	Sign(ctx context.Context, id uuid.UUID, signerID uuid.UUID, signerName string) error

	// Delete removes an unsigned exam and its findings.
	Delete(ctx context.Context, id uuid.UUID) error
}
