package exam

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Exam lifecycle statuses. An exam is created as a draft and stays editable
// until it is signed; signing is irreversible.
const (
	StatusDraft      = "draft"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
	StatusSigned     = "signed"
)

var validStatuses = map[string]bool{
	StatusDraft:      true,
	StatusInProgress: true,
	StatusCompleted:  true,
	StatusSigned:     true,
}

// ErrExamSigned is returned for any write against a signed exam, including a
// second sign attempt.
var ErrExamSigned = errors.New("exam is signed and can no longer be modified")

// ErrExamNotFound is returned when an exam does not exist.
var ErrExamNotFound = errors.New("exam not found")

// Exam maps to the exam table. Findings are loaded and saved together with
// the exam row in a single transaction.
type Exam struct {
	ID                  uuid.UUID  `db:"id" json:"id"`
	PatientID           uuid.UUID  `db:"patient_id" json:"patient_id"`
	ExaminerID          *uuid.UUID `db:"examiner_id" json:"examiner_id,omitempty"`
	ExaminerName        string     `db:"examiner_name" json:"examiner_name"`
	ExamDate            time.Time  `db:"exam_date" json:"exam_date"`
	PresentingComplaint string     `db:"presenting_complaint" json:"presenting_complaint"`
	PlanNotes           string     `db:"plan_notes" json:"plan_notes"`
	Status              string     `db:"status" json:"status"`
	GeneratedReport     string     `db:"generated_report" json:"generated_report"`
	SignedBy            *uuid.UUID `db:"signed_by" json:"signed_by,omitempty"`
	SignedAt            *time.Time `db:"signed_at" json:"signed_at,omitempty"`
	CreatedAt           time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time  `db:"updated_at" json:"updated_at"`

	Findings []*Finding `db:"-" json:"findings,omitempty"`
}

// Editable reports whether the exam may still be modified.
func (e *Exam) Editable() bool { return e.Status != StatusSigned }

// Finding maps to the finding table: one row per body system touched within
// an exam. FieldValues is stored as open-ended JSONB; extra or missing keys
// are tolerated, schema enforcement does not happen at this layer.
type Finding struct {
	ID          uuid.UUID      `db:"id" json:"id"`
	ExamID      uuid.UUID      `db:"exam_id" json:"exam_id"`
	SystemName  string         `db:"system_name" json:"system_name"`
	IsNormal    bool           `db:"is_normal" json:"is_normal"`
	Severity    *string        `db:"severity" json:"severity,omitempty"`
	FieldValues map[string]any `db:"field_values" json:"field_values,omitempty"`
	Notes       string         `db:"notes" json:"notes"`
}

// StateFromExam rebuilds the in-memory exam state from a persisted record and
// the patient snapshot it was recorded against.
func StateFromExam(e *Exam, patient Signalment) *State {
	findings := make(map[string]*FindingState, len(e.Findings))
	for _, f := range e.Findings {
		fs := &FindingState{
			SystemName:  f.SystemName,
			IsNormal:    f.IsNormal,
			FieldValues: f.FieldValues,
			Notes:       f.Notes,
		}
		if f.Severity != nil {
			fs.Severity = *f.Severity
		}
		findings[f.SystemName] = fs
	}
	return &State{
		Patient:             patient,
		ExamDate:            e.ExamDate,
		Examiner:            e.ExaminerName,
		PresentingComplaint: e.PresentingComplaint,
		PlanNotes:           e.PlanNotes,
		Findings:            findings,
	}
}

// FindingsFromState flattens an exam state into persistable finding rows.
func FindingsFromState(examID uuid.UUID, s *State) []*Finding {
	out := make([]*Finding, 0, len(s.Findings))
	for _, fs := range s.Findings {
		f := &Finding{
			ExamID:      examID,
			SystemName:  fs.SystemName,
			IsNormal:    fs.IsNormal,
			FieldValues: fs.FieldValues,
			Notes:       fs.Notes,
		}
		if fs.Severity != "" {
			sev := fs.Severity
			f.Severity = &sev
		}
		out = append(out, f)
	}
	return out
}
