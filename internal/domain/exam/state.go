package exam

import (
	"time"

	"github.com/Kaseketi/kaseketi-vet-clinic/internal/domain/catalog"
)

// Signalment is the read-only patient snapshot a report is rendered against.
// Values are pre-formatted strings; empty means not recorded.
type Signalment struct {
	Name       string `json:"name"`
	Species    string `json:"species"`
	Breed      string `json:"breed"`
	Sex        string `json:"sex"`
	Neutered   string `json:"neutered"`
	Age        string `json:"age"`
	Weight     string `json:"weight"`
	ClientName string `json:"client_name"`
}

// FindingState is the in-progress record for one body system.
type FindingState struct {
	SystemName  string         `json:"system_name"`
	IsNormal    bool           `json:"is_normal"`
	Severity    string         `json:"severity,omitempty"`
	FieldValues map[string]any `json:"field_values,omitempty"`
	Notes       string         `json:"notes,omitempty"`
}

// State is the exam a practitioner is building. It is owned by the editing
// session until saved; it performs no I/O and is cheap to copy and re-render
// on every field change.
type State struct {
	Patient             Signalment               `json:"patient"`
	ExamDate            time.Time                `json:"exam_date"`
	Examiner            string                   `json:"examiner"`
	PresentingComplaint string                   `json:"presenting_complaint"`
	PlanNotes           string                   `json:"plan_notes"`
	Findings            map[string]*FindingState `json:"findings"`
}

// NewState produces the initial exam state: one finding per catalog system,
// each normal with no field values, notes or severity.
func NewState(cat *catalog.Catalog) *State {
	findings := make(map[string]*FindingState, cat.Len())
	for _, sys := range cat.Systems() {
		findings[sys.Name] = &FindingState{
			SystemName:  sys.Name,
			IsNormal:    true,
			FieldValues: map[string]any{},
		}
	}
	return &State{
		ExamDate: time.Now().UTC(),
		Findings: findings,
	}
}

// FindingUpdate carries a partial change to one system's finding. Nil fields
// are left untouched; FieldValues are merged key by key.
type FindingUpdate struct {
	IsNormal    *bool          `json:"is_normal,omitempty"`
	Severity    *string        `json:"severity,omitempty"`
	FieldValues map[string]any `json:"field_values,omitempty"`
	Notes       *string        `json:"notes,omitempty"`
}

// SetFinding applies an update to the named system's finding, creating the
// finding if the state has none. Marking a system normal clears its severity;
// marking it abnormal leaves previously entered field values intact so they
// can be re-edited.
func (s *State) SetFinding(systemName string, u FindingUpdate) {
	f, ok := s.Findings[systemName]
	if !ok {
		f = &FindingState{SystemName: systemName, IsNormal: true, FieldValues: map[string]any{}}
		if s.Findings == nil {
			s.Findings = map[string]*FindingState{}
		}
		s.Findings[systemName] = f
	}

	if u.Severity != nil {
		f.Severity = *u.Severity
	}
	if u.IsNormal != nil {
		f.IsNormal = *u.IsNormal
		if f.IsNormal {
			f.Severity = ""
		}
	}
	if u.FieldValues != nil {
		if f.FieldValues == nil {
			f.FieldValues = map[string]any{}
		}
		for k, v := range u.FieldValues {
			f.FieldValues[k] = v
		}
	}
	if u.Notes != nil {
		f.Notes = *u.Notes
	}
}

// SetExaminer records the examining practitioner's name.
func (s *State) SetExaminer(name string) { s.Examiner = name }

// SetPresentingComplaint records the subjective complaint.
func (s *State) SetPresentingComplaint(text string) { s.PresentingComplaint = text }

// SetPlanNotes records the plan section text.
func (s *State) SetPlanNotes(text string) { s.PlanNotes = text }

// CompletedSystems derives which catalog systems count as complete: a system
// is complete when marked normal, or abnormal with a severity recorded. An
// abnormal system documented only through notes or field values is not
// complete. The result is recomputed from current state on every call, in
// catalog display order.
func (s *State) CompletedSystems(cat *catalog.Catalog) []string {
	var done []string
	for _, sys := range cat.Systems() {
		f, ok := s.Findings[sys.Name]
		if !ok {
			continue
		}
		if f.IsNormal || f.Severity != "" {
			done = append(done, sys.Name)
		}
	}
	return done
}
