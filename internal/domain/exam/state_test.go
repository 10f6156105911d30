package exam

import (
	"testing"

	"github.com/Kaseketi/kaseketi-vet-clinic/internal/domain/catalog"
)

func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }

func TestNewState_AllSystemsNormal(t *testing.T) {
	cat := catalog.Default()
	s := NewState(cat)

	if len(s.Findings) != cat.Len() {
		t.Fatalf("expected %d findings, got %d", cat.Len(), len(s.Findings))
	}
	for name, f := range s.Findings {
		if !f.IsNormal {
			t.Errorf("system %s should start normal", name)
		}
		if f.Severity != "" {
			t.Errorf("system %s should start without severity", name)
		}
		if len(f.FieldValues) != 0 {
			t.Errorf("system %s should start with no field values", name)
		}
	}

	done := s.CompletedSystems(cat)
	if len(done) != cat.Len() {
		t.Errorf("a fresh state is fully complete, got %d of %d", len(done), cat.Len())
	}
}

func TestSetFinding_NormalClearsSeverity(t *testing.T) {
	s := NewState(catalog.Default())

	s.SetFinding("skin", FindingUpdate{IsNormal: boolPtr(false), Severity: strPtr(catalog.SeverityModerate)})
	if s.Findings["skin"].Severity != catalog.SeverityModerate {
		t.Fatalf("severity not recorded")
	}

	s.SetFinding("skin", FindingUpdate{IsNormal: boolPtr(true)})
	f := s.Findings["skin"]
	if !f.IsNormal {
		t.Error("finding should be normal")
	}
	if f.Severity != "" {
		t.Errorf("severity should be cleared on normal, got %q", f.Severity)
	}
}

func TestSetFinding_KeepsFieldValuesAcrossToggle(t *testing.T) {
	s := NewState(catalog.Default())

	s.SetFinding("skin", FindingUpdate{
		IsNormal:    boolPtr(false),
		FieldValues: map[string]any{"lesions": true, "lesion_location": "left flank"},
	})
	s.SetFinding("skin", FindingUpdate{IsNormal: boolPtr(true)})
	s.SetFinding("skin", FindingUpdate{IsNormal: boolPtr(false)})

	f := s.Findings["skin"]
	if f.FieldValues["lesion_location"] != "left flank" {
		t.Errorf("field values should survive normal/abnormal toggling, got %v", f.FieldValues)
	}
}

func TestSetFinding_MergesFieldValues(t *testing.T) {
	s := NewState(catalog.Default())

	s.SetFinding("cardiovascular", FindingUpdate{FieldValues: map[string]any{"heart_rate": 120}})
	s.SetFinding("cardiovascular", FindingUpdate{FieldValues: map[string]any{"murmur": true}})

	f := s.Findings["cardiovascular"]
	if f.FieldValues["heart_rate"] != 120 || f.FieldValues["murmur"] != true {
		t.Errorf("updates should merge key by key, got %v", f.FieldValues)
	}
}

func TestSetFinding_UnknownSystemCreated(t *testing.T) {
	s := &State{}
	s.SetFinding("skin", FindingUpdate{Notes: strPtr("dry coat")})
	if s.Findings["skin"] == nil || s.Findings["skin"].Notes != "dry coat" {
		t.Errorf("finding should be created on first touch")
	}
}

func TestCompletedSystems_AbnormalNeedsSeverity(t *testing.T) {
	cat := catalog.Default()
	s := NewState(cat)

	s.SetFinding("skin", FindingUpdate{IsNormal: boolPtr(false), Notes: strPtr("crusting over dorsum")})
	for _, name := range s.CompletedSystems(cat) {
		if name == "skin" {
			t.Fatal("abnormal system without severity must not count as complete")
		}
	}

	s.SetFinding("skin", FindingUpdate{Severity: strPtr(catalog.SeverityMild)})
	found := false
	for _, name := range s.CompletedSystems(cat) {
		if name == "skin" {
			found = true
		}
	}
	if !found {
		t.Error("abnormal system with severity should count as complete")
	}
}

func TestCompletedSystems_CatalogOrder(t *testing.T) {
	cat := catalog.Default()
	s := NewState(cat)

	done := s.CompletedSystems(cat)
	systems := cat.Systems()
	for i, name := range done {
		if systems[i].Name != name {
			t.Fatalf("completed systems out of catalog order at %d: %s vs %s", i, name, systems[i].Name)
		}
	}
}
