package exam

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kaseketi/kaseketi-vet-clinic/internal/domain/catalog"
)

func fixedClock() time.Time {
	return time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)
}

func testRenderer() *Renderer {
	r := NewRenderer("Sunrise Veterinary Clinic", catalog.Default())
	r.Now = fixedClock
	return r
}

func TestRender_NilInputs(t *testing.T) {
	r := testRenderer()
	_, err := r.Render(nil)
	assert.Error(t, err)

	r.Catalog = nil
	_, err = r.Render(NewState(catalog.Default()))
	assert.Error(t, err)
}

func TestRender_HeaderAndFooter(t *testing.T) {
	r := testRenderer()
	out, err := r.Render(NewState(catalog.Default()))
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	require.Greater(t, len(lines), 10)
	assert.Equal(t, strings.Repeat("═", 60), lines[0])
	assert.Equal(t, "SUNRISE VETERINARY CLINIC", strings.TrimSpace(lines[1]))
	assert.Equal(t, "VETERINARY EXAMINATION REPORT", strings.TrimSpace(lines[2]))
	assert.Equal(t, strings.Repeat("═", 60), lines[3])

	assert.Equal(t, "Report generated: 2026-01-15 10:30:00", lines[len(lines)-1])
	assert.Equal(t, strings.Repeat("─", 60), lines[len(lines)-2])
}

func TestRender_PatientPlaceholders(t *testing.T) {
	r := testRenderer()
	out, err := r.Render(NewState(catalog.Default()))
	require.NoError(t, err)

	for _, label := range []string{"Name", "Species", "Breed", "Sex", "Neutered", "Age", "Weight", "Client"} {
		assert.Contains(t, out, label+": Not specified")
	}
	assert.Contains(t, out, "None provided")
	assert.Contains(t, out, "To be determined.")
}

func TestRender_PatientFields(t *testing.T) {
	r := testRenderer()
	s := NewState(catalog.Default())
	s.Patient = Signalment{
		Name:       "Rex",
		Species:    "Canine",
		Breed:      "German Shepherd",
		Sex:        "Male",
		Neutered:   "Yes",
		Age:        "3 y 2 m",
		Weight:     "32.5 kg",
		ClientName: "J. Moreau",
	}

	out, err := r.Render(s)
	require.NoError(t, err)
	assert.Contains(t, out, "Name: Rex")
	assert.Contains(t, out, "Species: Canine")
	assert.Contains(t, out, "Breed: German Shepherd")
	assert.Contains(t, out, "Neutered: Yes")
	assert.Contains(t, out, "Age: 3 y 2 m")
	assert.Contains(t, out, "Weight: 32.5 kg")
	assert.Contains(t, out, "Client: J. Moreau")
	assert.NotContains(t, out, "Not specified")
}

func TestRender_AllNormal(t *testing.T) {
	r := testRenderer()
	out, err := r.Render(NewState(catalog.Default()))
	require.NoError(t, err)

	assert.Contains(t, out, "General Appearance:")
	assert.Contains(t, out, "  Bright, alert and responsive. Body condition and hydration within normal limits.")
	assert.Contains(t, out, "No significant abnormalities detected on physical examination.")
	assert.NotContains(t, out, "Severity:")
}

func TestRender_AbnormalFinding(t *testing.T) {
	r := testRenderer()
	s := NewState(catalog.Default())
	s.SetFinding("skin", FindingUpdate{
		IsNormal: boolPtr(false),
		Severity: strPtr(catalog.SeverityModerate),
		FieldValues: map[string]any{
			"lesions":  true,
			"pruritus": "Severe",
		},
	})

	out, err := r.Render(s)
	require.NoError(t, err)

	// Detail sentence assembled in declared field order with severity first.
	assert.Contains(t, out, "Skin & Coat:\n  Severity: Moderate. Lesions Present: Yes. Pruritus: Severe.")
	// Abnormal summary numbered in the assessment.
	assert.Contains(t, out, "1. Skin & Coat: Moderate abnormality")
	assert.NotContains(t, out, "No significant abnormalities detected")
}

func TestRender_MultipleAbnormalInCatalogOrder(t *testing.T) {
	r := testRenderer()
	s := NewState(catalog.Default())
	// Touch a later system first; assessment must still follow catalog order.
	s.SetFinding("respiratory", FindingUpdate{IsNormal: boolPtr(false), Severity: strPtr(catalog.SeveritySevere)})
	s.SetFinding("skin", FindingUpdate{IsNormal: boolPtr(false), Severity: strPtr(catalog.SeverityMild)})

	out, err := r.Render(s)
	require.NoError(t, err)
	assert.Contains(t, out, "1. Skin & Coat: Mild abnormality")
	assert.Contains(t, out, "2. Respiratory: Severe abnormality")
}

func TestRender_AbnormalWithoutDetailsFallsBack(t *testing.T) {
	r := testRenderer()
	s := NewState(catalog.Default())
	s.SetFinding("ears", FindingUpdate{IsNormal: boolPtr(false)})

	out, err := r.Render(s)
	require.NoError(t, err)
	assert.Contains(t, out, "Ears:\n  Abnormalities noted - see additional notes.")
	// No severity recorded, so nothing reaches the assessment summary.
	assert.Contains(t, out, "No significant abnormalities detected on physical examination.")
}

func TestRender_FieldValueFormatting(t *testing.T) {
	r := testRenderer()
	s := NewState(catalog.Default())
	s.SetFinding("general", FindingUpdate{
		IsNormal:    boolPtr(false),
		Severity:    strPtr(catalog.SeverityMild),
		FieldValues: map[string]any{"temperature": 39.8},
	})
	s.SetFinding("cardiovascular", FindingUpdate{
		IsNormal:    boolPtr(false),
		Severity:    strPtr(catalog.SeverityModerate),
		FieldValues: map[string]any{"heart_rate": 160, "murmur": false},
	})
	s.SetFinding("skin", FindingUpdate{
		IsNormal:    boolPtr(false),
		Severity:    strPtr(catalog.SeverityMild),
		FieldValues: map[string]any{"parasites": []string{"Fleas", "Ticks"}},
		Notes:       strPtr("recheck in two weeks"),
	})

	out, err := r.Render(s)
	require.NoError(t, err)
	assert.Contains(t, out, "Temperature: 39.8°C")
	assert.Contains(t, out, "Heart Rate: 160 bpm")
	assert.NotContains(t, out, "Murmur Auscultated") // false checkbox omitted
	assert.Contains(t, out, "Parasites: Fleas, Ticks")
	assert.Contains(t, out, "Notes: recheck in two weeks.")
}

func TestRender_JSONDecodedValueShapes(t *testing.T) {
	// Values reloaded from storage arrive as json.Unmarshal produces them:
	// numbers as float64, lists as []any.
	r := testRenderer()
	s := NewState(catalog.Default())
	s.SetFinding("cardiovascular", FindingUpdate{
		IsNormal:    boolPtr(false),
		Severity:    strPtr(catalog.SeverityModerate),
		FieldValues: map[string]any{"heart_rate": float64(160)},
	})
	s.SetFinding("skin", FindingUpdate{
		IsNormal:    boolPtr(false),
		Severity:    strPtr(catalog.SeverityMild),
		FieldValues: map[string]any{"parasites": []any{"Fleas", "Mites"}},
	})

	out, err := r.Render(s)
	require.NoError(t, err)
	assert.Contains(t, out, "Heart Rate: 160 bpm")
	assert.Contains(t, out, "Parasites: Fleas, Mites")
}

func TestRender_ZeroValuesOmitted(t *testing.T) {
	r := testRenderer()
	s := NewState(catalog.Default())
	s.SetFinding("general", FindingUpdate{
		IsNormal:    boolPtr(false),
		Severity:    strPtr(catalog.SeverityMild),
		FieldValues: map[string]any{"temperature": float64(0), "attitude": ""},
	})

	out, err := r.Render(s)
	require.NoError(t, err)
	assert.NotContains(t, out, "Temperature:")
	assert.NotContains(t, out, "Attitude:")
}

func TestRender_OrphanSystemSkipped(t *testing.T) {
	r := testRenderer()
	s := NewState(catalog.Default())
	s.Findings["hematology"] = &FindingState{SystemName: "hematology", IsNormal: false, Severity: catalog.SeveritySevere}

	out, err := r.Render(s)
	require.NoError(t, err)
	assert.NotContains(t, out, "hematology")
	assert.NotContains(t, out, "Severe abnormality")
}

func TestRender_MissingFindingSkipsSection(t *testing.T) {
	r := testRenderer()
	s := NewState(catalog.Default())
	delete(s.Findings, "ears")

	out, err := r.Render(s)
	require.NoError(t, err)
	assert.NotContains(t, out, "Ears:")
	assert.Contains(t, out, "Eyes:")
}

func TestRender_NormalIgnoresStrayValues(t *testing.T) {
	r := testRenderer()
	s := NewState(catalog.Default())
	s.Findings["general"].FieldValues = map[string]any{"temperature": 40.2}
	s.Findings["general"].Severity = catalog.SeverityMild

	out, err := r.Render(s)
	require.NoError(t, err)
	assert.Contains(t, out, "  Bright, alert and responsive. Body condition and hydration within normal limits.")
	assert.NotContains(t, out, "Temperature:")
	assert.NotContains(t, out, "Severity:")
}

func TestRender_Deterministic(t *testing.T) {
	r := testRenderer()
	s := NewState(catalog.Default())
	s.Patient.Name = "Rex"
	s.SetFinding("skin", FindingUpdate{IsNormal: boolPtr(false), Severity: strPtr(catalog.SeverityModerate)})

	first, err := r.Render(s)
	require.NoError(t, err)
	second, err := r.Render(s)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
