package exam

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Kaseketi/kaseketi-vet-clinic/internal/domain/catalog"
)

// Literal strings in the report are a wire contract: exports and clipboard
// tooling depend on them byte for byte.
const (
	reportTitle = "VETERINARY EXAMINATION REPORT"

	placeholderNotSpecified = "Not specified"
	placeholderNoComplaint  = "None provided"
	placeholderNoPlan       = "To be determined."

	fallbackAbnormalText = "Abnormalities noted - see additional notes."
	noAbnormalitiesText  = "No significant abnormalities detected on physical examination."

	bannerWidth = 60
)

var (
	heavyRule = strings.Repeat("═", bannerWidth)
	lightRule = strings.Repeat("─", bannerWidth)
)

// Renderer turns an exam state into the fixed-format SOAP report. It is a
// pure computation: the only non-determinism is the generation timestamp,
// which is confined to the final footer line and taken from Now so tests can
// pin it.
type Renderer struct {
	ClinicName string
	Catalog    *catalog.Catalog
	Now        func() time.Time
}

// NewRenderer returns a Renderer over the given catalog using wall-clock time.
func NewRenderer(clinicName string, cat *catalog.Catalog) *Renderer {
	return &Renderer{ClinicName: clinicName, Catalog: cat, Now: time.Now}
}

// Render produces the report text for the given state. It fails only when its
// structural inputs are missing; absent or malformed optional data degrades
// to placeholders, never to an error.
func (r *Renderer) Render(s *State) (string, error) {
	if s == nil {
		return "", errors.New("exam state is required")
	}
	if r.Catalog == nil {
		return "", errors.New("catalog is required")
	}

	var lines []string

	// Header
	lines = append(lines,
		heavyRule,
		center(strings.ToUpper(r.ClinicName)),
		center(reportTitle),
		heavyRule,
		"",
	)

	// Patient information, fixed field order.
	lines = append(lines, "PATIENT INFORMATION", lightRule)
	for _, pf := range []struct{ label, value string }{
		{"Name", s.Patient.Name},
		{"Species", s.Patient.Species},
		{"Breed", s.Patient.Breed},
		{"Sex", s.Patient.Sex},
		{"Neutered", s.Patient.Neutered},
		{"Age", s.Patient.Age},
		{"Weight", s.Patient.Weight},
		{"Client", s.Patient.ClientName},
	} {
		lines = append(lines, pf.label+": "+orPlaceholder(pf.value, placeholderNotSpecified))
	}
	lines = append(lines, "")

	// Subjective
	lines = append(lines, "SUBJECTIVE", lightRule,
		orPlaceholder(s.PresentingComplaint, placeholderNoComplaint), "")

	// Objective, with the abnormal-findings summary accumulated in catalog
	// order as sections are emitted.
	lines = append(lines, "OBJECTIVE", lightRule)
	var abnormal []string
	for _, sys := range r.Catalog.Systems() {
		f, ok := s.Findings[sys.Name]
		if !ok {
			continue
		}
		lines = append(lines, sys.DisplayName+":")
		if f.IsNormal {
			lines = append(lines, "  "+sys.DefaultNormalText)
			continue
		}

		var details []string
		if f.Severity != "" {
			details = append(details, "Severity: "+f.Severity)
			abnormal = append(abnormal, fmt.Sprintf("%s: %s abnormality", sys.DisplayName, f.Severity))
		}
		for _, fd := range sys.Fields {
			if line, ok := formatFieldValue(fd, f.FieldValues[fd.Name]); ok {
				details = append(details, line)
			}
		}
		if f.Notes != "" {
			details = append(details, "Notes: "+f.Notes)
		}

		if len(details) == 0 {
			lines = append(lines, "  "+fallbackAbnormalText)
		} else {
			lines = append(lines, "  "+strings.Join(details, ". ")+".")
		}
	}
	lines = append(lines, "")

	// Assessment
	lines = append(lines, "ASSESSMENT", lightRule)
	if len(abnormal) == 0 {
		lines = append(lines, noAbnormalitiesText)
	} else {
		for i, entry := range abnormal {
			lines = append(lines, fmt.Sprintf("%d. %s", i+1, entry))
		}
	}
	lines = append(lines, "")

	// Plan
	lines = append(lines, "PLAN", lightRule,
		orPlaceholder(s.PlanNotes, placeholderNoPlan), "")

	// Footer: the only timestamped line.
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	lines = append(lines, lightRule,
		"Report generated: "+now().Format("2006-01-02 15:04:05"))

	return strings.Join(lines, "\n"), nil
}

// formatFieldValue renders one recorded value according to its field
// definition. The second return is false when the value should be omitted:
// missing, false, empty, or zero. Values arrive either as native Go types or
// as their JSON-decoded shapes; both are handled.
func formatFieldValue(fd catalog.Field, v any) (string, bool) {
	switch val := v.(type) {
	case nil:
		return "", false
	case bool:
		if !val {
			return "", false
		}
		return fd.Label + ": Yes", true
	case []string:
		if len(val) == 0 {
			return "", false
		}
		return fd.Label + ": " + strings.Join(val, ", "), true
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			parts = append(parts, fmt.Sprintf("%v", item))
		}
		if len(parts) == 0 {
			return "", false
		}
		return fd.Label + ": " + strings.Join(parts, ", "), true
	case string:
		if val == "" {
			return "", false
		}
		return fd.Label + ": " + val + fd.Unit, true
	case float64:
		if val == 0 {
			return "", false
		}
		return fd.Label + ": " + strconv.FormatFloat(val, 'f', -1, 64) + fd.Unit, true
	case int:
		if val == 0 {
			return "", false
		}
		return fd.Label + ": " + strconv.Itoa(val) + fd.Unit, true
	case int64:
		if val == 0 {
			return "", false
		}
		return fd.Label + ": " + strconv.FormatInt(val, 10) + fd.Unit, true
	default:
		return fd.Label + ": " + fmt.Sprintf("%v", val) + fd.Unit, true
	}
}

func orPlaceholder(s, placeholder string) string {
	if strings.TrimSpace(s) == "" {
		return placeholder
	}
	return s
}

func center(s string) string {
	if len([]rune(s)) >= bannerWidth {
		return s
	}
	pad := (bannerWidth - len([]rune(s))) / 2
	return strings.Repeat(" ", pad) + s
}
