package patient

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Patient maps to the patient table: the animal's signalment plus the client
// (owner) it belongs to. Inactive patients are kept for history but can no
// longer receive new exams.
type Patient struct {
	ID         uuid.UUID  `db:"id" json:"id"`
	Name       string     `db:"name" json:"name"`
	Species    string     `db:"species" json:"species"`
	Breed      string     `db:"breed" json:"breed"`
	Sex        string     `db:"sex" json:"sex"`
	Neutered   *bool      `db:"neutered" json:"neutered,omitempty"`
	BirthDate  *time.Time `db:"birth_date" json:"birth_date,omitempty"`
	WeightKG   *float64   `db:"weight_kg" json:"weight_kg,omitempty"`
	ClientName string     `db:"client_name" json:"client_name"`
	Microchip  string     `db:"microchip" json:"microchip"`
	IsActive   bool       `db:"is_active" json:"is_active"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at" json:"updated_at"`
}

// AgeAt formats the patient's age at the given date, e.g. "3 y 2 m" or
// "7 weeks" for juveniles. Empty when the birth date is unknown.
func (p *Patient) AgeAt(at time.Time) string {
	if p.BirthDate == nil || p.BirthDate.After(at) {
		return ""
	}
	days := int(at.Sub(*p.BirthDate).Hours() / 24)
	if days < 7*16 {
		weeks := days / 7
		if weeks <= 1 {
			return "1 week"
		}
		return strconv.Itoa(weeks) + " weeks"
	}

	years := days / 365
	months := (days % 365) / 30
	switch {
	case years == 0:
		return strconv.Itoa(months) + " m"
	case months == 0:
		return strconv.Itoa(years) + " y"
	default:
		return strconv.Itoa(years) + " y " + strconv.Itoa(months) + " m"
	}
}
