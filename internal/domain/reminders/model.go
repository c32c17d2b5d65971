package reminders

import (
	"strings"
	"time"
	"unicode"
)

// Descriptor es el resultado del parser, antes de registrarse.
type Descriptor struct {
	Medication   string
	Interval     time.Duration
	DurationDays int // 0 = sin fin
}

func (d Descriptor) Key() string { return NormalizeName(d.Medication) }

type MedicationSchedule struct {
	ID         string
	Medication string

	Interval     time.Duration
	DurationDays int

	CreatedAt   time.Time
	NextDue     time.Time
	LastFiredAt time.Time
	FireCount   int
}

func (s MedicationSchedule) Key() string { return NormalizeName(s.Medication) }

func (s MedicationSchedule) Bounded() bool { return s.DurationDays > 0 }

// EndsAt es cero si el schedule no tiene duración.
func (s MedicationSchedule) EndsAt() time.Time {
	if !s.Bounded() {
		return time.Time{}
	}
	return s.CreatedAt.Add(time.Duration(s.DurationDays) * 24 * time.Hour)
}

// FireResult describe un disparo ya contabilizado.
type FireResult struct {
	Schedule MedicationSchedule
	FiredAt  time.Time
	Continue bool
}

// NormalizeName: clave del registry (minúsculas, espacios colapsados).
func NormalizeName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// DisplayName capitaliza cada palabra: "medicine a" -> "Medicine A".
func DisplayName(name string) string {
	words := strings.Fields(name)
	for i, w := range words {
		rs := []rune(strings.ToLower(w))
		rs[0] = unicode.ToUpper(rs[0])
		words[i] = string(rs)
	}
	return strings.Join(words, " ")
}
