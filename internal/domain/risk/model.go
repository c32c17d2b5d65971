package risk

import (
	"encoding/json"
	"math"
)

// Tier está ordenado: Normal < Watch < HighRisk.
type Tier int

const (
	Normal Tier = iota
	Watch
	HighRisk
)

func (t Tier) String() string {
	switch t {
	case Watch:
		return "watch"
	case HighRisk:
		return "high_risk"
	default:
		return "normal"
	}
}

func (t Tier) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// SymptomSnapshot: nil significa "no reportado", nunca cero.
type SymptomSnapshot struct {
	FeverC              *float64
	PainScore           *int // 0-10
	VomitingEvents6h    *int
	BreathingDifficulty bool
}

// Assessment es inmutable una vez devuelto.
type Assessment struct {
	Tier    Tier
	Alert   bool
	Reasons []string
}

// helpers para construir snapshots en tests y adapters
func Float(v float64) *float64 { return &v }
func Int(v int) *int           { return &v }

// Count convierte un número en un conteo entero. Rechaza fracciones y NaN;
// satura en el rango de int32 (Inf incluido) para que valores enormes sigan
// contando como altos en vez de desbordar.
func Count(v float64) (int, bool) {
	if math.IsNaN(v) || v != math.Trunc(v) {
		return 0, false
	}
	switch {
	case v > math.MaxInt32:
		return math.MaxInt32, true
	case v < math.MinInt32:
		return math.MinInt32, true
	}
	return int(v), true
}
