package risk

import "math"

type rule struct {
	tier   Tier
	reason string
	match  func(SymptomSnapshot) bool
}

// Orden fijo de evaluación: fiebre, respiración, dolor, vómitos.
var rules = []rule{
	{HighRisk, "High fever (>= 39.0 °C).", func(s SymptomSnapshot) bool {
		return s.FeverC != nil && *s.FeverC >= 39.0
	}},
	{Watch, "Mild fever (38.0-38.9 °C).", func(s SymptomSnapshot) bool {
		return s.FeverC != nil && *s.FeverC >= 38.0 && *s.FeverC < 39.0
	}},
	{HighRisk, "Breathing difficulty reported.", func(s SymptomSnapshot) bool {
		return s.BreathingDifficulty
	}},
	{HighRisk, "Severe pain (7 or above).", func(s SymptomSnapshot) bool {
		return s.PainScore != nil && *s.PainScore >= 7
	}},
	{Watch, "Moderate pain (4-6).", func(s SymptomSnapshot) bool {
		return s.PainScore != nil && *s.PainScore >= 4 && *s.PainScore < 7
	}},
	{HighRisk, "Repeated vomiting (3 or more times in 6h).", func(s SymptomSnapshot) bool {
		return s.VomitingEvents6h != nil && *s.VomitingEvents6h >= 3
	}},
	{Watch, "Vomiting (1-2 times in 6h).", func(s SymptomSnapshot) bool {
		return s.VomitingEvents6h != nil && *s.VomitingEvents6h >= 1 && *s.VomitingEvents6h < 3
	}},
}

// Evaluate clasifica el snapshot. El tier es el máximo de las reglas que
// matchean; las razones son las de ese tier, en orden de reglas (las de watch
// no se reportan si ya hay high_risk). Pura: sin reloj ni estado.
func Evaluate(s SymptomSnapshot) Assessment {
	s = Sanitize(s)

	tier := Normal
	matched := make([]rule, 0, len(rules))
	for _, r := range rules {
		if !r.match(s) {
			continue
		}
		matched = append(matched, r)
		if r.tier > tier {
			tier = r.tier
		}
	}

	reasons := make([]string, 0, len(matched))
	for _, r := range matched {
		if r.tier >= tier {
			reasons = append(reasons, r.reason)
		}
	}

	return Assessment{
		Tier:    tier,
		Alert:   tier == HighRisk,
		Reasons: reasons,
	}
}

// Sanitize descarta valores malformados (se tratan como no reportados):
// fiebre NaN/Inf, dolor fuera de 0-10, vómitos negativos.
func Sanitize(s SymptomSnapshot) SymptomSnapshot {
	if s.FeverC != nil && (math.IsNaN(*s.FeverC) || math.IsInf(*s.FeverC, 0)) {
		s.FeverC = nil
	}
	if s.PainScore != nil && (*s.PainScore < 0 || *s.PainScore > 10) {
		s.PainScore = nil
	}
	if s.VomitingEvents6h != nil && *s.VomitingEvents6h < 0 {
		s.VomitingEvents6h = nil
	}
	return s
}
