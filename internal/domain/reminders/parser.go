package reminders

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	everyRe    = regexp.MustCompile(`(?i)\bevery\b`)
	verbRe     = regexp.MustCompile(`(?i)\b(?:take|give|administer|use|apply)\b`)
	intervalRe = regexp.MustCompile(`(?i)^\s*(-?\d+(?:\.\d+)?)\s*(hours?|hrs?|h|days?|d)\b`)
	durationRe = regexp.MustCompile(`(?i)\bfor\s+(-?\d+|an?|one)\s+(days?|weeks?)\b`)
)

// ParseInstruction interpreta textos del tipo
//
//	[take] <medicamento> every <N> <hours|days> [for <M> <days|weeks>]
//
// p.ej. "Take Ibuprofen every 6 hours for 3 days" o "Amoxicillin every 8 hours for a week".
// No consulta el reloj; la creación la asigna el Registry.
func ParseInstruction(text string) (Descriptor, error) {
	fail := func(reason string) (Descriptor, error) {
		return Descriptor{}, &ParseError{Input: text, Reason: reason}
	}

	loc := everyRe.FindStringIndex(text)
	if loc == nil {
		return fail(ReasonNoInterval)
	}
	head, tail := text[:loc[0]], text[loc[1]:]

	name := extractName(head)
	if name == "" {
		return fail(ReasonNoName)
	}

	m := intervalRe.FindStringSubmatch(tail)
	if m == nil {
		return fail(ReasonNoInterval)
	}
	n, err := strconv.ParseFloat(m[1], 64)
	if math.IsInf(n, 1) {
		return fail(ReasonIntervalTooLong)
	}
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return fail(ReasonNoInterval)
	}
	if n <= 0 {
		return fail(ReasonNonPositiveInterval)
	}

	hours := n
	if strings.HasPrefix(strings.ToLower(m[2]), "d") {
		hours *= 24
	}
	// comparar en float antes de convertir: time.Duration desborda
	if hours > MaxInterval.Hours() {
		return fail(ReasonIntervalTooLong)
	}
	interval := time.Duration(hours * float64(time.Hour))
	if interval <= 0 {
		return fail(ReasonNonPositiveInterval)
	}

	days := 0
	if dm := durationRe.FindStringSubmatch(tail[len(m[0]):]); dm != nil {
		count, tooLong := parseCount(dm[1])
		if tooLong {
			return fail(ReasonDurationTooLong)
		}
		if count <= 0 {
			return fail(ReasonNonPositiveDuration)
		}
		if strings.HasPrefix(strings.ToLower(dm[2]), "week") {
			if count > MaxDurationDays/7 {
				return fail(ReasonDurationTooLong)
			}
			count *= 7
		}
		if count > MaxDurationDays {
			return fail(ReasonDurationTooLong)
		}
		days = count
	}

	return Descriptor{
		Medication:   name,
		Interval:     interval,
		DurationDays: days,
	}, nil
}

// extractName toma lo que queda entre el último verbo y "every".
func extractName(head string) string {
	if locs := verbRe.FindAllStringIndex(head, -1); len(locs) > 0 {
		head = head[locs[len(locs)-1][1]:]
	}
	head = strings.Trim(head, " \t\r\n,.;:!?-\"'")
	if strings.TrimSpace(head) == "" {
		return ""
	}
	return DisplayName(head)
}

// parseCount devuelve tooLong si el número no entra en un int.
func parseCount(s string) (n int, tooLong bool) {
	switch strings.ToLower(s) {
	case "a", "an", "one":
		return 1, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		var ne *strconv.NumError
		if errors.As(err, &ne) && errors.Is(ne.Err, strconv.ErrRange) && !strings.HasPrefix(s, "-") {
			return 0, true
		}
		return 0, false
	}
	return n, false
}
