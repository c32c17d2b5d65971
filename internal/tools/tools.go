package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"peds-aftercare/internal/domain/reminders"
	"peds-aftercare/internal/domain/risk"

	"github.com/mark3labs/mcp-go/mcp"
)

type handlers struct {
	reminders *reminders.Service
	risk      *risk.Service
}

func setReminderTool() mcp.Tool {
	return mcp.NewTool("set_medication_reminder",
		mcp.WithDescription("Set up a recurring medication reminder from the guardian's instruction. "+
			"Setting a medication that already has a reminder replaces it."),
		mcp.WithString("medication_instruction",
			mcp.Required(),
			mcp.Description(`Instruction as stated, e.g. "Take Zyrtec every 12 hours" or "Take Ibuprofen every 6 hours for 3 days"`),
		),
	)
}

func listRemindersTool() mcp.Tool {
	return mcp.NewTool("list_medication_reminders",
		mcp.WithDescription("List all active medication reminders, soonest first."),
	)
}

func cancelReminderTool() mcp.Tool {
	return mcp.NewTool("cancel_medication_reminder",
		mcp.WithDescription("Cancel the reminder for one medication (name match is case-insensitive)."),
		mcp.WithString("medication_name",
			mcp.Required(),
			mcp.Description("Medication name, e.g. Ibuprofen"),
		),
	)
}

func cancelAllRemindersTool() mcp.Tool {
	return mcp.NewTool("cancel_all_medication_reminders",
		mcp.WithDescription("Cancel every active medication reminder."),
	)
}

func evaluateRiskTool() mcp.Tool {
	return mcp.NewTool("evaluate_symptom_risk",
		mcp.WithDescription("Classify reported symptoms as normal, watch or high_risk. "+
			"Omit anything the guardian did not report. Not a diagnosis."),
		mcp.WithNumber("fever_c", mcp.Description("Temperature in °C")),
		mcp.WithNumber("pain_0_10", mcp.Description("Pain score from 0 to 10")),
		mcp.WithNumber("vomiting_events_6h", mcp.Description("Vomiting episodes in the last 6 hours")),
		mcp.WithBoolean("breathing_difficulty", mcp.Description("Any trouble breathing reported")),
	)
}

func (h *handlers) setReminder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instr, err := req.RequireString("medication_instruction")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	res, err := h.reminders.CreateOrReplaceFromText(ctx, instr)
	if err != nil {
		var pe *reminders.ParseError
		if errors.As(err, &pe) {
			return mcp.NewToolResultError("I couldn't set up that reminder. " + reminders.CorrectiveMessage(pe)), nil
		}
		return mcp.NewToolResultError("I couldn't set up that reminder. " + err.Error()), nil
	}
	return mcp.NewToolResultText(res.Message), nil
}

func (h *handlers) listReminders(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(FormatReminderList(h.reminders.ListActive(ctx))), nil
}

func (h *handlers) cancelReminder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("medication_name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s, err := h.reminders.Cancel(ctx, name)
	if err != nil {
		if errors.Is(err, reminders.ErrNotFound) {
			return mcp.NewToolResultText(capitalize(err.Error()) + "."), nil
		}
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(reminders.CancelledMessage(s)), nil
}

func (h *handlers) cancelAllReminders(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(reminders.CancelAllMessage(h.reminders.CancelAll(ctx))), nil
}

func (h *handlers) evaluateRisk(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	var snap risk.SymptomSnapshot
	if v, ok := number(args, "fever_c"); ok {
		snap.FeverC = risk.Float(v)
	}
	if v, ok := number(args, "pain_0_10"); ok {
		if n, ok := risk.Count(v); ok {
			snap.PainScore = risk.Int(n)
		}
	}
	if v, ok := number(args, "vomiting_events_6h"); ok {
		if n, ok := risk.Count(v); ok {
			snap.VomitingEvents6h = risk.Int(n)
		}
	}
	if v, ok := args["breathing_difficulty"].(bool); ok {
		snap.BreathingDifficulty = v
	}

	return mcp.NewToolResultText(FormatAssessment(h.risk.Evaluate(ctx, snap))), nil
}

// FormatReminderList arma el texto que el agente lee al guardián.
func FormatReminderList(items []reminders.MedicationSchedule) string {
	if len(items) == 0 {
		return "No active medication reminders are currently set."
	}

	var b strings.Builder
	b.WriteString("Active medication reminders:\n")
	for i, s := range items {
		fmt.Fprintf(&b, "\n%d. %s - every %s hours", i+1, s.Medication, reminders.FormatHours(s.Interval))
		if s.Bounded() {
			fmt.Fprintf(&b, " (for %d days)", s.DurationDays)
		}
		fmt.Fprintf(&b, "\n   Next reminder: %s", s.NextDue.Format("2006-01-02 15:04:05"))
		fmt.Fprintf(&b, "\n   Reminders sent: %d", s.FireCount)
	}
	return b.String()
}

func FormatAssessment(a risk.Assessment) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Risk level: %s", a.Tier)
	if a.Alert {
		b.WriteString(" (ALERT: advise seeking immediate medical care)")
	}
	if len(a.Reasons) == 0 {
		b.WriteString("\nNo concerning symptoms among those reported.")
		return b.String()
	}
	b.WriteString("\nReasons:")
	for _, r := range a.Reasons {
		b.WriteString("\n- " + r)
	}
	return b.String()
}

// number acepta float64 (JSON) o enteros (llamadas en proceso).
func number(args map[string]any, key string) (float64, bool) {
	switch v := args[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
