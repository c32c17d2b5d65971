// Package tools expone recordatorios y clasificación de riesgo como
// herramientas MCP para el agente conversacional.
package tools

import (
	"peds-aftercare/internal/domain/reminders"
	"peds-aftercare/internal/domain/risk"

	"github.com/mark3labs/mcp-go/server"
)

// Version se setea en build vía ldflags.
var Version = "dev"

const instructions = `Tools for a pediatric post-discharge assistant talking to parents or guardians.

- Medication reminders: when a guardian mentions a schedule ("Take Zyrtec every 12 hours",
  "Take Ibuprofen every 6 hours for 3 days") call set_medication_reminder with their words.
  If it cannot be parsed, relay the corrective message and ask again.
- Symptom risk: evaluate_symptom_risk classifies reported symptoms as normal, watch or high_risk.
  It is not a diagnosis. On high_risk tell the guardian to seek immediate medical care.
- Never calculate doses.`

// NewServer registra todas las herramientas sobre un *server.MCPServer.
func NewServer(rem *reminders.Service, rk *risk.Service) *server.MCPServer {
	s := server.NewMCPServer(
		"peds-aftercare",
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(instructions),
	)

	h := &handlers{reminders: rem, risk: rk}

	s.AddTool(setReminderTool(), h.setReminder)
	s.AddTool(listRemindersTool(), h.listReminders)
	s.AddTool(cancelReminderTool(), h.cancelReminder)
	s.AddTool(cancelAllRemindersTool(), h.cancelAllReminders)
	s.AddTool(evaluateRiskTool(), h.evaluateRisk)

	return s
}
