// Package intent implements the zero-latency local classifier. It
// resolves the two cheapest, highest-confidence cases (small talk and
// human-agent escalation) without touching the network; everything
// else is deferred to the remote reasoner.
package intent

import (
	"strings"

	"github.com/garageml/partsbot/internal/domain"
)

// greetings are matched against the whole normalized input, with
// trailing punctuation stripped.
var greetings = map[string]struct{}{
	"hola":           {},
	"holaa":          {},
	"buenas":         {},
	"buen dia":       {},
	"buen día":       {},
	"buenos dias":    {},
	"buenos días":    {},
	"buenas tardes":  {},
	"buenas noches":  {},
	"gracias":        {},
	"muchas gracias": {},
	"chau":           {},
	"adios":          {},
	"adiós":          {},
	"hasta luego":    {},
	"hello":          {},
	"hi":             {},
	"hey":            {},
	"thanks":         {},
	"thank you":      {},
}

// escalations are matched as substrings anywhere in the input.
var escalations = []string{
	"por mayor",
	"al mayor",
	"mayorista",
	"mayoreo",
	"gremio",
	"distribuidor",
	"distribuidora",
	"hablar con alguien",
	"hablar con un humano",
	"hablar con una persona",
	"soporte",
	"asesor",
	"agente",
	"wholesale",
	"distributor",
	"bulk",
	"talk to agent",
	"talk to a human",
}

// Classify inspects raw message text and returns a fully-formed
// classification for small talk or escalation. ok is false when the
// heuristic is inconclusive and the caller must consult the remote
// reasoner.
func Classify(text string) (domain.Classification, bool) {
	normalized := strings.ToLower(strings.TrimSpace(text))

	if _, hit := greetings[strings.TrimRight(normalized, "!?.,;: ")]; hit {
		return domain.ChatReply(domain.DefaultGreetingReply), true
	}

	for _, kw := range escalations {
		if strings.Contains(normalized, kw) {
			return domain.AgentHandoff(domain.DefaultAgentReply), true
		}
	}

	return domain.Classification{}, false
}
