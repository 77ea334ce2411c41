package domain

// Intent is the coarse classification of a user turn.
type Intent string

const (
	// IntentSearch means the user is looking for parts; criteria drive
	// an inventory search.
	IntentSearch Intent = "SEARCH"

	// IntentChat means greetings or small talk; reply directly, no
	// inventory search.
	IntentChat Intent = "CHAT"

	// IntentAgent means the turn must be handed off to a human channel
	// (wholesale, distribution, company info).
	IntentAgent Intent = "AGENT"
)

// Criteria are the structured fields extracted from free text and used
// to filter the catalog. All fields are optional; an absent field
// matches everything.
type Criteria struct {
	PartName string `json:"partName,omitempty"`
	Make     string `json:"make,omitempty"`
	Model    string `json:"model,omitempty"`
	Year     string `json:"year,omitempty"`
	Category string `json:"category,omitempty"`
}

// Empty reports whether no criteria field is supplied.
func (c Criteria) Empty() bool {
	return c.PartName == "" && c.Make == "" && c.Model == "" && c.Year == "" && c.Category == ""
}

// Canned replies used whenever the reasoning service supplies none.
const (
	DefaultGreetingReply = "¡Hola! Soy tu experto en repuestos. ¿Qué estás buscando hoy? (Ej: \"Pastillas de freno para Hilux\")"
	DefaultAgentReply    = "¡Con gusto te conecto con un asesor! Tocá el botón para escribirnos directamente."
)

// Classification is the outcome of intent resolution. Build values
// through ChatReply, AgentHandoff, or SearchFor so that CHAT and AGENT
// always carry a non-empty reply and SEARCH never carries one.
type Classification struct {
	Intent       Intent
	Reply        string // conversational reply, CHAT/AGENT only
	ExpertAdvice string // optional diagnostic annotation
	Criteria     Criteria
}

// ChatReply builds a CHAT classification. An empty reply falls back to
// the canned greeting.
func ChatReply(reply string) Classification {
	if reply == "" {
		reply = DefaultGreetingReply
	}
	return Classification{Intent: IntentChat, Reply: reply}
}

// AgentHandoff builds an AGENT classification. An empty reply falls
// back to the canned handoff invitation.
func AgentHandoff(reply string) Classification {
	if reply == "" {
		reply = DefaultAgentReply
	}
	return Classification{Intent: IntentAgent, Reply: reply}
}

// SearchFor builds a SEARCH classification from extracted criteria.
func SearchFor(c Criteria) Classification {
	return Classification{Intent: IntentSearch, Criteria: c}
}

// RawSearch is the no-intelligence fallback: treat the whole input as
// a part-name search term.
func RawSearch(text string) Classification {
	return SearchFor(Criteria{PartName: text})
}

// Normalize repairs a classification parsed from the wire: unknown or
// absent intents become SEARCH (backward compatibility), and CHAT or
// AGENT without a reply receive the canned one. The result always
// satisfies the constructor invariants.
func (c Classification) Normalize() Classification {
	switch c.Intent {
	case IntentChat:
		out := ChatReply(c.Reply)
		out.ExpertAdvice = c.ExpertAdvice
		return out
	case IntentAgent:
		out := AgentHandoff(c.Reply)
		out.ExpertAdvice = c.ExpertAdvice
		return out
	case IntentSearch:
		out := SearchFor(c.Criteria)
		out.ExpertAdvice = c.ExpertAdvice
		return out
	default:
		out := SearchFor(c.Criteria)
		out.ExpertAdvice = c.ExpertAdvice
		return out
	}
}
