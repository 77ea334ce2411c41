package gemini

import (
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/garageml/partsbot/internal/domain"
)

const criteriaSystemInstruction = "You are a smart auto parts store assistant. Distinguish between Product Search, Small Talk, and requests requiring a Human Agent (wholesale, distribution, company info)."

const semanticSystemInstruction = "You are an expert auto parts advisor. You infer which catalog items solve the customer's problem, including symptom-to-part reasoning (e.g. \"car won't start\" points at battery or alternator). Reply in Spanish."

func buildCriteriaPrompt(userText string) string {
	return fmt.Sprintf(`You are an expert auto parts store assistant.
Analyze the user input: %q

Rules:
1. SEARCH: the user asks for a part, price, stock, or compatibility (e.g. "bujias para gol"). Normalize partName to SINGULAR.
2. CHAT: greetings, thanks, or small talk.
3. AGENT: wholesale prices ("precio al mayor", "por mayor", "gremio"), becoming a distributor, company address or contact info, complex mechanical advice unrelated to finding a part, "hablar con alguien", "soporte".

Output JSON with the correct intent. For CHAT or AGENT, write a polite Spanish response in conversationalReply; for AGENT, invite them to contact an advisor.`, userText)
}

func buildSemanticPrompt(userText string, history []domain.ChatMessage, catalog []domain.Product) string {
	var sb strings.Builder

	sb.WriteString("CATALOG (the only products that exist):\n")
	for _, p := range catalog {
		entry, _ := json.Marshal(condensedEntry{
			ID:       p.ID,
			Name:     p.Name,
			Compat:   p.CompatibleModels,
			Category: p.Category,
			Price:    p.Price,
		})
		sb.Write(entry)
		sb.WriteByte('\n')
	}

	sb.WriteString("\nCONVERSATION SO FAR:\n")
	for _, msg := range history {
		fmt.Fprintf(&sb, "%s: %s\n", msg.Role, msg.Text)
	}

	fmt.Fprintf(&sb, `
NEW USER MESSAGE: %q

Select zero or more catalog ids ("matches") that address the user's stated or implied need. Infer parts from symptoms when needed. Write a short persuasive Spanish reply. If you can infer the vehicle, fill make/model/year. Only use ids that appear in the catalog above.`, userText)

	return sb.String()
}

func buildSummaryPrompt(query string, preview []domain.Product, total int, criteria domain.Criteria) string {
	names := make([]string, len(preview))
	for i, p := range preview {
		names[i] = fmt.Sprintf("%s (%s %.2f)", p.Name, p.Currency, p.Price)
	}
	criteriaJSON, _ := json.Marshal(criteria)

	return fmt.Sprintf(`User asked: %q
Extracted criteria: %s
Database found %d products. First results: %s

Generate a very short, friendly, professional response in Spanish summarizing the results.
- If found > 0: something like "Encontré estas opciones para [coche/repuesto]...".
- If found 0: apologize and suggest checking the year/model or asking for a generic part.
Respond with plain text only.`, query, criteriaJSON, total, strings.Join(names, "; "))
}

type condensedEntry struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Compat   []string `json:"compat"`
	Category string   `json:"category"`
	Price    float64  `json:"price"`
}

func criteriaSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"intent": {
				Type:        genai.TypeString,
				Enum:        []string{"SEARCH", "CHAT", "AGENT"},
				Description: "SEARCH: looking for specific parts. CHAT: greetings/small talk. AGENT: wholesale, bulk buying, company info, or complex questions.",
			},
			"conversationalReply": {
				Type:        genai.TypeString,
				Description: "For CHAT or AGENT intents, a polite Spanish response. For AGENT, invite them to contact support.",
			},
			"expertAdvice": {
				Type:        genai.TypeString,
				Description: "Optional diagnostic context for the customer.",
			},
			"partName": {
				Type:        genai.TypeString,
				Description: "The specific name OR CODE of the auto part. Normalize to SINGULAR.",
			},
			"make": {
				Type:        genai.TypeString,
				Description: "Car brand/make (e.g. Toyota, Ford).",
			},
			"model": {
				Type:        genai.TypeString,
				Description: "Car model (e.g. Corolla, Focus).",
			},
			"year": {
				Type:        genai.TypeString,
				Description: "Car year.",
			},
			"category": {
				Type:        genai.TypeString,
				Description: "General category.",
			},
		},
		Required: []string{"intent"},
	}
}

func semanticSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"matches": {
				Type:        genai.TypeArray,
				Items:       &genai.Schema{Type: genai.TypeString},
				Description: "Catalog ids that address the user's need. Empty when nothing fits.",
			},
			"reply": {
				Type:        genai.TypeString,
				Description: "Short persuasive Spanish reply presenting the matches or asking a clarifying question.",
			},
			"make":  {Type: genai.TypeString},
			"model": {Type: genai.TypeString},
			"year":  {Type: genai.TypeString},
		},
		Required: []string{"matches", "reply"},
	}
}
