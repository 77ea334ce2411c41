package codec

import (
	"encoding/json"
	"testing"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "bare object untouched",
			in:   `{"intent":"SEARCH"}`,
			want: `{"intent":"SEARCH"}`,
		},
		{
			name: "fenced with language tag",
			in:   "```json\n{\"intent\":\"CHAT\"}\n```",
			want: `{"intent":"CHAT"}`,
		},
		{
			name: "fenced without language tag",
			in:   "```\n{\"intent\":\"AGENT\"}\n```",
			want: `{"intent":"AGENT"}`,
		},
		{
			name: "unterminated fence",
			in:   "```json\n{\"a\":1}",
			want: `{"a":1}`,
		},
		{
			name: "leading prose",
			in:   "Claro, aquí tienes el resultado: {\"a\":1}",
			want: `{"a":1}`,
		},
		{
			name: "trailing prose",
			in:   "{\"a\":1} Espero que te sirva.",
			want: `{"a":1}`,
		},
		{
			name: "prose on both sides of array",
			in:   "Los ids son: [\"REP-001\",\"REP-003\"] ¡Saludos!",
			want: `["REP-001","REP-003"]`,
		},
		{
			name: "nested braces",
			in:   "x {\"a\":{\"b\":2}} y",
			want: `{"a":{"b":2}}`,
		},
		{
			name: "braces inside strings",
			in:   `{"reply":"usa {llave} con \"cuidado\""} fin`,
			want: `{"reply":"usa {llave} con \"cuidado\""}`,
		},
		{
			name: "surrounding whitespace",
			in:   "  \n\t{\"a\":1}\n ",
			want: `{"a":1}`,
		},
		{
			name: "no json at all",
			in:   "lo siento, no puedo ayudarte",
			want: "lo siento, no puedo ayudarte",
		},
		{
			name: "unbalanced object",
			in:   `{"a":1`,
			want: `{"a":1`,
		},
		{
			name: "empty input",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractJSON(tt.in); got != tt.want {
				t.Errorf("ExtractJSON(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestExtractJSON_ResultParses(t *testing.T) {
	// Every well-formed variant must survive a round trip through the
	// standard parser.
	inputs := []string{
		"```json\n{\"intent\":\"SEARCH\",\"partName\":\"bomba de agua\"}\n```",
		"Aquí está:\n```\n{\"matches\":[\"REP-001\"],\"reply\":\"mirá esto\"}\n```\ngracias",
		`texto {"a":[1,2,{"b":"}"}]} texto`,
	}
	for _, in := range inputs {
		var v any
		if err := json.Unmarshal([]byte(ExtractJSON(in)), &v); err != nil {
			t.Errorf("ExtractJSON(%q) not parseable: %v", in, err)
		}
	}
}
