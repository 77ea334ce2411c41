// Package tokens bounds the conversation window included in reasoning
// prompts. The reasoner pays per token, so the window is capped both
// by message count and by a tiktoken-counted token budget.
package tokens

import (
	"fmt"
	"sync"

	"github.com/tiktoken-go/tokenizer"

	"github.com/garageml/partsbot/internal/domain"
)

// Window trims conversation history to its most recent maxMessages
// entries and then drops oldest entries while the counted total
// exceeds maxTokens. A zero budget disables the token cap.
type Window struct {
	maxMessages int
	maxTokens   int

	codec   tokenizer.Codec
	codecMu sync.Mutex
}

// NewWindow creates a window. maxMessages must be positive.
func NewWindow(maxMessages, maxTokens int) (*Window, error) {
	if maxMessages <= 0 {
		return nil, fmt.Errorf("maxMessages must be positive, got %d", maxMessages)
	}

	// Gemini publishes no tokenizer; cl100k_base is close enough for
	// budgeting purposes.
	codec, err := tokenizer.Get(tokenizer.Cl100kBase)
	if err != nil {
		return nil, fmt.Errorf("failed to load tokenizer: %w", err)
	}

	return &Window{
		maxMessages: maxMessages,
		maxTokens:   maxTokens,
		codec:       codec,
	}, nil
}

// Trim returns the bounded suffix of history. The input is never
// mutated; the returned slice may alias it.
func (w *Window) Trim(history []domain.ChatMessage) []domain.ChatMessage {
	if len(history) > w.maxMessages {
		history = history[len(history)-w.maxMessages:]
	}
	if w.maxTokens <= 0 {
		return history
	}

	total := 0
	counts := make([]int, len(history))
	for i, msg := range history {
		counts[i] = w.count(msg.Text)
		total += counts[i]
	}

	start := 0
	for start < len(history) && total > w.maxTokens {
		total -= counts[start]
		start++
	}
	return history[start:]
}

// Count returns the token count of a single string.
func (w *Window) Count(text string) int {
	return w.count(text)
}

func (w *Window) count(text string) int {
	w.codecMu.Lock()
	defer w.codecMu.Unlock()

	ids, _, err := w.codec.Encode(text)
	if err != nil {
		// Counting is advisory; approximate rather than fail.
		return len(text) / 4
	}
	return len(ids)
}
