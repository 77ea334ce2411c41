// Package orchestrator sequences one conversation turn: classify the
// message, search inventory or reply directly, synthesize the reply,
// and append to history. It owns the fallback chain when any stage
// fails and is the only writer of conversation state.
package orchestrator

import (
	"context"
	"log/slog"
	"sync"

	"github.com/garageml/partsbot/internal/domain"
	"github.com/garageml/partsbot/internal/intent"
	"github.com/garageml/partsbot/internal/inventory"
	"github.com/garageml/partsbot/internal/reasoner/gemini"
)

// ConnectionProblemReply is the single user-facing message for a
// failed turn. Prior product results are left untouched.
const ConnectionProblemReply = "Tuve un problema de conexión. Por favor intenta de nuevo."

// Reasoner is the remote reasoning contract the orchestrator depends
// on. Operations never fail; they degrade internally.
type Reasoner interface {
	Enabled() bool
	ExtractCriteria(ctx context.Context, text string) domain.Classification
	SemanticMatch(ctx context.Context, text string, history []domain.ChatMessage, catalog []domain.Product) gemini.MatchResult
	Summarize(ctx context.Context, query string, products []domain.Product, criteria domain.Criteria) string
}

// Config carries the orchestration settings.
type Config struct {
	// Semantic folds classification and matching into one reasoner
	// call over the full catalog. Ignored when the reasoner is
	// disabled.
	Semantic       bool
	WhatsAppNumber string
	// Greeting opens every conversation. Empty uses the canned one.
	Greeting string
}

// TurnResult is what the UI layer receives for one user turn.
type TurnResult struct {
	Reply       string           `json:"reply"`
	Products    []domain.Product `json:"products"`
	ActionLabel string           `json:"actionLabel,omitempty"`
	ActionLink  string           `json:"actionLink,omitempty"`
}

// Orchestrator processes a single logical conversation stream,
// turn by turn. A second message submitted while a turn is in flight
// is rejected with domain.ErrTurnInFlight.
type Orchestrator struct {
	cfg      Config
	reasoner Reasoner
	engine   inventory.Engine
	catalog  []domain.Product
	logger   *slog.Logger

	mu       sync.Mutex
	inFlight bool
	history  []domain.ChatMessage
	products []domain.Product
}

// New creates an orchestrator. catalog is the authoritative product
// set used by semantic matching; it is read-only after this call.
func New(cfg Config, r Reasoner, engine inventory.Engine, catalog []domain.Product, logger *slog.Logger) *Orchestrator {
	o := &Orchestrator{
		cfg:      cfg,
		reasoner: r,
		engine:   engine,
		catalog:  catalog,
		logger:   logger,
	}
	greeting := cfg.Greeting
	if greeting == "" {
		greeting = domain.DefaultGreetingReply
	}
	o.history = append(o.history, domain.NewMessage(domain.RoleModel, greeting))
	return o
}

// turnState tracks where a turn is in its lifecycle.
type turnState int

const (
	stateReceived turnState = iota
	stateClassifying
	stateSearching
	stateReplyingDirect
	stateSummarizing
	stateDelivered
	stateFailed
)

// turn is the mutable working set of one user turn.
type turn struct {
	state          turnState
	text           string
	classification domain.Classification
	products       []domain.Product
	reply          string
	actionLabel    string
	actionLink     string
	// summaryDone marks semantic turns whose reply already bundles
	// the pitch, so SUMMARIZING is a pass-through.
	summaryDone bool
	err         error
}

// HandleMessage runs one turn through the state machine and returns
// the reply plus the (possibly unchanged) current product results.
func (o *Orchestrator) HandleMessage(ctx context.Context, text string) (*TurnResult, error) {
	if err := o.beginTurn(text); err != nil {
		return nil, err
	}
	defer o.endTurn()

	t := &turn{state: stateReceived, text: text}
	for t.state != stateDelivered && t.state != stateFailed {
		switch t.state {
		case stateReceived:
			t.state = stateClassifying
		case stateClassifying:
			o.classify(ctx, t)
		case stateSearching:
			o.search(ctx, t)
		case stateReplyingDirect:
			o.replyDirect(t)
		case stateSummarizing:
			o.summarize(ctx, t)
		}
	}

	if t.state == stateFailed {
		o.logger.Warn("turn failed",
			slog.String("error", t.err.Error()),
			slog.String("message", text))
		t.reply = ConnectionProblemReply
		t.actionLabel, t.actionLink = "", ""
	}

	return o.deliver(t), nil
}

// beginTurn rejects concurrent turns and appends the user message to
// history immediately, before any network latency.
func (o *Orchestrator) beginTurn(text string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.inFlight {
		return domain.ErrTurnInFlight
	}
	o.inFlight = true
	o.history = append(o.history, domain.NewMessage(domain.RoleUser, text))
	return nil
}

func (o *Orchestrator) endTurn() {
	o.mu.Lock()
	o.inFlight = false
	o.mu.Unlock()
}

// classify resolves intent: local heuristic first, then the reasoner.
// In semantic mode the reasoner folds classification, matching and the
// pitch into one call.
func (o *Orchestrator) classify(ctx context.Context, t *turn) {
	if classification, ok := intent.Classify(t.text); ok {
		t.classification = classification
		t.state = stateReplyingDirect
		return
	}

	if o.cfg.Semantic && o.reasoner.Enabled() {
		match := o.reasoner.SemanticMatch(ctx, t.text, o.snapshotHistory(), o.catalog)
		t.products = match.Products
		t.reply = match.Reply
		t.classification = domain.SearchFor(match.Criteria)
		t.summaryDone = true
		o.setProducts(match.Products)
		t.state = stateSummarizing
		return
	}

	t.classification = o.reasoner.ExtractCriteria(ctx, t.text)
	switch t.classification.Intent {
	case domain.IntentChat, domain.IntentAgent:
		t.state = stateReplyingDirect
	default:
		t.state = stateSearching
	}
}

// search runs the inventory engine. A failing source fails the turn;
// previously displayed results are not cleared.
func (o *Orchestrator) search(ctx context.Context, t *turn) {
	products, err := o.engine.Search(ctx, t.classification.Criteria)
	if err != nil {
		t.err = err
		t.state = stateFailed
		return
	}
	t.products = products
	o.setProducts(products)
	t.state = stateSummarizing
}

// replyDirect handles CHAT and AGENT turns; no inventory search is
// performed on either.
func (o *Orchestrator) replyDirect(t *turn) {
	t.reply = t.classification.Reply
	if t.classification.Intent == domain.IntentAgent {
		t.actionLabel = "Hablar con un asesor"
		t.actionLink = HandoffLink(o.cfg.WhatsAppNumber, "Hola, quiero hablar con un asesor.")
	}
	t.state = stateDelivered
}

func (o *Orchestrator) summarize(ctx context.Context, t *turn) {
	if !t.summaryDone {
		t.reply = o.reasoner.Summarize(ctx, t.text, t.products, t.classification.Criteria)
	}
	t.state = stateDelivered
}

// deliver appends exactly one assistant message and builds the result.
func (o *Orchestrator) deliver(t *turn) *TurnResult {
	msg := domain.NewMessage(domain.RoleModel, t.reply)
	msg.ActionLabel = t.actionLabel
	msg.ActionLink = t.actionLink

	o.mu.Lock()
	o.history = append(o.history, msg)
	products := append([]domain.Product(nil), o.products...)
	o.mu.Unlock()

	return &TurnResult{
		Reply:       t.reply,
		Products:    products,
		ActionLabel: t.actionLabel,
		ActionLink:  t.actionLink,
	}
}

func (o *Orchestrator) setProducts(products []domain.Product) {
	o.mu.Lock()
	o.products = products
	o.mu.Unlock()
}

func (o *Orchestrator) snapshotHistory() []domain.ChatMessage {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]domain.ChatMessage(nil), o.history...)
}

// History returns a copy of the conversation so far.
func (o *Orchestrator) History() []domain.ChatMessage {
	return o.snapshotHistory()
}

// Products returns a copy of the current result set.
func (o *Orchestrator) Products() []domain.Product {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]domain.Product(nil), o.products...)
}

// IsTurnInFlight reports whether HandleMessage would currently reject.
func (o *Orchestrator) IsTurnInFlight() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.inFlight
}
