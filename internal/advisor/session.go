package advisor

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/phillipyBr/Meu-Bolso/internal/transaction"
)

// State is the lifecycle of an advice request.
type State int

const (
	StateIdle State = iota
	StatePending
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	}

	return "idle"
}

// User facing texts shown when a request fails.
const (
	FailureMessage = "Ocorreu um erro ao conectar com o consultor IA. Verifique sua conexão ou tente novamente mais tarde."
	EmptyMessage   = "Não foi possível gerar uma análise no momento. Tente novamente mais tarde."
)

var (
	ErrPending        = errors.New("advice request already pending")
	ErrNoTransactions = errors.New("no transactions to analyse")
)

// Result is a point-in-time view of a Session.
type Result struct {
	State State
	// Text is the advice when State is StateSucceeded and a retry invitation
	// when it is StateFailed.
	Text string
}

// Session runs at most one advice request at a time:
// idle -> pending -> succeeded | failed, and back to pending on the next Start.
// Requests have no timeout and cannot be cancelled.
type Session struct {
	advisor Advisor

	mu     sync.Mutex
	result Result
	done   chan struct{}
}

func NewSession(a Advisor) *Session {
	done := make(chan struct{})
	close(done)

	return &Session{advisor: a, done: done}
}

// Start requests advice for snapshot in the background.
func (s *Session) Start(snapshot []transaction.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.result.State == StatePending {
		return ErrPending
	}

	if len(snapshot) == 0 {
		return ErrNoTransactions
	}

	s.result = Result{State: StatePending}
	s.done = make(chan struct{})

	go s.run(slices.Clone(snapshot), s.done)

	return nil
}

func (s *Session) run(snapshot []transaction.Transaction, done chan struct{}) {
	defer close(done)

	text, err := s.advisor.Advise(context.Background(), snapshot)

	result := Result{State: StateSucceeded, Text: text}

	switch {
	case err != nil:
		slog.Error("failed to fetch advice", "error", err)
		result = Result{State: StateFailed, Text: FailureMessage}
	case strings.TrimSpace(text) == "":
		slog.Warn("advisor returned no text", "error", ErrEmptyResponse)
		result = Result{State: StateFailed, Text: EmptyMessage}
	}

	s.mu.Lock()
	s.result = result
	s.mu.Unlock()
}

func (s *Session) Result() Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.result
}

// Done returns a channel closed once the latest request has finished.
func (s *Session) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.done
}
