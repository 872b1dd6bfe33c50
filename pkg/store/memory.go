package store

import (
	"context"
	"math/rand"
	"sync"
)

// MemoryQuestionStore is a simple in-memory implementation of QuestionStore
// for tests and for running without an external corpus.
type MemoryQuestionStore struct {
	mu      sync.RWMutex
	entries []QuestionAnswer
	answers map[string]string
}

func NewMemoryQuestionStore(entries ...QuestionAnswer) *MemoryQuestionStore {
	s := &MemoryQuestionStore{answers: make(map[string]string)}
	for _, qa := range entries {
		s.Add(qa)
	}
	return s
}

// Add loads one entry. Only the bulk-load path uses it; engine calls never do.
func (s *MemoryQuestionStore) Add(qa QuestionAnswer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.answers[qa.Question]; !ok {
		s.entries = append(s.entries, qa)
	}
	s.answers[qa.Question] = qa.Answer
}

func (s *MemoryQuestionStore) PickRandom(ctx context.Context) (QuestionAnswer, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.entries) == 0 {
		return QuestionAnswer{}, ErrEmptyCorpus
	}
	return s.entries[rand.Intn(len(s.entries))], nil
}

func (s *MemoryQuestionStore) LookupAnswer(ctx context.Context, question string) (string, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()
	answer, ok := s.answers[question]
	if !ok {
		return "", ErrAnswerNotFound
	}
	return answer, nil
}

type sessionState struct {
	question string
	open     bool
	score    int64
}

// MemorySessionStore is an in-memory implementation of SessionStore.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[SessionKey]sessionState
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[SessionKey]sessionState)}
}

func (s *MemorySessionStore) CurrentQuestion(ctx context.Context, key SessionKey) (string, bool, error) {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.sessions[key]
	return st.question, st.open, nil
}

func (s *MemorySessionStore) SetCurrentQuestion(ctx context.Context, key SessionKey, question string) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.sessions[key]
	st.question = question
	st.open = true
	s.sessions[key] = st
	return nil
}

func (s *MemorySessionStore) ClearCurrentQuestion(ctx context.Context, key SessionKey) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.sessions[key]
	st.question = ""
	st.open = false
	s.sessions[key] = st
	return nil
}

func (s *MemorySessionStore) Score(ctx context.Context, key SessionKey) (int64, error) {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[key].score, nil
}

func (s *MemorySessionStore) IncrementScore(ctx context.Context, key SessionKey) (int64, error) {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.sessions[key]
	st.score++
	s.sessions[key] = st
	return st.score, nil
}
