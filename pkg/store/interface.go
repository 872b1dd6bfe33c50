package store

import (
	"context"
	"errors"
)

// Sentinel errors shared by every store implementation.
var (
	// ErrUnavailable marks transient store failures (connection refused,
	// timeout). The caller must not assume the operation was applied.
	ErrUnavailable = errors.New("store unavailable")
	// ErrEmptyCorpus is returned by PickRandom when no questions are loaded.
	ErrEmptyCorpus = errors.New("question corpus is empty")
	// ErrAnswerNotFound is returned by LookupAnswer when the question text
	// no longer resolves to an answer (corpus changed under the session).
	ErrAnswerNotFound = errors.New("answer not found for question")
)

// Platform identifies the chat platform a session belongs to.
type Platform string

const (
	PlatformTelegram Platform = "telegram"
	PlatformVK       Platform = "vk"
)

// SessionKey is the composite identity of one end user on one platform.
// Two platforms never share a session even if the user ids collide.
type SessionKey struct {
	Platform Platform
	UserID   string
}

// QuestionAnswer is a single corpus entry, immutable once loaded.
type QuestionAnswer struct {
	Question string
	Answer   string
}

// QuestionStore is the read-side contract over the question corpus.
type QuestionStore interface {
	// PickRandom returns one entry chosen uniformly at random.
	// Fails with ErrEmptyCorpus when the corpus has zero entries.
	PickRandom(ctx context.Context) (QuestionAnswer, error)
	// LookupAnswer resolves the answer for an exact question text.
	// Fails with ErrAnswerNotFound when the question is not in the corpus.
	LookupAnswer(ctx context.Context, question string) (string, error)
}

// SessionStore holds the per-key mutable quiz state: the currently open
// question (if any) and the cumulative score.
type SessionStore interface {
	// CurrentQuestion returns the open question text and whether one is open.
	CurrentQuestion(ctx context.Context, key SessionKey) (string, bool, error)
	SetCurrentQuestion(ctx context.Context, key SessionKey, question string) error
	ClearCurrentQuestion(ctx context.Context, key SessionKey) error
	// Score returns the cumulative score, 0 when absent.
	Score(ctx context.Context, key SessionKey) (int64, error)
	// IncrementScore atomically adds 1 to the score, creating it at 1 when
	// absent, and returns the new value.
	IncrementScore(ctx context.Context, key SessionKey) (int64, error)
}
