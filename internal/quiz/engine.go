package quiz

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/ilyashirko/quiz-bot/pkg/store"
)

// Engine is the platform-agnostic quiz session state machine. Per session
// key it is either idle or awaiting an answer; the state itself lives in
// the session store, the engine only owns the transitions.
type Engine struct {
	questions store.QuestionStore
	sessions  store.SessionStore
	threshold float64
	locks     *keyedMutex
	logger    *zap.Logger
}

func NewEngine(questions store.QuestionStore, sessions store.SessionStore, threshold float64, logger *zap.Logger) *Engine {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultThreshold
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		questions: questions,
		sessions:  sessions,
		threshold: threshold,
		locks:     newKeyedMutex(),
		logger:    logger,
	}
}

// RequestQuestion assigns a random question to the session, or re-delivers
// the one already open. alreadyOpen is true on re-delivery; the open
// question is kept as is, so a user who lost the message can ask again
// without losing progress.
func (e *Engine) RequestQuestion(ctx context.Context, key store.SessionKey) (question string, alreadyOpen bool, err error) {
	defer e.locks.Lock(key)()

	current, open, err := e.sessions.CurrentQuestion(ctx, key)
	if err != nil {
		return "", false, fmt.Errorf("get current question: %w", err)
	}
	if open {
		return current, true, nil
	}

	qa, err := e.questions.PickRandom(ctx)
	if err != nil {
		return "", false, fmt.Errorf("pick question: %w", err)
	}
	if err := e.sessions.SetCurrentQuestion(ctx, key, qa.Question); err != nil {
		return "", false, fmt.Errorf("set current question: %w", err)
	}
	return qa.Question, false, nil
}

// GiveUp closes the open question without scoring and returns its answer.
func (e *Engine) GiveUp(ctx context.Context, key store.SessionKey) (string, error) {
	defer e.locks.Lock(key)()

	answer, err := e.resolveOpenAnswer(ctx, key)
	if err != nil {
		return "", err
	}
	if err := e.sessions.ClearCurrentQuestion(ctx, key); err != nil {
		return "", fmt.Errorf("clear current question: %w", err)
	}
	return answer, nil
}

// CheckAnswer grades a free-text answer against the open question. On a
// correct answer the question is closed and the score incremented by one;
// on an incorrect one the question stays open so the user may retry.
func (e *Engine) CheckAnswer(ctx context.Context, key store.SessionKey, userText string) (bool, error) {
	defer e.locks.Lock(key)()

	answer, err := e.resolveOpenAnswer(ctx, key)
	if err != nil {
		return false, err
	}
	if !IsMatch(answer, userText, e.threshold) {
		return false, nil
	}

	if err := e.sessions.ClearCurrentQuestion(ctx, key); err != nil {
		return false, fmt.Errorf("clear current question: %w", err)
	}
	if _, err := e.sessions.IncrementScore(ctx, key); err != nil {
		return false, fmt.Errorf("increment score: %w", err)
	}
	return true, nil
}

// Score returns the cumulative score for the session, 0 when none exists.
// Pure read with no state transition, so it skips the per-key lock.
func (e *Engine) Score(ctx context.Context, key store.SessionKey) (int64, error) {
	score, err := e.sessions.Score(ctx, key)
	if err != nil {
		return 0, fmt.Errorf("get score: %w", err)
	}
	return score, nil
}

// resolveOpenAnswer loads the open question and its answer. When the
// corpus no longer contains the question (reloaded under the session) the
// stale question is cleared so the user is not permanently stuck, and the
// lookup error is still surfaced.
func (e *Engine) resolveOpenAnswer(ctx context.Context, key store.SessionKey) (string, error) {
	current, open, err := e.sessions.CurrentQuestion(ctx, key)
	if err != nil {
		return "", fmt.Errorf("get current question: %w", err)
	}
	if !open {
		return "", ErrNoOpenQuestion
	}

	answer, err := e.questions.LookupAnswer(ctx, current)
	if errors.Is(err, store.ErrAnswerNotFound) {
		e.logger.Error("open question no longer in corpus, clearing session",
			zap.String("platform", string(key.Platform)),
			zap.String("user_id", key.UserID),
			zap.String("question", current),
		)
		if clearErr := e.sessions.ClearCurrentQuestion(ctx, key); clearErr != nil {
			e.logger.Error("failed to clear stale question", zap.Error(clearErr))
		}
		return "", fmt.Errorf("resolve answer: %w", err)
	}
	if err != nil {
		return "", fmt.Errorf("resolve answer: %w", err)
	}
	return answer, nil
}
