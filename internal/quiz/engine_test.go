package quiz

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilyashirko/quiz-bot/pkg/store"
)

func newTestEngine(t *testing.T, entries ...store.QuestionAnswer) (*Engine, *store.MemorySessionStore) {
	t.Helper()
	sessions := store.NewMemorySessionStore()
	questions := store.NewMemoryQuestionStore(entries...)
	return NewEngine(questions, sessions, 0.9, nil), sessions
}

func TestRequestQuestionIdempotentRedelivery(t *testing.T) {
	engine, _ := newTestEngine(t, store.QuestionAnswer{Question: "2+2?", Answer: "Four"})
	key := store.SessionKey{Platform: store.PlatformTelegram, UserID: "1"}
	ctx := context.Background()

	first, alreadyOpen, err := engine.RequestQuestion(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "2+2?", first)
	assert.False(t, alreadyOpen)

	second, alreadyOpen, err := engine.RequestQuestion(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.True(t, alreadyOpen)
}

func TestRequestQuestionEmptyCorpus(t *testing.T) {
	engine, _ := newTestEngine(t)
	key := store.SessionKey{Platform: store.PlatformTelegram, UserID: "1"}

	_, _, err := engine.RequestQuestion(context.Background(), key)
	assert.ErrorIs(t, err, store.ErrEmptyCorpus)
}

func TestCheckAnswerCorrectScoresAndCloses(t *testing.T) {
	engine, _ := newTestEngine(t, store.QuestionAnswer{Question: "2+2?", Answer: "Four"})
	key := store.SessionKey{Platform: store.PlatformTelegram, UserID: "1"}
	ctx := context.Background()

	_, _, err := engine.RequestQuestion(ctx, key)
	require.NoError(t, err)

	correct, err := engine.CheckAnswer(ctx, key, "four")
	require.NoError(t, err)
	assert.True(t, correct)

	score, err := engine.Score(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, int64(1), score)

	// the question is closed; the next request assigns a fresh one
	// (on a single-entry corpus it happens to be the same text)
	question, alreadyOpen, err := engine.RequestQuestion(ctx, key)
	require.NoError(t, err)
	assert.False(t, alreadyOpen)
	assert.Equal(t, "2+2?", question)
}

func TestCheckAnswerIncorrectKeepsQuestionOpen(t *testing.T) {
	engine, _ := newTestEngine(t, store.QuestionAnswer{Question: "Столица Франции?", Answer: "Париж (столица Франции)"})
	key := store.SessionKey{Platform: store.PlatformVK, UserID: "7"}
	ctx := context.Background()

	_, _, err := engine.RequestQuestion(ctx, key)
	require.NoError(t, err)

	correct, err := engine.CheckAnswer(ctx, key, "Лондон")
	require.NoError(t, err)
	assert.False(t, correct)

	score, err := engine.Score(ctx, key)
	require.NoError(t, err)
	assert.Zero(t, score)

	// a retry against the same open question may still succeed
	correct, err = engine.CheckAnswer(ctx, key, "париж")
	require.NoError(t, err)
	assert.True(t, correct)
}

func TestCheckAnswerNoOpenQuestion(t *testing.T) {
	engine, _ := newTestEngine(t, store.QuestionAnswer{Question: "q", Answer: "a"})
	key := store.SessionKey{Platform: store.PlatformTelegram, UserID: "1"}

	_, err := engine.CheckAnswer(context.Background(), key, "a")
	assert.ErrorIs(t, err, ErrNoOpenQuestion)
}

func TestGiveUpReturnsAnswerWithoutScoring(t *testing.T) {
	engine, _ := newTestEngine(t, store.QuestionAnswer{Question: "2+2?", Answer: "Four"})
	key := store.SessionKey{Platform: store.PlatformTelegram, UserID: "1"}
	ctx := context.Background()

	_, _, err := engine.RequestQuestion(ctx, key)
	require.NoError(t, err)

	answer, err := engine.GiveUp(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "Four", answer)

	score, err := engine.Score(ctx, key)
	require.NoError(t, err)
	assert.Zero(t, score)

	_, err = engine.GiveUp(ctx, key)
	assert.ErrorIs(t, err, ErrNoOpenQuestion)
}

func TestWrongAnswerThenGiveUp(t *testing.T) {
	engine, _ := newTestEngine(t, store.QuestionAnswer{Question: "q", Answer: "Бетховен"})
	key := store.SessionKey{Platform: store.PlatformTelegram, UserID: "9"}
	ctx := context.Background()

	_, _, err := engine.RequestQuestion(ctx, key)
	require.NoError(t, err)

	correct, err := engine.CheckAnswer(ctx, key, "Моцарт")
	require.NoError(t, err)
	assert.False(t, correct)

	answer, err := engine.GiveUp(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "Бетховен", answer)
}

func TestSessionsIndependentAcrossPlatforms(t *testing.T) {
	engine, _ := newTestEngine(t, store.QuestionAnswer{Question: "2+2?", Answer: "Four"})
	ctx := context.Background()
	tgKey := store.SessionKey{Platform: store.PlatformTelegram, UserID: "42"}
	vkKey := store.SessionKey{Platform: store.PlatformVK, UserID: "42"}

	_, _, err := engine.RequestQuestion(ctx, tgKey)
	require.NoError(t, err)
	correct, err := engine.CheckAnswer(ctx, tgKey, "four")
	require.NoError(t, err)
	assert.True(t, correct)

	// same numeric user id on the other platform saw none of it
	score, err := engine.Score(ctx, vkKey)
	require.NoError(t, err)
	assert.Zero(t, score)
	_, err = engine.GiveUp(ctx, vkKey)
	assert.ErrorIs(t, err, ErrNoOpenQuestion)
}

// staleQuestionStore simulates a corpus reloaded under a live session.
type staleQuestionStore struct{}

func (staleQuestionStore) PickRandom(ctx context.Context) (store.QuestionAnswer, error) {
	return store.QuestionAnswer{Question: "gone", Answer: "gone"}, nil
}

func (staleQuestionStore) LookupAnswer(ctx context.Context, question string) (string, error) {
	return "", store.ErrAnswerNotFound
}

func TestGiveUpAnswerNotFoundClearsSession(t *testing.T) {
	sessions := store.NewMemorySessionStore()
	engine := NewEngine(staleQuestionStore{}, sessions, 0.9, nil)
	key := store.SessionKey{Platform: store.PlatformTelegram, UserID: "1"}
	ctx := context.Background()

	_, _, err := engine.RequestQuestion(ctx, key)
	require.NoError(t, err)

	_, err = engine.GiveUp(ctx, key)
	assert.ErrorIs(t, err, store.ErrAnswerNotFound)

	// the stale question was cleared so the user is not stuck
	_, open, err := sessions.CurrentQuestion(ctx, key)
	require.NoError(t, err)
	assert.False(t, open)
}

// failingSessionStore refuses every call, as an unreachable store would.
type failingSessionStore struct{}

func (failingSessionStore) CurrentQuestion(ctx context.Context, key store.SessionKey) (string, bool, error) {
	return "", false, store.ErrUnavailable
}

func (failingSessionStore) SetCurrentQuestion(ctx context.Context, key store.SessionKey, question string) error {
	return store.ErrUnavailable
}

func (failingSessionStore) ClearCurrentQuestion(ctx context.Context, key store.SessionKey) error {
	return store.ErrUnavailable
}

func (failingSessionStore) Score(ctx context.Context, key store.SessionKey) (int64, error) {
	return 0, store.ErrUnavailable
}

func (failingSessionStore) IncrementScore(ctx context.Context, key store.SessionKey) (int64, error) {
	return 0, store.ErrUnavailable
}

func TestStoreUnavailablePropagates(t *testing.T) {
	questions := store.NewMemoryQuestionStore(store.QuestionAnswer{Question: "q", Answer: "a"})
	engine := NewEngine(questions, failingSessionStore{}, 0.9, nil)
	key := store.SessionKey{Platform: store.PlatformTelegram, UserID: "1"}
	ctx := context.Background()

	_, _, err := engine.RequestQuestion(ctx, key)
	assert.ErrorIs(t, err, store.ErrUnavailable)
	_, err = engine.GiveUp(ctx, key)
	assert.ErrorIs(t, err, store.ErrUnavailable)
	_, err = engine.CheckAnswer(ctx, key, "a")
	assert.ErrorIs(t, err, store.ErrUnavailable)
	_, err = engine.Score(ctx, key)
	assert.ErrorIs(t, err, store.ErrUnavailable)
}

func TestNewEngineThresholdFallback(t *testing.T) {
	engine := NewEngine(store.NewMemoryQuestionStore(), store.NewMemorySessionStore(), 0, nil)
	assert.Equal(t, DefaultThreshold, engine.threshold)

	engine = NewEngine(store.NewMemoryQuestionStore(), store.NewMemorySessionStore(), 1.5, nil)
	assert.Equal(t, DefaultThreshold, engine.threshold)
}

func TestConcurrentSameKeyOperations(t *testing.T) {
	engine, _ := newTestEngine(t, store.QuestionAnswer{Question: "2+2?", Answer: "Four"})
	key := store.SessionKey{Platform: store.PlatformTelegram, UserID: "1"}
	ctx := context.Background()

	// a double-tap on "new question" must never yield two different
	// open questions or a torn session
	done := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			_, _, err := engine.RequestQuestion(ctx, key)
			done <- err
		}()
	}
	for i := 0; i < 2; i++ {
		require.NoError(t, <-done)
	}

	question, alreadyOpen, err := engine.RequestQuestion(ctx, key)
	require.NoError(t, err)
	assert.True(t, alreadyOpen)
	assert.Equal(t, "2+2?", question)

	type outcome struct {
		correct bool
		err     error
	}
	outcomes := make(chan outcome, 2)
	for i := 0; i < 2; i++ {
		go func() {
			correct, err := engine.CheckAnswer(ctx, key, "four")
			outcomes <- outcome{correct: correct, err: err}
		}()
	}
	correctCount := 0
	for i := 0; i < 2; i++ {
		o := <-outcomes
		if o.err != nil {
			// the loser of the race sees the question already closed
			require.ErrorIs(t, o.err, ErrNoOpenQuestion)
			continue
		}
		if o.correct {
			correctCount++
		}
	}

	// exactly one of the racing answers scored
	assert.Equal(t, 1, correctCount)
	score, err := engine.Score(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, int64(1), score)
}
