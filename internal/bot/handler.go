package bot

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/ilyashirko/quiz-bot/internal/leaderboard"
	"github.com/ilyashirko/quiz-bot/internal/quiz"
	"github.com/ilyashirko/quiz-bot/pkg/store"
)

// LeaderboardStore is what the responder needs from the leaderboard; nil
// means the feature is disabled.
type LeaderboardStore interface {
	UpsertScore(ctx context.Context, key store.SessionKey, score int64) error
	Top(ctx context.Context, limit int) ([]leaderboard.Entry, error)
}

// QuizResponder turns classified user messages into engine calls and
// user-facing replies. Both front ends share it; only transport differs.
type QuizResponder struct {
	engine  *quiz.Engine
	leaders LeaderboardStore
	size    int
	logger  *zap.Logger
}

func NewQuizResponder(engine *quiz.Engine, leaders LeaderboardStore, leaderboardSize int, logger *zap.Logger) *QuizResponder {
	if logger == nil {
		logger = zap.NewNop()
	}
	if leaderboardSize <= 0 {
		leaderboardSize = 10
	}
	return &QuizResponder{engine: engine, leaders: leaders, size: leaderboardSize, logger: logger}
}

// Respond handles one inbound message and returns the replies to send, in
// order. It never returns zero replies.
func (r *QuizResponder) Respond(ctx context.Context, key store.SessionKey, text string) []string {
	switch ClassifyMessage(text) {
	case IntentNewQuestion:
		return r.newQuestion(ctx, key)
	case IntentGiveUp:
		return r.giveUp(ctx, key)
	case IntentShowScore:
		return r.showScore(ctx, key)
	case IntentShowLeaders:
		return []string{r.Leaders(ctx)}
	default:
		return r.checkAnswer(ctx, key, text)
	}
}

func (r *QuizResponder) newQuestion(ctx context.Context, key store.SessionKey) []string {
	question, alreadyOpen, err := r.engine.RequestQuestion(ctx, key)
	if err != nil {
		return []string{r.errorReply(key, "request question", err)}
	}
	if alreadyOpen {
		return []string{msgAlreadyAsked, question}
	}
	return []string{question}
}

func (r *QuizResponder) giveUp(ctx context.Context, key store.SessionKey) []string {
	answer, err := r.engine.GiveUp(ctx, key)
	if errors.Is(err, quiz.ErrNoOpenQuestion) {
		return []string{msgNoOpenQuestion}
	}
	if err != nil {
		return []string{r.errorReply(key, "give up", err)}
	}
	return []string{giveUpMessage(answer)}
}

func (r *QuizResponder) showScore(ctx context.Context, key store.SessionKey) []string {
	score, err := r.engine.Score(ctx, key)
	if err != nil {
		return []string{r.errorReply(key, "show score", err)}
	}
	return []string{scoreMessage(score)}
}

func (r *QuizResponder) checkAnswer(ctx context.Context, key store.SessionKey, text string) []string {
	correct, err := r.engine.CheckAnswer(ctx, key, text)
	if errors.Is(err, quiz.ErrNoOpenQuestion) {
		return []string{msgNoOpenQuestion}
	}
	if err != nil {
		return []string{r.errorReply(key, "check answer", err)}
	}
	if !correct {
		return []string{msgIncorrect}
	}
	r.recordScore(ctx, key)
	return []string{msgCorrect}
}

// recordScore mirrors the authoritative score into the leaderboard.
// Best-effort: a leaderboard failure never breaks the quiz turn.
func (r *QuizResponder) recordScore(ctx context.Context, key store.SessionKey) {
	if r.leaders == nil {
		return
	}
	score, err := r.engine.Score(ctx, key)
	if err != nil {
		r.logger.Warn("leaderboard: read score failed", zap.Error(err))
		return
	}
	if err := r.leaders.UpsertScore(ctx, key, score); err != nil {
		r.logger.Warn("leaderboard: upsert failed", zap.Error(err))
	}
}

// Leaders renders the cross-platform top list, or an explanation when the
// leaderboard is not configured.
func (r *QuizResponder) Leaders(ctx context.Context) string {
	if r.leaders == nil {
		return msgEmptyLeaders
	}
	entries, err := r.leaders.Top(ctx, r.size)
	if err != nil {
		r.logger.Error("leaderboard: top query failed", zap.Error(err))
		return msgStoreDown
	}
	return leadersMessage(entries)
}

func (r *QuizResponder) errorReply(key store.SessionKey, op string, err error) string {
	switch {
	case errors.Is(err, store.ErrEmptyCorpus):
		r.logger.Error("question corpus is empty", zap.String("op", op))
		return msgNoQuestions
	case errors.Is(err, store.ErrAnswerNotFound):
		r.logger.Error("corpus changed under session",
			zap.String("op", op),
			zap.String("platform", string(key.Platform)),
			zap.String("user_id", key.UserID),
			zap.Error(err),
		)
		return msgNoOpenQuestion
	default:
		r.logger.Error("store operation failed",
			zap.String("op", op),
			zap.String("platform", string(key.Platform)),
			zap.String("user_id", key.UserID),
			zap.Error(err),
		)
		return msgStoreDown
	}
}
