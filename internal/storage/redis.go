// Package storage provides the Redis implementations of the quiz store
// contracts. The question corpus lives in one logical database keyed by
// question text; sessions live in another, one hash per (platform, user).
package storage

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/ilyashirko/quiz-bot/pkg/store"
)

const (
	sessionKeyPrefix     = "quiz:session"
	fieldCurrentQuestion = "current_question"
	fieldScore           = "score"
)

// QuestionStore reads the corpus from Redis: every key is a question
// text, its value the answer.
type QuestionStore struct {
	client RedisClient
}

func NewQuestionStore(client RedisClient) *QuestionStore {
	return &QuestionStore{client: client}
}

func (s *QuestionStore) PickRandom(ctx context.Context) (store.QuestionAnswer, error) {
	question, err := s.client.RandomKey(ctx)
	if errors.Is(err, redis.Nil) {
		return store.QuestionAnswer{}, store.ErrEmptyCorpus
	}
	if err != nil {
		return store.QuestionAnswer{}, wrapUnavailable("random key", err)
	}

	answer, err := s.client.Get(ctx, question)
	if errors.Is(err, redis.Nil) {
		// the key vanished between RANDOMKEY and GET; treat as data drift
		return store.QuestionAnswer{}, fmt.Errorf("question %q: %w", question, store.ErrAnswerNotFound)
	}
	if err != nil {
		return store.QuestionAnswer{}, wrapUnavailable("get answer", err)
	}
	return store.QuestionAnswer{Question: question, Answer: answer}, nil
}

func (s *QuestionStore) LookupAnswer(ctx context.Context, question string) (string, error) {
	answer, err := s.client.Get(ctx, question)
	if errors.Is(err, redis.Nil) {
		return "", store.ErrAnswerNotFound
	}
	if err != nil {
		return "", wrapUnavailable("get answer", err)
	}
	return answer, nil
}

// Add loads one corpus entry. Used by the bulk-import job only.
func (s *QuestionStore) Add(ctx context.Context, qa store.QuestionAnswer) error {
	if err := s.client.Set(ctx, qa.Question, qa.Answer); err != nil {
		return wrapUnavailable("set question", err)
	}
	return nil
}

// SessionStore keeps one Redis hash per session key with the open
// question and the cumulative score as fields. HINCRBY gives the atomic
// create-or-add-1 the score contract requires.
type SessionStore struct {
	client RedisClient
}

func NewSessionStore(client RedisClient) *SessionStore {
	return &SessionStore{client: client}
}

func sessionHashKey(key store.SessionKey) string {
	return fmt.Sprintf("%s:%s:%s", sessionKeyPrefix, key.Platform, key.UserID)
}

func (s *SessionStore) CurrentQuestion(ctx context.Context, key store.SessionKey) (string, bool, error) {
	question, err := s.client.HGet(ctx, sessionHashKey(key), fieldCurrentQuestion)
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, wrapUnavailable("hget current question", err)
	}
	return question, true, nil
}

func (s *SessionStore) SetCurrentQuestion(ctx context.Context, key store.SessionKey, question string) error {
	if err := s.client.HSet(ctx, sessionHashKey(key), fieldCurrentQuestion, question); err != nil {
		return wrapUnavailable("hset current question", err)
	}
	return nil
}

func (s *SessionStore) ClearCurrentQuestion(ctx context.Context, key store.SessionKey) error {
	if err := s.client.HDel(ctx, sessionHashKey(key), fieldCurrentQuestion); err != nil {
		return wrapUnavailable("hdel current question", err)
	}
	return nil
}

func (s *SessionStore) Score(ctx context.Context, key store.SessionKey) (int64, error) {
	raw, err := s.client.HGet(ctx, sessionHashKey(key), fieldScore)
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, wrapUnavailable("hget score", err)
	}
	score, err := parseInt(raw)
	if err != nil {
		return 0, fmt.Errorf("parse stored score %q: %w", raw, err)
	}
	return score, nil
}

func (s *SessionStore) IncrementScore(ctx context.Context, key store.SessionKey) (int64, error) {
	score, err := s.client.HIncrBy(ctx, sessionHashKey(key), fieldScore, 1)
	if err != nil {
		return 0, wrapUnavailable("hincrby score", err)
	}
	return score, nil
}

func wrapUnavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, store.ErrUnavailable, err)
}

func parseInt(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

func formatInt(v int64) string {
	return strconv.FormatInt(v, 10)
}
