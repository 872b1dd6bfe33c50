package bot

import (
	"fmt"
	"strings"

	"github.com/ilyashirko/quiz-bot/internal/leaderboard"
)

// User-facing phrasing. The engine returns outcomes and errors; how they
// read is decided here.
const (
	msgGreeting        = "Привет! Я бот для викторин. Нажми «Новый вопрос», чтобы начать."
	msgAlreadyAsked    = "Вы еще не ответили на предыдущий вопрос."
	msgCorrect         = "Правильно! Поздравляю! Для следующего вопроса нажми «Новый вопрос»"
	msgIncorrect       = "Неправильно… Попробуешь ещё раз?"
	msgNoOpenQuestion  = "Сейчас нет открытого вопроса. Нажмите «Новый вопрос»."
	msgZeroScore       = "У вас пока ноль очков"
	msgNoQuestions     = "Вопросы закончились, попробуйте позже."
	msgStoreDown       = "Что-то пошло не так, попробуйте ещё раз чуть позже."
	msgEmptyLeaders    = "Пока никто не набрал очков."
	msgLeadersHeader   = "Лучшие игроки:"
	giveUpAnswerFormat = "Жаль, что не угадали.\n\nПравильный ответ:\n%s"
	scoreFormat        = "Ваши очки: %d"
)

func giveUpMessage(answer string) string {
	return fmt.Sprintf(giveUpAnswerFormat, answer)
}

func scoreMessage(score int64) string {
	if score == 0 {
		return msgZeroScore
	}
	return fmt.Sprintf(scoreFormat, score)
}

func leadersMessage(entries []leaderboard.Entry) string {
	if len(entries) == 0 {
		return msgEmptyLeaders
	}
	lines := []string{msgLeadersHeader}
	for i, e := range entries {
		lines = append(lines, fmt.Sprintf("%d. %s/%s — %d", i+1, e.Platform, e.UserID, e.Score))
	}
	return strings.Join(lines, "\n")
}
