package bot

import "strings"

// Keyboard button labels shared by both front ends.
const (
	NewQuestionButton = "Новый вопрос"
	GiveUpButton      = "Сдаться"
	ScoreButton       = "Мой счет"
	LeadersButton     = "Лидеры"
)

// Intent is the closed set of actions a user message can mean. The front
// end classifies the raw text once; the engine never sees button labels.
type Intent int

const (
	IntentFreeTextAnswer Intent = iota
	IntentNewQuestion
	IntentGiveUp
	IntentShowScore
	IntentShowLeaders
)

// ClassifyMessage maps a message text to its intent. Anything that is not
// a known button press counts as a free-text answer attempt.
func ClassifyMessage(text string) Intent {
	switch strings.TrimSpace(text) {
	case NewQuestionButton:
		return IntentNewQuestion
	case GiveUpButton:
		return IntentGiveUp
	case ScoreButton:
		return IntentShowScore
	case LeadersButton:
		return IntentShowLeaders
	default:
		return IntentFreeTextAnswer
	}
}
