package bot

import (
	"context"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ilyashirko/quiz-bot/pkg/store"
)

// TelegramBotInterface is the slice of the Telegram API the bot uses,
// kept narrow so tests can substitute a fake.
type TelegramBotInterface interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

var newTelegramBot = func(token string) (TelegramBotInterface, error) {
	return tgbotapi.NewBotAPI(token)
}

// NewTelegramAPI connects to the Telegram Bot API. The client is created
// before the logger so AdminAlertHook can reuse the same connection.
func NewTelegramAPI(token string) (TelegramBotInterface, error) {
	return newTelegramBot(token)
}

// TelegramBot is the Telegram front end: it classifies inbound messages
// and renders the responder's replies with the quiz keyboard.
type TelegramBot struct {
	tg        TelegramBotInterface
	responder *QuizResponder
	timeout   TimeoutFunc
	logger    *zap.Logger
}

// TimeoutFunc bounds one store-backed user turn.
type TimeoutFunc func() (context.Context, context.CancelFunc)

func NewTelegramBot(cfg *Config, tg TelegramBotInterface, responder *QuizResponder, logger *zap.Logger) *TelegramBot {
	return &TelegramBot{
		tg:        tg,
		responder: responder,
		timeout: func() (context.Context, context.CancelFunc) {
			return context.WithTimeout(context.Background(), cfg.StoreTimeout)
		},
		logger: logger,
	}
}

func quizKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(NewQuestionButton),
			tgbotapi.NewKeyboardButton(GiveUpButton),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(ScoreButton),
			tgbotapi.NewKeyboardButton(LeadersButton),
		),
	)
}

// StartPolling consumes the long-poll update stream until the channel is
// closed (StopReceivingUpdates).
func (b *TelegramBot) StartPolling() error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.tg.GetUpdatesChan(u)
	for upd := range updates {
		b.handleUpdate(upd)
	}
	return nil
}

func (b *TelegramBot) Stop() {
	b.tg.StopReceivingUpdates()
}

func (b *TelegramBot) handleUpdate(upd tgbotapi.Update) {
	if upd.Message == nil || upd.Message.From == nil {
		return
	}
	chatID := upd.Message.Chat.ID

	if upd.Message.IsCommand() {
		switch upd.Message.Command() {
		case "start", "help":
			b.reply(chatID, msgGreeting)
		case "leaders":
			ctx, cancel := b.timeout()
			defer cancel()
			b.reply(chatID, b.responder.Leaders(ctx))
		default:
			b.reply(chatID, msgGreeting)
		}
		return
	}
	if upd.Message.Text == "" {
		return
	}

	key := store.SessionKey{
		Platform: store.PlatformTelegram,
		UserID:   strconv.FormatInt(upd.Message.From.ID, 10),
	}
	ctx, cancel := b.timeout()
	defer cancel()
	for _, text := range b.responder.Respond(ctx, key, upd.Message.Text) {
		b.reply(chatID, text)
	}
}

func (b *TelegramBot) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = quizKeyboard()
	if _, err := b.tg.Send(msg); err != nil {
		b.logger.Error("telegram send failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

// AdminAlertHook returns a zap option that mirrors error-level entries to
// an admin chat, so corpus and store problems page a human.
func AdminAlertHook(tg TelegramBotInterface, adminChatID int64) zap.Option {
	return zap.Hooks(func(entry zapcore.Entry) error {
		if entry.Level < zapcore.ErrorLevel || adminChatID == 0 {
			return nil
		}
		msg := tgbotapi.NewMessage(adminChatID, "[quiz-bot error] "+entry.Message)
		_, err := tg.Send(msg)
		return err
	})
}
