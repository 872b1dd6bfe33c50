package bot

import (
	"context"
	"strconv"

	"github.com/SevereCloud/vksdk/v3/api"
	"github.com/SevereCloud/vksdk/v3/api/params"
	"github.com/SevereCloud/vksdk/v3/events"
	longpoll "github.com/SevereCloud/vksdk/v3/longpoll-bot"
	"github.com/SevereCloud/vksdk/v3/object"
	"go.uber.org/zap"

	"github.com/ilyashirko/quiz-bot/pkg/store"
)

// VKMessenger is the slice of the VK API the bot uses.
type VKMessenger interface {
	MessagesSend(p api.Params) (int, error)
}

// VKBot is the VK community front end, mirroring the Telegram one over
// the Bots Long Poll API.
type VKBot struct {
	vk        *api.VK
	messenger VKMessenger
	responder *QuizResponder
	timeout   TimeoutFunc
	logger    *zap.Logger
}

func NewVKBot(cfg *Config, responder *QuizResponder, logger *zap.Logger) *VKBot {
	vk := api.NewVK(cfg.VKToken)
	return &VKBot{
		vk:        vk,
		messenger: vk,
		responder: responder,
		timeout: func() (context.Context, context.CancelFunc) {
			return context.WithTimeout(context.Background(), cfg.StoreTimeout)
		},
		logger: logger,
	}
}

// Run blocks on the long-poll loop until ctx is cancelled or the
// transport fails.
func (b *VKBot) Run(ctx context.Context) error {
	lp, err := longpoll.NewLongPollCommunity(b.vk)
	if err != nil {
		return err
	}
	lp.MessageNew(func(_ context.Context, obj events.MessageNewObject) {
		b.handleMessage(obj.Message.PeerID, obj.Message.FromID, obj.Message.Text)
	})

	go func() {
		<-ctx.Done()
		lp.Shutdown()
	}()
	return lp.Run()
}

func (b *VKBot) handleMessage(peerID int, fromID int, text string) {
	if text == "" {
		return
	}
	key := store.SessionKey{
		Platform: store.PlatformVK,
		UserID:   strconv.Itoa(fromID),
	}
	ctx, cancel := b.timeout()
	defer cancel()
	for _, reply := range b.responder.Respond(ctx, key, text) {
		b.send(peerID, reply)
	}
}

func vkQuizKeyboard() *object.MessagesKeyboard {
	keyboard := object.NewMessagesKeyboard(false)
	keyboard.AddRow()
	keyboard.AddTextButton(NewQuestionButton, "", "primary")
	keyboard.AddTextButton(GiveUpButton, "", "secondary")
	keyboard.AddRow()
	keyboard.AddTextButton(ScoreButton, "", "secondary")
	keyboard.AddTextButton(LeadersButton, "", "secondary")
	return keyboard
}

func (b *VKBot) send(peerID int, text string) {
	p := params.NewMessagesSendBuilder()
	p.PeerID(peerID)
	p.Message(text)
	p.RandomID(0)
	p.Keyboard(vkQuizKeyboard())
	if _, err := b.messenger.MessagesSend(p.Params); err != nil {
		b.logger.Error("vk send failed", zap.Int("peer_id", peerID), zap.Error(err))
	}
}
