package bot

import (
	"context"
	"errors"
	"sync/atomic"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/eventbot/core/telegram/sender"
)

// ErrNotifierUnbound is returned for sends attempted before the bot runtime
// is up (the transport is only known once the bot has started).
var ErrNotifierUnbound = errors.New("bot: notifier not bound yet")

type notifierBinding struct {
	bot        *tele.Bot
	dispatcher *sender.Dispatcher
}

// Notifier delivers out-of-band texts (payment confirmations, expiry
// notices, question forwards) through the async sender dispatcher.
type Notifier struct {
	binding atomic.Pointer[notifierBinding]
}

// NewNotifier returns an unbound notifier; services may hold it before the
// bot runtime exists.
func NewNotifier() *Notifier {
	return &Notifier{}
}

// Bind attaches the live bot and dispatcher. Passing a nil bot unbinds.
func (n *Notifier) Bind(bot *tele.Bot, d *sender.Dispatcher) {
	if bot == nil {
		n.binding.Store(nil)
		return
	}
	n.binding.Store(&notifierBinding{bot: bot, dispatcher: d})
}

// Notify sends plain text to a user. The send goes through the dispatcher
// queue; a full or closed queue falls back to a direct send.
func (n *Notifier) Notify(ctx context.Context, userID int64, text string) error {
	b := n.binding.Load()
	if b == nil {
		return ErrNotifierUnbound
	}
	recipient := &tele.User{ID: userID}
	run := func() error {
		_, err := b.bot.Send(recipient, text)
		return err
	}
	if b.dispatcher != nil {
		if err := b.dispatcher.Enqueue(ctx, "send", "notify", run); err == nil {
			return nil
		}
	}
	return run()
}

// Send delivers text with an inline keyboard, used for answer delivery.
func (n *Notifier) Send(ctx context.Context, userID int64, text string, markup *tele.ReplyMarkup) error {
	b := n.binding.Load()
	if b == nil {
		return ErrNotifierUnbound
	}
	recipient := &tele.User{ID: userID}
	run := func() error {
		_, err := b.bot.Send(recipient, text, markup)
		return err
	}
	if b.dispatcher != nil {
		if err := b.dispatcher.Enqueue(ctx, "send", "notify", run); err == nil {
			return nil
		}
	}
	return run()
}
