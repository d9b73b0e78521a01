package middleware

import (
	tele "gopkg.in/telebot.v4"
)

// metricsContext wraps tele.Context to count sent messages and detect keyboard usage.
type metricsContext struct{ tele.Context }

func (m metricsContext) incMessages(hasKB bool) {
	n := 0
	if nv, ok := m.Get("messages").(int); ok {
		n = nv
	}
	m.Set("messages", n+1)
	if hasKB {
		m.Set("kb", true)
	}
}

func hasKeyboard(opts []interface{}) bool {
	for _, o := range opts {
		switch v := o.(type) {
		case *tele.SendOptions:
			if v != nil && v.ReplyMarkup != nil {
				return true
			}
		case *tele.ReplyMarkup:
			if v != nil {
				return true
			}
		}
	}
	return false
}

// Send proxies tele.Context.Send while updating message counters.
func (m metricsContext) Send(what interface{}, opts ...interface{}) error {
	err := m.Context.Send(what, opts...)
	if err == nil {
		m.incMessages(hasKeyboard(opts))
	}
	return err
}

// Reply proxies tele.Context.Reply while updating message counters.
func (m metricsContext) Reply(what interface{}, opts ...interface{}) error {
	err := m.Context.Reply(what, opts...)
	if err == nil {
		m.incMessages(hasKeyboard(opts))
	}
	return err
}

// Edit proxies tele.Context.Edit while updating message counters.
func (m metricsContext) Edit(what interface{}, opts ...interface{}) error {
	err := m.Context.Edit(what, opts...)
	if err == nil {
		m.incMessages(hasKeyboard(opts))
	}
	return err
}

// EditOrSend proxies tele.Context.EditOrSend while updating message counters.
func (m metricsContext) EditOrSend(what interface{}, opts ...interface{}) error {
	err := m.Context.EditOrSend(what, opts...)
	if err == nil {
		m.incMessages(hasKeyboard(opts))
	}
	return err
}

// MessageMetricsMiddleware instruments context to track message count and keyboard usage.
func MessageMetricsMiddleware(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		c.Set("messages", 0)
		c.Set("kb", false)
		return next(metricsContext{Context: c})
	}
}

// GetCounters reads message count and keyboard presence flags from context.
func GetCounters(c tele.Context) (int, bool) {
	msgs := 0
	if n, ok := c.Get("messages").(int); ok {
		msgs = n
	}
	kb := false
	if b, ok := c.Get("kb").(bool); ok {
		kb = b
	}
	return msgs, kb
}
