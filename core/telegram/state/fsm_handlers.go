package state

import (
	"sync"

	tele "gopkg.in/telebot.v4"
)

// Handlers register at wiring time and are read on every routed message,
// concurrently with Telegram update delivery.
var (
	fsmMu       sync.RWMutex
	fsmHandlers = map[State]tele.HandlerFunc{}
)

// RegisterHandler associates a state with its handler. Registering the same
// state again replaces the previous handler.
func RegisterHandler(st State, h tele.HandlerFunc) {
	if h == nil {
		return
	}
	fsmMu.Lock()
	defer fsmMu.Unlock()
	fsmHandlers[st] = h
}

func handlerFor(st State) (tele.HandlerFunc, bool) {
	fsmMu.RLock()
	defer fsmMu.RUnlock()
	h, ok := fsmHandlers[st]
	return h, ok
}
