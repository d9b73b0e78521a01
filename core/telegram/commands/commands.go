// Package commands defines the metadata attached to each registered bot
// command.
package commands

import (
	tele "gopkg.in/telebot.v4"
)

// Command describes a bot command and how it is surfaced.
//
// Aliases carry the plain-text labels of reply-keyboard buttons that should
// resolve to this command, so a button press and its slash command share one
// handler. Hidden commands stay out of the Telegram command menu; they exist
// for buttons and internal transitions only. AdminOnly both hides the command
// and wraps its handler with the admin gate.
type Command struct {
	Handler     tele.HandlerFunc
	Description string
	AdminOnly   bool
	Hidden      bool
	Aliases     []string
}
