package room

import (
	"strings"
)

const chatHistoryLimit = 25

// chat broadcasts a message from a seat
// Messages are trimmed and cut to the chat limit; empty messages are dropped.
// NOTE: must only be called from the run loop
func (d *Dealer) chat(s *seat, message string) {
	message = strings.TrimSpace(message)
	if runes := []rune(message); len(runes) > d.opts.ChatLimit {
		message = strings.TrimSpace(string(runes[:d.opts.ChatLimit]))
	}

	if message == "" {
		return
	}

	msg := &Chat{
		Type:     TypeChat,
		SenderID: s.id,
		Name:     s.name,
		Message:  message,
	}

	d.addChatHistory(msg)
	d.broadcast(msg)
}

// addChatHistory keeps the latest messages for players who join later
// NOTE: must only be called from the run loop
func (d *Dealer) addChatHistory(msg *Chat) {
	m := append(d.chatLog, msg)
	count := len(m)
	if count > chatHistoryLimit {
		m = m[count-chatHistoryLimit:]
	}

	d.chatLog = m
}
