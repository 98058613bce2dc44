// Package conversation holds the ordered exchange between the user and the
// resume assistant.
package conversation

import (
	"fmt"
	"sync"
)

// Role identifies who wrote a message
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry of the log
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Canned assistant replies
const (
	Greeting = "Hi! I'm your AI resume assistant. Tell me about yourself, your experience, skills, and projects, " +
		"and I'll help you create a professional resume. You can be as vague as you like!"
	MergedReply = "Great! I've updated your resume with the information you provided. " +
		"You can continue adding more details or click on any section in the resume to edit it directly."
)

// ErrorReply is the assistant message shown after a failed request
func ErrorReply(msg string) string {
	return fmt.Sprintf("Sorry, I encountered an error: %s. Please try again or check your API key.", msg)
}

// Log is an append-only sequence of messages, safe for concurrent readers
type Log struct {
	mu       sync.RWMutex
	messages []Message
}

// New returns a log seeded with the assistant greeting
func New() *Log {
	return &Log{messages: []Message{{Role: RoleAssistant, Content: Greeting}}}
}

// Append adds a message at the end and returns it
func (l *Log) Append(role Role, content string) Message {
	m := Message{Role: role, Content: content}
	l.mu.Lock()
	l.messages = append(l.messages, m)
	l.mu.Unlock()
	return m
}

// User appends a user message
func (l *Log) User(content string) Message { return l.Append(RoleUser, content) }

// Assistant appends an assistant message
func (l *Log) Assistant(content string) Message { return l.Append(RoleAssistant, content) }

// Messages returns a copy of the log in order
func (l *Log) Messages() []Message {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Message, len(l.messages))
	copy(out, l.messages)
	return out
}

// Len returns the number of messages
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.messages)
}

// Last returns the most recent message
func (l *Log) Last() (Message, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if len(l.messages) == 0 {
		return Message{}, false
	}
	return l.messages[len(l.messages)-1], true
}
