// Package message defines the clipreg IPC protocol.
//
// All messages are newline-delimited JSON. Register content is always
// base64-encoded so that arbitrary text (newlines, control characters) is
// safe to embed in JSON strings. Each message is exactly one line: <json>\n
package message

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// Type identifies the kind of message.
type Type string

// Requests (CLI → daemon).
const (
	TypeAdd         Type = "ADD"
	TypeSetContent  Type = "SET_CONTENT"
	TypeSetShortcut Type = "SET_SHORTCUT"
	TypeRemove      Type = "REMOVE"
	TypeList        Type = "LIST"
	TypeCopy        Type = "COPY"
	TypeWatch       Type = "WATCH"
	TypeStatus      Type = "STATUS"
)

// Responses (daemon → CLI).
const (
	TypeOK             Type = "OK"
	TypeRegisters      Type = "REGISTERS"
	TypeStatusResponse Type = "STATUS_RESPONSE"
	TypeError          Type = "ERROR"
)

// Error codes carried in Message.Error.
const (
	ErrNotFound    = "not_found"
	ErrConflict    = "conflict"
	ErrPersistence = "persistence_failure"
	ErrUnavailable = "clipboard_unavailable"
	ErrBadRequest  = "bad_request"
)

// RegisterInfo is one register in a REGISTERS response.
// Content is base64-encoded.
type RegisterInfo struct {
	Name     string `json:"name"`
	Content  string `json:"content"`
	Shortcut string `json:"shortcut,omitempty"`
}

// DecodeContent returns the register's plain-text content.
func (r RegisterInfo) DecodeContent() (string, error) {
	b, err := base64.StdEncoding.DecodeString(r.Content)
	if err != nil {
		return "", fmt.Errorf("register content decode: %w", err)
	}
	return string(b), nil
}

// Message is the top-level wire envelope.
type Message struct {
	// Always present
	Type Type `json:"type"`

	// ADD / SET_CONTENT / SET_SHORTCUT / REMOVE / COPY — the register name
	Name string `json:"name,omitempty"`

	// SET_CONTENT — base64-encoded content
	Payload string `json:"payload,omitempty"`

	// ADD / SET_SHORTCUT — raw shortcut descriptor
	Shortcut string `json:"shortcut,omitempty"`

	// WATCH
	Enabled bool `json:"enabled,omitempty"`

	// REGISTERS
	Registers []RegisterInfo `json:"registers,omitempty"`

	// STATUS_RESPONSE
	Version       string `json:"version,omitempty"`
	RegisterCount int    `json:"register_count,omitempty"`
	BoundCount    int    `json:"bound_count,omitempty"`
	Monitoring    bool   `json:"monitoring,omitempty"`

	// ERROR — one of the Err* codes, plus a human-readable detail
	Error  string `json:"error,omitempty"`
	Detail string `json:"detail,omitempty"`
}

// EncodePayload base64-encodes plain text for the Payload field.
func EncodePayload(text string) string {
	return base64.StdEncoding.EncodeToString([]byte(text))
}

// DecodePayload returns the plain text carried in the Payload field.
func (m *Message) DecodePayload() (string, error) {
	b, err := base64.StdEncoding.DecodeString(m.Payload)
	if err != nil {
		return "", fmt.Errorf("payload decode: %w", err)
	}
	return string(b), nil
}

// Encode serialises the message to JSON without a trailing newline.
func (m *Message) Encode() ([]byte, error) {
	return json.Marshal(m)
}

// Decode deserialises a message from raw JSON bytes.
func Decode(b []byte) (*Message, error) {
	var m Message
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("message decode: %w", err)
	}
	return &m, nil
}
