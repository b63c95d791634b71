package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Subprotocol is the WebSocket subprotocol negotiated by Foxglove servers.
const Subprotocol = "foxglove.websocket.v1"

// Message ops
const (
	OpServerInfo  = "serverInfo"
	OpStatus      = "status"
	OpAdvertise   = "advertise"
	OpSubscribe   = "subscribe"
	OpUnsubscribe = "unsubscribe"
)

// Status levels
const (
	StatusInfo    StatusLevel = 0
	StatusWarning StatusLevel = 1
	StatusError   StatusLevel = 2
)

// StatusLevel is the severity of a status message.
type StatusLevel int

// String returns a human-readable name for the level
func (l StatusLevel) String() string {
	switch l {
	case StatusInfo:
		return "info"
	case StatusWarning:
		return "warning"
	case StatusError:
		return "error"
	default:
		return fmt.Sprintf("StatusLevel(%d)", int(l))
	}
}

// ErrUnknownOp is returned by ParseMessage for ops this package does not model.
var ErrUnknownOp = errors.New("unknown message op")

// Message is a decoded control message.
type Message interface {
	MessageOp() string
	String() string
}

// ServerInfo is the first message a server sends after the handshake.
type ServerInfo struct {
	Op                 string            `json:"op"`
	Name               string            `json:"name"`
	Capabilities       []string          `json:"capabilities"`
	SupportedEncodings []string          `json:"supportedEncodings,omitempty"`
	Metadata           map[string]string `json:"metadata,omitempty"`
	SessionID          string            `json:"sessionId,omitempty"`
}

// Status carries a server notice.
type Status struct {
	Op      string      `json:"op"`
	Level   StatusLevel `json:"level"`
	Message string      `json:"message"`
}

// Channel is one advertised topic.
type Channel struct {
	ID         uint32 `json:"id"`
	Topic      string `json:"topic"`
	Encoding   string `json:"encoding"`
	SchemaName string `json:"schemaName"`
	Schema     string `json:"schema"`
}

// Advertise lists channels the server publishes.
type Advertise struct {
	Op       string    `json:"op"`
	Channels []Channel `json:"channels"`
}

// Subscription maps a client subscription ID to a channel.
type Subscription struct {
	ID        uint32 `json:"id"`
	ChannelID uint32 `json:"channelId"`
}

// Subscribe is sent by a client to start receiving channels.
type Subscribe struct {
	Op            string         `json:"op"`
	Subscriptions []Subscription `json:"subscriptions"`
}

// Unsubscribe is sent by a client to stop receiving channels.
type Unsubscribe struct {
	Op              string   `json:"op"`
	SubscriptionIDs []uint32 `json:"subscriptionIds"`
}

func (m *ServerInfo) MessageOp() string  { return OpServerInfo }
func (m *Status) MessageOp() string      { return OpStatus }
func (m *Advertise) MessageOp() string   { return OpAdvertise }
func (m *Subscribe) MessageOp() string   { return OpSubscribe }
func (m *Unsubscribe) MessageOp() string { return OpUnsubscribe }

func (m *ServerInfo) String() string {
	return fmt.Sprintf("ServerInfo{name=%q, capabilities=%v, session=%q}", m.Name, m.Capabilities, m.SessionID)
}

func (m *Status) String() string {
	return fmt.Sprintf("Status{level=%s, message=%q}", m.Level, m.Message)
}

func (m *Advertise) String() string {
	return fmt.Sprintf("Advertise{channels=%d}", len(m.Channels))
}

func (m *Subscribe) String() string {
	return fmt.Sprintf("Subscribe{subscriptions=%d}", len(m.Subscriptions))
}

func (m *Unsubscribe) String() string {
	return fmt.Sprintf("Unsubscribe{ids=%v}", m.SubscriptionIDs)
}

// NewServerInfo builds the greeting sent by vizconnect's demo server.
func NewServerInfo(name, sessionID string) *ServerInfo {
	return &ServerInfo{
		Op:                 OpServerInfo,
		Name:               name,
		Capabilities:       []string{},
		SupportedEncodings: []string{"json"},
		SessionID:          sessionID,
	}
}

// NewStatus builds a status message.
func NewStatus(level StatusLevel, message string) *Status {
	return &Status{Op: OpStatus, Level: level, Message: message}
}

// Encode marshals a message for a text frame. The op field is always set
// from the message type.
func Encode(msg Message) ([]byte, error) {
	switch m := msg.(type) {
	case *ServerInfo:
		m.Op = OpServerInfo
	case *Status:
		m.Op = OpStatus
	case *Advertise:
		m.Op = OpAdvertise
	case *Subscribe:
		m.Op = OpSubscribe
	case *Unsubscribe:
		m.Op = OpUnsubscribe
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", msg.MessageOp(), err)
	}
	return data, nil
}

// PeekOp returns the op field of a JSON text frame.
func PeekOp(data []byte) (string, error) {
	var envelope struct {
		Op string `json:"op"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return "", fmt.Errorf("malformed message: %w", err)
	}
	if envelope.Op == "" {
		return "", errors.New("malformed message: missing op")
	}
	return envelope.Op, nil
}

// ParseMessage decodes a JSON text frame. Ops without a type in this
// package return ErrUnknownOp wrapped with the op name.
func ParseMessage(data []byte) (Message, error) {
	op, err := PeekOp(data)
	if err != nil {
		return nil, err
	}

	var msg Message
	switch op {
	case OpServerInfo:
		msg = &ServerInfo{}
	case OpStatus:
		msg = &Status{}
	case OpAdvertise:
		msg = &Advertise{}
	case OpSubscribe:
		msg = &Subscribe{}
	case OpUnsubscribe:
		msg = &Unsubscribe{}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOp, op)
	}

	if err := json.Unmarshal(data, msg); err != nil {
		return nil, fmt.Errorf("failed to parse %s message: %w", op, err)
	}
	return msg, nil
}
