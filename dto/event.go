package dto

import "encoding/json"

// Realtime event names. Inbound events arrive from the client over the
// websocket; outbound events are fanned out to the affected users only.
const (
	EventOnlineUser    = "onlineUser"
	EventNewMessage    = "newMessage"
	EventDeleteChat    = "deleteChat"
	EventBlockedChat   = "blockedChat"
	EventUnBlockedChat = "unBlockedChat"
	EventNewReaction   = "newReaction"

	EventChatCreated         = "chatCreated"
	EventNewChatNotification = "newChatNotification"
	EventChatDeleted         = "chatDeleted"
	EventMessageCreated      = "messageCreated"
	EventBlockedResponse     = "blockedChatResponse"
	EventUnBlockedResponse   = "unBlockedChatResponse"
	EventReaction            = "reaction"
	EventDeleteReaction      = "deleteReaction"
	EventStatusChange        = "statusChange"
)

// Envelope is the wire frame for both directions: an event name plus a
// JSON payload.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type OutboundEnvelope struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

type OnlineUserEvent struct {
	UserID string `json:"userId"`
}

type NewMessageEvent struct {
	SenderID string `json:"senderId"`
	DialogID string `json:"dialogId"`
	Type     string `json:"type"`
	Text     string `json:"text,omitempty"`
	Content  string `json:"content,omitempty"`
	Time     string `json:"time,omitempty"`

	IsForwarded       bool   `json:"isForwarded,omitempty"`
	OriginalSenderID  string `json:"originalSenderId,omitempty"`
	OriginalMessageID string `json:"originalMessageId,omitempty"`
	ForwardedFrom     string `json:"forwardedFrom,omitempty"`
}

type DeleteChatEvent struct {
	ChatID string `json:"chatId"`
}

type BlockDialogEvent struct {
	DialogID string `json:"dialogId"`
	UserID   string `json:"userId"`
}

// NewReactionEvent uses a nil EmojiID to signal deletion of the sender's
// existing reaction.
type NewReactionEvent struct {
	MessageID string `json:"messageId"`
	UserID    string `json:"userId"`
	EmojiID   *int   `json:"emojiId"`
}

type ChatCreatedEvent struct {
	ID        string `json:"id"`
	ChatName  string `json:"chatName"`
	AvatarURL string `json:"avatarUrl"`
	OtherID   string `json:"otherId"`
	Status    string `json:"status"`
}

type NewChatNotificationEvent struct {
	DialogID          string `json:"dialogId"`
	ParticipantID     string `json:"participantId"`
	ParticipantName   string `json:"participantName"`
	ParticipantAvatar string `json:"participantAvatar"`
	Status            string `json:"status"`
}

type ChatDeletedEvent struct {
	ChatID string `json:"chatId"`
}

type BlockStatusEvent struct {
	DialogID    string `json:"dialogId"`
	UserBlocked string `json:"userBlocked"`
	Blocked     bool   `json:"blocked"`
}

type DeleteReactionEvent struct {
	MessageID string `json:"messageId"`
	UserID    string `json:"userId"`
}

type StatusChangeEvent struct {
	UserID string `json:"userId"`
	Status string `json:"status"`
}
