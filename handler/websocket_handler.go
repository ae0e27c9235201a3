package handler

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/gofiber/contrib/websocket"
	"gorm.io/gorm"

	"dialog-messenger-api/apperror"
	"dialog-messenger-api/config/logger"
	"dialog-messenger-api/dto"
	"dialog-messenger-api/dto/req"
	"dialog-messenger-api/metrics"
	"dialog-messenger-api/repository"
	"dialog-messenger-api/usecase"
	"dialog-messenger-api/ws"
)

// WebSocketHandler owns the realtime channel: it runs the per-connection
// read loop and registers the inbound event handlers on the dispatcher.
// Failures on this path are logged and counted, never sent back to the
// originating connection.
type WebSocketHandler struct {
	Hub        *ws.Hub
	Dispatcher *ws.Dispatcher
	Tracker    *ws.Tracker
	Users      repository.UserRepository
	Dialogs    usecase.DialogUsecase
	Messages   usecase.MessageUsecase
	Reactions  usecase.ReactionUsecase
	Blocks     usecase.BlockUsecase
	Log        *logger.AppLogger
}

func NewWebSocketHandler(
	hub *ws.Hub,
	tracker *ws.Tracker,
	users repository.UserRepository,
	dialogs usecase.DialogUsecase,
	messages usecase.MessageUsecase,
	reactions usecase.ReactionUsecase,
	blocks usecase.BlockUsecase,
	log *logger.AppLogger,
) *WebSocketHandler {
	handler := &WebSocketHandler{
		Hub:        hub,
		Dispatcher: ws.NewDispatcher(log),
		Tracker:    tracker,
		Users:      users,
		Dialogs:    dialogs,
		Messages:   messages,
		Reactions:  reactions,
		Blocks:     blocks,
		Log:        log,
	}

	handler.Dispatcher.Register(dto.EventOnlineUser, handler.onOnlineUser)
	handler.Dispatcher.Register(dto.EventNewMessage, handler.onNewMessage)
	handler.Dispatcher.Register(dto.EventDeleteChat, handler.onDeleteChat)
	handler.Dispatcher.Register(dto.EventBlockedChat, handler.onBlockedChat)
	handler.Dispatcher.Register(dto.EventUnBlockedChat, handler.onUnBlockedChat)
	handler.Dispatcher.Register(dto.EventNewReaction, handler.onNewReaction)

	return handler
}

func (h *WebSocketHandler) HandleWebSocket(conn *websocket.Conn) {
	metrics.OpenConnections.Inc()
	client := &ws.Client{Conn: conn}
	ctx := context.Background()

	defer func() {
		metrics.OpenConnections.Dec()
		if client.UserID != "" {
			h.Hub.Unregister(client.UserID, client)
			h.Tracker.Disconnect(client.UserID)
		}
		conn.Close()
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			h.Log.WS.Trace.Trace().Err(err).Msg("connection closed")
			return
		}
		h.Dispatcher.Dispatch(ctx, client, raw)
	}
}

func (h *WebSocketHandler) onOnlineUser(ctx context.Context, client *ws.Client, data json.RawMessage) {
	var event dto.OnlineUserEvent
	if err := json.Unmarshal(data, &event); err != nil || event.UserID == "" {
		h.drop("malformed", dto.EventOnlineUser, err)
		return
	}

	if _, err := h.Users.FindByID(ctx, event.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.drop("unauthorized", dto.EventOnlineUser, err)
		} else {
			h.drop("failed", dto.EventOnlineUser, err)
		}
		return
	}

	if client.UserID != "" && client.UserID != event.UserID {
		h.Hub.Unregister(client.UserID, client)
	}
	client.UserID = event.UserID
	h.Hub.Register(event.UserID, client)

	if err := h.Tracker.Identify(ctx, event.UserID); err != nil {
		h.drop("failed", dto.EventOnlineUser, err)
	}
}

func (h *WebSocketHandler) onNewMessage(ctx context.Context, client *ws.Client, data json.RawMessage) {
	var event dto.NewMessageEvent
	if err := json.Unmarshal(data, &event); err != nil {
		h.drop("malformed", dto.EventNewMessage, err)
		return
	}
	if client.UserID == "" || client.UserID != event.SenderID {
		h.drop("unauthorized", dto.EventNewMessage, nil)
		return
	}

	if _, err := h.Messages.PostMessage(ctx, &event); err != nil {
		h.dropForError(dto.EventNewMessage, err)
	}
}

func (h *WebSocketHandler) onDeleteChat(ctx context.Context, client *ws.Client, data json.RawMessage) {
	var event dto.DeleteChatEvent
	if err := json.Unmarshal(data, &event); err != nil {
		h.drop("malformed", dto.EventDeleteChat, err)
		return
	}
	if client.UserID == "" {
		h.drop("unidentified", dto.EventDeleteChat, nil)
		return
	}

	if err := h.Dialogs.DeleteDialog(ctx, client.UserID, event.ChatID); err != nil {
		h.dropForError(dto.EventDeleteChat, err)
	}
}

func (h *WebSocketHandler) onBlockedChat(ctx context.Context, client *ws.Client, data json.RawMessage) {
	var event dto.BlockDialogEvent
	if err := json.Unmarshal(data, &event); err != nil {
		h.drop("malformed", dto.EventBlockedChat, err)
		return
	}
	if client.UserID == "" {
		h.drop("unidentified", dto.EventBlockedChat, nil)
		return
	}

	request := blockRequest(&event)
	if _, err := h.Blocks.Block(ctx, client.UserID, request); err != nil {
		h.dropForError(dto.EventBlockedChat, err)
	}
}

func (h *WebSocketHandler) onUnBlockedChat(ctx context.Context, client *ws.Client, data json.RawMessage) {
	var event dto.BlockDialogEvent
	if err := json.Unmarshal(data, &event); err != nil {
		h.drop("malformed", dto.EventUnBlockedChat, err)
		return
	}
	if client.UserID == "" {
		h.drop("unidentified", dto.EventUnBlockedChat, nil)
		return
	}

	request := blockRequest(&event)
	if err := h.Blocks.Unblock(ctx, client.UserID, request); err != nil {
		h.dropForError(dto.EventUnBlockedChat, err)
	}
}

func (h *WebSocketHandler) onNewReaction(ctx context.Context, client *ws.Client, data json.RawMessage) {
	var event dto.NewReactionEvent
	if err := json.Unmarshal(data, &event); err != nil {
		h.drop("malformed", dto.EventNewReaction, err)
		return
	}
	if client.UserID == "" || client.UserID != event.UserID {
		h.drop("unauthorized", dto.EventNewReaction, nil)
		return
	}

	if err := h.Reactions.UpsertReaction(ctx, &event); err != nil {
		h.dropForError(dto.EventNewReaction, err)
	}
}

func (h *WebSocketHandler) drop(reason, event string, err error) {
	h.Log.WS.Warning.Warn().Err(err).Str("event", event).Str("reason", reason).Msg("event dropped")
	metrics.EventsDropped.WithLabelValues(reason).Inc()
}

func (h *WebSocketHandler) dropForError(event string, err error) {
	reason := "failed"
	switch {
	case errors.Is(err, apperror.ErrForbidden), errors.Is(err, apperror.ErrNotFound):
		reason = "unauthorized"
	case errors.Is(err, apperror.ErrBadRequest):
		reason = "malformed"
	}
	h.drop(reason, event, err)
}

func blockRequest(event *dto.BlockDialogEvent) *req.BlockDialogRequest {
	return &req.BlockDialogRequest{DialogID: event.DialogID, UserID: event.UserID}
}
