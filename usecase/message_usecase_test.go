package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"dialog-messenger-api/apperror"
	"dialog-messenger-api/dto"
	"dialog-messenger-api/entity"
	"dialog-messenger-api/enum"
)

func pairDialog(id, creator, participant string) *entity.Dialog {
	dialog := &entity.Dialog{
		Type:          enum.DIALOG,
		CreatorID:     creator,
		ParticipantID: participant,
	}
	dialog.ID = id
	return dialog
}

func newMessageFixture(dialogs ...*entity.Dialog) (MessageUsecase, *fakeMessageRepo, *fakeNotifier) {
	dialogRepo := newFakeDialogRepo(dialogs...)
	messageRepo := newFakeMessageRepo()
	notifier := &fakeNotifier{}
	access := NewAccessValidator(dialogRepo, messageRepo)
	uc := NewMessageUsecase(messageRepo, dialogRepo, access, notifier, quietLogger())
	return uc, messageRepo, notifier
}

func TestPostMessageStartsUnreadAndFansOut(t *testing.T) {
	uc, _, notifier := newMessageFixture(pairDialog("d1", "alice", "bob"))

	message, err := uc.PostMessage(context.Background(), &dto.NewMessageEvent{
		SenderID: "alice",
		DialogID: "d1",
		Type:     "text",
		Text:     "hello",
	})
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	if message.IsRead {
		t.Error("new message created as read")
	}
	if message.Text != "hello" {
		t.Errorf("text = %q", message.Text)
	}

	for _, userID := range []string{"alice", "bob"} {
		events := notifier.eventsFor(userID)
		if len(events) != 1 || events[0].Event != dto.EventMessageCreated {
			t.Errorf("%s events = %+v, want one %s", userID, events, dto.EventMessageCreated)
		}
	}
}

func TestPostMessageRejectsNonMember(t *testing.T) {
	uc, _, notifier := newMessageFixture(pairDialog("d1", "alice", "bob"))

	_, err := uc.PostMessage(context.Background(), &dto.NewMessageEvent{
		SenderID: "mallory",
		DialogID: "d1",
		Type:     "text",
		Text:     "hi",
	})
	if !errors.Is(err, apperror.ErrForbidden) {
		t.Errorf("expected forbidden, got %v", err)
	}
	if len(notifier.sent) != 0 {
		t.Errorf("rejected message still fanned out: %+v", notifier.sent)
	}
}

func TestPostMessageRejectsUnknownType(t *testing.T) {
	uc, _, _ := newMessageFixture(pairDialog("d1", "alice", "bob"))

	_, err := uc.PostMessage(context.Background(), &dto.NewMessageEvent{
		SenderID: "alice",
		DialogID: "d1",
		Type:     "video",
	})
	if !errors.Is(err, apperror.ErrBadRequest) {
		t.Errorf("expected bad request, got %v", err)
	}
}

func TestPostMessageImageUsesContentPath(t *testing.T) {
	uc, _, _ := newMessageFixture(pairDialog("d1", "alice", "bob"))

	message, err := uc.PostMessage(context.Background(), &dto.NewMessageEvent{
		SenderID: "alice",
		DialogID: "d1",
		Type:     "image",
		Content:  "abc.png",
	})
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	if message.ImgPath != "abc.png" || message.Text != "" {
		t.Errorf("image message = %+v", message)
	}
}

func TestDeleteMessageSenderOnly(t *testing.T) {
	uc, messageRepo, _ := newMessageFixture(pairDialog("d1", "alice", "bob"))
	ctx := context.Background()

	message, err := uc.PostMessage(ctx, &dto.NewMessageEvent{SenderID: "alice", DialogID: "d1", Type: "text", Text: "x"})
	if err != nil {
		t.Fatalf("post: %v", err)
	}

	if err := uc.DeleteMessage(ctx, "bob", message.ID); !errors.Is(err, apperror.ErrForbidden) {
		t.Errorf("counterpart delete: expected forbidden, got %v", err)
	}
	if err := uc.DeleteMessage(ctx, "alice", message.ID); err != nil {
		t.Fatalf("sender delete: %v", err)
	}
	if _, err := messageRepo.FindByID(ctx, message.ID); err == nil {
		t.Error("message still present after delete")
	}
}

func TestMarkReadSkipsOwnMessages(t *testing.T) {
	uc, messageRepo, _ := newMessageFixture(pairDialog("d1", "alice", "bob"))
	ctx := context.Background()

	fromAlice, _ := uc.PostMessage(ctx, &dto.NewMessageEvent{SenderID: "alice", DialogID: "d1", Type: "text", Text: "a"})
	fromBob, _ := uc.PostMessage(ctx, &dto.NewMessageEvent{SenderID: "bob", DialogID: "d1", Type: "text", Text: "b"})

	if err := uc.MarkRead(ctx, "alice", "d1", "alice"); err != nil {
		t.Fatalf("mark read: %v", err)
	}

	got, _ := messageRepo.FindByID(ctx, fromBob.ID)
	if !got.IsRead {
		t.Error("counterpart message not marked read")
	}
	got, _ = messageRepo.FindByID(ctx, fromAlice.ID)
	if got.IsRead {
		t.Error("own message marked read")
	}
}

func TestMarkReadRejectsOtherUser(t *testing.T) {
	uc, _, _ := newMessageFixture(pairDialog("d1", "alice", "bob"))

	err := uc.MarkRead(context.Background(), "alice", "d1", "bob")
	if !errors.Is(err, apperror.ErrForbidden) {
		t.Errorf("expected forbidden, got %v", err)
	}
}

func TestGetMessagesChronological(t *testing.T) {
	dialogRepo := newFakeDialogRepo(pairDialog("d1", "alice", "bob"))
	messageRepo := newFakeMessageRepo()
	access := NewAccessValidator(dialogRepo, messageRepo)
	uc := NewMessageUsecase(messageRepo, dialogRepo, access, &fakeNotifier{}, quietLogger())
	ctx := context.Background()

	base := time.Now()
	for i, text := range []string{"first", "second", "third"} {
		message := &entity.Message{Type: enum.MessageTypeText, Text: text, DialogID: "d1", SenderID: "alice"}
		message.CreatedAt = base.Add(time.Duration(i) * time.Second)
		if err := messageRepo.Save(ctx, message); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	messages, err := uc.GetMessages(ctx, "bob", "d1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(messages) != 3 || messages[0].Text != "first" || messages[2].Text != "third" {
		t.Errorf("messages out of order: %+v", messages)
	}
}

func TestGetLatestMessagesFiltersAccessAndEmpty(t *testing.T) {
	mine := pairDialog("d1", "alice", "bob")
	foreign := pairDialog("d2", "carol", "dave")
	empty := pairDialog("d3", "alice", "carol")
	uc, _, _ := newMessageFixture(mine, foreign, empty)
	ctx := context.Background()

	if _, err := uc.PostMessage(ctx, &dto.NewMessageEvent{SenderID: "alice", DialogID: "d1", Type: "text", Text: "keep"}); err != nil {
		t.Fatalf("post: %v", err)
	}

	latest, err := uc.GetLatestMessages(ctx, "alice", []string{"d1", "d2", "d3"})
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if len(latest) != 1 || latest[0].Text != "keep" {
		t.Errorf("latest = %+v, want only the accessible non-empty dialog", latest)
	}
}
