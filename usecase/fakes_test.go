package usecase

import (
	"context"
	"io"
	"sort"
	"strconv"
	"sync"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"dialog-messenger-api/entity"
	"dialog-messenger-api/enum"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
	seq   int
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[string]*entity.User)}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (r *fakeUserRepo) Save(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == "" {
		r.seq++
		user.ID = "user-" + strconv.Itoa(r.seq)
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) FindByUserName(ctx context.Context, userName string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.UserName == userName {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByIDs(ctx context.Context, ids []string) ([]entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users := make([]entity.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			users = append(users, *u)
		}
	}
	return users, nil
}

func (r *fakeUserRepo) UpdateStatus(ctx context.Context, userID string, status enum.UserStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[userID]; ok {
		u.Status = status
	}
	return nil
}

type fakeDialogRepo struct {
	mu      sync.Mutex
	dialogs map[string]*entity.Dialog
	members map[string][]entity.DialogMember
	seq     int
}

func newFakeDialogRepo(dialogs ...*entity.Dialog) *fakeDialogRepo {
	repo := &fakeDialogRepo{
		dialogs: make(map[string]*entity.Dialog),
		members: make(map[string][]entity.DialogMember),
	}
	for _, d := range dialogs {
		repo.dialogs[d.ID] = d
	}
	return repo
}

func (r *fakeDialogRepo) FindForPair(ctx context.Context, userA, userB string) (*entity.Dialog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.dialogs {
		if d.Type != enum.DIALOG {
			continue
		}
		if (d.CreatorID == userA && d.ParticipantID == userB) ||
			(d.CreatorID == userB && d.ParticipantID == userA) {
			return d, nil
		}
	}
	return nil, nil
}

func (r *fakeDialogRepo) FindByID(ctx context.Context, id string) (*entity.Dialog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	dialog, ok := r.dialogs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return dialog, nil
}

func (r *fakeDialogRepo) FindAllByUserID(ctx context.Context, userID string) ([]entity.Dialog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	dialogs := make([]entity.Dialog, 0)
	for _, d := range r.dialogs {
		if d.Type == enum.DIALOG && (d.CreatorID == userID || d.ParticipantID == userID) {
			dialogs = append(dialogs, *d)
		}
	}
	sort.Slice(dialogs, func(i, j int) bool { return dialogs[i].ID < dialogs[j].ID })
	return dialogs, nil
}

func (r *fakeDialogRepo) CreateWithMembers(ctx context.Context, dialog *entity.Dialog, members []entity.DialogMember) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if dialog.ID == "" {
		r.seq++
		dialog.ID = "dialog-" + strconv.Itoa(r.seq)
	}
	r.dialogs[dialog.ID] = dialog
	for i := range members {
		members[i].DialogID = dialog.ID
	}
	r.members[dialog.ID] = members
	return nil
}

func (r *fakeDialogRepo) DeleteWithMembers(ctx context.Context, dialogID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.dialogs, dialogID)
	delete(r.members, dialogID)
	return nil
}

func (r *fakeDialogRepo) HasDialogAccess(ctx context.Context, userID, dialogID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	dialog, ok := r.dialogs[dialogID]
	if !ok || dialog.Type != enum.DIALOG {
		return false, nil
	}
	return dialog.CreatorID == userID || dialog.ParticipantID == userID, nil
}

func (r *fakeDialogRepo) PartnerIDs(ctx context.Context, userID string) ([]string, error) {
	dialogs, err := r.FindAllByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	partners := make([]string, 0, len(dialogs))
	for _, d := range dialogs {
		if d.CreatorID == userID {
			partners = append(partners, d.ParticipantID)
		} else {
			partners = append(partners, d.CreatorID)
		}
	}
	return partners, nil
}

type fakeMessageRepo struct {
	mu       sync.Mutex
	messages []*entity.Message
	seq      int
}

func newFakeMessageRepo(messages ...*entity.Message) *fakeMessageRepo {
	return &fakeMessageRepo{messages: messages}
}

func (r *fakeMessageRepo) Save(ctx context.Context, message *entity.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if message.ID == "" {
		r.seq++
		message.ID = "message-" + strconv.Itoa(r.seq)
	}
	r.messages = append(r.messages, message)
	return nil
}

func (r *fakeMessageRepo) FindByID(ctx context.Context, id string) (*entity.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.messages {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeMessageRepo) FindAllByDialogID(ctx context.Context, dialogID string) ([]entity.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	messages := make([]entity.Message, 0)
	for _, m := range r.messages {
		if m.DialogID == dialogID {
			messages = append(messages, *m)
		}
	}
	sort.Slice(messages, func(i, j int) bool {
		return messages[i].CreatedAt.Before(messages[j].CreatedAt)
	})
	return messages, nil
}

func (r *fakeMessageRepo) FindLatestByDialogID(ctx context.Context, dialogID string) (*entity.Message, error) {
	messages, err := r.FindAllByDialogID(ctx, dialogID)
	if err != nil || len(messages) == 0 {
		return nil, err
	}
	return &messages[len(messages)-1], nil
}

func (r *fakeMessageRepo) DeleteByID(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.messages[:0]
	for _, m := range r.messages {
		if m.ID != id {
			kept = append(kept, m)
		}
	}
	r.messages = kept
	return nil
}

func (r *fakeMessageRepo) MarkDialogRead(ctx context.Context, dialogID, readerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.messages {
		if m.DialogID == dialogID && m.SenderID != readerID {
			m.IsRead = true
		}
	}
	return nil
}

type fakeReactionRepo struct {
	mu        sync.Mutex
	reactions []*entity.MessageReaction
	seq       int
}

func newFakeReactionRepo() *fakeReactionRepo {
	return &fakeReactionRepo{}
}

func (r *fakeReactionRepo) Save(ctx context.Context, reaction *entity.MessageReaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.reactions {
		if existing.MessageID == reaction.MessageID && existing.UserID == reaction.UserID {
			return gorm.ErrDuplicatedKey
		}
	}
	if reaction.ID == "" {
		r.seq++
		reaction.ID = "reaction-" + strconv.Itoa(r.seq)
	}
	r.reactions = append(r.reactions, reaction)
	return nil
}

func (r *fakeReactionRepo) FindByMessageAndUser(ctx context.Context, messageID, userID string) (*entity.MessageReaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, reaction := range r.reactions {
		if reaction.MessageID == messageID && reaction.UserID == userID {
			copied := *reaction
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeReactionRepo) FindAllByMessageID(ctx context.Context, messageID string) ([]entity.MessageReaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	reactions := make([]entity.MessageReaction, 0)
	for _, reaction := range r.reactions {
		if reaction.MessageID == messageID {
			reactions = append(reactions, *reaction)
		}
	}
	return reactions, nil
}

func (r *fakeReactionRepo) UpdateEmoji(ctx context.Context, messageID, userID string, emojiID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, reaction := range r.reactions {
		if reaction.MessageID == messageID && reaction.UserID == userID {
			reaction.EmojiID = emojiID
		}
	}
	return nil
}

func (r *fakeReactionRepo) DeleteByMessageAndUser(ctx context.Context, messageID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.reactions[:0]
	for _, reaction := range r.reactions {
		if reaction.MessageID != messageID || reaction.UserID != userID {
			kept = append(kept, reaction)
		}
	}
	r.reactions = kept
	return nil
}

func (r *fakeReactionRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.reactions)
}

type fakeBlockRepo struct {
	mu     sync.Mutex
	blocks map[string]*entity.BlockedDialog
}

func newFakeBlockRepo() *fakeBlockRepo {
	return &fakeBlockRepo{blocks: make(map[string]*entity.BlockedDialog)}
}

func (r *fakeBlockRepo) Save(ctx context.Context, block *entity.BlockedDialog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.blocks[block.DialogID]; ok {
		return gorm.ErrDuplicatedKey
	}
	if block.ID == "" {
		block.ID = "block-" + block.DialogID
	}
	r.blocks[block.DialogID] = block
	return nil
}

func (r *fakeBlockRepo) FindByDialogID(ctx context.Context, dialogID string) (*entity.BlockedDialog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	block, ok := r.blocks[dialogID]
	if !ok {
		return nil, nil
	}
	return block, nil
}

func (r *fakeBlockRepo) DeleteByDialogAndUser(ctx context.Context, dialogID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if block, ok := r.blocks[dialogID]; ok && block.UserID == userID {
		delete(r.blocks, dialogID)
	}
	return nil
}

type sentEvent struct {
	UserID string
	Event  string
	Data   any
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []sentEvent
}

func (n *fakeNotifier) SendToUser(userID string, event string, data any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentEvent{UserID: userID, Event: event, Data: data})
}

func (n *fakeNotifier) eventsFor(userID string) []sentEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	events := make([]sentEvent, 0)
	for _, e := range n.sent {
		if e.UserID == userID {
			events = append(events, e)
		}
	}
	return events
}

type fakePresence struct {
	mu     sync.Mutex
	online map[string]bool
}

func newFakePresence(onlineIDs ...string) *fakePresence {
	presence := &fakePresence{online: make(map[string]bool)}
	for _, id := range onlineIDs {
		presence.online[id] = true
	}
	return presence
}

func (p *fakePresence) IsOnline(ctx context.Context, userID string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.online[userID], nil
}
