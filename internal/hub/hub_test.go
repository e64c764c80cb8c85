package hub

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/swaroop-surya/chatroom/internal/domain"
	"github.com/swaroop-surya/chatroom/internal/game"
	"github.com/swaroop-surya/chatroom/internal/infrastructure/events"
	"github.com/swaroop-surya/chatroom/internal/infrastructure/logging"
	"github.com/swaroop-surya/chatroom/internal/infrastructure/metrics"
	"github.com/swaroop-surya/chatroom/internal/infrastructure/password"
	"github.com/swaroop-surya/chatroom/internal/infrastructure/repository"
	"github.com/swaroop-surya/chatroom/internal/infrastructure/ws"
)

type nopLogger struct{}

func (nopLogger) Init()                                                                     {}
func (nopLogger) Debug(logging.Category, logging.SubCategory, string, map[logging.ExtraKey]any) {}
func (nopLogger) Debugf(string, ...any)                                                     {}
func (nopLogger) Info(logging.Category, logging.SubCategory, string, map[logging.ExtraKey]any)  {}
func (nopLogger) Infof(string, ...any)                                                      {}
func (nopLogger) Warn(logging.Category, logging.SubCategory, string, map[logging.ExtraKey]any)  {}
func (nopLogger) Warnf(string, ...any)                                                      {}
func (nopLogger) Error(logging.Category, logging.SubCategory, string, map[logging.ExtraKey]any) {}
func (nopLogger) Errorf(string, ...any)                                                     {}
func (nopLogger) Fatal(logging.Category, logging.SubCategory, string, map[logging.ExtraKey]any) {}
func (nopLogger) Fatalf(string, ...any)                                                     {}

type fakeSender struct {
	mu   sync.Mutex
	msgs []*ws.WSMessage
}

func (f *fakeSender) Send(msg *ws.WSMessage) {
	f.mu.Lock()
	f.msgs = append(f.msgs, msg)
	f.mu.Unlock()
}

func (f *fakeSender) received(eventType string) []*ws.WSMessage {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*ws.WSMessage
	for _, m := range f.msgs {
		if m.Type == eventType {
			out = append(out, m)
		}
	}
	return out
}

func (f *fakeSender) waitFor(t *testing.T, eventType string) *ws.WSMessage {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if got := f.received(eventType); len(got) > 0 {
			return got[len(got)-1]
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %q", eventType)
	return nil
}

func newTestHub(t *testing.T) *Hub {
	t.Helper()

	h := New(
		Config{MessageTTL: 3 * time.Hour, RoomTTL: 3 * time.Hour, SweepInterval: time.Hour},
		repository.NewRoomRepository(),
		repository.NewMessageRepository(500),
		password.NewHasher(),
		nopLogger{},
		metrics.New(),
		events.NopPublisher{},
	)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		h.Run(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	return h
}

func TestChatBroadcastReachesAllMembers(t *testing.T) {
	h := newTestHub(t)
	ctx := context.Background()

	room, err := h.CreateRoom(ctx, "General", domain.RoomChat, "")
	if err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}

	alice, bob := &fakeSender{}, &fakeSender{}
	if err := h.Join(ctx, alice, "c1", room.ID, "alice", ""); err != nil {
		t.Fatalf("join alice: %v", err)
	}
	if err := h.Join(ctx, bob, "c2", room.ID, "bob", ""); err != nil {
		t.Fatalf("join bob: %v", err)
	}

	if err := h.Chat(ctx, "c1", "hello", nil); err != nil {
		t.Fatalf("Chat: %v", err)
	}

	for _, s := range []*fakeSender{alice, bob} {
		got := s.received(ws.EventChatMessage)
		if len(got) != 1 {
			t.Fatalf("chat messages = %d, want 1", len(got))
		}
		payload := got[0].Data.(ws.MessagePayload)
		if payload.User != "alice" || payload.Text != "hello" {
			t.Fatalf("unexpected payload: %+v", payload)
		}
	}
}

func TestJoinReplaysHistoryInOrder(t *testing.T) {
	h := newTestHub(t)
	ctx := context.Background()

	room, _ := h.CreateRoom(ctx, "History", domain.RoomChat, "")

	alice := &fakeSender{}
	h.Join(ctx, alice, "c1", room.ID, "alice", "")
	h.Chat(ctx, "c1", "first", nil)
	h.Chat(ctx, "c1", "second", nil)

	bob := &fakeSender{}
	h.Join(ctx, bob, "c2", room.ID, "bob", "")

	init := bob.received(ws.EventInit)
	if len(init) != 1 {
		t.Fatalf("init events = %d, want 1", len(init))
	}
	payload := init[0].Data.(ws.InitPayload)
	if len(payload.Messages) != 2 {
		t.Fatalf("history length = %d, want 2", len(payload.Messages))
	}
	if payload.Messages[0].Text != "first" || payload.Messages[1].Text != "second" {
		t.Fatalf("history out of order: %+v", payload.Messages)
	}
}

func TestJoinWrongPassword(t *testing.T) {
	h := newTestHub(t)
	ctx := context.Background()

	room, _ := h.CreateRoom(ctx, "Secret", domain.RoomChat, "letmein")

	if err := h.Join(ctx, &fakeSender{}, "c1", room.ID, "eve", "guess"); !errors.Is(err, domain.ErrWrongPassword) {
		t.Fatalf("err = %v, want ErrWrongPassword", err)
	}
	if err := h.Join(ctx, &fakeSender{}, "c1", room.ID, "alice", "letmein"); err != nil {
		t.Fatalf("correct password rejected: %v", err)
	}
}

func TestJoinUnknownRoom(t *testing.T) {
	h := newTestHub(t)

	err := h.Join(context.Background(), &fakeSender{}, "c1", "nope", "alice", "")
	if !errors.Is(err, domain.ErrRoomNotFound) {
		t.Fatalf("err = %v, want ErrRoomNotFound", err)
	}
}

func TestTypingExcludesSender(t *testing.T) {
	h := newTestHub(t)
	ctx := context.Background()

	room, _ := h.CreateRoom(ctx, "General", domain.RoomChat, "")
	alice, bob := &fakeSender{}, &fakeSender{}
	h.Join(ctx, alice, "c1", room.ID, "alice", "")
	h.Join(ctx, bob, "c2", room.ID, "bob", "")

	h.Typing("c1", true)

	if got := alice.received(ws.EventTyping); len(got) != 0 {
		t.Fatalf("sender received their own typing event")
	}
	got := bob.received(ws.EventTyping)
	if len(got) != 1 {
		t.Fatalf("typing events = %d, want 1", len(got))
	}
	if p := got[0].Data.(ws.TypingPayload); p.User != "alice" || !p.IsTyping {
		t.Fatalf("unexpected payload: %+v", p)
	}
}

func TestDeleteMessageOnlyByAuthor(t *testing.T) {
	h := newTestHub(t)
	ctx := context.Background()

	room, _ := h.CreateRoom(ctx, "General", domain.RoomChat, "")
	alice, bob := &fakeSender{}, &fakeSender{}
	h.Join(ctx, alice, "c1", room.ID, "alice", "")
	h.Join(ctx, bob, "c2", room.ID, "bob", "")

	h.Chat(ctx, "c1", "delete me", nil)
	msgID := alice.received(ws.EventChatMessage)[0].Data.(ws.MessagePayload).ID

	if err := h.DeleteMessage(ctx, "c2", msgID); !errors.Is(err, domain.ErrNotAuthor) {
		t.Fatalf("err = %v, want ErrNotAuthor", err)
	}
	if err := h.DeleteMessage(ctx, "c1", msgID); err != nil {
		t.Fatalf("author delete: %v", err)
	}

	got := bob.received(ws.EventMessageDeleted)
	if len(got) != 1 {
		t.Fatalf("messageDeleted events = %d, want 1", len(got))
	}
	if p := got[0].Data.(ws.MessageDeletedPayload); p.MsgID != msgID {
		t.Fatalf("wrong msgId: %+v", p)
	}
}

func TestEmbeddedGameLifecycle(t *testing.T) {
	h := newTestHub(t)
	ctx := context.Background()

	room, _ := h.CreateRoom(ctx, "General", domain.RoomChat, "")
	alice, bob := &fakeSender{}, &fakeSender{}
	h.Join(ctx, alice, "c1", room.ID, "alice", "")
	h.Join(ctx, bob, "c2", room.ID, "bob", "")

	if err := h.StartGame(ctx, "c1", "rps"); err != nil {
		t.Fatalf("StartGame: %v", err)
	}
	msgID := bob.received(ws.EventChatMessage)[0].Data.(ws.MessagePayload).ID

	if err := h.PlayMove(ctx, "c1", msgID, "rock"); err != nil {
		t.Fatalf("PlayMove alice: %v", err)
	}
	if err := h.PlayMove(ctx, "c2", msgID, "scissors"); err != nil {
		t.Fatalf("PlayMove bob: %v", err)
	}

	updates := alice.received(ws.EventGameUpdated)
	if len(updates) != 2 {
		t.Fatalf("gameUpdated events = %d, want 2", len(updates))
	}
	final := updates[1].Data.(ws.MessagePayload)
	state := final.State.(*game.RPSState)
	if state.Result == nil || state.Result.Winner != "alice" {
		t.Fatalf("unexpected result: %+v", state.Result)
	}
}

func TestStartGameRejectsUnknownKind(t *testing.T) {
	h := newTestHub(t)
	ctx := context.Background()

	room, _ := h.CreateRoom(ctx, "General", domain.RoomChat, "")
	h.Join(ctx, &fakeSender{}, "c1", room.ID, "alice", "")

	if err := h.StartGame(ctx, "c1", "chess"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestFunroomRoleAssignment(t *testing.T) {
	h := newTestHub(t)
	ctx := context.Background()

	room, _ := h.CreateRoom(ctx, "Arcade", domain.RoomFun, "")

	p0, p1, spec := &fakeSender{}, &fakeSender{}, &fakeSender{}
	h.Join(ctx, p0, "c1", room.ID, "alice", "")
	h.Join(ctx, p1, "c2", room.ID, "bob", "")
	h.Join(ctx, spec, "c3", room.ID, "carol", "")

	r0 := p0.received(ws.EventRoleAssigned)[0].Data.(ws.RoleAssignedPayload)
	r1 := p1.received(ws.EventRoleAssigned)[0].Data.(ws.RoleAssignedPayload)
	r2 := spec.received(ws.EventRoleAssigned)[0].Data.(ws.RoleAssignedPayload)

	if r0.Role != "player" || r0.PlayerIndex != 0 {
		t.Fatalf("first joiner role = %+v", r0)
	}
	if r1.Role != "player" || r1.PlayerIndex != 1 {
		t.Fatalf("second joiner role = %+v", r1)
	}
	if r2.Role != "spectator" || r2.PlayerIndex != -1 {
		t.Fatalf("third joiner role = %+v", r2)
	}
}

func TestFunroomMatchStartsWithTwoPlayers(t *testing.T) {
	h := newTestHub(t)
	ctx := context.Background()

	room, _ := h.CreateRoom(ctx, "Arcade", domain.RoomFun, "")

	p0 := &fakeSender{}
	h.Join(ctx, p0, "c1", room.ID, "alice", "")
	if got := p0.received(ws.EventGameStart); len(got) != 0 {
		t.Fatal("match should not start with one player")
	}

	p1 := &fakeSender{}
	h.Join(ctx, p1, "c2", room.ID, "bob", "")

	p0.waitFor(t, ws.EventGameStart)
	p1.waitFor(t, ws.EventSnakeState)
}

func TestFunroomForfeitOnLeave(t *testing.T) {
	h := newTestHub(t)
	ctx := context.Background()

	room, _ := h.CreateRoom(ctx, "Arcade", domain.RoomFun, "")

	p0, p1 := &fakeSender{}, &fakeSender{}
	h.Join(ctx, p0, "c1", room.ID, "alice", "")
	h.Join(ctx, p1, "c2", room.ID, "bob", "")
	p0.waitFor(t, ws.EventGameStart)

	h.Leave("c2")

	over := p0.waitFor(t, ws.EventGameOver)
	payload := over.Data.(ws.GameOverPayload)
	if payload.Winner == nil || *payload.Winner != 0 {
		t.Fatalf("winner = %v, want remaining player 0", payload.Winner)
	}
}

func TestSpectatorPromotedWhenPlayerLeaves(t *testing.T) {
	h := newTestHub(t)
	ctx := context.Background()

	room, _ := h.CreateRoom(ctx, "Arcade", domain.RoomFun, "")

	p0, p1, spec := &fakeSender{}, &fakeSender{}, &fakeSender{}
	h.Join(ctx, p0, "c1", room.ID, "alice", "")
	h.Join(ctx, p1, "c2", room.ID, "bob", "")
	h.Join(ctx, spec, "c3", room.ID, "carol", "")

	h.Leave("c2")

	roles := spec.received(ws.EventRoleAssigned)
	last := roles[len(roles)-1].Data.(ws.RoleAssignedPayload)
	if last.Role != "player" || last.PlayerIndex != 1 {
		t.Fatalf("promotion role = %+v", last)
	}
}

func TestLeaveIsIdempotent(t *testing.T) {
	h := newTestHub(t)
	ctx := context.Background()

	room, _ := h.CreateRoom(ctx, "General", domain.RoomChat, "")
	h.Join(ctx, &fakeSender{}, "c1", room.ID, "alice", "")

	h.Leave("c1")
	h.Leave("c1") // second call must not panic or emit

	if err := h.Chat(ctx, "c1", "ghost", nil); !errors.Is(err, domain.ErrNotInRoom) {
		t.Fatalf("err = %v, want ErrNotInRoom", err)
	}
}

func TestPlayAgainResetsFinishedMatch(t *testing.T) {
	h := newTestHub(t)
	ctx := context.Background()

	room, _ := h.CreateRoom(ctx, "Arcade", domain.RoomFun, "")

	p0, p1 := &fakeSender{}, &fakeSender{}
	h.Join(ctx, p0, "c1", room.ID, "alice", "")
	h.Join(ctx, p1, "c2", room.ID, "bob", "")
	p0.waitFor(t, ws.EventGameStart)

	// Finish the match by forfeit.
	h.Leave("c2")
	p0.waitFor(t, ws.EventGameOver)

	// Bob rejoins, taking the free slot, and asks for a rematch.
	h.Join(ctx, p1, "c4", room.ID, "bob", "")
	if err := h.PlayAgain("c1"); err != nil {
		t.Fatalf("PlayAgain: %v", err)
	}

	starts := p0.received(ws.EventGameStart)
	if len(starts) < 2 {
		t.Fatalf("game starts = %d, want a second start after rematch", len(starts))
	}
}

func TestListRoomsWithCounts(t *testing.T) {
	h := newTestHub(t)
	ctx := context.Background()

	chat, _ := h.CreateRoom(ctx, "General", domain.RoomChat, "")
	fun, _ := h.CreateRoom(ctx, "Arcade", domain.RoomFun, "")

	h.Join(ctx, &fakeSender{}, "c1", chat.ID, "alice", "")
	h.Join(ctx, &fakeSender{}, "c2", fun.ID, "bob", "")
	h.Join(ctx, &fakeSender{}, "c3", fun.ID, "carol", "")
	h.Join(ctx, &fakeSender{}, "c4", fun.ID, "dave", "")

	chats, err := h.ListChatRooms(ctx)
	if err != nil {
		t.Fatalf("ListChatRooms: %v", err)
	}
	if len(chats) != 1 || chats[0].MemberCount != 1 {
		t.Fatalf("unexpected chat listing: %+v", chats)
	}

	funs, err := h.ListFunrooms(ctx)
	if err != nil {
		t.Fatalf("ListFunrooms: %v", err)
	}
	if len(funs) != 1 || funs[0].PlayerCount != 2 || funs[0].SpectatorCount != 1 {
		t.Fatalf("unexpected funroom listing: %+v", funs)
	}
}

func TestListJoinableFunroomsOnlyHalfFull(t *testing.T) {
	h := newTestHub(t)
	ctx := context.Background()

	_, _ = h.CreateRoom(ctx, "Empty", domain.RoomFun, "")
	waiting, _ := h.CreateRoom(ctx, "Waiting", domain.RoomFun, "")
	full, _ := h.CreateRoom(ctx, "Full", domain.RoomFun, "")

	h.Join(ctx, &fakeSender{}, "c1", waiting.ID, "alice", "")
	h.Join(ctx, &fakeSender{}, "c2", full.ID, "bob", "")
	h.Join(ctx, &fakeSender{}, "c3", full.ID, "carol", "")

	joinable, err := h.ListJoinableFunrooms(ctx)
	if err != nil {
		t.Fatalf("ListJoinableFunrooms: %v", err)
	}
	if len(joinable) != 1 || joinable[0].ID != waiting.ID {
		t.Fatalf("unexpected joinable listing: %+v", joinable)
	}
}

func TestSweepExpiresIdleRoomsButNeverLobby(t *testing.T) {
	h := newTestHub(t)
	ctx := context.Background()

	if err := h.SeedLobby(ctx, "Lobby"); err != nil {
		t.Fatalf("SeedLobby: %v", err)
	}

	room, _ := h.CreateRoom(ctx, "Stale", domain.RoomChat, "")

	// Pretend time has advanced past the room TTL.
	h.doWait(func() {
		h.now = func() time.Time { return time.Now().Add(4 * time.Hour) }
	})
	h.doWait(func() { h.sweep(ctx) })

	if _, err := h.rooms.GetByID(ctx, room.ID); !errors.Is(err, domain.ErrRoomNotFound) {
		t.Fatalf("stale room should be swept, err = %v", err)
	}
	if _, err := h.rooms.GetByID(ctx, domain.LobbyID); err != nil {
		t.Fatalf("lobby must survive sweeps: %v", err)
	}
}

func TestSweepKeepsOccupiedRooms(t *testing.T) {
	h := newTestHub(t)
	ctx := context.Background()

	room, _ := h.CreateRoom(ctx, "Busy", domain.RoomChat, "")
	h.Join(ctx, &fakeSender{}, "c1", room.ID, "alice", "")

	h.doWait(func() {
		h.now = func() time.Time { return time.Now().Add(4 * time.Hour) }
	})
	h.doWait(func() { h.sweep(ctx) })

	if _, err := h.rooms.GetByID(ctx, room.ID); err != nil {
		t.Fatalf("occupied room should survive: %v", err)
	}
}
