// Package hub owns all live room state: membership, roles, chat fanout
// and game simulations. A single goroutine processes every mutation, so
// the rest of the package needs no locks.
package hub

import (
	"context"
	"time"

	"github.com/swaroop-surya/chatroom/internal/domain"
	"github.com/swaroop-surya/chatroom/internal/game"
	"github.com/swaroop-surya/chatroom/internal/infrastructure/events"
	"github.com/swaroop-surya/chatroom/internal/infrastructure/logging"
	"github.com/swaroop-surya/chatroom/internal/infrastructure/metrics"
	"github.com/swaroop-surya/chatroom/internal/infrastructure/password"
	"github.com/swaroop-surya/chatroom/internal/infrastructure/ws"
)

// Sender is the transport half of a connection. ws.Client satisfies it;
// tests use a recording fake.
type Sender interface {
	Send(msg *ws.WSMessage)
}

type Config struct {
	MessageTTL    time.Duration
	RoomTTL       time.Duration
	SweepInterval time.Duration
	SnakeTimer    bool
}

type member struct {
	sender  Sender
	session *domain.Session
	seq     uint64 // join order, used to promote the oldest spectator
}

type funroomState struct {
	snake       *game.SnakeState
	playerConns [2]string // conn IDs holding the player slots, "" when free
	stopTick    chan struct{}
	ticking     bool
}

type Hub struct {
	cfg       Config
	rooms     domain.RoomRepository
	messages  domain.MessageRepository
	hasher    *password.Hasher
	log       logging.Logger
	metrics   *metrics.Metrics
	publisher events.Publisher

	ops  chan func()
	quit chan struct{}

	members  map[string]map[string]*member // roomID -> connID -> member
	byConn   map[string]*member
	funrooms map[string]*funroomState
	seq      uint64

	now func() time.Time
}

func New(
	cfg Config,
	rooms domain.RoomRepository,
	messages domain.MessageRepository,
	hasher *password.Hasher,
	log logging.Logger,
	m *metrics.Metrics,
	publisher events.Publisher,
) *Hub {
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = time.Minute
	}
	if cfg.MessageTTL <= 0 {
		cfg.MessageTTL = 3 * time.Hour
	}
	if cfg.RoomTTL <= 0 {
		cfg.RoomTTL = 3 * time.Hour
	}

	return &Hub{
		cfg:       cfg,
		rooms:     rooms,
		messages:  messages,
		hasher:    hasher,
		log:       log,
		metrics:   m,
		publisher: publisher,
		ops:       make(chan func(), 256),
		quit:      make(chan struct{}),
		members:   make(map[string]map[string]*member),
		byConn:    make(map[string]*member),
		funrooms:  make(map[string]*funroomState),
		now:       time.Now,
	}
}

// Run processes commands until ctx is cancelled. It must be running
// before any client joins.
func (h *Hub) Run(ctx context.Context) {
	h.log.Info(logging.General, logging.Startup, "hub started", nil)

	janitor := time.NewTicker(h.cfg.SweepInterval)
	defer janitor.Stop()
	defer close(h.quit)
	defer h.stopAllTickers()

	for {
		select {
		case <-ctx.Done():
			h.log.Info(logging.General, logging.Shutdown, "hub stopped", nil)
			return
		case op := <-h.ops:
			op()
		case <-janitor.C:
			h.sweep(ctx)
		}
	}
}

// do posts fn to the hub goroutine without waiting for it.
func (h *Hub) do(fn func()) {
	select {
	case h.ops <- fn:
	case <-h.quit:
	}
}

// doWait posts fn and blocks until the hub has executed it.
func (h *Hub) doWait(fn func()) {
	done := make(chan struct{})
	h.do(func() {
		fn()
		close(done)
	})
	select {
	case <-done:
	case <-h.quit:
	}
}

func (h *Hub) broadcast(roomID string, msg *ws.WSMessage) {
	for _, m := range h.members[roomID] {
		m.sender.Send(msg)
	}
}

func (h *Hub) broadcastExcept(roomID, exceptConnID string, msg *ws.WSMessage) {
	for connID, m := range h.members[roomID] {
		if connID == exceptConnID {
			continue
		}
		m.sender.Send(msg)
	}
}

func (h *Hub) stopAllTickers() {
	for _, f := range h.funrooms {
		h.stopTicker(f)
	}
}
