package server

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"belote/internal/bots"
	"belote/internal/engine"
	"belote/internal/session"
)

// BotFactory builds the agent for a non-human seat. The returned agent
// is wrapped in session.NewResilient by the gateway.
type BotFactory func(seat engine.Seat, level string, seed int64) (session.Agent, error)

func defaultBots(seat engine.Seat, level string, seed int64) (session.Agent, error) {
	switch level {
	case "easy":
		return bots.NewEasy(seat, seed), nil
	case "", "normal":
		return bots.NewNormal(seat, seed), nil
	default:
		return nil, errors.New("unknown bot level")
	}
}

type Options struct {
	Logger          *zap.Logger
	TurnTimeout     time.Duration
	TargetScore     int
	BotFailureLimit int
	Bots            BotFactory
}

// Gateway owns the live matches and binds WebSocket clients to them.
type Gateway struct {
	log  *zap.Logger
	opts Options

	mu      sync.Mutex
	matches map[string]*liveMatch
}

type liveMatch struct {
	sess   *session.Session
	humans map[engine.Seat]bool
}

func NewGateway(opts Options) *Gateway {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Bots == nil {
		opts.Bots = defaultBots
	}
	if opts.BotFailureLimit <= 0 {
		opts.BotFailureLimit = session.DefaultFailureLimit
	}
	return &Gateway{
		log:     opts.Logger,
		opts:    opts,
		matches: map[string]*liveMatch{},
	}
}

// CreateMatch starts a session with humans at the given seats and bots
// everywhere else.
func (g *Gateway) CreateMatch(humanSeats []engine.Seat, botLevel string, seed int64) (*session.Session, error) {
	if len(humanSeats) == 0 {
		return nil, errors.New("at least one human seat required")
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	inbox := session.NewInbox()
	humans := map[engine.Seat]bool{}
	for _, seat := range humanSeats {
		humans[seat] = true
	}

	agents := map[engine.Seat]session.Agent{}
	for _, seat := range engine.Seats() {
		if humans[seat] {
			agents[seat] = session.NewHuman(seat, inbox)
			continue
		}
		bot, err := g.opts.Bots(seat, botLevel, seed+int64(seat))
		if err != nil {
			return nil, err
		}
		agents[seat] = session.NewResilient(bot, seat, g.opts.BotFailureLimit, g.log)
	}

	sess, err := session.New(session.Config{
		Agents:      agents,
		Inbox:       inbox,
		TargetScore: g.opts.TargetScore,
		TurnTimeout: g.opts.TurnTimeout,
		Seed:        seed,
		Logger:      g.log,
	})
	if err != nil {
		return nil, err
	}

	g.mu.Lock()
	g.matches[sess.ID] = &liveMatch{sess: sess, humans: humans}
	g.mu.Unlock()

	sess.Start(context.Background())
	go g.reap(sess)
	g.log.Info("match created", zap.String("match", sess.ID))
	return sess, nil
}

// reap drops the registry entry once the session loop exits, so
// finished matches do not accumulate.
func (g *Gateway) reap(sess *session.Session) {
	<-sess.Done()
	g.mu.Lock()
	delete(g.matches, sess.ID)
	g.mu.Unlock()
	g.log.Info("match removed", zap.String("match", sess.ID))
}

func (g *Gateway) lookup(id string) (*liveMatch, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	m, ok := g.matches[id]
	return m, ok
}

// CloseMatch cancels a running match and drops it from the registry.
func (g *Gateway) CloseMatch(id string) bool {
	g.mu.Lock()
	m, ok := g.matches[id]
	delete(g.matches, id)
	g.mu.Unlock()
	if !ok {
		return false
	}
	m.sess.Cancel()
	return true
}
