package session

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"belote/internal/engine"
)

// DefaultTurnTimeout bounds every single decision request.
const DefaultTurnTimeout = 20 * time.Second

// Config assembles a session. Agents must cover all four seats. Inbox
// may be shared with Human agents created ahead of the session; when
// nil a fresh one is used.
type Config struct {
	Agents      map[engine.Seat]Agent
	Inbox       *Inbox
	FirstDealer engine.Seat
	TargetScore int
	TurnTimeout time.Duration
	Seed        int64
	Logger      *zap.Logger
}

// Session drives one match on its own goroutine. All engine mutation
// happens on that goroutine; the Submit and Rejoin entry points only
// touch the inbox and the notifiers.
type Session struct {
	ID    string
	Inbox *Inbox

	log     *zap.Logger
	agents  map[engine.Seat]Agent
	timeout time.Duration
	rng     *rand.Rand

	// mu guards match between the loop's mutation steps and Match()
	// snapshots taken from other goroutines.
	mu    sync.Mutex
	match *engine.Match

	notifiers map[engine.Seat]*notifier

	cancel context.CancelFunc
	done   chan struct{}
	err    error
}

// New creates a session. Call Start to begin the match.
func New(cfg Config) (*Session, error) {
	if len(cfg.Agents) != len(engine.Seats()) {
		return nil, errors.New("all four seats need an agent")
	}
	if cfg.TurnTimeout <= 0 {
		cfg.TurnTimeout = DefaultTurnTimeout
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	id := uuid.NewString()
	log := cfg.Logger.With(zap.String("session", id))

	inbox := cfg.Inbox
	if inbox == nil {
		inbox = NewInbox()
	}

	s := &Session{
		ID:        id,
		Inbox:     inbox,
		log:       log,
		match:     engine.NewMatch(cfg.FirstDealer, cfg.TargetScore),
		agents:    cfg.Agents,
		timeout:   cfg.TurnTimeout,
		rng:       rand.New(rand.NewSource(cfg.Seed)),
		notifiers: map[engine.Seat]*notifier{},
		done:      make(chan struct{}),
	}
	for seat, agent := range cfg.Agents {
		var target Observer
		if obs, ok := agent.(Observer); ok {
			target = obs
		}
		s.notifiers[seat] = newNotifier(seat, target, log)
	}
	return s, nil
}

// Start launches the match loop.
func (s *Session) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	go s.run(ctx)
}

// Cancel aborts the match. The outstanding pending decision, if any,
// resolves aborted and the loop unwinds without finishing the deal.
func (s *Session) Cancel() {
	if s.cancel != nil {
		s.cancel()
	}
	if p := s.Inbox.Current(); p != nil {
		p.Abort(ErrAborted)
	}
}

// Done closes when the match loop has exited.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Err reports why the loop stopped, nil after a completed match.
func (s *Session) Err() error {
	select {
	case <-s.done:
		return s.err
	default:
		return nil
	}
}

// Match returns a detached snapshot of the match state. Safe to call
// from any goroutine.
func (s *Session) Match() *engine.Match {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.match.Clone()
}

// mutate runs one state transition under the lock.
func (s *Session) mutate(f func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return f()
}

// Rejoin swaps the observer target for a seat, typically after a
// reconnect. The outstanding pending decision is untouched and stays
// answerable through the inbox.
func (s *Session) Rejoin(seat engine.Seat, target Observer) *Pending {
	if n, ok := s.notifiers[seat]; ok {
		n.swap(target)
	}
	s.log.Info("seat rejoined", zap.Stringer("seat", seat))
	if p := s.Inbox.Current(); p != nil && p.Seat == seat {
		return p
	}
	return nil
}

func (s *Session) run(ctx context.Context) {
	defer close(s.done)
	defer func() {
		for _, n := range s.notifiers {
			n.close()
		}
	}()

	s.log.Info("match started", zap.Stringer("dealer", s.match.Dealer))

	for !s.match.Complete {
		if ctx.Err() != nil {
			s.err = ctx.Err()
			s.log.Info("match aborted", zap.Error(s.err))
			return
		}
		if err := s.playDeal(ctx); err != nil {
			s.err = err
			s.log.Info("match aborted", zap.Error(err))
			return
		}
	}

	winner := s.match.Winner
	s.log.Info("match ended", zap.Stringer("winner", winner))
	s.broadcast(func(o Observer, m *engine.Match) { o.MatchEnded(winner, m) })
	s.confirmAll(ctx)
}

func (s *Session) playDeal(ctx context.Context) error {
	deck := engine.Shuffle(engine.NewDeck(), s.rng.Int63())
	var deal *engine.Deal
	if err := s.mutate(func() (err error) {
		deal, err = s.match.StartDeal(deck)
		return err
	}); err != nil {
		return err
	}
	s.log.Info("deal started",
		zap.Int("number", len(s.match.CompletedDeals)+1),
		zap.Stringer("dealer", deal.Dealer))

	if err := s.performCut(ctx, deal); err != nil {
		return err
	}
	s.broadcast(func(o Observer, m *engine.Match) { o.DealStarted(m) })

	if err := s.performNegotiation(ctx, deal); err != nil {
		return err
	}
	if err := s.performPlay(ctx, deal); err != nil {
		return err
	}

	result := *deal.Result
	if err := s.mutate(s.match.FinishDeal); err != nil {
		return err
	}
	s.log.Info("deal ended",
		zap.Stringer("mode", result.Mode),
		zap.Int("team1", s.match.MatchPoints[engine.Team1]),
		zap.Int("team2", s.match.MatchPoints[engine.Team2]))
	s.broadcast(func(o Observer, m *engine.Match) { o.DealEnded(result, m) })

	if !s.match.Complete {
		s.confirmAll(ctx)
	}
	return ctx.Err()
}

func (s *Session) performCut(ctx context.Context, deal *engine.Deal) error {
	cutter := deal.CutSeat()
	choice := s.askCut(ctx, cutter)
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.mutate(func() error {
		if err := deal.CutDeck(choice.Position, choice.FromTop); err != nil {
			s.log.Warn("invalid cut, using fallback", zap.Error(err))
			fb := FallbackCut()
			return deal.CutDeck(fb.Position, fb.FromTop)
		}
		return nil
	})
}

func (s *Session) performNegotiation(ctx context.Context, deal *engine.Deal) error {
	for deal.Phase == engine.PhaseNegotiating {
		if err := ctx.Err(); err != nil {
			return err
		}
		seat := deal.Negotiation.Turn
		valid := deal.Negotiation.ValidActions()
		action := s.askNegotiation(ctx, seat, valid)
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.mutate(func() error {
			if err := deal.ApplyNegotiation(action); err != nil {
				s.log.Warn("invalid negotiation action, using fallback",
					zap.Stringer("seat", seat), zap.Error(err))
				return deal.ApplyNegotiation(FallbackNegotiation(valid))
			}
			return nil
		}); err != nil {
			return err
		}
	}
	s.log.Info("contract resolved",
		zap.Stringer("mode", deal.Mode),
		zap.Stringer("announcer", deal.Announcer),
		zap.Int("multiplier", deal.Multiplier.Factor()))
	return nil
}

func (s *Session) performPlay(ctx context.Context, deal *engine.Deal) error {
	for deal.Phase == engine.PhasePlaying {
		if err := ctx.Err(); err != nil {
			return err
		}
		seat := deal.Turn
		valid := deal.ValidPlays()
		card := s.askCard(ctx, seat, valid)
		if err := ctx.Err(); err != nil {
			return err
		}
		tricksBefore := len(deal.CompletedTricks)
		if err := s.mutate(func() error {
			if err := deal.PlayCard(seat, card); err != nil {
				s.log.Warn("invalid card, using fallback",
					zap.Stringer("seat", seat), zap.Error(err))
				card = FallbackCard(valid)
				return deal.PlayCard(seat, card)
			}
			return nil
		}); err != nil {
			return err
		}

		played := card
		s.broadcast(func(o Observer, m *engine.Match) { o.CardPlayed(seat, played, m) })

		if len(deal.CompletedTricks) > tricksBefore {
			trick := deal.CompletedTricks[len(deal.CompletedTricks)-1]
			winning, err := trick.Winning(deal.Mode)
			if err != nil {
				return err
			}
			s.broadcast(func(o Observer, m *engine.Match) { o.TrickCompleted(winning.Seat, m) })
		}
	}
	return nil
}

func (s *Session) askCut(ctx context.Context, seat engine.Seat) CutChoice {
	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	choice, err := s.agents[seat].ChooseCut(cctx, engine.DeckSize, s.match.Clone())
	if err != nil {
		s.log.Warn("cut request failed, using fallback",
			zap.Stringer("seat", seat), zap.Error(err))
		return FallbackCut()
	}
	return choice
}

func (s *Session) askNegotiation(ctx context.Context, seat engine.Seat, valid []engine.NegotiationAction) engine.NegotiationAction {
	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	action, err := s.agents[seat].ChooseNegotiationAction(cctx, valid, s.match.Clone())
	if err != nil {
		s.log.Warn("negotiation request failed, using fallback",
			zap.Stringer("seat", seat), zap.Error(err))
		return FallbackNegotiation(valid)
	}
	return action
}

func (s *Session) askCard(ctx context.Context, seat engine.Seat, valid []engine.Card) engine.Card {
	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	card, err := s.agents[seat].ChooseCard(cctx, valid, s.match.Clone())
	if err != nil {
		s.log.Warn("card request failed, using fallback",
			zap.Stringer("seat", seat), zap.Error(err))
		return FallbackCard(valid)
	}
	return card
}

// confirmAll waits for every seat to confirm continuing, in turn order.
// Timeouts auto-continue inside the agents.
func (s *Session) confirmAll(ctx context.Context) {
	for _, seat := range engine.Seats() {
		if ctx.Err() != nil {
			return
		}
		cctx, cancel := context.WithTimeout(ctx, s.timeout)
		if err := s.agents[seat].ConfirmContinue(cctx, s.match.Clone()); err != nil {
			s.log.Warn("continue confirmation failed",
				zap.Stringer("seat", seat), zap.Error(err))
		}
		cancel()
	}
}

// broadcast fans an event out to every seat's notifier with one shared
// snapshot.
func (s *Session) broadcast(ev func(Observer, *engine.Match)) {
	snapshot := s.match.Clone()
	for _, n := range s.notifiers {
		n.publish(func(o Observer) { ev(o, snapshot) })
	}
}
