package gamemaster

import (
	"errors"
	"filler/engine"
	"filler/game"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

var ErrClosed = errors.New("session is closed")

type Kind int

const (
	PlayerMoved Kind = iota
	AIMoved
	Failed
)

// String returns the message type the client expects.
func (k Kind) String() string {
	switch k {
	case PlayerMoved:
		return "playerMove"
	case AIMoved:
		return "aiMove"
	default:
		return "error"
	}
}

// Update is delivered once per applied action, and once per failed AI turn.
type Update struct {
	Kind   Kind
	Record game.Record
	Result engine.Result
	Err    error
}

// Deliver is called from the caller's goroutine for acknowledgements and from the
// session worker for AI results, so it must be safe for concurrent use.
type Deliver func(Update)

// Session sequences the turns of one client. The player's move is applied and
// acknowledged synchronously; the AI reply is computed by a single worker after a delay,
// so every acknowledgement reaches Deliver before the AI result of the same turn.
type Session struct {
	engine  *engine.Engine
	delay   time.Duration
	deliver Deliver

	tasks     chan *game.State
	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

func NewSession(e *engine.Engine, delay time.Duration, deliver Deliver) *Session {
	s := &Session{
		engine:  e,
		delay:   delay,
		deliver: deliver,
		tasks:   make(chan *game.State, 8),
		done:    make(chan struct{}),
	}
	s.wg.Add(1)
	go s.work()
	return s
}

// PlayerMove applies color for the human, delivers the acknowledgement and, unless the
// move ended the game, schedules the AI reply. The session owns state afterwards.
func (s *Session) PlayerMove(state *game.State, color game.Color) error {
	if s.closed() {
		return ErrClosed
	}
	result, err := s.engine.ApplyPlayerMove(state, color)
	if err != nil {
		return err
	}
	s.deliver(Update{Kind: PlayerMoved, Record: state.Record(), Result: result})

	if result.Outcome != game.Undetermined {
		return nil
	}
	return s.enqueue(state)
}

// AIMove schedules an AI turn on state without a preceding player move.
func (s *Session) AIMove(state *game.State) error {
	return s.enqueue(state)
}

// Close stops the worker. A pending AI turn still waiting out its delay is dropped, a
// search already running completes and is delivered.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
	})
	s.wg.Wait()
}

func (s *Session) closed() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

func (s *Session) enqueue(state *game.State) error {
	select {
	case <-s.done:
		return ErrClosed
	case s.tasks <- state:
		return nil
	}
}

func (s *Session) work() {
	defer s.wg.Done()
	for {
		select {
		case <-s.done:
			return
		case state := <-s.tasks:
			if !s.wait() {
				return
			}
			s.play(state)
		}
	}
}

// wait sleeps for the delay and reports false if the session closed meanwhile.
func (s *Session) wait() bool {
	if s.delay <= 0 {
		return !s.closed()
	}
	timer := time.NewTimer(s.delay)
	defer timer.Stop()
	select {
	case <-s.done:
		return false
	case <-timer.C:
		return true
	}
}

func (s *Session) play(state *game.State) {
	start := time.Now()
	result, err := s.engine.ApplyAIMove(state)
	if err != nil {
		log.Error().Err(err).Msg("AI turn failed")
		s.deliver(Update{Kind: Failed, Err: err})
		return
	}
	log.Debug().Msgf("AI played %q in %v (%d nodes, score %.1f)", result.Move, time.Since(start), result.Search.Nodes, result.Search.Score)
	s.deliver(Update{Kind: AIMoved, Record: state.Record(), Result: result})
}
