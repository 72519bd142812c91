package mjai

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"sync"

	"mahjongcore/internal/action"
	"mahjongcore/internal/agent"
	"mahjongcore/internal/eventschema"
	"mahjongcore/internal/logging"
)

// Bridge is an agent.Agent backed by one mjai client's net.Conn, playing
// the "server" side of spec.md §6's handshake (we send hello, the
// external bot sends join). Grounded on internal/wsbridge.Connection's
// read-loop/write-mutex split, adapted from websocket frames to a bare
// newline-delimited JSON socket and from a plain Event passthrough to the
// mjai dialect's request/reply shape (every outgoing decision message
// carries possible_actions; the reply is matched back against the opts
// that were offered, not decoded freestanding).
type Bridge struct {
	seat int
	conn net.Conn
	in   *bufio.Scanner

	writeMu sync.Mutex
	pending chan Message

	closeCh   chan struct{}
	closeOnce sync.Once
	log       *logging.Logger
}

// Accept performs the server-role handshake over conn (send hello, read
// join) and starts the background read loop, returning a Bridge ready to
// be used as one seat's agent.Agent.
func Accept(conn net.Conn) (*Bridge, string, string, error) {
	b := &Bridge{
		conn:    conn,
		in:      bufio.NewScanner(conn),
		pending: make(chan Message, 1),
		closeCh: make(chan struct{}),
		log:     logging.New("mjai"),
	}
	b.in.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if err := b.send(Message{Type: TypeHello}); err != nil {
		return nil, "", "", fmt.Errorf("mjai: send hello: %w", err)
	}
	join, err := b.readOne()
	if err != nil {
		return nil, "", "", fmt.Errorf("mjai: read join: %w", err)
	}
	if join.Type != TypeJoin {
		return nil, "", "", fmt.Errorf("mjai: expected join, got %q", join.Type)
	}

	go b.readLoop()
	return b, join.Name, join.Room, nil
}

func (b *Bridge) readOne() (Message, error) {
	if !b.in.Scan() {
		if err := b.in.Err(); err != nil {
			return Message{}, err
		}
		return Message{}, fmt.Errorf("mjai: connection closed")
	}
	var m Message
	if err := json.Unmarshal(b.in.Bytes(), &m); err != nil {
		return Message{}, fmt.Errorf("mjai: malformed message: %w", err)
	}
	return m, nil
}

// readLoop feeds every subsequent line into pending, matching
// wsbridge.Connection.readPump's "one reader goroutine, closes on error".
func (b *Bridge) readLoop() {
	defer b.Close()
	for {
		m, err := b.readOne()
		if err != nil {
			return
		}
		select {
		case b.pending <- m:
		case <-b.closeCh:
			return
		}
	}
}

func (b *Bridge) send(m Message) error {
	line, err := json.Marshal(m)
	if err != nil {
		return err
	}
	line = append(line, '\n')
	b.writeMu.Lock()
	defer b.writeMu.Unlock()
	_, err = b.conn.Write(line)
	return err
}

func (b *Bridge) Init(seat int, _ any) { b.seat = seat }

// Select offers opts to the connected client as possible_actions on a
// query message, then blocks (in a background goroutine, per the Agent
// contract) for the client's reply. A bare Riichi option (no discard tile
// chosen yet -- see internal/engine/round.go's two-stage riichi resolution)
// is echoed back as its own "reach" message per spec.md §6's two-step
// dance; the subsequent discard announcement and its reach_accepted delta
// are handled by NotifyEvent once the engine applies the discard.
func (b *Bridge) Select(ctx context.Context, opts []action.Option, info agent.TenpaiInfo) *agent.Future {
	ctx, cancel := context.WithCancel(ctx)
	f, ch := agent.NewFuture(b.seat, cancel)

	query := Message{Type: TypeNone, Actor: b.seat}
	actions := make([]Message, 0, len(opts))
	for _, o := range opts {
		actions = append(actions, ActionToMessage(o, b.seat))
	}
	query.PossibleActions = actions

	go func() {
		if err := b.send(query); err != nil {
			b.log.Warn("send query to seat %d: %v", b.seat, err)
			ch <- action.Option{Kind: action.Discard}
			return
		}
		select {
		case reply := <-b.pending:
			opt, err := MessageToOption(reply, opts)
			if err != nil {
				b.log.Warn("seat %d reply: %v", b.seat, err)
				opt = action.Option{Kind: action.Discard}
			}
			if opt.Kind == action.Riichi && len(opt.Tiles) == 0 {
				if err := b.send(Message{Type: TypeReach, Actor: b.seat}); err != nil {
					b.log.Warn("echo reach to seat %d: %v", b.seat, err)
				}
			}
			select {
			case ch <- opt:
			default:
			}
		case <-ctx.Done():
		case <-b.closeCh:
			select {
			case ch <- action.Option{Kind: action.Discard}:
			default:
			}
		}
	}()
	return f
}

func (b *Bridge) Expire(f *agent.Future) { f.Cancel() }

// NotifyEvent translates and forwards ev, and -- for a riichi-flagged
// discard -- follows up with the reach_accepted message carrying the
// declarer's -1000 stick delta, completing spec.md §6's two-step dance.
func (b *Bridge) NotifyEvent(ev eventschema.Event) {
	msg, ok := EventToMessage(ev, b.seat)
	if !ok {
		return
	}
	if err := b.send(msg); err != nil {
		b.log.Warn("forward event to seat %d: %v", b.seat, err)
		return
	}
	if ev.Type == eventschema.EvDiscard && ev.IsRiichi {
		deltas := [4]int{}
		deltas[ev.Seat] = -1000
		if err := b.send(Message{Type: TypeReachAccepted, Actor: ev.Seat, Deltas: deltas[:]}); err != nil {
			b.log.Warn("send reach_accepted: %v", err)
		}
	}
}

// Close shuts down the connection and unblocks any pending read.
func (b *Bridge) Close() {
	b.closeOnce.Do(func() {
		close(b.closeCh)
		b.conn.Close()
	})
}

var _ agent.Agent = (*Bridge)(nil)
