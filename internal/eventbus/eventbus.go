// Package eventbus fans a running match's eventschema.Event stream out
// to NATS so any number of connector processes (internal/wsbridge) can
// subscribe to one table's live events without the engine knowing how
// many spectators/players are attached.
// Grounded on framework/node/nats_client.go's NatsClient (Connect,
// Subscribe into a read channel, Publish, Close) and nats_worker.go's
// read/write pump pattern, adapted from the teacher's bespoke
// stream.Message/LogicHandler routing envelope into this module's own
// eventschema.Event, since the event already carries everything a
// subscriber needs (type, seat, tiles, round/honba context).
package eventbus

import (
	"fmt"

	"github.com/nats-io/nats.go"

	"mahjongcore/internal/eventschema"
)

func subjectFor(tableID string) string {
	return "mahjong.table." + tableID
}

// Bus wraps a nats.Conn for this module's table-event publish/subscribe
// traffic, matching the teacher's NatsClient surface (Run/Close plus
// pub/sub) but scoped to one connection shared across many tables'
// subjects instead of one connection per topic.
type Bus struct {
	conn *nats.Conn
}

func Connect(url string) (*Bus, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("eventbus: connect %s: %w", url, err)
	}
	return &Bus{conn: conn}, nil
}

func (b *Bus) Close() {
	b.conn.Close()
}

// Publish encodes ev and publishes it on tableID's subject.
func (b *Bus) Publish(tableID string, ev eventschema.Event) error {
	line, err := eventschema.Encode(ev)
	if err != nil {
		return err
	}
	if err := b.conn.Publish(subjectFor(tableID), line); err != nil {
		return fmt.Errorf("eventbus: publish: %w", err)
	}
	return nil
}

// Subscription is a live handle on one table's event subject.
type Subscription struct {
	sub *nats.Subscription
}

// Subscribe invokes onEvent for every event published to tableID's
// subject until the returned Subscription is closed, matching the
// teacher's NatsClient.Subscribe (a callback-driven nats.Conn.Subscribe)
// but decoding into eventschema.Event before handing it to the caller
// instead of leaving raw bytes for the caller to parse.
func (b *Bus) Subscribe(tableID string, onEvent func(eventschema.Event)) (*Subscription, error) {
	sub, err := b.conn.Subscribe(subjectFor(tableID), func(msg *nats.Msg) {
		ev, err := eventschema.Decode(msg.Data)
		if err != nil {
			return
		}
		onEvent(ev)
	})
	if err != nil {
		return nil, fmt.Errorf("eventbus: subscribe: %w", err)
	}
	return &Subscription{sub: sub}, nil
}

func (s *Subscription) Unsubscribe() error {
	return s.sub.Unsubscribe()
}
