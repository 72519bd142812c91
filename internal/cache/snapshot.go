// SnapshotStore caches a running round's event log so a disconnected
// client can resync without reading persistence (Mongo round-trip is far
// slower than Redis on a reconnect path). Grounded on the teacher's
// core/infrastructure/realtime/march_queue.go use of Redis as a
// low-latency side channel alongside the authoritative Mongo store,
// applied here to round replay instead of matchmaking queues.
package cache

import (
	"context"
	"fmt"
	"time"

	"mahjongcore/internal/eventschema"
)

const snapshotTTL = 2 * time.Hour

func snapshotKey(tableID string) string {
	return "mahjong:snapshot:" + tableID
}

// SnapshotStore appends a table's events to Redis as they're applied and
// lets a reconnecting client fetch the full replay in one round trip.
type SnapshotStore struct {
	mgr *Manager
}

func NewSnapshotStore(mgr *Manager) *SnapshotStore {
	return &SnapshotStore{mgr: mgr}
}

// Append encodes ev and pushes it onto tableID's replay list, refreshing
// the list's TTL so an abandoned table eventually expires.
func (s *SnapshotStore) Append(ctx context.Context, tableID string, ev eventschema.Event) error {
	line, err := eventschema.Encode(ev)
	if err != nil {
		return err
	}
	key := snapshotKey(tableID)
	if err := s.mgr.cli.RPush(ctx, key, string(line)).Err(); err != nil {
		return fmt.Errorf("cache: append snapshot: %w", err)
	}
	return s.mgr.cli.Expire(ctx, key, snapshotTTL).Err()
}

// Replay returns every event recorded for tableID, in application order.
func (s *SnapshotStore) Replay(ctx context.Context, tableID string) ([]eventschema.Event, error) {
	lines, err := s.mgr.cli.LRange(ctx, snapshotKey(tableID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("cache: replay snapshot: %w", err)
	}
	events := make([]eventschema.Event, 0, len(lines))
	for _, line := range lines {
		ev, err := eventschema.Decode([]byte(line))
		if err != nil {
			return nil, fmt.Errorf("cache: decode snapshot event: %w", err)
		}
		events = append(events, ev)
	}
	return events, nil
}

// Clear drops a table's cached replay, called once the round's outcome is
// durably persisted and the cache copy is no longer needed.
func (s *SnapshotStore) Clear(ctx context.Context, tableID string) error {
	return s.mgr.cli.Del(ctx, snapshotKey(tableID)).Err()
}
