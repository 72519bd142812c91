// Package enginerr is this module's error taxonomy: sentinel values
// grouped by concern, each wrappable with fmt.Errorf's %w for context.
// Grounded on the teacher's runtime/dto/errors.go and
// core/domain/repository/errors.go -- flat var blocks of errors.New
// sentinels grouped by subsystem under a doc comment -- generalized from
// connector/session/matchmaking concerns into the round-engine,
// agent-protocol, and persistence/transport concerns this module carries.
package enginerr

import "errors"

// Reducer / Stage invariant errors, per spec.md §7: an invariant violation
// during Apply is a programming bug, not a recoverable condition. Stage.Apply
// does not check for one and neither returns nor raises these; callers that
// validate externally-sourced events before calling Apply surface these.
var (
	ErrUnknownEventType  = errors.New("enginerr: unknown event type")
	ErrTileNotInHand     = errors.New("enginerr: tile not present in seat's hand")
	ErrMeldTagUnknown    = errors.New("enginerr: unrecognized meld wire tag")
	ErrStageDesync       = errors.New("enginerr: stage snapshot desynchronized from applied events")
)

// Agent-protocol errors, per spec.md §5/§7.
var (
	ErrAgentTimeout     = errors.New("enginerr: agent did not resolve within the configured deadline")
	ErrNoLegalOptions   = errors.New("enginerr: agent was offered an empty option set")
	ErrIllegalSelection = errors.New("enginerr: agent selected an option outside the offered set")
)

// Wall/round errors.
var (
	ErrWallExhausted  = errors.New("enginerr: live wall exhausted")
	ErrDeadWallEmpty  = errors.New("enginerr: dead wall has no further replacement tiles")
	ErrRoundNotActive = errors.New("enginerr: no round is currently in progress")
)

// Configuration errors.
var (
	ErrConfigLoad   = errors.New("enginerr: failed to load configuration")
	ErrConfigInvalid = errors.New("enginerr: configuration failed validation")
)

// Persistence/cache/transport errors, surfaced by internal/persistence,
// internal/cache, internal/rpc, internal/discovery, internal/eventbus.
var (
	ErrRecordNotFound  = errors.New("enginerr: record not found")
	ErrCacheMiss       = errors.New("enginerr: cache miss")
	ErrUnavailable     = errors.New("enginerr: dependency unavailable")
	ErrUnauthenticated = errors.New("enginerr: missing or invalid credentials")
)
