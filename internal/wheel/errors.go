package wheel

import (
	"errors"
	"fmt"
)

// ErrEmptyPool is returned when every participant in the pool has zero
// entries, or the pool itself is empty. Selection and rendering are both
// impossible in that state.
var ErrEmptyPool = errors.New("entry pool has no entries")

// WinnerMismatchError is returned when a pre-chosen winner id does not
// correspond to any segment built from the pool snapshot.
type WinnerMismatchError struct {
	ParticipantID string
}

func (e *WinnerMismatchError) Error() string {
	return fmt.Sprintf("pre-chosen winner %q is not in the entry pool", e.ParticipantID)
}

// RenderError wraps a failure while preparing or drawing frames. Font
// loading failures are recoverable: the engine substitutes the embedded
// default face and continues.
type RenderError struct {
	Stage string
	Err   error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s: %v", e.Stage, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// EncodeError wraps a failure while encoding the animated asset. The engine
// reacts by producing the static fallback; EncodeError only reaches the
// caller when the fallback fails too. Even then the selection stands, so
// the error carries the drawn winner.
type EncodeError struct {
	Winner WinnerRecord
	Err    error
}

func (e *EncodeError) Error() string {
	if e.Winner.ParticipantID != "" {
		return fmt.Sprintf("encode animation for winner %q: %v", e.Winner.ParticipantID, e.Err)
	}
	return fmt.Sprintf("encode animation: %v", e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }
