package wheel

import (
	crand "crypto/rand"
	"math/big"
	"math/rand"
	"sort"
	"sync"
)

// RandSource supplies the uniform draw behind winner selection. Production
// uses the crypto-backed source; tests inject a seeded one for reproducible
// outcomes.
type RandSource interface {
	// Int63n returns a uniform value in [0, n). n must be > 0.
	Int63n(n int64) int64
}

// NewCryptoSource returns the default RandSource, backed by crypto/rand so
// draw outcomes cannot be predicted from process state.
func NewCryptoSource() RandSource {
	return &cryptoSource{fallback: rand.New(rand.NewSource(rand.Int63()))}
}

type cryptoSource struct {
	mu       sync.Mutex
	fallback *rand.Rand
}

func (s *cryptoSource) Int63n(n int64) int64 {
	v, err := crand.Int(crand.Reader, big.NewInt(n))
	if err != nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.fallback.Int63n(n)
	}
	return v.Int64()
}

// NewSeededSource returns a deterministic RandSource for tests and replayable
// simulations.
func NewSeededSource(seed int64) RandSource {
	return &seededSource{r: rand.New(rand.NewSource(seed))}
}

type seededSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (s *seededSource) Int63n(n int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Int63n(n)
}

// SelectWinner draws one segment index with probability proportional to each
// segment's entry count. It walks a cumulative entry total and binary-searches
// for the drawn ticket, so a participant holding ten thousand entries costs
// the same as one holding a single entry. Returns ErrEmptyPool when the
// segments carry no entries.
func SelectWinner(segments []Segment, src RandSource) (int, error) {
	if len(segments) == 0 {
		return 0, ErrEmptyPool
	}

	cumulative := make([]int64, len(segments))
	var total int64
	for i, seg := range segments {
		total += int64(seg.Entries)
		cumulative[i] = total
	}
	if total == 0 {
		return 0, ErrEmptyPool
	}

	ticket := src.Int63n(total)
	idx := sort.Search(len(cumulative), func(i int) bool { return cumulative[i] > ticket })
	return idx, nil
}

// FindSegment locates the segment for a pre-chosen winner. Selection is
// skipped in that case, but the id must still resolve against the snapshot
// the wheel was built from.
func FindSegment(segments []Segment, participantID string) (int, error) {
	for i, seg := range segments {
		if seg.ParticipantID == participantID {
			return i, nil
		}
	}
	return 0, &WinnerMismatchError{ParticipantID: participantID}
}
