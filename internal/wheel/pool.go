package wheel

import "sort"

// Entry is one participant's stake in the draw. More entries means a
// proportionally wider segment and a proportionally higher win probability.
type Entry struct {
	ParticipantID string
	Label         string
	Entries       int
}

// Pool is an ordered snapshot of the entry counts for one spin. The engine
// never mutates it and nothing in it survives the call; the caller rebuilds
// it from durable state for every spin. Order is preserved as given, so the
// same snapshot always produces the same wheel layout.
type Pool []Entry

// PoolFromCounts builds a pool from a participant -> entries map, sorted by
// participant id so map iteration order cannot leak into the wheel layout.
// The participant id doubles as the label.
func PoolFromCounts(counts map[string]int) Pool {
	ids := make([]string, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	pool := make(Pool, 0, len(ids))
	for _, id := range ids {
		pool = append(pool, Entry{ParticipantID: id, Label: id, Entries: counts[id]})
	}
	return pool
}

// TotalEntries sums the entries of every participant with a positive count.
func (p Pool) TotalEntries() int {
	total := 0
	for _, e := range p {
		if e.Entries > 0 {
			total += e.Entries
		}
	}
	return total
}

// active filters out participants holding no entries. They are excluded from
// both the wheel and the draw.
func (p Pool) active() Pool {
	out := make(Pool, 0, len(p))
	for _, e := range p {
		if e.Entries > 0 {
			out = append(out, e)
		}
	}
	return out
}
