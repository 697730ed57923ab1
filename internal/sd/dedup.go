package sd

import (
	"bytes"

	"github.com/cespare/xxhash/v2"
	"github.com/dantte-lp/go-someip/internal/wire"
)

// optionTable accumulates a packet's shared options array and de-
// duplicates whole option runs: if an entry's run of options already
// appears, byte-for-byte and in order, as a contiguous range somewhere
// in the array, the entry reuses that range's start index instead of
// appending a second copy. This is a wire-size optimization layered on
// top of the format, not part of its required semantics — any entry may
// reference any (index, count) range regardless of who appended it —
// so it never changes the option runs a decoder resolves for each entry,
// only how many options the shared array carries.
//
// Folding is scoped to *different* entries' runs only: a single entry's
// own Run1 and Run2 must never resolve to overlapping ranges, since
// ResolveOptionRuns rejects an entry whose two runs overlap regardless
// of how they got that way. internRun takes the range already claimed
// by the same entry's other run and refuses to match into it, falling
// through to a fresh append instead.
//
// Candidate start positions are found via an xxhash fingerprint of each
// option's encoded bytes, used as a fast pre-filter; the actual match is
// an exact byte comparison over the whole run, so a hash collision can
// only cost a wasted comparison, never a false merge.
type optionTable struct {
	options []Option
	encoded [][]byte
	byHash  map[uint64][]int // first-option hash -> candidate start indices
}

func newOptionTable() *optionTable {
	return &optionTable{byHash: make(map[uint64][]int)}
}

func encodeOptionBytes(o Option) ([]byte, error) {
	w := wire.NewWriter(nil)
	if err := encodeOption(w, o); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// optionRange is a half-open [start, start+count) range into an
// optionTable's options array. A zero count represents "no range" and
// never overlaps anything.
type optionRange struct {
	start, count int
}

func rangesOverlap(a, b optionRange) bool {
	if a.count == 0 || b.count == 0 {
		return false
	}
	return a.start < b.start+b.count && b.start < a.start+a.count
}

// internRun returns the (startIndex, count) of run within the shared
// options array, appending it only if no identical contiguous range is
// already present outside of exclude. exclude is the range the same
// entry's other run already resolved to, if any; a candidate match
// overlapping it is skipped so the two runs of one entry never alias
// the same options. An empty run always resolves to (0, 0).
func (t *optionTable) internRun(run []Option, exclude optionRange) (int, int, error) {
	if len(run) == 0 {
		return 0, 0, nil
	}

	encRun := make([][]byte, len(run))
	for i, o := range run {
		enc, err := encodeOptionBytes(o)
		if err != nil {
			return 0, 0, err
		}
		encRun[i] = enc
	}

	h0 := xxhash.Sum64(encRun[0])
	for _, start := range t.byHash[h0] {
		if rangesOverlap(optionRange{start, len(run)}, exclude) {
			continue
		}
		if t.runMatches(start, encRun) {
			return start, len(run), nil
		}
	}

	start := len(t.options)
	for i, o := range run {
		idx := len(t.options)
		t.options = append(t.options, o)
		t.encoded = append(t.encoded, encRun[i])
		h := xxhash.Sum64(encRun[i])
		t.byHash[h] = append(t.byHash[h], idx)
	}
	return start, len(run), nil
}

func (t *optionTable) runMatches(start int, encRun [][]byte) bool {
	if start+len(encRun) > len(t.options) {
		return false
	}
	for i, enc := range encRun {
		if !bytes.Equal(t.encoded[start+i], enc) {
			return false
		}
	}
	return true
}
