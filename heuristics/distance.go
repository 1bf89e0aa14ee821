// SPDX-License-Identifier: MIT
// Package: heuristics
//
// distance.go — base/distance search shared by BoyarPeralta, SBP and SLP.
//
// Terms:
//   • base     all signals built so far (inputs + gates), values kept locally.
//   • target   a distinct row of weight ≥ 2.
//   • witness  sorted base ids whose XOR equals the target.
//   • distance len(witness) − 1; the target is done at distance 0.
//   • gain     how far one candidate value would lower a target's distance.
//
// Invariant after every absorb: no pair of witness elements XORs to a value
// already in the base. Hence a target at distance ≥ 2 always offers a new
// base candidate (its first witness pair) that lowers total distance, and a
// target at distance 1 is an immediate gate ("easy move"). Total distance
// therefore drops every step and the loop ends within HammingXorCount steps.
//
// Candidates are kept incrementally. Each new signal k indexes only the pairs
// (i, k); each target's gains are recomputed only when its witness changes
// (plus one lookup per step for targets at distance 2). A step then scans the
// summed gains instead of every pair of the base.

package heuristics

import (
	"slices"

	"github.com/bits-and-blooms/bitset"

	"github.com/katalvlaran/xorslp/bitmatrix"
	"github.com/katalvlaran/xorslp/slp"
)

// ranking selects how candidate gates are ordered.
type ranking int

const (
	rankDepthAware  ranking = iota // distance, depth budget, depth, norm, pair
	rankNormFirst                  // distance, norm, pair
	rankStrictDepth                // as rankDepthAware, over candidates within the limit when any exist
)

type target struct {
	words   []uint64
	key     vkey
	witness []int
	pairs   map[vkey][2]int // XOR of witness pairs → positions; nil when stale
	gains   map[vkey]int    // candidate value → distance it removes
	gainAt  int             // distance the gains were computed at
	stale   bool            // witness changed since gains were computed
}

func (t *target) dist() int { return len(t.witness) - 1 }

// pairRef is the preferred base pair producing one candidate value.
type pairRef struct {
	i, j  int
	depth int
}

// score sums the gains of every target for one candidate value: red lowers
// the total distance, sq lowers the sum of squared distances.
type score struct {
	red, sq int
}

type search struct {
	tag        string
	rank       ranking
	depthLimit int
	budget     int
	b          *slp.Builder
	vals       []*bitset.BitSet
	words      [][]uint64
	known      map[vkey]int
	pairs      map[vkey]pairRef // values not in the base, reachable by one gate
	scores     map[vkey]score
	targets    []*target
}

// candidate is one scored base pair.
type candidate struct {
	i, j  int
	total int
	norm  int
	depth int
}

// synthesizeByDistance runs the shared search with the given ranking.
func synthesizeByDistance(tag string, m *bitmatrix.Matrix, rank ranking, o options) (*slp.Program, error) {
	cols := m.Cols()
	s := &search{
		tag:        tag,
		rank:       rank,
		depthLimit: o.depthLimit,
		budget:     o.searchBudget,
		b:          slp.NewBuilder(cols),
		known:      make(map[vkey]int, 2*cols),
		pairs:      make(map[vkey]pairRef, cols*cols),
		scores:     make(map[vkey]score),
	}
	if s.depthLimit == 0 {
		s.depthLimit = AutoDepthLimit(m)
	}
	for i := 0; i < cols; i++ {
		s.addSignal(bitmatrix.Unit(cols, i))
	}

	// 1. Classify rows: zero, single input, or a (deduplicated) target.
	outputs := make([]int, m.Rows())
	rowTarget := make([]int, m.Rows())
	seen := make(map[vkey]int)
	for r := 0; r < m.Rows(); r++ {
		row, _ := m.Row(r)
		rowTarget[r] = -1
		switch row.Count() {
		case 0:
			outputs[r] = slp.Zero
		case 1:
			j, _ := row.NextSet(0)
			outputs[r] = int(j)
		default:
			key := keyOf(row.Words())
			if idx, ok := seen[key]; ok {
				rowTarget[r] = idx
				continue
			}
			t := &target{words: row.Words(), key: key}
			for j, ok := row.NextSet(0); ok; j, ok = row.NextSet(j + 1) {
				t.witness = append(t.witness, int(j))
			}
			seen[key] = len(s.targets)
			rowTarget[r] = len(s.targets)
			s.targets = append(s.targets, t)
			s.rescore(t)
		}
	}

	// 2. Grow the base until every target is reached.
	limit := HammingXorCount(m)
	for steps := 0; ; steps++ {
		if err := o.ctx.Err(); err != nil {
			return nil, heuristicErrorf(tag, err)
		}
		if s.totalDistance() == 0 {
			break
		}
		if steps >= limit {
			return nil, internalf(tag, errNoProgress)
		}

		var a, c int
		if t := s.easyTarget(); t != nil {
			a, c = t.witness[0], t.witness[1]
		} else {
			best, ok := s.bestCandidate()
			if !ok {
				return nil, internalf(tag, errNoProgress)
			}
			a, c = best.i, best.j
		}
		if err := s.addGate(a, c); err != nil {
			return nil, internalf(tag, err)
		}
	}

	// 3. Bind target rows to the signals that reached them.
	for r, idx := range rowTarget {
		if idx < 0 {
			continue
		}
		t := s.targets[idx]
		if t.dist() != 0 {
			return nil, internalf(tag, errNoProgress)
		}
		outputs[r] = t.witness[0]
	}

	p, err := s.b.Finalize(outputs)
	if err != nil {
		return nil, internalf(tag, err)
	}

	return p, nil
}

func (s *search) totalDistance() int {
	total := 0
	for _, t := range s.targets {
		total += t.dist()
	}

	return total
}

// easyTarget returns the first target at distance 1.
func (s *search) easyTarget() *target {
	for _, t := range s.targets {
		if t.dist() == 1 {
			return t
		}
	}

	return nil
}

// addSignal appends v to the base and indexes the pairs it closes.
func (s *search) addSignal(v *bitset.BitSet) (int, vkey) {
	id := len(s.vals)
	w := v.Words()
	key := keyOf(w)
	s.vals = append(s.vals, v)
	s.words = append(s.words, w)
	if _, dup := s.known[key]; !dup {
		s.known[key] = id
	}
	delete(s.pairs, key)

	dk := s.b.DepthOf(id)
	for i := 0; i < id; i++ {
		k := xorKey(s.words[i], w)
		if _, ok := s.known[k]; ok {
			continue
		}
		ref := pairRef{i: i, j: id, depth: 1 + max(s.b.DepthOf(i), dk)}
		if old, ok := s.pairs[k]; ok && !s.preferPair(ref, old) {
			continue
		}
		s.pairs[k] = ref
	}

	return id, key
}

// addGate emits a ⊕ c and updates every witness.
func (s *search) addGate(a, c int) error {
	id, err := s.b.Gate(a, c)
	if err != nil {
		return err
	}
	if id != len(s.vals) {
		return errSignalDrift
	}
	v := bitmatrix.Xor(s.vals[a], s.vals[c])
	_, key := s.addSignal(v)
	vw := v.Words()

	for _, t := range s.targets {
		if t.dist() == 0 {
			continue
		}
		switch {
		case t.key == key:
			t.setWitness([]int{id})
		case t.dist() == 2 && s.reachesInOne(t, vw):
			other := s.known[xorKey(t.words, vw)]
			t.setWitness([]int{id, other})
		default:
			if pos, ok := s.pairTable(t)[key]; ok {
				w := removePositions(t.witness, pos[0], pos[1])
				t.setWitness(append(w, id))
			}
		}
		s.collapse(t)
		if t.stale {
			s.rescore(t)
		} else if t.dist() == 2 {
			s.addGain(t, xorKey(t.words, vw), 1)
		}
	}

	return nil
}

// reachesInOne reports whether target ⊕ v is already a base element.
func (s *search) reachesInOne(t *target, v []uint64) bool {
	_, ok := s.known[xorKey(t.words, v)]

	return ok
}

// collapse restores the witness invariant for t: while some witness pair XORs
// to a known element c, replace the pair by c (cancelling c if already present).
func (s *search) collapse(t *target) {
	for t.dist() > 0 {
		if id, ok := s.known[t.key]; ok {
			t.setWitness([]int{id})
			return
		}
		changed := false
		visits := 0
	scan:
		for a := 0; a < len(t.witness); a++ {
			for c := a + 1; c < len(t.witness); c++ {
				if visits >= s.budget {
					break scan
				}
				visits++
				id, ok := s.known[xorKey(s.words[t.witness[a]], s.words[t.witness[c]])]
				if !ok {
					continue
				}
				w := removePositions(t.witness, a, c)
				if k := slices.Index(w, id); k >= 0 {
					w = slices.Delete(w, k, k+1)
				} else {
					w = append(w, id)
				}
				t.setWitness(w)
				changed = true
				break scan
			}
		}
		if !changed {
			return
		}
	}
}

// pairTable indexes XORs of witness pairs (up to the search budget).
func (s *search) pairTable(t *target) map[vkey][2]int {
	if t.pairs != nil {
		return t.pairs
	}
	t.pairs = make(map[vkey][2]int)
	visits := 0
	for a := 0; a < len(t.witness); a++ {
		for c := a + 1; c < len(t.witness); c++ {
			if visits >= s.budget {
				return t.pairs
			}
			visits++
			key := xorKey(s.words[t.witness[a]], s.words[t.witness[c]])
			if _, dup := t.pairs[key]; !dup {
				t.pairs[key] = [2]int{a, c}
			}
		}
	}

	return t.pairs
}

// rescore withdraws t's gains from the shared scores and recomputes them
// for its current witness:
//   - the target itself removes its whole distance;
//   - at distance 2, any v with t ⊕ v in the base removes 1;
//   - above that, any XOR of a witness pair removes 1.
func (s *search) rescore(t *target) {
	for k, r := range t.gains {
		s.bump(k, -r, -gain(t.gainAt, r))
	}
	t.gains, t.stale = nil, false
	d := t.dist()
	if d == 0 {
		return
	}
	t.gains = make(map[vkey]int)
	t.gainAt = d
	s.addGain(t, t.key, d)
	if d == 2 {
		for _, w := range s.words {
			s.addGain(t, xorKey(t.words, w), 1)
		}
		return
	}
	for k := range s.pairTable(t) {
		s.addGain(t, k, 1)
	}
}

// addGain records that candidate k removes r from t, keeping the larger of
// two gains for the same value.
func (s *search) addGain(t *target, k vkey, r int) {
	old, ok := t.gains[k]
	if ok && old >= r {
		return
	}
	t.gains[k] = r
	s.bump(k, r-old, gain(t.gainAt, r)-gain(t.gainAt, old))
}

func (s *search) bump(k vkey, red, sq int) {
	sc := s.scores[k]
	sc.red += red
	sc.sq += sq
	if sc.red == 0 {
		delete(s.scores, k)
		return
	}
	s.scores[k] = sc
}

// gain is the drop in d² when a distance d shrinks by r.
func gain(d, r int) int { return 2*d*r - r*r }

// bestCandidate returns the highest ranked new value that lowers total
// distance, as the base pair producing it.
func (s *search) bestCandidate() (candidate, bool) {
	current, norm := 0, 0
	for _, t := range s.targets {
		d := t.dist()
		current += d
		norm += d * d
	}

	var best, within candidate
	found, foundWithin := false, false
	for k, sc := range s.scores {
		ref, ok := s.pairs[k]
		if !ok {
			continue
		}
		c := candidate{
			i: ref.i, j: ref.j,
			total: current - sc.red,
			norm:  norm - sc.sq,
			depth: ref.depth,
		}
		if !found || s.better(c, best) {
			best, found = c, true
		}
		if c.depth <= s.depthLimit && (!foundWithin || s.better(c, within)) {
			within, foundWithin = c, true
		}
	}
	if s.rank == rankStrictDepth && foundWithin {
		return within, true
	}

	return best, found
}

// better reports whether a ranks strictly ahead of b. Equal scores go to the
// lowest (i, j).
func (s *search) better(a, b candidate) bool {
	if a.total != b.total {
		return a.total < b.total
	}
	if s.rank != rankNormFirst {
		aIn, bIn := a.depth <= s.depthLimit, b.depth <= s.depthLimit
		if aIn != bIn {
			return aIn
		}
		if a.depth != b.depth {
			return a.depth < b.depth
		}
	}
	if a.norm != b.norm {
		return a.norm > b.norm
	}
	if a.i != b.i {
		return a.i < b.i
	}

	return a.j < b.j
}

// preferPair picks which of two pairs producing the same value stands for
// it: the shallower one under depth-aware rankings, then the lowest (i, j).
func (s *search) preferPair(a, b pairRef) bool {
	if s.rank != rankNormFirst && a.depth != b.depth {
		return a.depth < b.depth
	}
	if a.i != b.i {
		return a.i < b.i
	}

	return a.j < b.j
}

func (t *target) setWitness(w []int) {
	slices.Sort(w)
	t.witness = w
	t.pairs = nil
	t.stale = true
}

// removePositions returns a copy of w without the elements at positions a < c.
func removePositions(w []int, a, c int) []int {
	out := make([]int, 0, len(w))
	for k, id := range w {
		if k != a && k != c {
			out = append(out, id)
		}
	}

	return out
}
