package tuner

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/boltzmannbrain/bb/model"
)

// spec is a serialised convex-program specification ready to be written
// to the solver child process's stdin (spec §4.3's wire format), plus the
// bookkeeping needed to interpret its response.
type spec struct {
	bytes      []byte
	numFreqs   int
	typeOrder  []string // the real (non-synthetic) type names, response y order
	seqOrder   []string // synthetic sequence-type element names, in block order
	freqIndex  map[string]int
}

// seqKey joins a type name and constructor name into the key
// assignFrequencyIndices and writeSpec both use to look up a
// constructor's frequency index.
func seqKey(typeName, ctorName string) string {
	return typeName + "\x00" + ctorName
}

func assignFrequencyIndices(s *model.System) map[string]int {
	idx := make(map[string]int)
	n := 0
	for _, t := range s.Order {
		for _, c := range s.Types[t] {
			if c.Marked() {
				idx[seqKey(t, c.Name)] = n
				n++
			}
		}
	}
	return idx
}

// seqElements returns the distinct types referenced via `List t`
// anywhere in s, sorted for determinism — the same synthetic-vertex set
// the analyzer's dependency graph and the planner's SeqPlan list use.
func seqElements(s *model.System) []string {
	seen := make(map[string]bool)
	for _, c := range s.AllConstructors() {
		for _, a := range c.Args {
			if a.IsList() {
				seen[a.Type] = true
			}
		}
	}
	out := make([]string, 0, len(seen))
	for e := range seen {
		out = append(out, e)
	}
	sort.Strings(out)
	return out
}

// writeSpec renders s into the wire format spec §4.3 describes: a header
// line, the frequencies vector, then one constructor-count-and-vectors
// block per declared type, then a two-constructor SEQ(x) = 1 + x·SEQ(x)
// block per synthetic sequence type.
func writeSpec(s *model.System) *spec {
	freqIndex := assignFrequencyIndices(s)
	typeOrder := append([]string(nil), s.Order...)
	seqOrder := seqElements(s)

	typeIndex := make(map[string]int, len(typeOrder))
	for i, t := range typeOrder {
		typeIndex[t] = i
	}
	seqIndex := make(map[string]int, len(seqOrder))
	for i, e := range seqOrder {
		seqIndex[e] = i
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%d %d\n", len(typeOrder)+len(seqOrder), len(freqIndex))

	freqValues := make([]float64, len(freqIndex))
	for _, t := range typeOrder {
		for _, c := range s.Types[t] {
			if c.Marked() {
				freqValues[freqIndex[seqKey(t, c.Name)]] = *c.Frequency
			}
		}
	}
	for i, v := range freqValues {
		if i > 0 {
			buf.WriteByte(' ')
		}
		fmt.Fprintf(&buf, "%g", v)
	}
	buf.WriteByte('\n')

	for _, t := range typeOrder {
		cs := s.Types[t]
		fmt.Fprintf(&buf, "%d\n", len(cs))
		for _, c := range cs {
			writeConstructorVector(&buf, c, seqKey(t, c.Name), freqIndex, typeIndex, seqIndex)
		}
	}

	for _, elem := range seqOrder {
		writeSeqBlock(&buf, elem, len(freqIndex), typeIndex, seqIndex)
	}

	return &spec{
		bytes:     buf.Bytes(),
		numFreqs:  len(freqIndex),
		typeOrder: typeOrder,
		seqOrder:  seqOrder,
		freqIndex: freqIndex,
	}
}

func writeConstructorVector(buf *bytes.Buffer, c model.Constructor, key string, freqIndex, typeIndex, seqIndex map[string]int) {
	freqOneHot := -1
	if idx, ok := freqIndex[key]; ok {
		freqOneHot = idx
	}

	tCounts := make([]int, len(typeIndex))
	sCounts := make([]int, len(seqIndex))
	for _, a := range c.Args {
		if a.IsList() {
			sCounts[seqIndex[a.Type]]++
		} else {
			tCounts[typeIndex[a.Type]]++
		}
	}
	writeVector(buf, c.Weight, len(freqIndex), freqOneHot, tCounts, sCounts)
}

// writeSeqBlock emits SEQ(x) = 1 + x·SEQ(x) as two constructor vectors:
// an empty-sequence constructor with no references, and a cons
// constructor referencing the element type once (a `t` count) and the
// sequence type itself once (an `s` count, the recursive tail).
func writeSeqBlock(buf *bytes.Buffer, elem string, numFreqs int, typeIndex, seqIndex map[string]int) {
	fmt.Fprintf(buf, "2\n")
	writeVector(buf, 0, numFreqs, -1, make([]int, len(typeIndex)), make([]int, len(seqIndex)))

	tCounts := make([]int, len(typeIndex))
	if i, ok := typeIndex[elem]; ok {
		tCounts[i] = 1
	}
	sCounts := make([]int, len(seqIndex))
	sCounts[seqIndex[elem]] = 1
	writeVector(buf, 0, numFreqs, -1, tCounts, sCounts)
}

// writeVector writes one `[w, f_1..f_D, t_1..t_T, s_1..s_Σ]` row. If
// freqOneHot is >= 0, position freqOneHot of the f-vector is set to 1;
// otherwise the f-vector is all zero.
func writeVector(buf *bytes.Buffer, weight, numFreqs, freqOneHot int, tCounts, sCounts []int) {
	fmt.Fprintf(buf, "%d", weight)
	for i := 0; i < numFreqs; i++ {
		v := 0
		if i == freqOneHot {
			v = 1
		}
		fmt.Fprintf(buf, " %d", v)
	}
	for _, n := range tCounts {
		fmt.Fprintf(buf, " %d", n)
	}
	for _, n := range sCounts {
		fmt.Fprintf(buf, " %d", n)
	}
	buf.WriteByte('\n')
}
