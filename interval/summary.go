package interval

import (
	"github.com/biogo/store/llrb"
)

// Summary describes a set of candidate intervals.
type Summary struct {
	// N is the number of input intervals.
	N int
	// Merged is the number of intervals after overlapping or adjacent
	// intervals on the same chromosome are unioned.
	Merged int
	// Bases is the total span of the union.
	Bases int
}

// span orders intervals by (chrom, start, end) for the llrb tree.
type span Entry

func (s span) Compare(c llrb.Comparable) int {
	o := c.(span)
	switch {
	case s.Chrom < o.Chrom:
		return -1
	case s.Chrom > o.Chrom:
		return 1
	case s.Start != o.Start:
		return s.Start - o.Start
	default:
		return s.End - o.End
	}
}

// Summarize computes union statistics over entries.  Input order does not
// matter; intervals are visited in sorted order via an llrb tree.
func Summarize(entries []Entry) Summary {
	tree := llrb.Tree{}
	for _, e := range entries {
		tree.Insert(span(e))
	}
	summary := Summary{N: len(entries)}
	var cur span
	open := false
	tree.Do(func(item llrb.Comparable) bool {
		s := item.(span)
		if open && s.Chrom == cur.Chrom && s.Start <= cur.End {
			if s.End > cur.End {
				cur.End = s.End
			}
			return false
		}
		if open {
			summary.Merged++
			summary.Bases += cur.End - cur.Start
		}
		cur, open = s, true
		return false
	})
	if open {
		summary.Merged++
		summary.Bases += cur.End - cur.Start
	}
	return summary
}
