package data

import (
	"fmt"
	"time"
)

// Index is an ordered sequence of per-row labels attached to a data
// container. The recognized forms are a consecutive integer range, raw
// integer labels (validated to be consecutive during preprocessing), evenly
// spaced calendar timestamps, and hierarchical multi-level labels, which are
// recognized only to be rejected.
type Index interface {
	Len() int
	// Equal reports whether the other index carries the same labels.
	Equal(other Index) bool

	isIndex()
}

// RangeIndex is a gap-free integer index Start, Start+1, ..., Start+N-1.
type RangeIndex struct {
	Start int
	N     int
}

func (RangeIndex) isIndex() {}

func (ix RangeIndex) Len() int { return ix.N }

func (ix RangeIndex) Equal(other Index) bool {
	switch o := other.(type) {
	case RangeIndex:
		return ix == o
	case IntIndex:
		r, err := o.toRange()
		return err == nil && ix == r
	}
	return false
}

// IntIndex carries arbitrary integer row labels. Preprocessing accepts it
// only when the labels are strictly consecutive, in which case it collapses
// to the equivalent RangeIndex.
type IntIndex struct {
	Labels []int
}

func (IntIndex) isIndex() {}

func (ix IntIndex) Len() int { return len(ix.Labels) }

func (ix IntIndex) Equal(other Index) bool {
	r, err := ix.toRange()
	if err != nil {
		o, ok := other.(IntIndex)
		if !ok {
			return false
		}
		if len(o.Labels) != len(ix.Labels) {
			return false
		}
		for i, label := range ix.Labels {
			if o.Labels[i] != label {
				return false
			}
		}
		return true
	}
	return r.Equal(other)
}

// toRange validates that the labels increase in steps of exactly one.
func (ix IntIndex) toRange() (RangeIndex, error) {
	for i := 1; i < len(ix.Labels); i++ {
		if ix.Labels[i]-ix.Labels[i-1] != 1 {
			return RangeIndex{}, fmt.Errorf(
				"label %d follows %d at position %d: %w",
				ix.Labels[i], ix.Labels[i-1], i, ErrMalformedIndex)
		}
	}
	start := 0
	if len(ix.Labels) > 0 {
		start = ix.Labels[0]
	}
	return RangeIndex{Start: start, N: len(ix.Labels)}, nil
}

// TimeIndex is a calendar-timestamp index. Freq is the sampling period; a
// zero Freq means the frequency was not recorded and will be inferred from
// the label spacing during preprocessing.
type TimeIndex struct {
	Times []time.Time
	Freq  time.Duration
}

func (TimeIndex) isIndex() {}

func (ix TimeIndex) Len() int { return len(ix.Times) }

func (ix TimeIndex) Equal(other Index) bool {
	o, ok := other.(TimeIndex)
	if !ok {
		return false
	}
	if len(o.Times) != len(ix.Times) {
		return false
	}
	for i, t := range ix.Times {
		if !o.Times[i].Equal(t) {
			return false
		}
	}
	return true
}

// inferFreq estimates the sampling period from the first label spacing.
func (ix TimeIndex) inferFreq() time.Duration {
	if len(ix.Times) < 2 {
		return 0
	}
	return ix.Times[1].Sub(ix.Times[0])
}

// MultiIndex is a hierarchical multi-level row-label set, as found on panel
// data. It is not supported; preprocessing always rejects it.
type MultiIndex struct {
	Levels [][]string
}

func (MultiIndex) isIndex() {}

func (ix MultiIndex) Len() int {
	if len(ix.Levels) == 0 {
		return 0
	}
	return len(ix.Levels[0])
}

func (ix MultiIndex) Equal(other Index) bool {
	o, ok := other.(MultiIndex)
	if !ok {
		return false
	}
	if len(o.Levels) != len(ix.Levels) {
		return false
	}
	for i, level := range ix.Levels {
		if len(o.Levels[i]) != len(level) {
			return false
		}
		for j, label := range level {
			if o.Levels[i][j] != label {
				return false
			}
		}
	}
	return true
}
