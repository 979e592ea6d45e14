package rebalance

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/haneulkim-dev/corpuskit/internal/dataset"
)

var validate = validator.New()

// Options configures one rebalancing pass.
type Options struct {
	// LabelColumn holds the class label each row belongs to.
	LabelColumn string `validate:"required"`

	// GroupColumn holds the grouping key. When set, whole groups are kept
	// or dropped together (the grouped policy); when empty, rows are
	// subsampled individually (the row policy).
	GroupColumn string

	// Ratio scales the smallest class count into the per-class cap:
	// cap = ceil(smallest * Ratio). Must be positive.
	Ratio float64 `validate:"gt=0"`

	// Seed makes sampling reproducible. Zero seeds from the clock.
	Seed int64
}

// Validate reports whether the options are usable.
func (o Options) Validate() error {
	if err := validate.Struct(o); err != nil {
		return fmt.Errorf("invalid rebalance options: %w", err)
	}
	return nil
}

// ClassSummary describes one label before and after sampling.
type ClassSummary struct {
	Label        string
	RowsBefore   int
	RowsAfter    int
	GroupsBefore int // zero under the row policy
	GroupsAfter  int // zero under the row policy
}

// Summary describes a completed rebalancing pass.
type Summary struct {
	// Grouped reports which policy ran.
	Grouped bool

	// Cap is the per-class ceiling: ceil(smallest class count * ratio),
	// counting distinct grouping keys under the grouped policy and raw
	// rows under the row policy.
	Cap int

	// NullDropped counts rows discarded for a null label or grouping key.
	NullDropped int

	RowsIn  int
	RowsOut int

	// Classes lists every label in first-seen order.
	Classes []ClassSummary
}

// class gathers one label's rows (and, under the grouped policy, its
// distinct grouping keys) in source order.
type class struct {
	label   string
	rows    []int
	keys    []string
	keySeen map[string]bool
}

// Resample caps every class of the table at ceil(smallest class * ratio)
// and returns the subsampled table plus a per-class summary.
//
// With opts.GroupColumn set, classes are measured in distinct grouping
// keys and sampling keeps or drops whole groups; otherwise classes are
// measured in rows and rows are dropped individually. Kept rows stay in
// their original relative order within each label; labels are emitted in
// first-seen order. Rows with a null label or grouping key are dropped
// before counting.
func Resample(table *dataset.Table, opts Options) (*dataset.Table, *Summary, error) {
	if err := opts.Validate(); err != nil {
		return nil, nil, err
	}

	grouped := opts.GroupColumn != ""
	labelIdx, groupIdx, err := columnIndexes(table, opts, grouped)
	if err != nil {
		return nil, nil, err
	}

	summary := &Summary{Grouped: grouped, RowsIn: len(table.Rows)}
	var classes []*class
	byLabel := make(map[string]*class)
	for i, row := range table.Rows {
		label, ok := cellKey(row, labelIdx)
		if !ok {
			summary.NullDropped++
			continue
		}
		var key string
		if grouped {
			key, ok = cellKey(row, groupIdx)
			if !ok {
				summary.NullDropped++
				continue
			}
		}

		c := byLabel[label]
		if c == nil {
			c = &class{label: label, keySeen: make(map[string]bool)}
			byLabel[label] = c
			classes = append(classes, c)
		}
		c.rows = append(c.rows, i)
		if grouped && !c.keySeen[key] {
			c.keySeen[key] = true
			c.keys = append(c.keys, key)
		}
	}
	if len(classes) == 0 {
		return nil, nil, errors.New("dataset has no rows to rebalance")
	}

	smallest := math.MaxInt
	for _, c := range classes {
		n := len(c.rows)
		if grouped {
			n = len(c.keys)
		}
		if n < smallest {
			smallest = n
		}
	}
	summary.Cap = int(math.Ceil(float64(smallest) * opts.Ratio))

	rng := newRand(opts.Seed)
	out := &dataset.Table{Columns: table.Columns}
	for _, c := range classes {
		var kept []int
		if grouped {
			kept = sampleGroups(table, c, groupIdx, summary.Cap, rng)
		} else {
			kept = sampleRows(c, summary.Cap, rng)
		}

		cs := ClassSummary{
			Label:      c.label,
			RowsBefore: len(c.rows),
			RowsAfter:  len(kept),
		}
		if grouped {
			cs.GroupsBefore = len(c.keys)
			cs.GroupsAfter = min(len(c.keys), summary.Cap)
		}
		summary.Classes = append(summary.Classes, cs)

		for _, ri := range kept {
			out.Rows = append(out.Rows, table.Rows[ri])
		}
	}
	summary.RowsOut = len(out.Rows)
	return out, summary, nil
}

// sampleGroups draws up to limit grouping keys without replacement and
// keeps every row of a drawn key, in source order.
func sampleGroups(table *dataset.Table, c *class, groupIdx, limit int, rng *rand.Rand) []int {
	n := min(len(c.keys), limit)
	selected := make(map[string]bool, n)
	for _, ki := range rng.Perm(len(c.keys))[:n] {
		selected[c.keys[ki]] = true
	}

	var kept []int
	for _, ri := range c.rows {
		key, _ := cellKey(table.Rows[ri], groupIdx)
		if selected[key] {
			kept = append(kept, ri)
		}
	}
	return kept
}

// sampleRows draws up to limit of the class's rows without replacement,
// preserving their relative order.
func sampleRows(c *class, limit int, rng *rand.Rand) []int {
	n := min(len(c.rows), limit)
	picked := rng.Perm(len(c.rows))[:n]
	slices.Sort(picked)

	kept := make([]int, n)
	for i, p := range picked {
		kept[i] = c.rows[p]
	}
	return kept
}

func columnIndexes(table *dataset.Table, opts Options, grouped bool) (labelIdx, groupIdx int, err error) {
	var missing []string
	labelIdx, ok := table.ColumnIndex(opts.LabelColumn)
	if !ok {
		missing = append(missing, opts.LabelColumn)
	}
	groupIdx = -1
	if grouped {
		groupIdx, ok = table.ColumnIndex(opts.GroupColumn)
		if !ok {
			missing = append(missing, opts.GroupColumn)
		}
	}
	if len(missing) > 0 {
		return 0, 0, fmt.Errorf("dataset is %w: %s", dataset.ErrMissingColumns, strings.Join(missing, ", "))
	}
	return labelIdx, groupIdx, nil
}

// cellKey returns the comparable text of a cell, reporting nulls.
func cellKey(row []dataset.Cell, i int) (string, bool) {
	if i < 0 || i >= len(row) || row[i].Null {
		return "", false
	}
	return row[i].Text, true
}

func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
}
