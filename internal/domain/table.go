package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// ColumnIndex returns the position of name, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Head returns a copy holding at most n rows.
func (t *Table) Head(n int) *Table {
	if n > len(t.Rows) {
		n = len(t.Rows)
	}
	rows := make([][]string, n)
	for i := 0; i < n; i++ {
		rows[i] = append([]string(nil), t.Rows[i]...)
	}
	return &Table{
		Columns: append([]string(nil), t.Columns...),
		Rows:    rows,
	}
}

// Bin is one bar of a histogram. Lower and Upper are set for numeric
// columns only.
type Bin struct {
	Label string   `json:"label"`
	Lower *float64 `json:"lower,omitempty"`
	Upper *float64 `json:"upper,omitempty"`
	Count int      `json:"count"`
}

type Histogram struct {
	Column  string `json:"column"`
	Title   string `json:"title"`
	Numeric bool   `json:"numeric"`
	Bins    []Bin  `json:"bins"`
}

// MaxCount is the height of the tallest bin.
func (h *Histogram) MaxCount() int {
	max := 0
	for _, b := range h.Bins {
		if b.Count > max {
			max = b.Count
		}
	}
	return max
}

// BuildHistogram counts the values of column. Numeric columns are split into
// equal-width bins sized by Sturges' rule; anything else is counted per
// distinct value in first-seen order. Empty cells are ignored.
func BuildHistogram(t *Table, column string) (*Histogram, error) {
	idx := t.ColumnIndex(column)
	if idx < 0 {
		return nil, &ValidationError{Field: InputColumn, Reason: fmt.Sprintf("column %q not found in table", column)}
	}

	var values []string
	for _, row := range t.Rows {
		if idx >= len(row) {
			continue
		}
		v := strings.TrimSpace(row[idx])
		if v == "" {
			continue
		}
		values = append(values, v)
	}

	h := &Histogram{
		Column: column,
		Title:  "Distribution of " + column,
		Bins:   []Bin{},
	}
	if len(values) == 0 {
		return h, nil
	}

	if nums, ok := parseNumbers(values); ok {
		h.Numeric = true
		h.Bins = numericBins(nums)
		return h, nil
	}

	positions := make(map[string]int)
	for _, v := range values {
		if i, seen := positions[v]; seen {
			h.Bins[i].Count++
			continue
		}
		positions[v] = len(h.Bins)
		h.Bins = append(h.Bins, Bin{Label: v, Count: 1})
	}
	return h, nil
}

func parseNumbers(values []string) ([]float64, bool) {
	nums := make([]float64, 0, len(values))
	for _, v := range values {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, false
		}
		nums = append(nums, f)
	}
	return nums, true
}

func numericBins(nums []float64) []Bin {
	lo, hi := nums[0], nums[0]
	for _, n := range nums[1:] {
		lo = math.Min(lo, n)
		hi = math.Max(hi, n)
	}

	if lo == hi {
		return []Bin{{Label: formatBound(lo), Lower: &lo, Upper: &hi, Count: len(nums)}}
	}

	k := int(math.Ceil(math.Log2(float64(len(nums))))) + 1
	if k < 1 {
		k = 1
	}
	width := (hi - lo) / float64(k)

	bins := make([]Bin, k)
	for i := range bins {
		lower := lo + float64(i)*width
		upper := lower + width
		if i == k-1 {
			upper = hi
		}
		bins[i] = Bin{
			Label: formatBound(lower) + " - " + formatBound(upper),
			Lower: &lower,
			Upper: &upper,
		}
	}
	for _, n := range nums {
		i := int((n - lo) / width)
		if i >= k {
			i = k - 1
		}
		bins[i].Count++
	}
	return bins
}

func formatBound(f float64) string {
	return strconv.FormatFloat(f, 'g', 4, 64)
}
