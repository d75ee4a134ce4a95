package model

import "strconv"

// Label relevance of an account on a date
type Label float64

// String one decimal, as in the label files ("1.0")
func (l Label) String() string {
	return strconv.FormatFloat(float64(l), 'f', 1, 64)
}

// LabelScale values assigned for current / previous / next day participation
type LabelScale struct {
	Current  Label
	Previous Label
	Next     Label
}

var (
	// BinaryScale played today vs everything else
	BinaryScale = LabelScale{Current: 1, Previous: 0, Next: 0}
	// TernaryScale played today, played on an adjacent day, not associated
	TernaryScale = LabelScale{Current: 2, Previous: 1, Next: 1}
)

// ScaleFor BinaryScale when binary, TernaryScale otherwise
func ScaleFor(binary bool) LabelScale {
	if binary {
		return BinaryScale
	}
	return TernaryScale
}

// DailyLabels date → account → label
type DailyLabels map[string]map[AccountID]Label
