package pricing

// Totals combines hotel cost, fixed cost, extra costs and margin into the
// financial summary of a quote. MarginPercent is display-only and never
// persisted.
type Totals struct {
	Expenses      int
	Total         int
	Remaining     int // negative means overpayment
	MarginPercent float64
}

// ComputeTotals applies the margin-aware formula. The older no-margin
// formula is the degenerate case margin = extraCosts = 0.
func ComputeTotals(hotelTotal, fixedCost, extraCosts, margin, advance int) Totals {
	var t Totals
	t.Expenses = hotelTotal + fixedCost + extraCosts
	t.Total = t.Expenses + margin
	t.Remaining = t.Total - advance
	if t.Total > 0 {
		t.MarginPercent = float64(margin) / float64(t.Total) * 100
	}
	return t
}
