package report

import "fmt"

// Diagnostic codes. Statement generation never aborts on bad ledger
// data; conditions that would understate or skew totals are recorded
// here and carried in the statement metadata.
const (
	DiagValuationUnavailable  = "valuation_unavailable"
	DiagUnbalancedTransaction = "unbalanced_transaction"
	DiagStructuralAnomaly     = "structural_anomaly"
	DiagCurrencyFallback      = "currency_fallback"
)

// Diagnostic is one recoverable condition encountered while building a
// statement.
type Diagnostic struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (d Diagnostic) String() string {
	return d.Code + ": " + d.Message
}

// addDiag records a diagnostic, deduplicating identical entries (one
// unbalanced transaction touches several accounts but should be
// reported once).
func (b *Builder) addDiag(code, format string, args ...any) {
	d := Diagnostic{Code: code, Message: fmt.Sprintf(format, args...)}
	key := d.String()
	if b.seen[key] {
		return
	}
	b.seen[key] = true
	b.diags = append(b.diags, d)
}
