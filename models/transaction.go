package models

import "time"

// TransactionType distinguishes money going out from money coming in.
type TransactionType string

const (
	TypeExpense TransactionType = "expense"
	TypeIncome  TransactionType = "income"
)

// Transaction is a single parsed spending or income record. Amounts are
// whole KRW. OriginalInput keeps the raw text the parser consumed so the
// record can be audited later.
type Transaction struct {
	ID            string          `json:"id"`
	Type          TransactionType `json:"type"`
	Amount        int64           `json:"amount"`
	Category      string          `json:"category"`
	Description   string          `json:"description"`
	OriginalInput string          `json:"original_input"`
	OccurredAt    time.Time       `json:"occurred_at"`
}

// Day returns the calendar date of the transaction as YYYY-MM-DD,
// used for day-bucketing the spend counter.
func (t Transaction) Day() string {
	return t.OccurredAt.Format("2006-01-02")
}

// Signed returns the transaction's contribution to daily spend:
// expenses count positive, income negative.
func (t Transaction) Signed() int64 {
	if t.Type == TypeIncome {
		return -t.Amount
	}
	return t.Amount
}

// ParseResult is the output of the NLP step, consumed to build a
// Transaction. Confidence is advisory metadata only.
type ParseResult struct {
	Type        TransactionType `json:"type"`
	Amount      int64           `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Confidence  float64         `json:"confidence"`
}
