package transaction

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ID identifies a transaction. Ids are unique across the whole input
// stream, not per client.
type ID uint32

// ClientID identifies the account a transaction belongs to.
type ClientID uint16

// Kind is the transaction type as it appears in the input.
type Kind string

const (
	Deposit    Kind = "deposit"
	Withdrawal Kind = "withdrawal"
	Dispute    Kind = "dispute"
	Resolve    Kind = "resolve"
	Chargeback Kind = "chargeback"
)

// ParseKind converts an input token into a Kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case Deposit, Withdrawal, Dispute, Resolve, Chargeback:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("unknown transaction type %q", s)
	}
}

// CreatesEntry reports whether the kind records a new ledger entry.
// Only such entries can later be referenced by a dispute.
func (k Kind) CreatesEntry() bool {
	return k == Deposit || k == Withdrawal
}

// References reports whether the kind references a prior transaction
// by id instead of carrying an amount of its own.
func (k Kind) References() bool {
	return k == Dispute || k == Resolve || k == Chargeback
}

// Record is a single validated unit of input.
// Amount is set for deposits and withdrawals and absent otherwise.
type Record struct {
	Kind   Kind
	Client ClientID
	ID     ID
	Amount decimal.NullDecimal
}

// Status is the dispute lifecycle state of a ledger entry.
//
// The only legal transitions are ok -> disputed -> {resolved, charged_back}.
// A resolved entry may re-enter disputed via a new dispute; charged_back
// is terminal.
type Status string

const (
	StatusOk          Status = "ok"
	StatusDisputed    Status = "disputed"
	StatusResolved    Status = "resolved"
	StatusChargedBack Status = "charged_back"
)

// Entry is the recorded outcome of an accepted deposit or withdrawal,
// kept in the history index so later disputes can reference it.
type Entry struct {
	Client ClientID
	Amount decimal.Decimal
	Status Status
}

// NewEntry records a freshly applied deposit or withdrawal.
func NewEntry(client ClientID, amount decimal.Decimal) *Entry {
	return &Entry{Client: client, Amount: amount, Status: StatusOk}
}

// Disputable reports whether a new dispute may be opened against the entry.
func (e *Entry) Disputable() bool {
	return e.Status == StatusOk || e.Status == StatusResolved
}
