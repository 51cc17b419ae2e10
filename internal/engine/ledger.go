package engine

import (
	"sort"

	"github.com/mzaytsev/trx-replay-service/internal/models/account"
	"github.com/mzaytsev/trx-replay-service/internal/models/errs"
	"github.com/mzaytsev/trx-replay-service/internal/models/transaction"
	"github.com/shopspring/decimal"
)

// Ledger holds the full replay state: every account ever referenced and
// the history of accepted deposits and withdrawals. It is owned by a
// single run and mutated by a single goroutine; Apply fully validates a
// record before touching any state, so a rejected record never leaves a
// partial mutation behind.
type Ledger struct {
	accounts map[transaction.ClientID]*account.Account
	// History index of accepted deposits/withdrawals, the only kinds a
	// dispute may reference. Entries are never deleted.
	entries map[transaction.ID]*transaction.Entry
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{
		accounts: make(map[transaction.ClientID]*account.Account),
		entries:  make(map[transaction.ID]*transaction.Entry),
	}
}

// Apply runs a single record through the state machine. A nil return
// means the record was applied; otherwise the returned error is one of
// the errs sentinels and the ledger is unchanged.
func (l *Ledger) Apply(rec *transaction.Record) error {
	// Accounts come to life on first reference by any kind.
	acct, ok := l.accounts[rec.Client]
	if !ok {
		acct = account.New(rec.Client)
		l.accounts[rec.Client] = acct
	}

	// Deposits and withdrawals record a new history entry, so their id
	// must be fresh. Reference kinds reuse the id of the transaction
	// they dispute, hence the check does not apply to them.
	if rec.Kind.CreatesEntry() {
		if _, exists := l.entries[rec.ID]; exists {
			return errs.ErrDuplicateTransaction
		}
	}

	// A chargeback locks the account against everything that follows.
	if acct.Locked {
		return errs.ErrAccountLocked
	}

	switch rec.Kind {
	case transaction.Deposit:
		amount, err := requireAmount(rec)
		if err != nil {
			return err
		}
		if err := acct.Deposit(amount); err != nil {
			return err
		}
		l.entries[rec.ID] = transaction.NewEntry(rec.Client, amount)

	case transaction.Withdrawal:
		amount, err := requireAmount(rec)
		if err != nil {
			return err
		}
		if err := acct.Withdraw(amount); err != nil {
			return err
		}
		l.entries[rec.ID] = transaction.NewEntry(rec.Client, amount)

	case transaction.Dispute:
		entry, err := l.referencedEntry(rec)
		if err != nil {
			return err
		}
		if !entry.Disputable() {
			return errs.ErrInvalidStateTransition
		}
		if err := acct.Hold(entry.Amount); err != nil {
			return err
		}
		entry.Status = transaction.StatusDisputed

	case transaction.Resolve:
		entry, err := l.referencedEntry(rec)
		if err != nil {
			return err
		}
		if entry.Status != transaction.StatusDisputed {
			return errs.ErrInvalidStateTransition
		}
		if err := acct.Release(entry.Amount); err != nil {
			return err
		}
		entry.Status = transaction.StatusResolved

	case transaction.Chargeback:
		entry, err := l.referencedEntry(rec)
		if err != nil {
			return err
		}
		if entry.Status != transaction.StatusDisputed {
			return errs.ErrInvalidStateTransition
		}
		if err := acct.Chargeback(entry.Amount); err != nil {
			return err
		}
		entry.Status = transaction.StatusChargedBack

	default:
		return errs.ErrMalformedRecord
	}

	return nil
}

// referencedEntry resolves the history entry a dispute, resolve or
// chargeback points at and checks its ownership.
func (l *Ledger) referencedEntry(rec *transaction.Record) (*transaction.Entry, error) {
	if rec.Amount.Valid {
		return nil, errs.ErrMalformedRecord
	}
	entry, ok := l.entries[rec.ID]
	if !ok {
		return nil, errs.ErrUnknownReference
	}
	if entry.Client != rec.Client {
		return nil, errs.ErrClientMismatch
	}
	return entry, nil
}

// Account returns the account of the given client, or nil when the
// client was never referenced.
func (l *Ledger) Account(client transaction.ClientID) *account.Account {
	return l.accounts[client]
}

// Entry returns the history entry recorded under the given id, or nil.
func (l *Ledger) Entry(id transaction.ID) *transaction.Entry {
	return l.entries[id]
}

// Accounts returns every account ever referenced, sorted by client id
// so snapshot output is deterministic.
func (l *Ledger) Accounts() []*account.Account {
	accounts := make([]*account.Account, 0, len(l.accounts))
	for _, a := range l.accounts {
		accounts = append(accounts, a)
	}
	sort.Slice(accounts, func(i, j int) bool {
		return accounts[i].Client < accounts[j].Client
	})
	return accounts
}

func requireAmount(rec *transaction.Record) (decimal.Decimal, error) {
	if !rec.Amount.Valid {
		return decimal.Zero, errs.ErrMalformedRecord
	}
	return rec.Amount.Decimal, nil
}
