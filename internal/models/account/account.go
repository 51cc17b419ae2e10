package account

import (
	"github.com/mzaytsev/trx-replay-service/internal/models/errs"
	"github.com/mzaytsev/trx-replay-service/internal/models/transaction"
	"github.com/shopspring/decimal"
)

// Account is the per-client balance state.
//
// All mutations go through the methods below; each method validates its
// preconditions and applies the whole mutation in one step, so a returned
// error guarantees no balance changed. Business rules that involve the
// transaction history (which entry a dispute references, its status)
// live in the engine, not here.
type Account struct {
	Client    transaction.ClientID
	Available decimal.Decimal
	Held      decimal.Decimal
	Locked    bool
}

// New creates an empty unlocked account.
func New(client transaction.ClientID) *Account {
	return &Account{
		Client:    client,
		Available: decimal.Zero,
		Held:      decimal.Zero,
	}
}

// Total is the derived overall balance: available + held.
func (a *Account) Total() decimal.Decimal {
	return a.Available.Add(a.Held)
}

// Deposit credits available funds.
func (a *Account) Deposit(amount decimal.Decimal) error {
	if err := validAmount(amount); err != nil {
		return err
	}
	a.Available = a.Available.Add(amount)
	return nil
}

// Withdraw debits available funds. Fails with errs.ErrInsufficientFunds
// when the available balance does not cover the amount.
func (a *Account) Withdraw(amount decimal.Decimal) error {
	if err := validAmount(amount); err != nil {
		return err
	}
	if a.Available.LessThan(amount) {
		return errs.ErrInsufficientFunds
	}
	a.Available = a.Available.Sub(amount)
	return nil
}

// Hold freezes funds pending dispute resolution. The available balance
// may go negative here: for a disputed withdrawal the funds have already
// left the account.
func (a *Account) Hold(amount decimal.Decimal) error {
	if err := validAmount(amount); err != nil {
		return err
	}
	a.Available = a.Available.Sub(amount)
	a.Held = a.Held.Add(amount)
	return nil
}

// Release returns held funds to available after a resolved dispute.
func (a *Account) Release(amount decimal.Decimal) error {
	if err := validAmount(amount); err != nil {
		return err
	}
	a.Held = a.Held.Sub(amount)
	a.Available = a.Available.Add(amount)
	return nil
}

// Chargeback withdraws held funds entirely and locks the account for good.
func (a *Account) Chargeback(amount decimal.Decimal) error {
	if err := validAmount(amount); err != nil {
		return err
	}
	a.Held = a.Held.Sub(amount)
	a.Locked = true
	return nil
}

func validAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return errs.ErrNegativeAmount
	}
	return nil
}
