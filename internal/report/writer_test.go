package report_test

import (
	"bytes"
	"testing"

	"github.com/mzaytsev/trx-replay-service/internal/models/account"
	"github.com/mzaytsev/trx-replay-service/internal/report"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteAccounts(t *testing.T) {
	a := account.New(1)
	require.NoError(t, a.Deposit(decimal.RequireFromString("10.05")))
	require.NoError(t, a.Hold(decimal.RequireFromString("4")))

	b := account.New(2)
	b.Locked = true

	var buf bytes.Buffer
	require.NoError(t, report.NewWriter(&buf).WriteAccounts([]*account.Account{a, b}))

	want := "client,available,held,total,locked\n" +
		"1,6.05,4,10.05,false\n" +
		"2,0,0,0,true\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteAccounts_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.NewWriter(&buf).WriteAccounts(nil))

	assert.Equal(t, "client,available,held,total,locked\n", buf.String())
}
