package engine_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/mzaytsev/trx-replay-service/internal/engine"
	"github.com/mzaytsev/trx-replay-service/internal/record"
	"github.com/mzaytsev/trx-replay-service/internal/report"
	"github.com/mzaytsev/trx-replay-service/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// replay runs a whole CSV input through the full pipeline and returns
// the snapshot CSV, mimicking how the binary is wired.
func replay(t *testing.T, input string) (string, engine.Stats) {
	t.Helper()

	ledger := engine.NewLedger()
	p, err := engine.NewProcessor(ledger, logger.NewWithZap(zap.NewNop()))
	require.NoError(t, err)

	stats, err := p.Run(context.Background(), record.NewCSVSource(strings.NewReader(input)))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, report.NewWriter(&buf).WriteAccounts(ledger.Accounts()))

	return buf.String(), stats
}

func TestReplay_MultipleClients(t *testing.T) {
	input := strings.Join([]string{
		"type, client, tx, amount",
		"deposit, 1, 1, 1.0",
		"deposit, 2, 2, 2.0",
		"deposit, 1, 3, 2.0",
		"withdrawal, 1, 4, 1.5",
		"withdrawal, 2, 5, 3.0",
	}, "\n")

	out, stats := replay(t, input)

	want := "client,available,held,total,locked\n" +
		"1,1.5,0,1.5,false\n" +
		"2,2,0,2,false\n"
	assert.Equal(t, want, out)
	assert.Equal(t, engine.Stats{Read: 5, Applied: 4, Rejected: 1}, stats)
}

func TestReplay_UnparseableRowsAreSkipped(t *testing.T) {
	input := strings.Join([]string{
		"type, client, tx, amount",
		"deposit, 1, 1, 1.0",
		"garbage line that is not a transaction, at, all",
		"deposit, 1, x, 1.0",
		"deposit, 1, 2, 1.0",
	}, "\n")

	out, stats := replay(t, input)

	want := "client,available,held,total,locked\n" +
		"1,2,0,2,false\n"
	assert.Equal(t, want, out)
	assert.Equal(t, engine.Stats{Read: 2, Applied: 2, Malformed: 2}, stats)
}

func TestReplay_DisputeLifecycle(t *testing.T) {
	input := strings.Join([]string{
		"type, client, tx, amount",
		"deposit, 1, 1, 10",
		"dispute, 1, 1,",
		"resolve, 1, 1,",
		"deposit, 1, 2, 5",
		"dispute, 1, 2,",
		"chargeback, 1, 2,",
		"deposit, 1, 3, 100",
	}, "\n")

	out, stats := replay(t, input)

	// tx 2 charged back (5 gone, account locked), the last deposit
	// bounces off the locked account.
	want := "client,available,held,total,locked\n" +
		"1,10,0,10,true\n"
	assert.Equal(t, want, out)
	assert.Equal(t, engine.Stats{Read: 7, Applied: 6, Rejected: 1}, stats)
}

func TestReplay_ExactDecimalOutput(t *testing.T) {
	input := strings.Join([]string{
		"type, client, tx, amount",
		"deposit, 1, 1, 0.0001",
		"deposit, 1, 2, 0.0002",
	}, "\n")

	out, _ := replay(t, input)

	want := "client,available,held,total,locked\n" +
		"1,0.0003,0,0.0003,false\n"
	assert.Equal(t, want, out)
}
