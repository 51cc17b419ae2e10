package engine

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/mzaytsev/trx-replay-service/internal/models/errs"
	"github.com/mzaytsev/trx-replay-service/internal/models/transaction"
	"github.com/mzaytsev/trx-replay-service/pkg/logger"
)

// Source produces transaction records one at a time, in arrival order.
// Next returns io.EOF when the stream is exhausted. A row that could not
// be parsed surfaces as an error matching errs.ErrMalformedRecord; any
// other error is treated as a broken source and aborts the run.
type Source interface {
	Next() (*transaction.Record, error)
}

// Stats summarizes a finished run.
type Stats struct {
	Read      int // records successfully parsed by the source
	Applied   int
	Rejected  int
	Malformed int // rows the source could not parse
}

// Processor drains a record source into a ledger. Rejections are logged
// and skipped; the stream keeps going.
type Processor struct {
	ledger *Ledger
	logger logger.Logger
}

func NewProcessor(ledger *Ledger, logger logger.Logger) (*Processor, error) {
	if ledger == nil {
		return nil, errors.New("nil dependency: ledger")
	}
	return &Processor{ledger: ledger, logger: logger}, nil
}

// Run replays the whole source against the ledger and returns the run
// statistics. It fails only when the source itself breaks or the context
// is canceled; per-record rejections never propagate.
func (p *Processor) Run(ctx context.Context, src Source) (Stats, error) {
	var stats Stats

	for {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		rec, err := src.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return stats, nil
			}
			if errors.Is(err, errs.ErrMalformedRecord) {
				stats.Malformed++
				p.logger.Warnf("skipping unparseable record: %s", err)
				continue
			}
			return stats, fmt.Errorf("read record: %w", err)
		}
		stats.Read++

		if err := p.ledger.Apply(rec); err != nil {
			stats.Rejected++
			p.logger.With(ctx,
				"kind", rec.Kind,
				"tx", rec.ID,
				"client", rec.Client,
			).Warnf("transaction rejected: %s", err)
			continue
		}
		stats.Applied++

		p.logger.With(ctx, "kind", rec.Kind, "tx", rec.ID).
			Debug("transaction applied")
	}
}
