package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/mzaytsev/trx-replay-service/internal/models/account"
)

// Writer renders the final account snapshot as CSV with the columns
// client, available, held, total, locked. Total is derived at emission
// time and always equals available + held.
type Writer struct {
	w *csv.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: csv.NewWriter(w)}
}

// WriteAccounts renders one row per account, preceded by a header row.
func (w *Writer) WriteAccounts(accounts []*account.Account) error {
	if err := w.w.Write([]string{"client", "available", "held", "total", "locked"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, a := range accounts {
		row := []string{
			strconv.FormatUint(uint64(a.Client), 10),
			a.Available.String(),
			a.Held.String(),
			a.Total().String(),
			strconv.FormatBool(a.Locked),
		}
		if err := w.w.Write(row); err != nil {
			return fmt.Errorf("write account %d: %w", a.Client, err)
		}
	}

	w.w.Flush()
	return w.w.Error()
}
