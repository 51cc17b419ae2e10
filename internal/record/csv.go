package record

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mzaytsev/trx-replay-service/internal/models/errs"
	"github.com/mzaytsev/trx-replay-service/internal/models/transaction"
	"github.com/shopspring/decimal"
)

// Input column layout: type, client, tx, amount. The amount column is
// optional for the reference kinds, so rows may be ragged.
const (
	colKind = iota
	colClient
	colTx
	colAmount
)

// CSVSource reads transaction records from CSV input, one row at a time.
// The first row is expected to be a header and is skipped.
type CSVSource struct {
	r      *csv.Reader
	line   int
	header bool
}

// NewCSVSource wraps the given reader into a record source.
func NewCSVSource(r io.Reader) *CSVSource {
	cr := csv.NewReader(r)
	// Amount is optional, so rows have three or four fields.
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	return &CSVSource{r: cr}
}

// Next returns the next record from the input, io.EOF once the input is
// exhausted, or an error matching errs.ErrMalformedRecord for a row that
// cannot be interpreted. Malformed rows do not poison the source; the
// caller may keep calling Next.
func (s *CSVSource) Next() (*transaction.Record, error) {
	for {
		row, err := s.r.Read()
		if err != nil {
			if err == io.EOF {
				return nil, io.EOF
			}
			s.line++
			return nil, s.malformed(err.Error())
		}
		s.line++

		// Skip the header row.
		if !s.header {
			s.header = true
			continue
		}

		return s.parse(row)
	}
}

func (s *CSVSource) parse(row []string) (*transaction.Record, error) {
	if len(row) < 3 || len(row) > 4 {
		return nil, s.malformed(fmt.Sprintf("expected 3 or 4 fields, got %d", len(row)))
	}

	kind, err := transaction.ParseKind(strings.TrimSpace(row[colKind]))
	if err != nil {
		return nil, s.malformed(err.Error())
	}

	client, err := strconv.ParseUint(strings.TrimSpace(row[colClient]), 10, 16)
	if err != nil {
		return nil, s.malformed(fmt.Sprintf("bad client id %q", row[colClient]))
	}

	tx, err := strconv.ParseUint(strings.TrimSpace(row[colTx]), 10, 32)
	if err != nil {
		return nil, s.malformed(fmt.Sprintf("bad transaction id %q", row[colTx]))
	}

	rec := &transaction.Record{
		Kind:   kind,
		Client: transaction.ClientID(client),
		ID:     transaction.ID(tx),
	}

	var rawAmount string
	if len(row) == 4 {
		rawAmount = strings.TrimSpace(row[colAmount])
	}

	switch {
	case kind.CreatesEntry():
		if rawAmount == "" {
			return nil, s.malformed(fmt.Sprintf("%s requires an amount", kind))
		}
		amount, err := decimal.NewFromString(rawAmount)
		if err != nil {
			return nil, s.malformed(fmt.Sprintf("bad amount %q", rawAmount))
		}
		rec.Amount = decimal.NewNullDecimal(amount)
	default:
		// Reference kinds carry no amount of their own.
		if rawAmount != "" {
			return nil, s.malformed(fmt.Sprintf("%s must not carry an amount", kind))
		}
	}

	return rec, nil
}

func (s *CSVSource) malformed(msg string) error {
	return &errs.MalformedRecordError{Line: s.line, Message: msg}
}
