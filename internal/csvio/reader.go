// Package csvio decodes the transaction record stream and encodes final
// account snapshots. It is deliberately thin: all settlement policy lives in
// the engine and processor packages.
package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/payrun/internal/models"
)

// ReadTransactions decodes the full input stream.
//
// The header row names the columns (type, client, tx, amount) in any order.
// Fields are trimmed of surrounding whitespace and the type is matched
// case-insensitively. A blank or malformed amount decodes as absent rather
// than failing the run; a malformed type, client or tx fails the whole run,
// as does any CSV-level read error.
func ReadTransactions(r io.Reader) ([]models.Transaction, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	// Dispute-family rows routinely omit the trailing amount column.
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	cols, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var txs []models.Transaction
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}

		tx, err := parseRecord(record, cols)
		if err != nil {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		txs = append(txs, tx)
	}

	return txs, nil
}

// columns holds the position of each named field in the header.
type columns struct {
	typ, client, tx, amount int
}

func columnIndex(header []string) (columns, error) {
	cols := columns{typ: -1, client: -1, tx: -1, amount: -1}
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "type":
			cols.typ = i
		case "client":
			cols.client = i
		case "tx":
			cols.tx = i
		case "amount":
			cols.amount = i
		}
	}
	if cols.typ < 0 || cols.client < 0 || cols.tx < 0 {
		return cols, fmt.Errorf("header must name type, client and tx columns, got %v", header)
	}
	return cols, nil
}

func parseRecord(record []string, cols columns) (models.Transaction, error) {
	var tx models.Transaction

	typ, err := models.ParseTxType(field(record, cols.typ))
	if err != nil {
		return tx, err
	}

	client, err := strconv.ParseUint(field(record, cols.client), 10, 16)
	if err != nil {
		return tx, fmt.Errorf("invalid client id %q", field(record, cols.client))
	}

	txID, err := strconv.ParseUint(field(record, cols.tx), 10, 32)
	if err != nil {
		return tx, fmt.Errorf("invalid tx id %q", field(record, cols.tx))
	}

	tx = models.Transaction{
		Type:     typ,
		ClientID: uint16(client),
		TxID:     uint32(txID),
		Amount:   parseAmount(field(record, cols.amount)),
	}
	return tx, nil
}

// field returns the trimmed value at idx, or "" when the row is too short or
// the column is absent from the header.
func field(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

// parseAmount treats anything that is not a valid decimal as absent. The
// settlement rules already handle absent amounts; failing the run over one
// blank field would be stricter than the record format requires.
func parseAmount(s string) *decimal.Decimal {
	if s == "" {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	return &d
}
