package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/mmynk/payrun/internal/models"
)

// WriteAccounts encodes one row per account. Row order follows map iteration
// order and is unspecified; consumers must key on the client column.
func WriteAccounts(w io.Writer, accounts map[uint16]*models.Account) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"client", "available", "held", "total", "locked"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, acc := range accounts {
		row := []string{
			strconv.FormatUint(uint64(acc.ClientID), 10),
			acc.Available.String(),
			acc.Held.String(),
			acc.Total.String(),
			strconv.FormatBool(acc.Locked),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write account %d: %w", acc.ClientID, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}
	return nil
}
