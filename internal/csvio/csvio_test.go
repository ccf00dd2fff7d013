package csvio

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mmynk/payrun/internal/models"
)

func TestReadTransactions(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantErr  bool
		validate func(t *testing.T, txs []models.Transaction)
	}{
		{
			name: "well-formed stream",
			input: "type,client,tx,amount\n" +
				"deposit,1,1,1.05\n" +
				"withdrawal,1,2,0.5\n" +
				"dispute,1,1,\n",
			validate: func(t *testing.T, txs []models.Transaction) {
				if len(txs) != 3 {
					t.Fatalf("got %d transactions, want 3", len(txs))
				}
				if txs[0].Type != models.TxDeposit || txs[0].ClientID != 1 || txs[0].TxID != 1 {
					t.Errorf("unexpected first record: %+v", txs[0])
				}
				if txs[0].Amount == nil || !txs[0].Amount.Equal(decimal.RequireFromString("1.05")) {
					t.Errorf("first amount = %v, want 1.05", txs[0].Amount)
				}
				if txs[2].Type != models.TxDispute {
					t.Errorf("third type = %v, want dispute", txs[2].Type)
				}
				if txs[2].Amount != nil {
					t.Errorf("dispute amount = %v, want absent", txs[2].Amount)
				}
			},
		},
		{
			name: "whitespace and mixed case are tolerated",
			input: "type, client, tx, amount\n" +
				" Deposit , 5 , 9 , 2.5 \n",
			validate: func(t *testing.T, txs []models.Transaction) {
				if len(txs) != 1 {
					t.Fatalf("got %d transactions, want 1", len(txs))
				}
				if txs[0].Type != models.TxDeposit || txs[0].ClientID != 5 || txs[0].TxID != 9 {
					t.Errorf("unexpected record: %+v", txs[0])
				}
				if txs[0].Amount == nil || !txs[0].Amount.Equal(decimal.RequireFromString("2.5")) {
					t.Errorf("amount = %v, want 2.5", txs[0].Amount)
				}
			},
		},
		{
			name: "dispute row without amount column",
			input: "type,client,tx,amount\n" +
				"deposit,1,1,3.0\n" +
				"dispute,1,1\n",
			validate: func(t *testing.T, txs []models.Transaction) {
				if len(txs) != 2 {
					t.Fatalf("got %d transactions, want 2", len(txs))
				}
				if txs[1].Amount != nil {
					t.Errorf("short-row amount = %v, want absent", txs[1].Amount)
				}
			},
		},
		{
			name: "malformed amount decodes as absent",
			input: "type,client,tx,amount\n" +
				"deposit,1,1,not-a-number\n",
			validate: func(t *testing.T, txs []models.Transaction) {
				if len(txs) != 1 {
					t.Fatalf("got %d transactions, want 1", len(txs))
				}
				if txs[0].Amount != nil {
					t.Errorf("amount = %v, want absent", txs[0].Amount)
				}
			},
		},
		{
			name: "reordered header columns",
			input: "tx,type,amount,client\n" +
				"7,withdrawal,1.25,3\n",
			validate: func(t *testing.T, txs []models.Transaction) {
				if len(txs) != 1 {
					t.Fatalf("got %d transactions, want 1", len(txs))
				}
				tx := txs[0]
				if tx.Type != models.TxWithdrawal || tx.ClientID != 3 || tx.TxID != 7 {
					t.Errorf("unexpected record: %+v", tx)
				}
			},
		},
		{
			name:    "unknown type is fatal",
			input:   "type,client,tx,amount\ntransfer,1,1,1.0\n",
			wantErr: true,
		},
		{
			name:    "malformed client id is fatal",
			input:   "type,client,tx,amount\ndeposit,abc,1,1.0\n",
			wantErr: true,
		},
		{
			name:    "client id above uint16 is fatal",
			input:   "type,client,tx,amount\ndeposit,70000,1,1.0\n",
			wantErr: true,
		},
		{
			name:    "missing header columns is fatal",
			input:   "kind,who,id\ndeposit,1,1\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txs, err := ReadTransactions(strings.NewReader(tt.input))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadTransactions failed: %v", err)
			}
			tt.validate(t, txs)
		})
	}
}

func TestWriteAccounts(t *testing.T) {
	acc := models.NewAccount(1)
	acc.Available = decimal.RequireFromString("1.5")
	acc.Total = decimal.RequireFromString("1.5")

	locked := models.NewAccount(2)
	locked.Locked = true

	var sb strings.Builder
	err := WriteAccounts(&sb, map[uint16]*models.Account{1: acc, 2: locked})
	if err != nil {
		t.Fatalf("WriteAccounts failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header plus 2 rows:\n%s", len(lines), sb.String())
	}
	if lines[0] != "client,available,held,total,locked" {
		t.Errorf("header = %q", lines[0])
	}

	// Row order is map iteration order, so look rows up by content.
	rows := map[string]bool{lines[1]: true, lines[2]: true}
	if !rows["1,1.5,0,1.5,false"] {
		t.Errorf("missing row for client 1 in %v", rows)
	}
	if !rows["2,0,0,0,true"] {
		t.Errorf("missing row for client 2 in %v", rows)
	}
}
