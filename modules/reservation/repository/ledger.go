package repository

import (
	"bytes"
	"context"
	"encoding/csv"

	"rehearsal-room-api/core/config"
	"rehearsal-room-api/modules/reservation/entity"
)

// ledgerColumns is the persisted field order. The header row and column
// names are shared with other programs reading the same file, so they are
// fixed.
var ledgerColumns = []string{"id", "date", "slot_label", "group_name", "pin_digest"}

// LedgerStore is the single owner of the persisted reservation set. Load
// returns the full current set; Save replaces it atomically from the
// caller's perspective. Implementations serialize or version concurrent
// access, the arbiter on top only ever does load-check-save sequences.
type LedgerStore interface {
	Load(ctx context.Context) ([]entity.Reservation, error)
	Save(ctx context.Context, reservations []entity.Reservation) error
}

// NewLedgerStore selects the backend from configuration: a fully configured
// remote object store wins, otherwise the ledger lives in a locked local
// file.
func NewLedgerStore(cfg *config.Config) (LedgerStore, error) {
	if cfg.Ledger.S3.Configured() {
		return NewS3Ledger(cfg.Ledger.S3)
	}
	return NewFileLedger(cfg.Ledger.File, cfg.Ledger.LockTimeout), nil
}

func encodeLedger(reservations []entity.Reservation) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(ledgerColumns); err != nil {
		return nil, err
	}
	for _, r := range reservations {
		if err := w.Write([]string{r.ID, r.Date, r.SlotLabel, r.GroupName, r.PINDigest}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decodeLedger parses ledger content leniently: unparseable content yields
// an empty set (the service stays available after external corruption), and
// columns missing from legacy files default to empty strings. Rows are
// matched to columns by header name, not position.
func decodeLedger(data []byte) []entity.Reservation {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil || len(rows) == 0 {
		return nil
	}

	index := map[string]int{}
	for i, name := range rows[0] {
		index[name] = i
	}

	reservations := make([]entity.Reservation, 0, len(rows)-1)
	for _, row := range rows[1:] {
		reservations = append(reservations, entity.Reservation{
			ID:        field(row, index, "id"),
			Date:      field(row, index, "date"),
			SlotLabel: field(row, index, "slot_label"),
			GroupName: field(row, index, "group_name"),
			PINDigest: field(row, index, "pin_digest"),
		})
	}
	return reservations
}

func field(row []string, index map[string]int, name string) string {
	i, ok := index[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}
