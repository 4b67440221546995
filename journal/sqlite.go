package journal

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteJournal persists trades and capital snapshots to a SQLite file.
type SQLiteJournal struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteJournal{db: db}, nil
}

func (j *SQLiteJournal) RecordTrade(t TradeRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO trades
		(trade_id, entry_price, exit_price, open_time, close_time, pnl, reason)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.TradeID, t.EntryPrice, t.ExitPrice,
		t.OpenTime, t.CloseTime, t.PnL, t.Reason,
	)
	return err
}

func (j *SQLiteJournal) RecordCapital(c CapitalSnapshot) error {
	_, err := j.db.Exec(`
		INSERT INTO capital (time, capital) VALUES (?, ?)`,
		c.Time, c.Capital,
	)
	return err
}

func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}
