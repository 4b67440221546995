// Package journal records closed trades and capital snapshots.
package journal

import "time"

// TradeRecord is the persisted form of a closed trade.
type TradeRecord struct {
	TradeID    string
	EntryPrice float64
	ExitPrice  float64
	OpenTime   time.Time
	CloseTime  time.Time
	PnL        float64
	Reason     string
}

// CapitalSnapshot is one point on the strategy capital curve.
type CapitalSnapshot struct {
	Time    time.Time
	Capital float64
}

type Journal interface {
	RecordTrade(TradeRecord) error
	RecordCapital(CapitalSnapshot) error
	Close() error
}
