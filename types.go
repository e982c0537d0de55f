package fasterparser

import "time"

// Level is one side of the best bid/ask pair.
type Level struct {
	Price    float64
	Volume   float64
	Sequence uint64
}

// BookTicker is a decoded best-bid/ask update.
//
// Symbol is a sub-slice of the message buffer handed to Parse, valid only as
// long as that buffer is alive and unmodified. A caller that retains it past
// the Parse call must copy it (string(rec.Symbol)). Bid.Sequence and
// Ask.Sequence always carry the same value, mirrored from the message's
// single update-id field.
type BookTicker struct {
	Time              time.Time // reception time
	Symbol            []byte
	ExchangeTimestamp uint64
	Bid               Level
	Ask               Level
}

// AggTrade is a decoded aggregated trade print. Symbol borrows from the
// message buffer, see BookTicker.
type AggTrade struct {
	Time         time.Time // reception time
	Symbol       []byte
	EventTime    uint64
	AggTradeID   uint64
	Price        float64
	Quantity     float64
	FirstTradeID uint64
	LastTradeID  uint64
	TradeTime    uint64
	IsBuyerMaker bool
}

// Ticker is a decoded 24-hour rolling statistics snapshot. Symbol borrows
// from the message buffer, see BookTicker.
type Ticker struct {
	Time                time.Time // reception time
	Symbol              []byte
	EventTime           uint64
	PriceChange         float64
	PriceChangePercent  float64
	WeightedAvgPrice    float64
	LastPrice           float64
	LastQuantity        float64
	OpenPrice           float64
	HighPrice           float64
	LowPrice            float64
	TotalBaseVolume     float64
	TotalQuoteVolume    float64
	StatisticsOpenTime  uint64
	StatisticsCloseTime uint64
	FirstTradeID        uint64
	LastTradeID         uint64
	TotalTrades         uint64
}
