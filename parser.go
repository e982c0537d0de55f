// Package fasterparser decodes the small fixed family of Binance futures
// market-data messages (bookTicker, aggTrade, 24hrTicker and the batched
// ticker array) straight into typed records, with no tokenizing, no field
// name matching and no allocation for the values.
//
// The feed guarantees fixed key names and field order per message type, so
// each message is classified once by its leading bytes and then walked left
// to right with delimiter scans alone. Input that does not match the
// expected shape is rejected with no detail: Parse returns false and emits
// nothing.
//
// A Parse call is a pure function of its input with no retained state, so
// the package is safe to use concurrently on independent buffers.
package fasterparser

import (
	"time"

	"github.com/Kakikou/faster-parser/internal/scan"
)

// minMessageLen is the shortest prefix any recognized object form needs for
// classification; shorter messages are rejected before any literal compare.
const minMessageLen = 20

var (
	bookTickerPrefix = []byte(`{"e":"bookTicker`)
	aggTradePrefix   = []byte(`{"e":"aggTrade"`)
	tickerPrefix     = []byte(`{"e":"24hrTicker`)
)

// Parse classifies raw by its leading bytes and decodes it, invoking l once
// per decoded record. now is stamped on every record as the reception time.
//
// It returns true when the message decoded and handlers ran, false when the
// message was rejected; a rejected message emits no records. The one
// exception is the ticker array form, where records stream out per element
// and a malformed later element fails the call after earlier handlers
// already ran.
func Parse(now time.Time, raw []byte, l Listener) bool {
	if len(raw) < 2 {
		return false
	}
	if raw[0] == '[' {
		return parseTickerArray(now, raw, l)
	}
	if len(raw) < minMessageLen {
		return false
	}
	switch {
	case scan.MatchLiteral(raw, bookTickerPrefix):
		return parseBookTicker(now, raw, l)
	case scan.MatchLiteral(raw, aggTradePrefix):
		return parseAggTrade(now, raw, l)
	case scan.MatchLiteral(raw, tickerPrefix):
		_, ok := parseTicker(now, raw, l)
		return ok
	}
	return false
}
