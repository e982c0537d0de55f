package fasterparser

import (
	"time"

	"github.com/Kakikou/faster-parser/internal/fastnum"
	"github.com/Kakikou/faster-parser/internal/scan"
)

var (
	trueLiteral  = []byte("true")
	falseLiteral = []byte("false")
)

// parseAggTrade walks an aggregated trade message:
//
//	{"e":"aggTrade","E":1760083106579,"s":"BTCUSDT","a":5933014,"p":"45123.789","q":"10.5","f":100,"l":105,"T":1760083106575,"m":true}
func parseAggTrade(now time.Time, raw []byte, l Listener) bool {
	trade := AggTrade{Time: now}
	c := cursor{buf: raw}

	// "E":<ts>,
	if !c.seek('E') || !c.skip(3) {
		return false
	}
	v, ok := c.span(',')
	if !ok {
		return false
	}
	trade.EventTime = fastnum.ParseUint64(v)

	// "s":"<SYM>"
	if !c.seek('s') || !c.skip(4) {
		return false
	}
	if trade.Symbol, ok = c.span('"'); !ok {
		return false
	}

	// "a":<id>,
	if !c.seek('a') || !c.skip(3) {
		return false
	}
	if v, ok = c.span(','); !ok {
		return false
	}
	trade.AggTradeID = fastnum.ParseUint64(v)

	// "p":"<dec>"
	if !c.seek('p') || !c.skip(4) {
		return false
	}
	if v, ok = c.span('"'); !ok {
		return false
	}
	trade.Price = fastnum.ParseFloat(v)

	// "q":"<dec>"
	if !c.seek('q') || !c.skip(4) {
		return false
	}
	if v, ok = c.span('"'); !ok {
		return false
	}
	trade.Quantity = fastnum.ParseFloat(v)

	// "f":<id>,
	if !c.seek('f') || !c.skip(3) {
		return false
	}
	if v, ok = c.span(','); !ok {
		return false
	}
	trade.FirstTradeID = fastnum.ParseUint64(v)

	// "l":<id>,
	if !c.seek('l') || !c.skip(3) {
		return false
	}
	if v, ok = c.span(','); !ok {
		return false
	}
	trade.LastTradeID = fastnum.ParseUint64(v)

	// "T":<ts>,
	if !c.seek('T') || !c.skip(3) {
		return false
	}
	if v, ok = c.span(','); !ok {
		return false
	}
	trade.TradeTime = fastnum.ParseUint64(v)

	// "m":<bool>} — the full literal is validated, a value that is neither
	// "true" nor "false" rejects the message.
	if !c.seek('m') || !c.skip(3) {
		return false
	}
	rest := c.rest()
	switch {
	case len(rest) >= len(trueLiteral) && scan.MatchLiteral(rest, trueLiteral):
		trade.IsBuyerMaker = true
	case len(rest) >= len(falseLiteral) && scan.MatchLiteral(rest, falseLiteral):
		trade.IsBuyerMaker = false
	default:
		return false
	}

	l.OnAggTrade(trade)
	return true
}
