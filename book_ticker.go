package fasterparser

import (
	"time"

	"github.com/Kakikou/faster-parser/internal/fastnum"
)

// parseBookTicker walks a best-bid/ask message:
//
//	{"e":"bookTicker","u":8822354685185,"s":"ASTERUSDT","b":"1.5822000","B":"457","a":"1.5823000","A":"112","T":1760083106579,"E":1760083106579}
//
// The feed emits fields in this exact order, so no key matching is needed:
// each step finds the key character, skips the fixed-width punctuation after
// it and spans to the value's terminating delimiter.
func parseBookTicker(now time.Time, raw []byte, l Listener) bool {
	ticker := BookTicker{Time: now}
	c := cursor{buf: raw}

	// "u":<id>,
	if !c.seek('u') || !c.skip(3) {
		return false
	}
	v, ok := c.span(',')
	if !ok {
		return false
	}
	updateID := fastnum.ParseUint64(v)

	// "s":"<SYM>"
	if !c.seek('s') || !c.skip(4) {
		return false
	}
	if ticker.Symbol, ok = c.span('"'); !ok {
		return false
	}

	// "b":"<dec>"
	if !c.seek('b') || !c.skip(4) {
		return false
	}
	if v, ok = c.span('"'); !ok {
		return false
	}
	ticker.Bid.Price = fastnum.ParseFloat(v)

	// "B":"<dec>"
	if !c.seek('B') || !c.skip(4) {
		return false
	}
	if v, ok = c.span('"'); !ok {
		return false
	}
	ticker.Bid.Volume = fastnum.ParseFloat(v)

	// "a":"<dec>"
	if !c.seek('a') || !c.skip(4) {
		return false
	}
	if v, ok = c.span('"'); !ok {
		return false
	}
	ticker.Ask.Price = fastnum.ParseFloat(v)

	// "A":"<dec>"
	if !c.seek('A') || !c.skip(4) {
		return false
	}
	if v, ok = c.span('"'); !ok {
		return false
	}
	ticker.Ask.Volume = fastnum.ParseFloat(v)

	// "T":<ts> is not surfaced, step over it.
	if !c.seek('T') || !c.seek(',') {
		return false
	}

	// "E":<ts>}
	if !c.seek('E') || !c.skip(3) {
		return false
	}
	if v, ok = c.span('}'); !ok {
		return false
	}
	ticker.ExchangeTimestamp = fastnum.ParseUint64(v)

	ticker.Bid.Sequence = updateID
	ticker.Ask.Sequence = updateID

	l.OnBookTicker(ticker)
	return true
}
