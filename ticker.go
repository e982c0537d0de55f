package fasterparser

import (
	"time"

	"github.com/Kakikou/faster-parser/internal/fastnum"
	"github.com/Kakikou/faster-parser/internal/scan"
)

// parseTicker walks a single 24h rolling statistics object:
//
//	{"e":"24hrTicker","E":1760083106579,"s":"BTCUSDT","p":"-123.456","P":"-1.20","w":"45200.10","c":"45123.789","Q":"0.5","o":"45247.245","h":"45500.000","l":"44800.000","v":"12345.678","q":"558000000.00","O":1759996706579,"C":1760083106579,"F":100,"L":105,"n":6}
//
// It returns the offset just past the object's closing '}' so the array
// walker can advance to the next element.
func parseTicker(now time.Time, raw []byte, l Listener) (int, bool) {
	ticker := Ticker{Time: now}
	c := cursor{buf: raw}

	// "E":<ts>,
	if !c.seek('E') || !c.skip(3) {
		return 0, false
	}
	v, ok := c.span(',')
	if !ok {
		return 0, false
	}
	ticker.EventTime = fastnum.ParseUint64(v)

	// "s":"<SYM>"
	if !c.seek('s') || !c.skip(4) {
		return 0, false
	}
	if ticker.Symbol, ok = c.span('"'); !ok {
		return 0, false
	}

	// The twelve quoted decimals, in wire order.
	for _, field := range [...]struct {
		key byte
		dst *float64
	}{
		{'p', &ticker.PriceChange},
		{'P', &ticker.PriceChangePercent},
		{'w', &ticker.WeightedAvgPrice},
		{'c', &ticker.LastPrice},
		{'Q', &ticker.LastQuantity},
		{'o', &ticker.OpenPrice},
		{'h', &ticker.HighPrice},
		{'l', &ticker.LowPrice},
		{'v', &ticker.TotalBaseVolume},
		{'q', &ticker.TotalQuoteVolume},
	} {
		if !c.seek(field.key) || !c.skip(4) {
			return 0, false
		}
		if v, ok = c.span('"'); !ok {
			return 0, false
		}
		*field.dst = fastnum.ParseFloat(v)
	}

	// The bare integers "O", "C", "F", "L", then "n" closing the object.
	for _, field := range [...]struct {
		key byte
		dst *uint64
	}{
		{'O', &ticker.StatisticsOpenTime},
		{'C', &ticker.StatisticsCloseTime},
		{'F', &ticker.FirstTradeID},
		{'L', &ticker.LastTradeID},
	} {
		if !c.seek(field.key) || !c.skip(3) {
			return 0, false
		}
		if v, ok = c.span(','); !ok {
			return 0, false
		}
		*field.dst = fastnum.ParseUint64(v)
	}

	if !c.seek('n') || !c.skip(3) {
		return 0, false
	}
	if v, ok = c.span('}'); !ok {
		return 0, false
	}
	ticker.TotalTrades = fastnum.ParseUint64(v)

	l.OnTicker(ticker)
	return c.pos + 1, true
}

// parseTickerArray walks the batched form: zero or more ticker objects,
// comma-separated, with optional whitespace. Each element's type tag is
// validated before the single-object walker consumes it. Records are emitted
// as elements decode, so on a malformed later element the caller may have
// observed callbacks for a valid prefix even though the parse returns false.
func parseTickerArray(now time.Time, raw []byte, l Listener) bool {
	pos := 1 // past the opening '['
	for {
		for pos < len(raw) {
			switch raw[pos] {
			case ' ', '\t', '\n', '\r', ',':
				pos++
				continue
			}
			break
		}
		if pos >= len(raw) {
			return false
		}
		if raw[pos] == ']' {
			return true
		}
		if raw[pos] != '{' {
			return false
		}
		elem := raw[pos:]
		if len(elem) < len(tickerPrefix) || !scan.MatchLiteral(elem, tickerPrefix) {
			return false
		}
		n, ok := parseTicker(now, elem, l)
		if !ok {
			return false
		}
		pos += n
	}
}
