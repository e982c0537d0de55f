package fasterparser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingListener captures every record Parse emits.
type recordingListener struct {
	bookTickers []BookTicker
	aggTrades   []AggTrade
	tickers     []Ticker
}

func (r *recordingListener) OnBookTicker(t BookTicker) { r.bookTickers = append(r.bookTickers, t) }
func (r *recordingListener) OnAggTrade(t AggTrade)     { r.aggTrades = append(r.aggTrades, t) }
func (r *recordingListener) OnTicker(t Ticker)         { r.tickers = append(r.tickers, t) }

func (r *recordingListener) total() int {
	return len(r.bookTickers) + len(r.aggTrades) + len(r.tickers)
}

var parseTime = time.Unix(1760083106, 0)

func TestParse_BookTicker(t *testing.T) {
	msg := []byte(`{"e":"bookTicker","u":8822354685185,"s":"ASTERUSDT","b":"1.5822000","B":"457","a":"1.5823000","A":"112","T":1760083106579,"E":1760083106579}`)

	var l recordingListener
	require.True(t, Parse(parseTime, msg, &l))
	require.Len(t, l.bookTickers, 1)

	ticker := l.bookTickers[0]
	assert.Equal(t, parseTime, ticker.Time)
	assert.Equal(t, []byte("ASTERUSDT"), ticker.Symbol)
	assert.Equal(t, 1.5822, ticker.Bid.Price)
	assert.Equal(t, 457.0, ticker.Bid.Volume)
	assert.Equal(t, 1.5823, ticker.Ask.Price)
	assert.Equal(t, 112.0, ticker.Ask.Volume)
	assert.Equal(t, uint64(1760083106579), ticker.ExchangeTimestamp)
	assert.Equal(t, uint64(8822354685185), ticker.Bid.Sequence)
	assert.Equal(t, uint64(8822354685185), ticker.Ask.Sequence)
}

func TestParse_BookTickerMinimal(t *testing.T) {
	msg := []byte(`{"e":"bookTicker","u":1,"s":"A","b":"1.0","B":"1","a":"1.1","A":"1","T":1,"E":1}`)

	var l recordingListener
	require.True(t, Parse(parseTime, msg, &l))
	require.Len(t, l.bookTickers, 1)

	ticker := l.bookTickers[0]
	assert.Equal(t, []byte("A"), ticker.Symbol)
	assert.Equal(t, 1.0, ticker.Bid.Price)
	assert.Equal(t, 1.0, ticker.Bid.Volume)
	assert.Equal(t, 1.1, ticker.Ask.Price)
	assert.Equal(t, 1.0, ticker.Ask.Volume)
	assert.Equal(t, uint64(1), ticker.ExchangeTimestamp)
	assert.Equal(t, uint64(1), ticker.Bid.Sequence)
	assert.Equal(t, uint64(1), ticker.Ask.Sequence)
}

func TestParse_BookTickerSmallPrices(t *testing.T) {
	msg := []byte(`{"e":"bookTicker","u":999999,"s":"DOGEUSDT","b":"0.00012345","B":"1000000","a":"0.00012346","A":"999999","T":9999999999,"E":9999999999}`)

	var l recordingListener
	require.True(t, Parse(parseTime, msg, &l))
	require.Len(t, l.bookTickers, 1)

	ticker := l.bookTickers[0]
	assert.Equal(t, 0.00012345, ticker.Bid.Price)
	assert.Equal(t, 0.00012346, ticker.Ask.Price)
	assert.Equal(t, 1000000.0, ticker.Bid.Volume)
	assert.Equal(t, 999999.0, ticker.Ask.Volume)
}

func TestParse_AggTrade(t *testing.T) {
	msg := []byte(`{"e":"aggTrade","E":1760083106579,"s":"BTCUSDT","a":5933014,"p":"45123.789","q":"10.5","f":100,"l":105,"T":1760083106575,"m":true}`)

	var l recordingListener
	require.True(t, Parse(parseTime, msg, &l))
	require.Len(t, l.aggTrades, 1)

	trade := l.aggTrades[0]
	assert.Equal(t, parseTime, trade.Time)
	assert.Equal(t, []byte("BTCUSDT"), trade.Symbol)
	assert.Equal(t, uint64(1760083106579), trade.EventTime)
	assert.Equal(t, uint64(5933014), trade.AggTradeID)
	assert.Equal(t, 45123.789, trade.Price)
	assert.Equal(t, 10.5, trade.Quantity)
	assert.Equal(t, uint64(100), trade.FirstTradeID)
	assert.Equal(t, uint64(105), trade.LastTradeID)
	assert.Equal(t, uint64(1760083106575), trade.TradeTime)
	assert.True(t, trade.IsBuyerMaker)
}

func TestParse_AggTradeBuyerNotMaker(t *testing.T) {
	msg := []byte(`{"e":"aggTrade","E":2,"s":"B","a":2,"p":"2.0","q":"2","f":2,"l":2,"T":2,"m":false}`)

	var l recordingListener
	require.True(t, Parse(parseTime, msg, &l))
	require.Len(t, l.aggTrades, 1)
	assert.False(t, l.aggTrades[0].IsBuyerMaker)
}

func TestParse_AggTradeMalformedBool(t *testing.T) {
	// Neither "true" nor "false": reject rather than defaulting to false.
	msg := []byte(`{"e":"aggTrade","E":2,"s":"B","a":2,"p":"2.0","q":"2","f":2,"l":2,"T":2,"m":frue}`)

	var l recordingListener
	assert.False(t, Parse(parseTime, msg, &l))
	assert.Zero(t, l.total())
}

func TestParse_Ticker(t *testing.T) {
	msg := []byte(`{"e":"24hrTicker","E":1760083106579,"s":"BTCUSDT","p":"-123.456","P":"-1.20","w":"45200.10","c":"45123.789","Q":"0.5","o":"45247.245","h":"45500.000","l":"44800.000","v":"12345.678","q":"558000000.00","O":1759996706579,"C":1760083106579,"F":100,"L":105,"n":6}`)

	var l recordingListener
	require.True(t, Parse(parseTime, msg, &l))
	require.Len(t, l.tickers, 1)

	ticker := l.tickers[0]
	assert.Equal(t, []byte("BTCUSDT"), ticker.Symbol)
	assert.Equal(t, uint64(1760083106579), ticker.EventTime)
	assert.Equal(t, -123.456, ticker.PriceChange)
	assert.Equal(t, -1.20, ticker.PriceChangePercent)
	assert.Equal(t, 45200.10, ticker.WeightedAvgPrice)
	assert.Equal(t, 45123.789, ticker.LastPrice)
	assert.Equal(t, 0.5, ticker.LastQuantity)
	assert.Equal(t, 45247.245, ticker.OpenPrice)
	assert.Equal(t, 45500.0, ticker.HighPrice)
	assert.Equal(t, 44800.0, ticker.LowPrice)
	assert.Equal(t, 12345.678, ticker.TotalBaseVolume)
	assert.Equal(t, 558000000.0, ticker.TotalQuoteVolume)
	assert.Equal(t, uint64(1759996706579), ticker.StatisticsOpenTime)
	assert.Equal(t, uint64(1760083106579), ticker.StatisticsCloseTime)
	assert.Equal(t, uint64(100), ticker.FirstTradeID)
	assert.Equal(t, uint64(105), ticker.LastTradeID)
	assert.Equal(t, uint64(6), ticker.TotalTrades)
}

func TestParse_TickerMinimal(t *testing.T) {
	msg := []byte(`{"e":"24hrTicker","E":1,"s":"A","p":"1","P":"1","w":"1","c":"1","Q":"1","o":"1","h":"1","l":"1","v":"1","q":"1","O":0,"C":1,"F":0,"L":1,"n":2}`)

	var l recordingListener
	require.True(t, Parse(parseTime, msg, &l))
	require.Len(t, l.tickers, 1)
	assert.Equal(t, uint64(2), l.tickers[0].TotalTrades)
}

func tickerElement(symbol string, trades int) string {
	return `{"e":"24hrTicker","E":1,"s":"` + symbol + `","p":"1","P":"1","w":"1","c":"1","Q":"1","o":"1","h":"1","l":"1","v":"1","q":"1","O":0,"C":1,"F":0,"L":1,"n":` + itoa(trades) + `}`
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var b [20]byte
	i := len(b)
	for n > 0 {
		i--
		b[i] = byte('0' + n%10)
		n /= 10
	}
	return string(b[i:])
}

func TestParse_TickerArray(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		ok      bool
		symbols []string
	}{
		{name: "empty array", input: `[]`, ok: true},
		{name: "empty array with whitespace", input: `[ ]`, ok: true},
		{name: "single element", input: `[` + tickerElement("AAA", 1) + `]`, ok: true, symbols: []string{"AAA"}},
		{name: "two elements", input: `[` + tickerElement("AAA", 1) + `,` + tickerElement("BBB", 2) + `]`, ok: true, symbols: []string{"AAA", "BBB"}},
		{name: "whitespace between elements", input: "[ " + tickerElement("AAA", 1) + " ,\n " + tickerElement("BBB", 2) + " ]", ok: true, symbols: []string{"AAA", "BBB"}},
		{name: "unterminated", input: `[` + tickerElement("AAA", 1), ok: false, symbols: []string{"AAA"}},
		{name: "junk element", input: `[42]`, ok: false},
		{name: "wrong element type", input: `[{"e":"aggTrade","E":2,"s":"B","a":2,"p":"2.0","q":"2","f":2,"l":2,"T":2,"m":false}]`, ok: false},
		{name: "bare bracket", input: `[`, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var l recordingListener
			assert.Equal(t, tt.ok, Parse(parseTime, []byte(tt.input), &l))

			// Streaming emission: a valid prefix of elements may have been
			// delivered even when the array as a whole fails.
			require.Len(t, l.tickers, len(tt.symbols))
			for i, symbol := range tt.symbols {
				assert.Equal(t, []byte(symbol), l.tickers[i].Symbol)
			}
		})
	}
}

func TestParse_ArrayElementsMatchSingleObjectWalk(t *testing.T) {
	elem := tickerElement("ETHUSDT", 42)

	var single, fromArray recordingListener
	require.True(t, Parse(parseTime, []byte(elem), &single))
	require.True(t, Parse(parseTime, []byte(`[`+elem+`]`), &fromArray))

	require.Len(t, single.tickers, 1)
	require.Len(t, fromArray.tickers, 1)
	assert.Equal(t, single.tickers[0], fromArray.tickers[0])
}

func TestParse_RejectsUnknownType(t *testing.T) {
	var l recordingListener
	assert.False(t, Parse(parseTime, []byte(`{"e":"trade","t":123456}`), &l))
	assert.Zero(t, l.total())
}

func TestParse_RejectsTruncated(t *testing.T) {
	msgs := []string{
		"",
		"{",
		`{"e":"bookTicker"`,
		`{"e":"bookTicker","u":1`,
		`{"e":"bookTicker","u":1,"s":"A","b":"1.0`,
		`{"e":"aggTrade","E":2,"s":"B","a":2,"p":"2.0","q":"2","f":2,"l":2,"T":2,"m":`,
		`{"e":"24hrTicker","E":1,"s":"A","p":"1"`,
	}
	for _, msg := range msgs {
		var l recordingListener
		assert.False(t, Parse(parseTime, []byte(msg), &l), "message %q", msg)
		assert.Zero(t, l.total(), "message %q", msg)
	}
}

func TestParse_SymbolView(t *testing.T) {
	// The symbol must be exactly the bytes between the quotes of the "s"
	// field, aliasing the message buffer, for lengths 1 through 20.
	for n := 1; n <= 20; n++ {
		symbol := make([]byte, n)
		for i := range symbol {
			symbol[i] = byte('A' + i%26)
		}
		msg := []byte(`{"e":"bookTicker","u":1,"s":"` + string(symbol) + `","b":"1.0","B":"1","a":"1.1","A":"1","T":1,"E":1}`)

		var l recordingListener
		require.True(t, Parse(parseTime, msg, &l), "symbol length %d", n)
		require.Len(t, l.bookTickers, 1)

		got := l.bookTickers[0].Symbol
		assert.Equal(t, symbol, got)

		// Mutating the message buffer must show through the view.
		got[0] = 'z'
		assert.Equal(t, byte('z'), msg[29])
		msg[29] = symbol[0]
	}
}

func TestParse_Deterministic(t *testing.T) {
	msg := []byte(`{"e":"bookTicker","u":8822354685185,"s":"ASTERUSDT","b":"1.5822000","B":"457","a":"1.5823000","A":"112","T":1760083106579,"E":1760083106579}`)

	var first recordingListener
	require.True(t, Parse(parseTime, msg, &first))
	for i := 0; i < 100; i++ {
		var l recordingListener
		require.True(t, Parse(parseTime, msg, &l))
		assert.Equal(t, first.bookTickers[0], l.bookTickers[0])
	}
}

// tradesOnlyListener embeds NopListener and overrides the one stream it
// cares about.
type tradesOnlyListener struct {
	NopListener
	trades []AggTrade
}

func (l *tradesOnlyListener) OnAggTrade(t AggTrade) { l.trades = append(l.trades, t) }

func TestNopListener_EmbeddingSelectsStreams(t *testing.T) {
	l := &tradesOnlyListener{}

	book := []byte(`{"e":"bookTicker","u":1,"s":"A","b":"1.0","B":"1","a":"1.1","A":"1","T":1,"E":1}`)
	trade := []byte(`{"e":"aggTrade","E":2,"s":"B","a":2,"p":"2.0","q":"2","f":2,"l":2,"T":2,"m":false}`)

	assert.True(t, Parse(parseTime, book, l))
	assert.True(t, Parse(parseTime, trade, l))
	require.Len(t, l.trades, 1)
	assert.Equal(t, []byte("B"), l.trades[0].Symbol)
}
