// feedtap connects to the Binance futures websocket stream, decodes every
// frame with the fasterparser engine and logs the records it sees. It exists
// to exercise the engine against the live feed.
package main

import (
	"flag"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"go.uber.org/zap"

	fasterparser "github.com/Kakikou/faster-parser"
	"github.com/Kakikou/faster-parser/internal/feed"
)

type stats struct {
	bookTickers atomic.Uint64
	aggTrades   atomic.Uint64
	tickers     atomic.Uint64
	rejected    atomic.Uint64
}

// logListener logs each record at debug level and counts per stream.
type logListener struct {
	logger *zap.Logger
	stats  *stats
}

func (l *logListener) OnBookTicker(t fasterparser.BookTicker) {
	l.stats.bookTickers.Add(1)
	l.logger.Debug("book ticker",
		zap.ByteString("symbol", t.Symbol),
		zap.Float64("bid", t.Bid.Price),
		zap.Float64("ask", t.Ask.Price),
		zap.Uint64("seq", t.Bid.Sequence),
	)
}

func (l *logListener) OnAggTrade(t fasterparser.AggTrade) {
	l.stats.aggTrades.Add(1)
	l.logger.Debug("agg trade",
		zap.ByteString("symbol", t.Symbol),
		zap.Float64("price", t.Price),
		zap.Float64("qty", t.Quantity),
		zap.Bool("buyer_maker", t.IsBuyerMaker),
	)
}

func (l *logListener) OnTicker(t fasterparser.Ticker) {
	l.stats.tickers.Add(1)
	l.logger.Debug("24h ticker",
		zap.ByteString("symbol", t.Symbol),
		zap.Float64("last", t.LastPrice),
		zap.Uint64("trades", t.TotalTrades),
	)
}

func main() {
	var (
		url       = flag.String("url", "wss://fstream.binance.com/ws", "websocket endpoint")
		streams   = flag.String("streams", "btcusdt@bookTicker,btcusdt@aggTrade,!ticker@arr", "comma-separated stream names")
		debug     = flag.Bool("debug", false, "log every decoded record")
		statEvery = flag.Duration("stat-every", 5*time.Second, "interval between throughput lines")
	)
	flag.Parse()

	cfg := zap.NewProductionConfig()
	if *debug {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer logger.Sync()

	var counts stats
	listener := &logListener{logger: logger, stats: &counts}

	client := feed.NewClient(*url, strings.Split(*streams, ","), logger)
	client.SetMessageHandler(func(msg []byte) {
		// Subscribe acks and anything else off-schema land here.
		if !fasterparser.Parse(time.Now(), msg, listener) {
			counts.rejected.Add(1)
		}
	})

	if err := client.Connect(); err != nil {
		logger.Fatal("connect failed", zap.Error(err))
	}
	go client.Listen()

	ticker := time.NewTicker(*statEvery)
	defer ticker.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-ticker.C:
			logger.Info("decoded",
				zap.Uint64("book_tickers", counts.bookTickers.Load()),
				zap.Uint64("agg_trades", counts.aggTrades.Load()),
				zap.Uint64("tickers", counts.tickers.Load()),
				zap.Uint64("rejected", counts.rejected.Load()),
			)
		case s := <-sig:
			logger.Info("shutting down", zap.String("signal", s.String()))
			_ = client.Close()
			return
		}
	}
}
