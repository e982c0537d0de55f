package fasterparser

// Listener receives decoded records. Parse makes exactly one handler call
// per decoded record, synchronously, before it returns; for the ticker array
// form the calls come one per element, in array order.
//
// A caller interested in a subset of the streams embeds NopListener and
// overrides only the handlers it wants.
type Listener interface {
	OnBookTicker(BookTicker)
	OnAggTrade(AggTrade)
	OnTicker(Ticker)
}

// NopListener implements Listener with no-op handlers.
type NopListener struct{}

func (NopListener) OnBookTicker(BookTicker) {}

func (NopListener) OnAggTrade(AggTrade) {}

func (NopListener) OnTicker(Ticker) {}
