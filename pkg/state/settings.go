package state

import "sync"

// BoardSettings holds UI preferences shared by rendering surfaces.
type BoardSettings struct {
	lock                 sync.RWMutex
	viewDiscountedPrices bool
}

func NewBoardSettings() *BoardSettings {
	return &BoardSettings{}
}

// ViewDiscountedPrices reports whether card prices should be shown
// after the viewer's discounts instead of raw.
func (s *BoardSettings) ViewDiscountedPrices() bool {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.viewDiscountedPrices
}

func (s *BoardSettings) SetViewDiscountedPrices(v bool) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.viewDiscountedPrices = v
}
