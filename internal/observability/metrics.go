package observability

type Metrics interface {
	ObserveHTTP(method, route string, status int, durMs float64)
	ObserveOrderCreate(durMs float64, ok bool)
	IncCacheHit()
	IncCacheMiss()
}

type Noop struct{}

func NewNoop() Noop { return Noop{} }

func (Noop) ObserveHTTP(string, string, int, float64) {}
func (Noop) ObserveOrderCreate(float64, bool)         {}
func (Noop) IncCacheHit()                             {}
func (Noop) IncCacheMiss()                            {}
