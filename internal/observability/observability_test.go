package observability

import (
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAppendServerTiming(t *testing.T) {
	tests := []struct {
		name   string
		metric string
		durMs  float64
		want   string
	}{
		{name: "positive duration", metric: "total", durMs: 12.345, want: "total;dur=12.35"},
		{name: "zero duration skipped", metric: "total", durMs: 0, want: ""},
		{name: "negative duration skipped", metric: "total", durMs: -1, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			AppendServerTiming(w, tt.metric, tt.durMs)
			require.Equal(t, tt.want, w.Header().Get("Server-Timing"))
		})
	}
}

func TestInmemCacheTotals(t *testing.T) {
	m := NewInmem(8)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			m.IncCacheHit()
		}()
		go func() {
			defer wg.Done()
			m.IncCacheMiss()
		}()
	}
	wg.Wait()

	hits, misses := m.CacheTotals()
	require.Equal(t, 10, hits)
	require.Equal(t, 10, misses)
}

func TestInmemKeepsLastObservations(t *testing.T) {
	m := NewInmem(3)

	for i := 0; i < 5; i++ {
		m.ObserveHTTP("GET", "/api/orders", 200, float64(i))
	}
	m.ObserveOrderCreate(1.5, true)

	m.mu.Lock()
	defer m.mu.Unlock()
	require.Len(t, m.last, 3)
}

func TestNoopImplementsMetrics(t *testing.T) {
	var m Metrics = NewNoop()
	m.ObserveHTTP("GET", "/", 200, 1)
	m.ObserveOrderCreate(1, true)
	m.IncCacheHit()
	m.IncCacheMiss()
}
