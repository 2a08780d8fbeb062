// loadgen seeds a running instance with a handful of cafes and
// customers and then fires random orders at it. Meant for eyeballing
// latency headers and cache behaviour, not for benchmarking.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"sync/atomic"
	"time"
)

var (
	baseURL  = flag.String("url", "http://localhost:8080", "base URL of the service")
	rate     = flag.Int("rate", 10, "orders per second")
	duration = flag.Duration("duration", 30*time.Second, "how long to run")
	seed     = flag.Int("cafes", 10, "number of cafes to seed")
)

var cafeNames = []string{
	"espresso", "americano", "latte", "cappuccino", "flat white",
	"mocha", "cortado", "macchiato", "ristretto", "cold brew",
}

func main() {
	flag.Parse()

	cafeIDs, err := seedCafes(*seed)
	if err != nil {
		log.Fatalf("seed cafes: %v", err)
	}
	customerIDs, err := seedCustomers(5)
	if err != nil {
		log.Fatalf("seed customers: %v", err)
	}
	log.Printf("seeded %d cafes, %d customers", len(cafeIDs), len(customerIDs))

	var sent, failed atomic.Int64
	ticker := time.NewTicker(time.Second / time.Duration(*rate))
	defer ticker.Stop()
	deadline := time.After(*duration)

	for {
		select {
		case <-ticker.C:
			if err := postOrder(cafeIDs, customerIDs); err != nil {
				failed.Add(1)
				log.Printf("order failed: %v", err)
				continue
			}
			sent.Add(1)
		case <-deadline:
			log.Printf("done: sent=%d failed=%d", sent.Load(), failed.Load())
			return
		}
	}
}

func seedCafes(n int) ([]int64, error) {
	ids := make([]int64, 0, n)
	for i := 0; i < n; i++ {
		name := cafeNames[i%len(cafeNames)]
		id, err := postJSON("/api/cafes", map[string]any{
			"name":        fmt.Sprintf("%s #%d", name, i+1),
			"description": "seeded by loadgen",
			"price":       1.5 + rand.Float64()*4,
		})
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func seedCustomers(n int) ([]int64, error) {
	ids := make([]int64, 0, n)
	for i := 0; i < n; i++ {
		id, err := postJSON("/api/customers", map[string]any{
			"name":  fmt.Sprintf("loadgen-%d", i+1),
			"email": fmt.Sprintf("loadgen-%d@example.com", i+1),
		})
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func postOrder(cafeIDs, customerIDs []int64) error {
	items := make([]map[string]any, 0, 3)
	for i := 0; i < 1+rand.Intn(3); i++ {
		items = append(items, map[string]any{
			"cafe_id":  cafeIDs[rand.Intn(len(cafeIDs))],
			"quantity": 1 + rand.Intn(4),
		})
	}
	_, err := postJSON("/api/orders", map[string]any{
		"customer_id": customerIDs[rand.Intn(len(customerIDs))],
		"items":       items,
	})
	return err
}

func postJSON(path string, payload any) (int64, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return 0, err
	}
	resp, err := http.Post(*baseURL+path, "application/json", bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return 0, fmt.Errorf("POST %s: status %d", path, resp.StatusCode)
	}
	var created struct {
		ID int64 `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return 0, err
	}
	return created.ID, nil
}
