package main

import (
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"net/url"
	"os"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
)

const (
	defaultBaseURL = "http://127.0.0.1:8090"
	numWorkers     = 50
	testDuration   = 10 * time.Second
)

var baseURL = defaultBaseURL

var metrics = []string{
	"total_active_time_seconds",
	"total_mouse_movement",
	"total_mouse_click_movement",
	"total_mouse_movement_time",
	"total_mouse_clicks",
	"total_keystrokes",
}

var httpClient = &http.Client{
	Timeout: 5 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        200,
		MaxIdleConnsPerHost: 200,
		IdleConnTimeout:     30 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   2 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	},
}

type result struct {
	endpoint string
	status   int
	latency  time.Duration
	err      bool
}

type stats struct {
	count     int64
	errors    int64
	latencies []time.Duration
}

func main() {
	if v := os.Getenv("INFORMANT_URL"); v != "" {
		baseURL = strings.TrimRight(v, "/")
	}

	fmt.Println("=== Informant Load Test ===")
	fmt.Printf("Target: %s | Workers: %d | Duration: %s\n\n", baseURL, numWorkers, testDuration)

	fmt.Print("Waiting for server... ")
	for i := 0; i < 30; i++ {
		resp, err := httpClient.Get(baseURL + "/health")
		if err == nil {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			break
		}
		if i == 29 {
			fmt.Println("FAILED: server not responding")
			return
		}
		time.Sleep(200 * time.Millisecond)
	}
	fmt.Println("OK")

	dates, err := fetchDates()
	if err != nil {
		fmt.Printf("FAILED: %v\n", err)
		return
	}
	fmt.Printf("Days loaded: %d\n", len(dates))

	fmt.Println("\n--- Phase 1: Read load (GET) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		return doRead(rng, dates)
	})

	fmt.Println("\n--- Phase 2: Reads with reloads (2% POST /reload) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		if rng.Float64() < 0.02 {
			return doReload()
		}
		return doRead(rng, dates)
	})
}

func fetchDates() ([]string, error) {
	resp, err := httpClient.Get(baseURL + "/days")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET /days: status %d", resp.StatusCode)
	}

	var days []struct {
		Date string `json:"date"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&days); err != nil {
		return nil, err
	}
	dates := make([]string, len(days))
	for i, d := range days {
		dates[i] = d.Date
	}
	return dates, nil
}

func doRead(rng *rand.Rand, dates []string) result {
	r := rng.Float64()
	switch {
	case r < 0.30:
		return doGet("GET /days", "/days", http.StatusOK)
	case r < 0.55 && len(dates) > 0:
		date := dates[rng.Intn(len(dates))]
		return doGet("GET /day", "/day?date="+url.QueryEscape(date), http.StatusOK)
	case r < 0.85:
		metric := metrics[rng.Intn(len(metrics))]
		return doGet("GET /series", "/series?metric="+metric, http.StatusOK)
	case r < 0.95:
		return doGet("GET /gaps", "/gaps", http.StatusOK)
	default:
		return doGet("GET /fields", "/fields", http.StatusOK)
	}
}

func doGet(endpoint, path string, want int) result {
	start := time.Now()
	resp, err := httpClient.Get(baseURL + path)
	lat := time.Since(start)
	if err != nil {
		return result{endpoint, 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{endpoint, resp.StatusCode, lat, resp.StatusCode != want}
}

// doReload treats 409 as success: concurrent reloads are expected to collide.
func doReload() result {
	start := time.Now()
	resp, err := httpClient.Post(baseURL+"/reload", "application/json", nil)
	lat := time.Since(start)
	if err != nil {
		return result{"POST /reload", 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	ok := resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusConflict
	return result{"POST /reload", resp.StatusCode, lat, !ok}
}

func runPhase(duration time.Duration, workFn func(rng *rand.Rand) result) {
	results := make(chan result, 10000)
	var wg sync.WaitGroup
	var totalOps atomic.Int64
	stop := make(chan struct{})

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for {
				select {
				case <-stop:
					return
				default:
					r := workFn(rng)
					totalOps.Add(1)
					results <- r
				}
			}
		}(rand.Int63() + int64(i))
	}

	allResults := make(map[string]*stats)
	done := make(chan struct{})
	go func() {
		for r := range results {
			s, ok := allResults[r.endpoint]
			if !ok {
				s = &stats{}
				allResults[r.endpoint] = s
			}
			s.count++
			if r.err {
				s.errors++
			}
			s.latencies = append(s.latencies, r.latency)
		}
		close(done)
	}()

	time.Sleep(duration)
	close(stop)
	wg.Wait()
	close(results)
	<-done

	printResults(allResults, duration)
}

func printResults(allResults map[string]*stats, duration time.Duration) {
	var totalOps int64
	var totalErrors int64

	endpoints := make([]string, 0, len(allResults))
	for ep := range allResults {
		endpoints = append(endpoints, ep)
	}
	sort.Strings(endpoints)

	fmt.Printf("\n  %-22s %8s %6s %10s %10s %10s %10s\n",
		"Endpoint", "Reqs", "Errs", "Avg", "P50", "P95", "P99")
	fmt.Println("  " + strings.Repeat("-", 88))

	for _, ep := range endpoints {
		s := allResults[ep]
		totalOps += s.count
		totalErrors += s.errors

		sort.Slice(s.latencies, func(i, j int) bool {
			return s.latencies[i] < s.latencies[j]
		})

		avg := avgDuration(s.latencies)
		p50 := percentile(s.latencies, 0.50)
		p95 := percentile(s.latencies, 0.95)
		p99 := percentile(s.latencies, 0.99)

		fmt.Printf("  %-22s %8d %6d %10s %10s %10s %10s\n",
			ep, s.count, s.errors, fmtDur(avg), fmtDur(p50), fmtDur(p95), fmtDur(p99))
	}

	rps := float64(totalOps) / duration.Seconds()
	fmt.Println("  " + strings.Repeat("-", 88))
	fmt.Printf("  Total: %d reqs | Errors: %d (%.1f%%) | RPS: %.0f\n",
		totalOps, totalErrors, float64(totalErrors)/float64(totalOps)*100, rps)
}

func avgDuration(d []time.Duration) time.Duration {
	if len(d) == 0 {
		return 0
	}
	var sum time.Duration
	for _, v := range d {
		sum += v
	}
	return sum / time.Duration(len(d))
}

func percentile(d []time.Duration, p float64) time.Duration {
	if len(d) == 0 {
		return 0
	}
	idx := int(float64(len(d)) * p)
	if idx >= len(d) {
		idx = len(d) - 1
	}
	return d[idx]
}

func fmtDur(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}
