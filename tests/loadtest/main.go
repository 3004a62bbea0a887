package main

import (
	"bytes"
	"chronos/internal/models"
	"fmt"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"io"
	"math/rand"
	"net"
	"net/http"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

const (
	baseURL      = "http://127.0.0.1:8095"
	numWorkers   = 50
	testDuration = 10 * time.Second
	numUsers     = 200
	maxWidgets   = 12
)

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
	fmt.Println("=== Chronos Cloud Load Test ===")
	fmt.Printf("Workers: %d | Duration: %s\n", numWorkers, testDuration)
	fmt.Printf("Users: %d | Max widgets per user: %d\n\n", numUsers, maxWidgets)

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

	fmt.Println("\n--- Phase 1: Seeding documents (PUT /timers) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		return doPut(rng)
	})

	fmt.Println("\n--- Phase 2: Mixed load (50% PUT, 50% GET) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		if rng.Float64() < 0.5 {
			return doPut(rng)
		}
		return doGet(rng)
	})

	fmt.Println("\n--- Phase 3: Read-heavy load (10% PUT, 90% GET) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		if rng.Float64() < 0.1 {
			return doPut(rng)
		}
		return doGet(rng)
	})
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

		fmt.Printf("  %-22s %8d %6d %10s %10s %10s %10s\n",
			ep, s.count, s.errors,
			fmtDur(avgDuration(s.latencies)),
			fmtDur(percentile(s.latencies, 0.50)),
			fmtDur(percentile(s.latencies, 0.95)),
			fmtDur(percentile(s.latencies, 0.99)))
	}

	if totalOps == 0 {
		return
	}
	rps := float64(totalOps) / duration.Seconds()
	fmt.Println("  " + strings.Repeat("-", 88))
	fmt.Printf("  Total: %d reqs | Errors: %d (%.1f%%) | RPS: %.0f\n",
		totalOps, totalErrors, float64(totalErrors)/float64(totalOps)*100, rps)
}

func randomUser(rng *rand.Rand) string {
	return fmt.Sprintf("user_%d", rng.Intn(numUsers))
}

func randomDocument(rng *rand.Rand) *models.RemoteDocument {
	now := time.Now().UnixMilli()
	doc := &models.RemoteDocument{LastUpdated: now}
	for i := rng.Intn(maxWidgets) + 1; i > 0; i-- {
		s := models.Snapshot{ID: uuid.NewString()}
		if rng.Intn(2) == 0 {
			s.Kind = models.KindStopwatch
			s.Title = "Stopwatch"
			s.ElapsedTime = rng.Int63n(3_600_000)
		} else {
			d := rng.Int63n(3_600_000) + 1000
			s.Kind = models.KindTimer
			s.Title = "Timer"
			s.OriginalDuration = d
			s.RemainingTime = d
		}
		if rng.Intn(3) == 0 {
			s.IsRunning = true
			s.StartTime = now
			if s.Kind == models.KindTimer {
				s.TargetTime = now + s.RemainingTime
			}
		}
		doc.Timers = append(doc.Timers, s)
	}
	return doc
}

func doPut(rng *rand.Rand) result {
	data, _ := json.Marshal(randomDocument(rng))
	req, _ := http.NewRequest(http.MethodPut, baseURL+"/timers", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(models.UserHeader, randomUser(rng))

	start := time.Now()
	resp, err := httpClient.Do(req)
	lat := time.Since(start)
	if err != nil {
		return result{"PUT /timers", 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{"PUT /timers", resp.StatusCode, lat, resp.StatusCode != http.StatusNoContent}
}

func doGet(rng *rand.Rand) result {
	req, _ := http.NewRequest(http.MethodGet, baseURL+"/timers", nil)
	req.Header.Set(models.UserHeader, randomUser(rng))

	start := time.Now()
	resp, err := httpClient.Do(req)
	lat := time.Since(start)
	if err != nil {
		return result{"GET /timers", 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	// 404 is expected for users nobody has written yet.
	ok := resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusNotFound
	return result{"GET /timers", resp.StatusCode, lat, !ok}
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
		return fmt.Sprintf("%dus", d.Microseconds())
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}
