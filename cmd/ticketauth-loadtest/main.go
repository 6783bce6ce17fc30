// Command ticketauth-loadtest measures in-process Gate throughput: the
// fast path (ticket validation) and the slow path (handshake plus
// issuance) separately, with latency percentiles per phase.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/larkvale/ticketauth"
	"github.com/larkvale/ticketauth/ticket"
)

const secretKey = "loadtest-secret"

func main() {
	var (
		identities  = flag.Int("identities", 100000, "number of distinct identities to seed tickets for")
		concurrency = flag.Int("concurrency", 256, "number of concurrent workers")
		ops         = flag.Int("ops", 200000, "operations per phase (fast path + slow path)")
	)
	flag.Parse()

	if *identities <= 0 || *concurrency <= 0 || *ops <= 0 {
		fmt.Fprintln(os.Stderr, "identities, concurrency, and ops must be > 0")
		os.Exit(2)
	}

	now := time.Now()

	gate, err := ticketauth.New().
		WithConfig(ticketauth.Config{
			Ticket: ticketauth.TicketConfig{Secret: secretKey},
		}).
		WithAuthenticator(ticketauth.AuthenticatorFunc(
			func(_ context.Context, r *http.Request) (string, error) {
				// Stand-in for the external handshake: accept any
				// request and name the principal after a header.
				return r.Header.Get("X-Loadtest-Identity"), nil
			})).
		Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "build gate: %v\n", err)
		os.Exit(1)
	}
	defer gate.Close()

	fmt.Printf("seeding %d tickets...\n", *identities)
	startSeed := time.Now()
	tickets := make([]string, *identities)
	for i := range tickets {
		tickets[i] = string(ticket.Issue(fmt.Sprintf("user-%d", i), now.Unix(), secretKey))
	}
	fmt.Printf("seeded in %s\n", time.Since(startSeed).Round(time.Millisecond))

	fastStats := runPhase(*ops, *concurrency, func(r *rand.Rand) error {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.AddCookie(&http.Cookie{
			Name:  ticketauth.DefaultTokenName,
			Value: tickets[r.Intn(len(tickets))],
		})
		adm, err := gate.Admit(req)
		if err != nil {
			return err
		}
		if !adm.FromTicket {
			return fmt.Errorf("seeded ticket fell through to the slow path")
		}
		return nil
	})

	slowStats := runPhase(*ops, *concurrency, func(r *rand.Rand) error {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("X-Loadtest-Identity", fmt.Sprintf("user-%d", r.Intn(len(tickets))))
		adm, err := gate.Admit(req)
		if err != nil {
			return err
		}
		if adm.Issued == nil {
			return fmt.Errorf("slow path did not issue a ticket")
		}
		return nil
	})

	fmt.Println("---- results ----")
	printStats("fast-path", fastStats)
	printStats("slow-path", slowStats)
}

func runPhase(ops, concurrency int, op func(*rand.Rand) error) phaseStats {
	var (
		wg        sync.WaitGroup
		cursor    int64
		failures  int64
		latencies = make([]time.Duration, 0, ops)
		mu        sync.Mutex
	)

	start := time.Now()
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			r := rand.New(rand.NewSource(time.Now().UnixNano() + int64(worker)*7919))
			for {
				i := int(atomic.AddInt64(&cursor, 1)) - 1
				if i >= ops {
					return
				}
				t0 := time.Now()
				err := op(r)
				d := time.Since(t0)
				if err != nil {
					atomic.AddInt64(&failures, 1)
				}
				mu.Lock()
				latencies = append(latencies, d)
				mu.Unlock()
			}
		}(w)
	}
	wg.Wait()
	total := time.Since(start)
	return computeStats(total, latencies, failures)
}

type phaseStats struct {
	total    time.Duration
	ops      int
	failures int64
	p50      time.Duration
	p95      time.Duration
	p99      time.Duration
	opsPerS  float64
}

func computeStats(total time.Duration, samples []time.Duration, failures int64) phaseStats {
	if len(samples) == 0 {
		return phaseStats{total: total}
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i] < samples[j] })
	return phaseStats{
		total:    total,
		ops:      len(samples),
		failures: failures,
		p50:      percentile(samples, 50),
		p95:      percentile(samples, 95),
		p99:      percentile(samples, 99),
		opsPerS:  float64(len(samples)) / total.Seconds(),
	}
}

func percentile(samples []time.Duration, p int) time.Duration {
	if len(samples) == 0 {
		return 0
	}
	if p <= 0 {
		return samples[0]
	}
	if p >= 100 {
		return samples[len(samples)-1]
	}
	idx := (len(samples) - 1) * p / 100
	return samples[idx]
}

func printStats(name string, s phaseStats) {
	fmt.Printf("%s: ops=%d failures=%d total=%s ops/sec=%.0f p50=%s p95=%s p99=%s\n",
		name,
		s.ops,
		s.failures,
		s.total.Round(time.Millisecond),
		s.opsPerS,
		s.p50.Round(time.Microsecond),
		s.p95.Round(time.Microsecond),
		s.p99.Round(time.Microsecond),
	)
}
