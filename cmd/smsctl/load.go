package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	loadURL         string
	loadKey         string
	loadRequests    int
	loadConcurrency int
)

// loadCmd fires queued sends at a running gateway and reports latency.
var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Run a load test against a gateway",
	Long: `Send many queued SMS requests to a running gateway and report throughput.
Messages go to the broker, so point the worker at the mock provider first.

Examples:
  smsctl load --key $API_KEY_1 -n 1000 -c 50`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if loadKey == "" {
			return fmt.Errorf("--key is required")
		}
		printf(cmd, "Target: %s (%d requests, concurrency %d)\n", loadURL, loadRequests, loadConcurrency)
		res := runLoad(cmd.Context(), http.DefaultClient, loadURL, loadKey, loadRequests, loadConcurrency)
		printLoadResult(cmd, res)
		if res.Failures > 0 {
			return fmt.Errorf("%d of %d requests failed", res.Failures, res.Total)
		}
		return nil
	},
}

func init() {
	loadCmd.Flags().StringVar(&loadURL, "url", "http://localhost:3000/send", "gateway send endpoint")
	loadCmd.Flags().StringVar(&loadKey, "key", "", "bearer API key")
	loadCmd.Flags().IntVarP(&loadRequests, "requests", "n", 100, "total requests")
	loadCmd.Flags().IntVarP(&loadConcurrency, "concurrency", "c", 10, "concurrent requests")
}

type loadResult struct {
	Total       int
	Successes   int64
	Failures    int64
	Duration    time.Duration
	AvgLatency  time.Duration
	MinLatency  time.Duration
	MaxLatency  time.Duration
	ErrorCounts map[string]int
}

func runLoad(ctx context.Context, client *http.Client, url, key string, n, concurrency int) loadResult {
	var (
		successes, failures atomic.Int64
		mu                  sync.Mutex
		latencies           = make([]time.Duration, 0, n)
		errorCounts         = make(map[string]int)
	)

	record := func(d time.Duration, errMsg string) {
		mu.Lock()
		defer mu.Unlock()
		latencies = append(latencies, d)
		if errMsg != "" {
			errorCounts[errMsg]++
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(concurrency, 1))

	start := time.Now()
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			reqStart := time.Now()
			err := sendOne(gctx, client, url, key, i)
			if err != nil {
				failures.Add(1)
				record(time.Since(reqStart), err.Error())
				return nil
			}
			successes.Add(1)
			record(time.Since(reqStart), "")
			return nil
		})
	}
	_ = g.Wait()

	res := loadResult{
		Total:       n,
		Successes:   successes.Load(),
		Failures:    failures.Load(),
		Duration:    time.Since(start),
		ErrorCounts: errorCounts,
	}
	if len(latencies) > 0 {
		sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })
		var total time.Duration
		for _, l := range latencies {
			total += l
		}
		res.AvgLatency = total / time.Duration(len(latencies))
		res.MinLatency = latencies[0]
		res.MaxLatency = latencies[len(latencies)-1]
	}
	return res
}

func sendOne(ctx context.Context, client *http.Client, url, key string, i int) error {
	body, err := json.Marshal(map[string]string{
		"phone_number": fmt.Sprintf("+6681234%04d", i%10000),
		"message":      fmt.Sprintf("Test message from load test request #%d", i),
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+key)

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, bytes.TrimSpace(b))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func printLoadResult(cmd *cobra.Command, r loadResult) {
	printf(cmd, "Total requests:    %d\n", r.Total)
	printf(cmd, "Success:           %d\n", r.Successes)
	printf(cmd, "Failed:            %d\n", r.Failures)
	printf(cmd, "Total duration:    %v\n", r.Duration)
	if r.Duration > 0 {
		printf(cmd, "Requests/sec:      %.2f\n", float64(r.Total)/r.Duration.Seconds())
	}
	printf(cmd, "Avg response time: %v\n", r.AvgLatency)
	printf(cmd, "Min response time: %v\n", r.MinLatency)
	printf(cmd, "Max response time: %v\n", r.MaxLatency)
	for msg, count := range r.ErrorCounts {
		printf(cmd, "  %s: %d times\n", msg, count)
	}
}
