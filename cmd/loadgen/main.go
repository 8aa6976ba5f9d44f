package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// loadgen drives sustained traffic at the public scripture endpoint to
// measure throughput and the chapter cache hit path. It rotates through
// a set of chapters so both cold and warm reads are exercised.

type runResult struct {
	TotalRequests       int64
	SuccessfulRequests  int64
	FailedRequests      int64
	TotalDuration       time.Duration
	AverageResponseTime time.Duration
	MinResponseTime     time.Duration
	MaxResponseTime     time.Duration
	RequestsPerSecond   float64
}

type requestResult struct {
	Success    bool
	Duration   time.Duration
	Error      error
	StatusCode int
}

var chapters = []string{
	"/scripture/ESV/Genesis/1",
	"/scripture/ESV/Psalms/23",
	"/scripture/NIV/John/3",
	"/scripture/KJV/Romans/8",
	"/scripture/NASB/Matthew/5",
	"/scripture/KRV/John/1",
}

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "server base URL")
	totalRequests := flag.Int("n", 5000, "total requests")
	workers := flag.Int("c", 100, "concurrent workers")
	quick := flag.Bool("quick", false, "run 50 requests with 10 workers")
	flag.Parse()

	if *quick {
		*totalRequests = 50
		*workers = 10
	}

	log.Printf("starting load run: %d requests, %d workers against %s", *totalRequests, *workers, *baseURL)
	result := run(*baseURL, *totalRequests, *workers)
	printResults(result)
}

func run(baseURL string, totalRequests, workers int) runResult {
	var (
		successfulRequests int64
		failedRequests     int64
		totalDuration      int64
		minResponseTime    int64 = 1<<63 - 1
		maxResponseTime    int64
		mu                 sync.Mutex
	)

	requestChan := make(chan string, totalRequests)
	resultChan := make(chan requestResult, totalRequests)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range requestChan {
				resultChan <- makeRequest(baseURL, path)
			}
		}()
	}

	var collectWg sync.WaitGroup
	collectWg.Add(1)
	go func() {
		defer collectWg.Done()
		for result := range resultChan {
			if result.Success {
				atomic.AddInt64(&successfulRequests, 1)
			} else {
				atomic.AddInt64(&failedRequests, 1)
			}

			duration := int64(result.Duration)
			atomic.AddInt64(&totalDuration, duration)

			mu.Lock()
			if duration < minResponseTime {
				minResponseTime = duration
			}
			if duration > maxResponseTime {
				maxResponseTime = duration
			}
			mu.Unlock()
		}
	}()

	startTime := time.Now()
	for i := 0; i < totalRequests; i++ {
		requestChan <- chapters[i%len(chapters)]
	}
	close(requestChan)
	wg.Wait()
	close(resultChan)
	collectWg.Wait()

	duration := time.Since(startTime)
	successful := atomic.LoadInt64(&successfulRequests)
	failed := atomic.LoadInt64(&failedRequests)
	total := atomic.LoadInt64(&totalDuration)

	avgTime := time.Duration(0)
	if successful > 0 {
		avgTime = time.Duration(total / successful)
	}

	return runResult{
		TotalRequests:       int64(totalRequests),
		SuccessfulRequests:  successful,
		FailedRequests:      failed,
		TotalDuration:       duration,
		AverageResponseTime: avgTime,
		MinResponseTime:     time.Duration(minResponseTime),
		MaxResponseTime:     time.Duration(maxResponseTime),
		RequestsPerSecond:   float64(totalRequests) / duration.Seconds(),
	}
}

func makeRequest(baseURL, path string) requestResult {
	startTime := time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+path, nil)
	if err != nil {
		return requestResult{Success: false, Error: err}
	}

	client := &http.Client{Timeout: 2 * time.Minute}
	resp, err := client.Do(req)
	duration := time.Since(startTime)
	if err != nil {
		return requestResult{Success: false, Duration: duration, Error: err}
	}
	defer resp.Body.Close()

	if _, err := io.Copy(io.Discard, resp.Body); err != nil {
		return requestResult{Success: false, Duration: duration, Error: err, StatusCode: resp.StatusCode}
	}

	success := resp.StatusCode >= 200 && resp.StatusCode < 300
	return requestResult{Success: success, Duration: duration, StatusCode: resp.StatusCode}
}

func printResults(result runResult) {
	fmt.Println("\n" + strings.Repeat("=", 60))
	fmt.Println("LOAD RUN RESULTS")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Total Requests:        %d\n", result.TotalRequests)
	fmt.Printf("Successful Requests:   %d (%.2f%%)\n", result.SuccessfulRequests,
		float64(result.SuccessfulRequests)/float64(result.TotalRequests)*100)
	fmt.Printf("Failed Requests:       %d (%.2f%%)\n", result.FailedRequests,
		float64(result.FailedRequests)/float64(result.TotalRequests)*100)
	fmt.Printf("Total Duration:        %v\n", result.TotalDuration)
	fmt.Printf("Requests Per Second:   %.2f\n", result.RequestsPerSecond)
	fmt.Printf("Average Response Time: %v\n", result.AverageResponseTime)
	fmt.Printf("Min Response Time:     %v\n", result.MinResponseTime)
	fmt.Printf("Max Response Time:     %v\n", result.MaxResponseTime)
}
