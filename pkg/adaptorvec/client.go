package adaptorvec

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// Report summarises a batch check.
type Report struct {
	Results []*Result // One per vector, in input order
	Passed  int       // Vectors whose outcome matched their valid flag
	Failed  int       // Vectors whose outcome did not match
}

// OK reports whether every vector behaved as expected.
func (r *Report) OK() bool {
	return r.Failed == 0
}

// Client provides a high-level API for checking vector files.
type Client struct {
	parser  VectorParser
	workers int
	logger  *zap.Logger
}

// NewClient creates a new client with default settings.
func NewClient() *Client {
	return &Client{
		parser: &JSONParser{},
		logger: zap.NewNop(),
	}
}

// WithParser sets a custom vector parser.
func (c *Client) WithParser(parser VectorParser) *Client {
	c.parser = parser
	return c
}

// WithWorkers sets the number of parallel workers (0 = number of CPUs).
func (c *Client) WithWorkers(workers int) *Client {
	c.workers = workers
	return c
}

// WithLogger sets the logger used to report progress and failures.
func (c *Client) WithLogger(logger *zap.Logger) *Client {
	if logger != nil {
		c.logger = logger
	}
	return c
}

// CheckFile parses and checks every vector in a file.
//
// Args:
//   - ctx: Context for cancellation.
//   - source: Path to the vector file.
//
// Returns:
//   - Report with one result per vector, error if parsing failed or ctx was cancelled.
func (c *Client) CheckFile(ctx context.Context, source string) (*Report, error) {
	vectors, err := c.parser.ParseVectors(source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse vectors: %w", err)
	}
	c.logger.Debug("loaded vectors",
		zap.String("source", source),
		zap.Int("count", len(vectors)))
	return c.CheckVectors(ctx, vectors)
}

// CheckVectors checks in-memory vectors across a bounded pool of workers.
func (c *Client) CheckVectors(ctx context.Context, vectors []*Vector) (*Report, error) {
	numWorkers := c.workers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if numWorkers > len(vectors) {
		numWorkers = len(vectors)
	}

	results := make([]*Result, len(vectors))
	workChan := make(chan int, numWorkers*4)
	checked := int64(0)

	// Generate work
	go func() {
		defer close(workChan)
		for i := range vectors {
			select {
			case <-ctx.Done():
				return
			case workChan <- i:
			}
		}
	}()

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case i, ok := <-workChan:
					if !ok {
						return
					}
					res := Check(vectors[i])
					res.Index = i
					results[i] = res
					atomic.AddInt64(&checked, 1)
				}
			}
		}()
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("check interrupted after %d of %d vectors: %w",
			atomic.LoadInt64(&checked), len(vectors), err)
	}

	report := &Report{Results: results}
	for _, res := range results {
		if res.Passed {
			report.Passed++
			continue
		}
		report.Failed++
		c.logger.Warn("vector did not behave as expected",
			zap.Int("index", res.Index),
			zap.String("name", res.Name),
			zap.Bool("valid", res.Expected),
			zap.Error(res.Err))
	}

	c.logger.Info("checked vectors",
		zap.Int("total", len(vectors)),
		zap.Int("passed", report.Passed),
		zap.Int("failed", report.Failed),
		zap.Int("workers", numWorkers))
	return report, nil
}
