package scrape

import (
	"context"
	"sort"
	"sync"
	"time"
)

const (
	maxAttempts  = 3
	retryBackoff = 500 * time.Millisecond
)

// FetchError records one fighter page that could not be acquired. A failed
// page loses only that fighter's contribution, never the whole run.
type FetchError struct {
	Slug string
	Err  error
}

func (e FetchError) Error() string {
	return e.Slug + ": " + e.Err.Error()
}

// FetchAll downloads every slug with a bounded pool of workers, retrying
// each page up to maxAttempts times. Fighters are returned sorted by slug
// so the hand-off to the loader is a complete, deterministic collection.
// The optional progress callback is invoked once per completed slug.
func (c *Client) FetchAll(ctx context.Context, slugs []string, workers int, progress func(done, total int)) ([]*Fighter, []FetchError) {
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan string)
	var (
		mu       sync.Mutex
		fighters []*Fighter
		failures []FetchError
		done     int
	)

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for slug := range jobs {
				fighter, err := c.fetchWithRetry(ctx, slug)

				mu.Lock()
				done++
				if err != nil {
					failures = append(failures, FetchError{Slug: slug, Err: err})
				} else if len(fighter.Matches) > 0 {
					fighters = append(fighters, fighter)
				}
				n := done
				mu.Unlock()

				if progress != nil {
					progress(n, len(slugs))
				}
			}
		}()
	}

	for _, slug := range slugs {
		select {
		case jobs <- slug:
		case <-ctx.Done():
			// Drain: abandon undispatched work.
		}
		if ctx.Err() != nil {
			break
		}
	}
	close(jobs)
	wg.Wait()

	sort.Slice(fighters, func(i, j int) bool { return fighters[i].Slug < fighters[j].Slug })
	sort.Slice(failures, func(i, j int) bool { return failures[i].Slug < failures[j].Slug })
	return fighters, failures
}

func (c *Client) fetchWithRetry(ctx context.Context, slug string) (*Fighter, error) {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		fighter, err := c.FetchFighter(ctx, slug)
		if err == nil {
			return fighter, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			return nil, lastErr
		}
		if attempt < maxAttempts {
			select {
			case <-time.After(time.Duration(attempt) * retryBackoff):
			case <-ctx.Done():
				return nil, lastErr
			}
		}
	}
	return nil, lastErr
}
