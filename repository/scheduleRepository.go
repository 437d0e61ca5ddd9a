package repository

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/flowchartsman/retry"
)

// ScheduleRepository fetches the raw schedule fixture, either over HTTP or
// from a local file. The fetch happens once at startup; failure after
// retries is terminal for the load.
type ScheduleRepository struct {
	source     string
	httpClient *http.Client
}

func NewScheduleRepository(source string) *ScheduleRepository {
	return &ScheduleRepository{
		source:     source,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (r *ScheduleRepository) Source() string {
	return r.source
}

func (r *ScheduleRepository) Fetch(ctx context.Context) ([]byte, error) {
	if !strings.HasPrefix(r.source, "http://") && !strings.HasPrefix(r.source, "https://") {
		return os.ReadFile(r.source)
	}

	retrier := retry.NewRetrier(5, 100*time.Millisecond, time.Second)

	var raw []byte
	err := retrier.RunContext(ctx, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.source, nil)
		if err != nil {
			return retry.Stop(err)
		}

		resp, err := r.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("fetch schedule: expected status 200 but got %s", resp.Status)
		}

		raw, err = io.ReadAll(resp.Body)
		return err
	})

	return raw, err
}
