package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/flowchartsman/retry"
	"github.com/mvdwal/festival-companion/entity"
)

// VendorRepository loads the vendor directory fixture.
type VendorRepository struct {
	source     string
	httpClient *http.Client
}

func NewVendorRepository(source string) *VendorRepository {
	return &VendorRepository{
		source:     source,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (r *VendorRepository) FindAll(ctx context.Context) ([]*entity.Vendor, error) {
	raw, err := r.fetch(ctx)
	if err != nil {
		return nil, err
	}

	var vendors []*entity.Vendor
	if err := json.Unmarshal(raw, &vendors); err != nil {
		return nil, err
	}

	return vendors, nil
}

func (r *VendorRepository) fetch(ctx context.Context) ([]byte, error) {
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
			return fmt.Errorf("fetch vendors: expected status 200 but got %s", resp.Status)
		}

		raw, err = io.ReadAll(resp.Body)
		return err
	})

	return raw, err
}
