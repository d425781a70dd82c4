package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"dealership/internal/domain"
	"dealership/internal/domain/models"
	"dealership/internal/utils"

	"golang.org/x/sync/errgroup"
)

// DefaultPageSize matches the backend's maximum page size.
const DefaultPageSize = 15

// PageFetcher retrieves one bounded page of records matching a filter.
type PageFetcher interface {
	FetchPage(ctx context.Context, filter models.CarFilter, page, pageSize int) (models.CarPage, error)
}

// Aggregator drives a PageFetcher across all pages until the complete
// filtered record set is assembled. Page 1 is fetched first to learn the
// page count; the remaining pages are fetched concurrently and merged in
// page order, so arrival order never influences the result.
type Aggregator struct {
	Fetcher   PageFetcher
	PageSize  int
	RequestID string
}

// FetchAll returns the full ordered record set for the filter. Zero
// matching records is an explicit empty result, never an error. Any page
// failure or cancellation fails the whole export with DataUnavailableError:
// a truncated catalog is indistinguishable from a correctly filtered
// smaller one, so partial results are never returned.
func (a Aggregator) FetchAll(ctx context.Context, filter models.CarFilter) ([]models.Car, error) {
	size := a.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}

	first, err := a.Fetcher.FetchPage(ctx, filter, 1, size)
	if err != nil {
		return nil, domain.DataUnavailableError{Page: 1, Err: err}
	}

	totalPages := first.TotalPages
	if totalPages < 1 {
		totalPages = 1
	}

	// index = page number - 1, so the merge is deterministic no matter
	// which fetch completes first
	pages := make([][]models.Car, totalPages)
	pages[0] = first.Records

	if totalPages > 1 {
		eg, gctx := errgroup.WithContext(ctx)
		for p := 2; p <= totalPages; p++ {
			page := p
			eg.Go(func() error {
				res, err := a.Fetcher.FetchPage(gctx, filter, page, size)
				if err != nil {
					return domain.DataUnavailableError{Page: page, Err: err}
				}
				pages[page-1] = res.Records
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			if domain.IsDataUnavailable(err) {
				return nil, err
			}
			return nil, domain.DataUnavailableError{Err: err}
		}
	}

	out := []models.Car{}
	for _, p := range pages {
		out = append(out, p...)
	}

	sortCars(out)
	utils.LogEvent(a.RequestID, "aggregator", "fetch_all",
		fmt.Sprintf("pages=%d records=%d", totalPages, len(out)))
	return out, nil
}

// sortCars applies the deterministic secondary sort (case-insensitive make,
// then model, then id) so repeated exports of unchanged data are
// byte-for-byte stable regardless of backend ordering.
func sortCars(cars []models.Car) {
	sort.SliceStable(cars, func(i, j int) bool {
		mi, mj := strings.ToLower(cars[i].Make), strings.ToLower(cars[j].Make)
		if mi != mj {
			return mi < mj
		}
		di, dj := strings.ToLower(cars[i].Model), strings.ToLower(cars[j].Model)
		if di != dj {
			return di < dj
		}
		return cars[i].ID < cars[j].ID
	})
}
