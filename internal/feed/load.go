package feed

import (
	"context"
	"errors"
	"fmt"

	"github.com/huangsam/relicdb/internal/contract"
	"github.com/huangsam/relicdb/schema"
)

// Load fetches and decodes every URL in order and concatenates the records.
// A URL that cannot be fetched or decoded is logged and contributes nothing;
// the returned error joins every such failure so callers can tell a complete
// feed from a partial one.
func Load[T any](ctx context.Context, src contract.FeedSource, urls []string) ([]T, error) {
	var (
		out  []T
		errs []error
	)
	for _, url := range urls {
		body, err := src.Fetch(ctx, url)
		if err != nil {
			contract.LogWarn("Feed unavailable", err)
			errs = append(errs, err)
			continue
		}
		records, err := schema.DecodeFeed[T](body)
		if err != nil {
			err = fmt.Errorf("%w: %s: %w", schema.ErrFeedUnavailable, url, err)
			contract.LogWarn("Feed unavailable", err)
			errs = append(errs, err)
			continue
		}
		contract.Logger.Debug().Str("url", url).Int("records", len(records)).Msg("feed loaded")
		out = append(out, records...)
	}
	return out, errors.Join(errs...)
}
