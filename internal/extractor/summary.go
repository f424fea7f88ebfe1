package extractor

import (
	"context"
	"fmt"

	"github.com/manifest-network/sebakscan/internal/models"
	"github.com/manifest-network/sebakscan/internal/service"
	"golang.org/x/sync/errgroup"
)

// Summary is the explorer landing view: the network snapshot with the most
// recent blocks and transactions.
type Summary struct {
	NetInformation models.NetInformation
	Blocks         []models.Block
	Transactions   []models.Transaction
}

// Querier is the part of the query service Summary reads from.
type Querier interface {
	NetInformation(ctx context.Context) (models.NetInformation, error)
	Blocks(ctx context.Context, q service.Query) (*service.Blocks, error)
	Transactions(ctx context.Context, q service.Query) (*service.Transactions, error)
}

// FetchSummary issues the three queries of the landing view concurrently.
// They do not depend on each other; the first failure cancels the others.
func FetchSummary(ctx context.Context, q Querier, limit uint) (Summary, error) {
	eg, ctx := errgroup.WithContext(ctx)
	latest := service.Query{Limit: limit, Reverse: true}

	var summary Summary
	eg.Go(func() error {
		info, err := q.NetInformation(ctx)
		if err != nil {
			return fmt.Errorf("failed to fetch net information: %w", err)
		}
		summary.NetInformation = info
		return nil
	})
	eg.Go(func() error {
		blocks, err := q.Blocks(ctx, latest)
		if err != nil {
			return fmt.Errorf("failed to fetch latest blocks: %w", err)
		}
		summary.Blocks = blocks.Data
		return nil
	})
	eg.Go(func() error {
		txs, err := q.Transactions(ctx, latest)
		if err != nil {
			return fmt.Errorf("failed to fetch latest transactions: %w", err)
		}
		summary.Transactions = txs.Data
		return nil
	})

	if err := eg.Wait(); err != nil {
		return Summary{}, err
	}
	return summary, nil
}
