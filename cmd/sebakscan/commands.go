package sebakscan

import (
	"fmt"
	"strconv"

	"github.com/manifest-network/sebakscan/internal/extractor"
	"github.com/manifest-network/sebakscan/internal/models"
	"github.com/manifest-network/sebakscan/internal/pagination"
	"github.com/manifest-network/sebakscan/internal/service"
	"github.com/spf13/cobra"
)

// pageFlags are the collection flags shared by paginated commands.
type pageFlags struct {
	limit    uint
	reverse  string
	pages    int
	backward bool
}

func (p *pageFlags) register(cmd *cobra.Command) {
	cmd.Flags().UintVar(&p.limit, "limit", 0, "records per page (default from page.limit)")
	cmd.Flags().StringVar(&p.reverse, "reverse", "", "request descending order: true or false (default from page.reverse)")
	cmd.Flags().IntVar(&p.pages, "pages", 1, "number of pages to fetch")
	cmd.Flags().BoolVar(&p.backward, "backward", false, "follow prev links instead of next links")
}

func (p *pageFlags) query() (service.Query, error) {
	q := service.Query{Limit: current.cfg.PageLimit, Reverse: current.cfg.Reverse}
	if p.limit > 0 {
		q.Limit = p.limit
	}
	if p.reverse != "" {
		reverse, err := strconv.ParseBool(p.reverse)
		if err != nil {
			return service.Query{}, fmt.Errorf("invalid --reverse value %q: %w", p.reverse, err)
		}
		q.Reverse = reverse
	}
	return q, nil
}

func (p *pageFlags) direction() extractor.Direction {
	if p.backward {
		return extractor.Backward
	}
	return extractor.Forward
}

// reversedOnDisplay reports whether pages reached in direction dir come back
// in the opposite order to the first page. With a reversed query the server
// answers next links in ascending order; without one, prev links come back
// descending.
func reversedOnDisplay(dir extractor.Direction, reverse bool) bool {
	return (dir == extractor.Forward) == reverse
}

// walk writes pages pages starting at first. Pages that arrive in the
// opposite order to the first page are reversed before they are written.
func walk[T any](cmd *cobra.Command, p *pageFlags, q service.Query, first *pagination.Cursor[T], write func([]T) error) error {
	dir := p.direction()
	flip := reversedOnDisplay(dir, q.Reverse)
	_, err := extractor.WalkPages(cmd.Context(), first, p.pages, dir, func(page int, c *pagination.Cursor[T]) error {
		if page > 0 && flip {
			c = c.Reversed()
		}
		return write(c.Data)
	}, p.pages > 1)
	return err
}

func blocksCmd() *cobra.Command {
	var p pageFlags
	cmd := &cobra.Command{
		Use:   "blocks",
		Short: "List blocks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			q, err := p.query()
			if err != nil {
				return err
			}
			blocks, err := current.svc.Blocks(cmd.Context(), q)
			if err != nil {
				return err
			}
			return walk(cmd, &p, q, blocks, current.out.WriteBlocks)
		},
	}
	p.register(cmd)
	return cmd
}

func blockCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "block <hash|height>",
		Short: "Show one block",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			block, err := current.svc.Block(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return current.out.WriteBlocks([]models.Block{block})
		},
	}
}

func transactionsCmd() *cobra.Command {
	var p pageFlags
	cmd := &cobra.Command{
		Use:   "transactions",
		Short: "List transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			q, err := p.query()
			if err != nil {
				return err
			}
			txs, err := current.svc.Transactions(cmd.Context(), q)
			if err != nil {
				return err
			}
			return walk(cmd, &p, q, txs, current.out.WriteTransactions)
		},
	}
	p.register(cmd)
	return cmd
}

func transactionCmd() *cobra.Command {
	var withOperations bool
	cmd := &cobra.Command{
		Use:     "tx <hash>",
		Aliases: []string{"transaction"},
		Short:   "Show one transaction",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tx, err := current.svc.Transaction(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := current.out.WriteTransactions([]models.Transaction{tx}); err != nil {
				return err
			}
			if !withOperations {
				return nil
			}
			ops, err := current.svc.OperationsForTransaction(cmd.Context(), tx, service.Query{})
			if err != nil {
				return err
			}
			return current.out.WriteOperations(ops)
		},
	}
	cmd.Flags().BoolVar(&withOperations, "operations", false, "also list the operations of the transaction")
	return cmd
}

func accountCmd() *cobra.Command {
	var withOperations, withFrozen bool
	var opType string
	cmd := &cobra.Command{
		Use:   "account <public-key>",
		Short: "Show one account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			account, err := current.svc.Account(ctx, args[0])
			if err != nil {
				return err
			}
			if err := current.out.WriteAccount(account); err != nil {
				return err
			}
			if withOperations {
				q := service.Query{Limit: current.cfg.PageLimit, Reverse: current.cfg.Reverse, Type: opType}
				ops, err := current.svc.OperationsForAccount(ctx, account.Address, q)
				if err != nil {
					return err
				}
				if err := current.out.WriteOperations(ops); err != nil {
					return err
				}
			}
			if withFrozen {
				frozen, err := current.svc.FrozenAccountsForAccount(ctx, account.Address, service.Query{Limit: current.cfg.PageLimit})
				if err != nil {
					return err
				}
				return current.out.WriteFrozenAccounts(frozen.Data)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&withOperations, "operations", false, "also list the account's operations")
	cmd.Flags().StringVar(&opType, "type", "", "only list operations of this type")
	cmd.Flags().BoolVar(&withFrozen, "frozen", false, "also list accounts frozen under this account")
	return cmd
}

func operationsCmd() *cobra.Command {
	var limit uint
	cmd := &cobra.Command{
		Use:   "operations",
		Short: "List the latest operations across transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if limit == 0 {
				limit = current.cfg.PageLimit
			}
			ops, err := current.svc.Operations(cmd.Context(), service.Query{Limit: limit, Reverse: current.cfg.Reverse})
			if err != nil {
				return err
			}
			return current.out.WriteOperations(ops)
		},
	}
	cmd.Flags().UintVar(&limit, "limit", 0, "maximum number of operations (default from page.limit)")
	return cmd
}

func frozenCmd() *cobra.Command {
	var p pageFlags
	cmd := &cobra.Command{
		Use:   "frozen [public-key]",
		Short: "List frozen accounts, optionally those linked to one account",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := p.query()
			if err != nil {
				return err
			}
			var frozen *service.FrozenAccounts
			if len(args) == 1 {
				frozen, err = current.svc.FrozenAccountsForAccount(cmd.Context(), args[0], q)
			} else {
				frozen, err = current.svc.FrozenAccounts(cmd.Context(), q)
			}
			if err != nil {
				return err
			}
			return walk(cmd, &p, q, frozen, current.out.WriteFrozenAccounts)
		},
	}
	p.register(cmd)
	return cmd
}

func infoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show node information and the current token supply",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info, err := current.svc.NetInformation(cmd.Context())
			if err != nil {
				return err
			}
			return current.out.WriteNetInformation(info)
		},
	}
}

func lookupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <identifier>",
		Short: "Resolve an account public key or a transaction hash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := current.svc.Lookup(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			switch res.Kind {
			case service.KindAccount:
				return current.out.WriteAccount(*res.Account)
			default:
				return current.out.WriteTransactions([]models.Transaction{*res.Transaction})
			}
		},
	}
}

func summaryCmd() *cobra.Command {
	var limit uint
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show node information with the latest blocks and transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if limit == 0 {
				limit = current.cfg.PageLimit
			}
			summary, err := extractor.FetchSummary(cmd.Context(), current.svc, limit)
			if err != nil {
				return err
			}
			if err := current.out.WriteNetInformation(summary.NetInformation); err != nil {
				return err
			}
			if err := current.out.WriteBlocks(summary.Blocks); err != nil {
				return err
			}
			return current.out.WriteTransactions(summary.Transactions)
		},
	}
	cmd.Flags().UintVar(&limit, "limit", 5, "number of blocks and transactions")
	return cmd
}
