// Package service is the query layer of the explorer. It composes the
// transport, the transformers and the paginator into one read operation per
// resource kind.
package service

import (
	"context"
	"io"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/manifest-network/sebakscan/internal/client"
	"github.com/manifest-network/sebakscan/internal/models"
	"github.com/manifest-network/sebakscan/internal/pagination"
	"github.com/manifest-network/sebakscan/internal/supply"
	"github.com/manifest-network/sebakscan/internal/transformer"
	"github.com/pkg/errors"
)

// Transport is the read capability the service needs from the API client.
type Transport interface {
	Get(ctx context.Context, path string, params url.Values) (*client.Envelope, error)
	GetLink(ctx context.Context, href string) (*client.Envelope, error)
}

// Query holds the collection options understood by the API. Zero values are
// not sent.
type Query struct {
	Limit   uint
	Reverse bool
	Cursor  string
	Type    string
}

// Values returns the query as URL parameters.
func (q Query) Values() url.Values {
	params := url.Values{}
	if q.Limit > 0 {
		params.Set("limit", strconv.FormatUint(uint64(q.Limit), 10))
	}
	if q.Reverse {
		params.Set("reverse", "true")
	}
	if q.Cursor != "" {
		params.Set("cursor", q.Cursor)
	}
	if q.Type != "" {
		params.Set("type", q.Type)
	}
	return params
}

// Cursor types returned by the collection queries.
type (
	Blocks         = pagination.Cursor[models.Block]
	Transactions   = pagination.Cursor[models.Transaction]
	FrozenAccounts = pagination.Cursor[models.FrozenAccount]
)

// Service runs read queries against the ledger API. It holds no mutable
// state, so concurrent calls do not interact.
type Service struct {
	transport Transport
	supply    *supply.Calculator
	logger    *slog.Logger
}

// New returns a service reading through transport. calc computes the supply
// reported by NetInformation; logger may be nil.
func New(transport Transport, calc *supply.Calculator, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{
		transport: transport,
		supply:    calc,
		logger:    logger.With("component", "service"),
	}
}

// Account fetches one account by its public key.
func (s *Service) Account(ctx context.Context, publicKey string) (models.Account, error) {
	env, err := s.transport.Get(ctx, client.Path(client.RouteAccount, publicKey), nil)
	if err != nil {
		return models.Account{}, errors.WithMessagef(err, "failed to get account %s", publicKey)
	}
	return transformer.Account(env.Data)
}

// Transaction fetches one transaction by hash.
func (s *Service) Transaction(ctx context.Context, hash string) (models.Transaction, error) {
	env, err := s.transport.Get(ctx, client.Path(client.RouteTransaction, hash), nil)
	if err != nil {
		return models.Transaction{}, errors.WithMessagef(err, "failed to get transaction %s", hash)
	}
	return transformer.Transaction(env.Data)
}

// Block fetches one block by hash. The API also resolves a height given in
// place of the hash.
func (s *Service) Block(ctx context.Context, hashOrHeight string) (models.Block, error) {
	env, err := s.transport.Get(ctx, client.Path(client.RouteBlock, hashOrHeight), nil)
	if err != nil {
		return models.Block{}, errors.WithMessagef(err, "failed to get block %s", hashOrHeight)
	}
	return transformer.Block(env.Data)
}

// Transactions returns the first page of transactions for q.
func (s *Service) Transactions(ctx context.Context, q Query) (*Transactions, error) {
	env, err := s.transport.Get(ctx, client.RouteTransactions, q.Values())
	if err != nil {
		return nil, errors.WithMessage(err, "failed to get transactions")
	}
	return pagination.Wrap(env, s.transport, transformer.Transaction)
}

// Blocks returns the first page of blocks for q.
func (s *Service) Blocks(ctx context.Context, q Query) (*Blocks, error) {
	env, err := s.transport.Get(ctx, client.RouteBlocks, q.Values())
	if err != nil {
		return nil, errors.WithMessage(err, "failed to get blocks")
	}
	return pagination.Wrap(env, s.transport, transformer.Block)
}

// FrozenAccounts returns the first page of frozen accounts for q. An empty
// collection yields a cursor without data or links.
func (s *Service) FrozenAccounts(ctx context.Context, q Query) (*FrozenAccounts, error) {
	env, err := s.transport.Get(ctx, client.RouteFrozenAccounts, q.Values())
	if err != nil {
		return nil, errors.WithMessage(err, "failed to get frozen accounts")
	}
	return pagination.Wrap(env, s.transport, transformer.FrozenAccount, pagination.AllowEmpty())
}

// FrozenAccountsForAccount returns the first page of accounts frozen under
// publicKey.
func (s *Service) FrozenAccountsForAccount(ctx context.Context, publicKey string, q Query) (*FrozenAccounts, error) {
	env, err := s.transport.Get(ctx, client.Path(client.RouteAccountFrozenAccounts, publicKey), q.Values())
	if err != nil {
		return nil, errors.WithMessagef(err, "failed to get frozen accounts of %s", publicKey)
	}
	return pagination.Wrap(env, s.transport, transformer.FrozenAccount, pagination.AllowEmpty())
}

// OperationsForAccount returns the operations of one account page as a list.
func (s *Service) OperationsForAccount(ctx context.Context, publicKey string, q Query) ([]models.Operation, error) {
	env, err := s.transport.Get(ctx, client.Path(client.RouteAccountOperations, publicKey), q.Values())
	if err != nil {
		return nil, errors.WithMessagef(err, "failed to get operations of account %s", publicKey)
	}
	return operations(env)
}

// OperationsForTransaction returns the operations of tx as a list.
func (s *Service) OperationsForTransaction(ctx context.Context, tx models.Transaction, q Query) ([]models.Operation, error) {
	env, err := s.transport.Get(ctx, client.Path(client.RouteTransactionOperations, tx.Hash), q.Values())
	if err != nil {
		return nil, errors.WithMessagef(err, "failed to get operations of transaction %s", tx.Hash)
	}
	return operations(env)
}

// Operations collects operations across the first page of transactions for
// q, in transaction order and then operation order. Transactions are read one
// at a time and collection stops as soon as q.Limit operations are held, even
// inside a transaction. A zero limit collects every operation of the page.
// The result is shorter than q.Limit when the page runs out; no further
// transaction page is fetched.
func (s *Service) Operations(ctx context.Context, q Query) ([]models.Operation, error) {
	txs, err := s.Transactions(ctx, q)
	if err != nil {
		return nil, err
	}

	limit := int(q.Limit)
	data := []models.Operation{}
	for _, tx := range txs.Data {
		ops, err := s.OperationsForTransaction(ctx, tx, Query{})
		if err != nil {
			return nil, err
		}
		for _, op := range ops {
			data = append(data, op)
			if limit > 0 && len(data) == limit {
				return data, nil
			}
		}
	}
	if limit > 0 && len(data) < limit {
		s.logger.Debug("transaction page exhausted before limit", "limit", limit, "collected", len(data), "transactions", len(txs.Data))
	}
	return data, nil
}

// NetInformation fetches the node information and derives the current
// supply from the chain height. Supply is computed on every call.
func (s *Service) NetInformation(ctx context.Context) (models.NetInformation, error) {
	env, err := s.transport.Get(ctx, client.RouteNodeInfo, nil)
	if err != nil {
		return models.NetInformation{}, errors.WithMessage(err, "failed to get net information")
	}
	info, err := transformer.NetInformation(env.Data)
	if err != nil {
		return models.NetInformation{}, err
	}
	info.Supply, err = s.supply.Supply(info.CurrentBlockHeight)
	if err != nil {
		return models.NetInformation{}, err
	}
	return info, nil
}

func operations(env *client.Envelope) ([]models.Operation, error) {
	records, _, err := env.Records()
	if err != nil {
		return nil, err
	}
	data := make([]models.Operation, 0, len(records))
	for i, raw := range records {
		op, err := transformer.Operation(raw)
		if err != nil {
			return nil, errors.WithMessagef(err, "record %d", i)
		}
		data = append(data, op)
	}
	return data, nil
}
