package service

import (
	"context"

	"github.com/manifest-network/sebakscan/internal/fault"
	"github.com/manifest-network/sebakscan/internal/models"
	"github.com/pkg/errors"
)

const (
	AccountKeyLength      = 56
	TransactionHashLength = 44
)

// Kind is the resource an identifier refers to.
type Kind int

const (
	KindUnknown Kind = iota
	KindAccount
	KindTransaction
)

func (k Kind) String() string {
	switch k {
	case KindAccount:
		return "account"
	case KindTransaction:
		return "transaction"
	default:
		return "unknown"
	}
}

// Classify tells account public keys and transaction hashes apart by length.
func Classify(identifier string) Kind {
	switch len(identifier) {
	case AccountKeyLength:
		return KindAccount
	case TransactionHashLength:
		return KindTransaction
	default:
		return KindUnknown
	}
}

// LookupResult holds the resource an identifier resolved to. Exactly one of
// Account and Transaction is set, matching Kind.
type LookupResult struct {
	Kind        Kind
	Account     *models.Account
	Transaction *models.Transaction
}

// Lookup resolves identifier to an account or a transaction.
func (s *Service) Lookup(ctx context.Context, identifier string) (LookupResult, error) {
	kind := Classify(identifier)
	switch kind {
	case KindAccount:
		account, err := s.Account(ctx, identifier)
		if err != nil {
			return LookupResult{}, err
		}
		return LookupResult{Kind: kind, Account: &account}, nil
	case KindTransaction:
		tx, err := s.Transaction(ctx, identifier)
		if err != nil {
			return LookupResult{}, err
		}
		return LookupResult{Kind: kind, Transaction: &tx}, nil
	default:
		return LookupResult{}, errors.WithMessagef(fault.ErrNotFound,
			"identifier of length %d is neither an account key (%d) nor a transaction hash (%d)",
			len(identifier), AccountKeyLength, TransactionHashLength)
	}
}
