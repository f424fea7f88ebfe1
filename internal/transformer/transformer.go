// Package transformer maps raw API records to normalized entities.
//
// Every function is pure: a record with all required fields yields a fully
// populated entity, and a record missing one yields an error wrapping
// fault.ErrMalformedRecord that names the field.
package transformer

import (
	"github.com/manifest-network/sebakscan/internal/models"
	"github.com/pkg/errors"
)

// Block transforms a block record.
func Block(raw map[string]any) (models.Block, error) {
	r := newRecord(raw)
	block := models.Block{
		Hash:          r.str("hash"),
		Height:        r.uint("height"),
		Date:          r.time("confirmed"),
		PrevBlockHash: r.optStr("prev_block_hash"),
		Proposer:      r.optStr("proposer"),
		Round:         r.optUint("round"),
		ProposedTime:  r.optTime("proposed_time"),
		Transactions:  r.optStrings("transactions"),
	}
	if r.err != nil {
		return models.Block{}, errors.WithMessage(r.err, "block")
	}
	return block, nil
}

// Transaction transforms a transaction record.
func Transaction(raw map[string]any) (models.Transaction, error) {
	r := newRecord(raw)
	tx := models.Transaction{
		Hash:           r.str("hash"),
		Block:          r.str("block"),
		Source:         r.str("source"),
		Fee:            r.amount("fee"),
		SequenceID:     r.uint("sequence_id"),
		OperationCount: r.uint("operation_count"),
		Date:           r.time("confirmed"),
	}
	if r.err != nil {
		return models.Transaction{}, errors.WithMessage(r.err, "transaction")
	}
	return tx, nil
}

// Operation transforms an operation record. The payload under "body" is read
// according to the operation type.
func Operation(raw map[string]any) (models.Operation, error) {
	r := newRecord(raw)
	op := models.Operation{
		Hash:        r.str("hash"),
		TxHash:      r.str("tx_hash"),
		Source:      r.str("source"),
		Type:        r.str("type"),
		BlockHeight: r.optUint("block_height"),
		Date:        r.optTime("confirmed"),
	}

	switch op.Type {
	case models.OperationPayment:
		op.Target = r.str("body.target")
		op.Amount = r.amount("body.amount")
	case models.OperationCreateAccount:
		op.Target = r.str("body.target")
		op.Amount = r.amount("body.amount")
		op.Linked = r.optStr("body.linked")
	default:
		op.Target = r.optStr("body.target")
		op.Amount = r.optAmount("body.amount")
	}

	if r.err != nil {
		return models.Operation{}, errors.WithMessage(r.err, "operation")
	}
	return op, nil
}

// Account transforms an account record.
func Account(raw map[string]any) (models.Account, error) {
	r := newRecord(raw)
	account := models.Account{
		Address:    r.str("address"),
		Balance:    r.amount("balance"),
		SequenceID: r.uint("sequence_id"),
		Linked:     r.optStr("linked"),
	}
	if r.err != nil {
		return models.Account{}, errors.WithMessage(r.err, "account")
	}
	return account, nil
}

// FrozenAccount transforms a frozen account record. The unfreezing fields are
// only present once an unfreezing request was made.
func FrozenAccount(raw map[string]any) (models.FrozenAccount, error) {
	r := newRecord(raw)
	frozen := models.FrozenAccount{
		Address:                   r.str("address"),
		Linked:                    r.str("linked"),
		CreateBlockHeight:         r.uint("create_block_height"),
		SequenceID:                r.uint("sequence_id"),
		Amount:                    r.amount("amount"),
		State:                     r.str("state"),
		UnfreezingBlockHeight:     r.optUint("unfreezing_block_height"),
		UnfreezingRemainingBlocks: r.optUint("unfreezing_remaining_blocks"),
		PaymentOpHash:             r.optStr("payment_opHash"),
	}
	if r.err != nil {
		return models.FrozenAccount{}, errors.WithMessage(r.err, "frozen account")
	}
	return frozen, nil
}

// NetInformation transforms the node information document. Supply is left
// at zero; it is derived by the caller.
func NetInformation(raw map[string]any) (models.NetInformation, error) {
	r := newRecord(raw)
	info := models.NetInformation{
		NodeAddress:        r.str("node.address"),
		NodeAlias:          r.optStr("node.alias"),
		NodeState:          r.optStr("node.state"),
		NodeVersion:        r.optStr("node.version.version"),
		NetworkID:          r.str("policy.network-id"),
		InitialBalance:     r.optAmount("policy.initial-balance"),
		BaseReserve:        r.optAmount("policy.base-reserve"),
		BaseFee:            r.optAmount("policy.base-fee"),
		CurrentBlockHeight: r.uint("block.height"),
		CurrentBlockHash:   r.str("block.hash"),
		TotalTransactions:  r.optUint("block.total-txs"),
		TotalOperations:    r.optUint("block.total-ops"),
	}
	if r.err != nil {
		return models.NetInformation{}, errors.WithMessage(r.err, "net information")
	}
	return info, nil
}
