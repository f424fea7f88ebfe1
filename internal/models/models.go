package models

import (
	"fmt"
	"time"
)

// GONPerBOS is the number of base units (GON) in one BOS.
const GONPerBOS = 10_000_000

// Amount is a quantity of the native token, in GON.
type Amount uint64

// String renders the amount in BOS with seven decimals.
func (a Amount) String() string {
	return fmt.Sprintf("%d.%07d", uint64(a)/GONPerBOS, uint64(a)%GONPerBOS)
}

// Block represents a confirmed ledger block.
type Block struct {
	Hash          string    `json:"hash"`
	Height        uint64    `json:"height"`
	PrevBlockHash string    `json:"prev_block_hash"`
	Proposer      string    `json:"proposer"`
	Round         uint64    `json:"round"`
	Date          time.Time `json:"date"`
	ProposedTime  time.Time `json:"proposed_time"`
	Transactions  []string  `json:"transactions"`
}

// Transaction represents a transaction included in a block.
type Transaction struct {
	Hash           string    `json:"hash"`
	Block          string    `json:"block"`
	Source         string    `json:"source"`
	Fee            Amount    `json:"fee"`
	SequenceID     uint64    `json:"sequence_id"`
	OperationCount uint64    `json:"operation_count"`
	Date           time.Time `json:"date"`
}

// Operation types known to the ledger.
const (
	OperationCreateAccount        = "create-account"
	OperationPayment              = "payment"
	OperationCongressVoting       = "congress-voting"
	OperationCongressVotingResult = "congress-voting-result"
	OperationCollectTxFee         = "collect-tx-fee"
	OperationInflation            = "inflation"
	OperationInflationPF          = "inflation-pf"
	OperationUnfreezingRequest    = "unfreezing-request"
)

// Operation represents one operation of a transaction. Target and Amount are
// only set for operation types that carry them.
type Operation struct {
	Hash        string    `json:"hash"`
	TxHash      string    `json:"tx_hash"`
	Source      string    `json:"source"`
	Target      string    `json:"target,omitempty"`
	Type        string    `json:"type"`
	Amount      Amount    `json:"amount"`
	Linked      string    `json:"linked,omitempty"`
	BlockHeight uint64    `json:"block_height"`
	Date        time.Time `json:"date"`
}

// Account represents a ledger account keyed by its public address.
type Account struct {
	Address    string `json:"address"`
	Balance    Amount `json:"balance"`
	SequenceID uint64 `json:"sequence_id"`
	Linked     string `json:"linked,omitempty"`
}

// FrozenAccount is an account whose balance is frozen and linked to a parent
// account, with its unfreeze schedule.
type FrozenAccount struct {
	Address                   string `json:"address"`
	Linked                    string `json:"linked"`
	CreateBlockHeight         uint64 `json:"create_block_height"`
	SequenceID                uint64 `json:"sequence_id"`
	Amount                    Amount `json:"amount"`
	State                     string `json:"state"`
	UnfreezingBlockHeight     uint64 `json:"unfreezing_block_height"`
	UnfreezingRemainingBlocks uint64 `json:"unfreezing_remaining_blocks"`
	PaymentOpHash             string `json:"payment_op_hash"`
}

// NetInformation is a snapshot of the node and the chain tip. Supply is not
// part of the server payload; it is derived from CurrentBlockHeight.
type NetInformation struct {
	NodeAddress        string  `json:"node_address"`
	NodeAlias          string  `json:"node_alias"`
	NodeState          string  `json:"node_state"`
	NodeVersion        string  `json:"node_version"`
	NetworkID          string  `json:"network_id"`
	InitialBalance     Amount  `json:"initial_balance"`
	BaseReserve        Amount  `json:"base_reserve"`
	BaseFee            Amount  `json:"base_fee"`
	CurrentBlockHeight uint64  `json:"current_block_height"`
	CurrentBlockHash   string  `json:"current_block_hash"`
	TotalTransactions  uint64  `json:"total_transactions"`
	TotalOperations    uint64  `json:"total_operations"`
	Supply             float64 `json:"supply"`
}
