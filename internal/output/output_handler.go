package output

import (
	"fmt"
	"io"

	"github.com/manifest-network/sebakscan/internal/config"
	"github.com/manifest-network/sebakscan/internal/models"
)

type OutputHandler interface {
	// WriteBlocks writes a page of blocks.
	WriteBlocks(blocks []models.Block) error

	// WriteTransactions writes a page of transactions.
	WriteTransactions(txs []models.Transaction) error

	// WriteOperations writes a list of operations.
	WriteOperations(ops []models.Operation) error

	// WriteAccount writes a single account.
	WriteAccount(account models.Account) error

	// WriteFrozenAccounts writes a page of frozen accounts.
	WriteFrozenAccounts(frozen []models.FrozenAccount) error

	// WriteNetInformation writes the node and chain snapshot, supply included.
	WriteNetInformation(info models.NetInformation) error

	// Close flushes buffered output.
	Close() error
}

// NewOutputHandler returns the handler for format writing to w.
func NewOutputHandler(format string, w io.Writer) (OutputHandler, error) {
	switch format {
	case config.OutputJSON:
		return NewJSONOutputHandler(w), nil
	case config.OutputTable, "":
		return NewTableOutputHandler(w), nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}
