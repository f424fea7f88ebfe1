package output

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/manifest-network/sebakscan/internal/models"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const hashWidth = 10

// TableOutputHandler renders values as aligned text tables.
type TableOutputHandler struct {
	tw      *tabwriter.Writer
	printer *message.Printer
}

func NewTableOutputHandler(w io.Writer) *TableOutputHandler {
	return &TableOutputHandler{
		tw:      tabwriter.NewWriter(w, 0, 4, 2, ' ', 0),
		printer: message.NewPrinter(language.English),
	}
}

// truncate shortens s to n characters followed by an ellipsis.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format("2006-01-02 15:04:05")
}

func (h *TableOutputHandler) rows(header string, lines []string) error {
	if _, err := fmt.Fprintln(h.tw, header); err != nil {
		return err
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(h.tw, line); err != nil {
			return err
		}
	}
	return h.tw.Flush()
}

func (h *TableOutputHandler) WriteBlocks(blocks []models.Block) error {
	lines := make([]string, 0, len(blocks))
	for _, b := range blocks {
		lines = append(lines, h.printer.Sprintf("%s\t%d\t%s\t%d",
			truncate(b.Hash, hashWidth), b.Height, formatDate(b.Date), len(b.Transactions)))
	}
	return h.rows("HASH\tHEIGHT\tDATE\tTXS", lines)
}

func (h *TableOutputHandler) WriteTransactions(txs []models.Transaction) error {
	lines := make([]string, 0, len(txs))
	for _, tx := range txs {
		lines = append(lines, h.printer.Sprintf("%s\t%s\t%d\t%s\t%s",
			truncate(tx.Hash, hashWidth), truncate(tx.Source, hashWidth), tx.OperationCount, tx.Fee, formatDate(tx.Date)))
	}
	return h.rows("HASH\tSOURCE\tOPS\tFEE\tDATE", lines)
}

func (h *TableOutputHandler) WriteOperations(ops []models.Operation) error {
	lines := make([]string, 0, len(ops))
	for _, op := range ops {
		target := op.Target
		if target == "" {
			target = "-"
		}
		lines = append(lines, fmt.Sprintf("%s\t%s\t%s\t%s\t%s\t%s",
			truncate(op.Hash, hashWidth), truncate(op.TxHash, hashWidth), op.Type,
			truncate(op.Source, hashWidth), truncate(target, hashWidth), op.Amount))
	}
	return h.rows("HASH\tTX\tTYPE\tSOURCE\tTARGET\tAMOUNT", lines)
}

func (h *TableOutputHandler) WriteAccount(account models.Account) error {
	lines := []string{
		"Address\t" + account.Address,
		"Balance\t" + account.Balance.String() + " BOS",
		h.printer.Sprintf("Sequence\t%d", account.SequenceID),
	}
	if account.Linked != "" {
		lines = append(lines, "Linked\t"+account.Linked)
	}
	return h.rows("ACCOUNT\t", lines)
}

func (h *TableOutputHandler) WriteFrozenAccounts(frozen []models.FrozenAccount) error {
	lines := make([]string, 0, len(frozen))
	for _, f := range frozen {
		lines = append(lines, h.printer.Sprintf("%s\t%s\t%s\t%s\t%d\t%d",
			truncate(f.Address, hashWidth), truncate(f.Linked, hashWidth), f.State, f.Amount,
			f.CreateBlockHeight, f.UnfreezingRemainingBlocks))
	}
	return h.rows("ADDRESS\tLINKED\tSTATE\tAMOUNT\tCREATED\tREMAINING", lines)
}

func (h *TableOutputHandler) WriteNetInformation(info models.NetInformation) error {
	lines := []string{
		"Network\t" + info.NetworkID,
		"Node\t" + info.NodeAddress,
		"State\t" + info.NodeState,
		h.printer.Sprintf("Block height\t%d", info.CurrentBlockHeight),
		"Block hash\t" + info.CurrentBlockHash,
		h.printer.Sprintf("Transactions\t%d", info.TotalTransactions),
		h.printer.Sprintf("Operations\t%d", info.TotalOperations),
		h.printer.Sprintf("Supply\t%.1f BOS", info.Supply),
	}
	return h.rows("NET INFORMATION\t", lines)
}

func (h *TableOutputHandler) Close() error {
	return h.tw.Flush()
}
