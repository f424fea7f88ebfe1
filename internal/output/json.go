package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/manifest-network/sebakscan/internal/models"
)

// JSONOutputHandler writes every value as one indented JSON document.
type JSONOutputHandler struct {
	enc *json.Encoder
}

func NewJSONOutputHandler(w io.Writer) *JSONOutputHandler {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return &JSONOutputHandler{enc: enc}
}

func (h *JSONOutputHandler) write(kind string, v any) error {
	if err := h.enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode %s: %w", kind, err)
	}
	return nil
}

func (h *JSONOutputHandler) WriteBlocks(blocks []models.Block) error {
	return h.write("blocks", blocks)
}

func (h *JSONOutputHandler) WriteTransactions(txs []models.Transaction) error {
	return h.write("transactions", txs)
}

func (h *JSONOutputHandler) WriteOperations(ops []models.Operation) error {
	return h.write("operations", ops)
}

func (h *JSONOutputHandler) WriteAccount(account models.Account) error {
	return h.write("account", account)
}

func (h *JSONOutputHandler) WriteFrozenAccounts(frozen []models.FrozenAccount) error {
	return h.write("frozen accounts", frozen)
}

func (h *JSONOutputHandler) WriteNetInformation(info models.NetInformation) error {
	return h.write("net information", info)
}

func (h *JSONOutputHandler) Close() error {
	return nil
}
