package eval

import (
	"github.com/google/uuid"

	"github.com/ironbee/predicate/node"
)

// Transaction is the per-transaction external-data binding a PerTransaction
// evaluates against: the bound value of each external field a rule author's
// S-expression may reference. Its ID exists only for trace correlation
// (log lines, debug reports) and is never consulted by evaluation itself.
type Transaction struct {
	ID     uuid.UUID
	fields map[string]node.Value
}

// NewTransaction builds a Transaction with a freshly-minted ID and the given
// field bindings. A nil fields map is treated as empty.
func NewTransaction(fields map[string]node.Value) *Transaction {
	return &Transaction{ID: uuid.New(), fields: fields}
}

// Field returns the bound value for name and true, or (zero, false) if name
// is unbound in this transaction.
func (tx *Transaction) Field(name string) (node.Value, bool) {
	v, ok := tx.fields[name]
	return v, ok
}
