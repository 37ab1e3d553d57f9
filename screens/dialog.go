package screens

import "github.com/google/uuid"

// DialogKind enumerates the pipeline screen's dialog states. Exactly one
// dialog can be open at a time; the payload fields below only carry meaning
// for the kind that owns them.
type DialogKind string

const (
	DialogIdle            DialogKind = "idle"
	DialogCustomerPicking DialogKind = "customer_picking"
	DialogDealEditing     DialogKind = "deal_editing"
	DialogDealViewing     DialogKind = "deal_viewing"
)

// DealDialog is the pipeline screen's dialog state.
// CustomerID is set only while Kind == DialogDealEditing, DealID only while
// Kind == DialogDealViewing.
type DealDialog struct {
	Kind       DialogKind `json:"kind"`
	CustomerID uuid.UUID  `json:"customer_id"`
	DealID     uuid.UUID  `json:"deal_id"`
}

func idleDialog() DealDialog {
	return DealDialog{Kind: DialogIdle}
}
