package ledger

// Document is an invoice, bill or receipt matched against a transaction.
// The reconciliation core only cares about Total; item-level detail is
// carried through untouched for the API surface.
type Document struct {
	ID               string         `json:"_id"`
	DocumentType     string         `json:"documentType,omitempty"`
	Total            float64        `json:"total"`
	Items            []DocumentItem `json:"items,omitempty"`
	Shipping         float64        `json:"shipping,omitempty"`
	ShippingDiscount float64        `json:"shippingDiscount,omitempty"`
	Fees             float64        `json:"fees,omitempty"`
	Tax              float64        `json:"tax,omitempty"`
}

// DocumentItem is a single line item on a document. Upstream payloads use
// either "amount" or "totalPrice" for the line total depending on document
// type; LineTotal picks whichever is set.
type DocumentItem struct {
	Description string  `json:"description"`
	Category    string  `json:"category,omitempty"`
	Amount      float64 `json:"amount,omitempty"`
	TotalPrice  float64 `json:"totalPrice,omitempty"`
	Quantity    float64 `json:"quantity,omitempty"`
}

// LineTotal returns the line item total.
func (i *DocumentItem) LineTotal() float64 {
	if i.Amount != 0 {
		return i.Amount
	}
	return i.TotalPrice
}
