package cart

// AddLineRequest adds one unit of a product, optionally for a pricing option.
type AddLineRequest struct {
	ProductID string `json:"productId" validate:"required,max=64"`
	Option    string `json:"option" validate:"max=32"`
}

// UpdateQuantityRequest sets the quantity of a line. Zero or less removes it.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" validate:"max=999"`
}

// ComposeOrderRequest selects the seller link. Empty means the generic order link.
type ComposeOrderRequest struct {
	Link string `json:"link" validate:"max=64"`
}
