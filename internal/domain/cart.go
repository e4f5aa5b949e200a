package domain

import "github.com/google/uuid"

// CartLine is one entry in the cart. It snapshots the product data the
// storefront needs to render it plus the stock ceiling that applied when the
// line was created; later catalog changes do not flow into existing lines.
type CartLine struct {
	ID          string     `json:"id"`
	ProductID   uuid.UUID  `json:"product_id"`
	ProductName string     `json:"product_name"`
	VariantID   *uuid.UUID `json:"variant_id,omitempty"`
	VariantName string     `json:"variant_name,omitempty"`
	UnitPrice   float64    `json:"unit_price"`
	ImageURL    string     `json:"image_url,omitempty"`
	Quantity    int        `json:"quantity"`
	// StockCeiling caps Quantity for this line. It is the variant stock when
	// the line has a variant, the product base stock otherwise.
	StockCeiling int `json:"stock_ceiling"`
}

// Subtotal is the line total at the snapshot unit price.
func (l CartLine) Subtotal() float64 { return l.UnitPrice * float64(l.Quantity) }

// DisplayName is the product name with the variant in parentheses when the
// line carries one.
func (l CartLine) DisplayName() string {
	if l.VariantName == "" {
		return l.ProductName
	}
	return l.ProductName + " (" + l.VariantName + ")"
}

// Cart holds insertion-ordered lines, unique by line id.
type Cart struct {
	Lines []CartLine `json:"lines"`
}

// LineID builds the composite line identity for a product and optional
// variant.
func LineID(productID uuid.UUID, variantID *uuid.UUID) string {
	if variantID == nil {
		return productID.String() + "-base"
	}
	return productID.String() + "-" + variantID.String()
}

// Line returns a pointer into the cart for the given line id, or nil.
func (c *Cart) Line(id string) *CartLine {
	for i := range c.Lines {
		if c.Lines[i].ID == id {
			return &c.Lines[i]
		}
	}
	return nil
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool { return len(c.Lines) == 0 }

// Count is the total number of units across all lines.
func (c *Cart) Count() int {
	n := 0
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

// Total is the sum of all line subtotals.
func (c *Cart) Total() float64 {
	t := 0.0
	for _, l := range c.Lines {
		t += l.Subtotal()
	}
	return t
}

// Add puts qty units of the product (or of one of its variants) into the
// cart, clamped so the line never exceeds its stock ceiling. It returns the
// number of units actually added: 0 with a nil error means no stock remains,
// which is an expected condition and not a failure.
//
// A product that has variants cannot be added without choosing one.
func (c *Cart) Add(p *Product, v *Variant, qty int) (int, error) {
	if qty < 1 {
		return 0, ErrInvalidQuantity
	}
	if v == nil && len(p.Variants) > 0 {
		return 0, ErrVariantRequired
	}
	if v != nil && v.ProductID != p.ID {
		return 0, ErrVariantMismatch
	}

	ceiling := p.Stock
	var variantID *uuid.UUID
	variantName := ""
	image := p.MainImage()
	if v != nil {
		ceiling = v.Stock
		id := v.ID
		variantID = &id
		variantName = v.Name
		if v.ImageURL != "" {
			image = v.ImageURL
		}
	}

	lineID := LineID(p.ID, variantID)
	alreadyInCart := 0
	if line := c.Line(lineID); line != nil {
		alreadyInCart = line.Quantity
	}
	available := ceiling - alreadyInCart
	if available <= 0 {
		return 0, nil
	}
	add := qty
	if add > available {
		add = available
	}

	if line := c.Line(lineID); line != nil {
		line.Quantity += add
		return add, nil
	}
	c.Lines = append(c.Lines, CartLine{
		ID:           lineID,
		ProductID:    p.ID,
		ProductName:  p.Name,
		VariantID:    variantID,
		VariantName:  variantName,
		UnitPrice:    p.Price,
		ImageURL:     image,
		Quantity:     add,
		StockCeiling: ceiling,
	})
	return add, nil
}

// UpdateQuantity sets the quantity of an existing line, clamped to the
// line's own stock ceiling. A quantity of zero or less removes the line.
// Unknown line ids are ignored.
func (c *Cart) UpdateQuantity(lineID string, qty int) {
	if qty <= 0 {
		c.Remove(lineID)
		return
	}
	line := c.Line(lineID)
	if line == nil {
		return
	}
	if qty > line.StockCeiling {
		qty = line.StockCeiling
	}
	line.Quantity = qty
}

// Remove deletes the line with the given id. Removing an absent line is a
// no-op.
func (c *Cart) Remove(lineID string) {
	for i := range c.Lines {
		if c.Lines[i].ID == lineID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return
		}
	}
}
