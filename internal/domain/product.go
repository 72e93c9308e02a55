package domain

// Product is a catalog entry the presentation layer turns into cart items.
type Product struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// NewItem builds a cart line for the product with the given quantity.
func (p Product) NewItem(quantity any) (*Item, error) {
	item, err := NewItem(ItemOptions{ID: &p.ID, Name: &p.Name, Price: &p.Price})
	if err != nil {
		return nil, err
	}
	if err := item.SetQuantity(quantity); err != nil {
		return nil, err
	}
	return item, nil
}
