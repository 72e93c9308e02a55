package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Item is a single cart line.
type Item struct {
	id       int64
	hasID    bool
	name     string
	quantity int64
	price    float64

	// Attributes holds extension values that are persisted with the item but never validated.
	Attributes map[string]any
}

// Items is a cart collection keyed by item id.
type Items map[int64]*Item

// ItemOptions configures a new Item. Nil fields keep their defaults.
type ItemOptions struct {
	ID         *int64
	Name       *string
	Quantity   *int64
	Price      *float64
	Attributes map[string]any
}

func NewItem(opts ItemOptions) (*Item, error) {
	item := &Item{}
	if opts.ID != nil {
		if err := item.SetID(*opts.ID); err != nil {
			return nil, err
		}
	}
	if opts.Name != nil {
		if err := item.SetName(*opts.Name); err != nil {
			return nil, err
		}
	}
	if opts.Quantity != nil {
		if err := item.SetQuantity(*opts.Quantity); err != nil {
			return nil, err
		}
	}
	if opts.Price != nil {
		if err := item.SetPrice(*opts.Price); err != nil {
			return nil, err
		}
	}
	if len(opts.Attributes) > 0 {
		item.Attributes = maps.Clone(opts.Attributes)
	}
	return item, nil
}

// Configure applies a loose set of values, as decoded from a form or a JSON body.
// Known fields go through their setters, derived fields are rejected and anything
// else is kept as an extension attribute. Keys are applied in sorted order and the
// first failure stops processing.
func (i *Item) Configure(values map[string]any) error {
	for _, key := range slices.Sorted(maps.Keys(values)) {
		value := values[key]
		var err error
		switch strings.ToLower(key) {
		case "id":
			err = i.SetID(value)
		case "name":
			err = i.SetName(value)
		case "quantity":
			err = i.SetQuantity(value)
		case "price":
			err = i.SetPrice(value)
		case "total", "linetotal":
			err = fmt.Errorf("%w: %s", ErrReadOnlyProperty, key)
		default:
			if i.Attributes == nil {
				i.Attributes = make(map[string]any)
			}
			i.Attributes[key] = value
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (i *Item) ID() int64 {
	return i.id
}

// HasID reports whether an id has been assigned.
func (i *Item) HasID() bool {
	return i.hasID
}

func (i *Item) SetID(value any) error {
	id, ok := toInteger(value)
	if !ok {
		return fmt.Errorf("%w: id must be an integer and not negative", ErrInvalidArgument)
	}
	i.id = id
	i.hasID = true
	return nil
}

func (i *Item) Name() string {
	return i.name
}

func (i *Item) SetName(value any) error {
	if !ValidateString(value) {
		return fmt.Errorf("%w: name must be a string with at least one character", ErrInvalidArgument)
	}
	i.name = fmt.Sprint(value)
	return nil
}

func (i *Item) Quantity() int64 {
	return i.quantity
}

func (i *Item) SetQuantity(value any) error {
	quantity, ok := toInteger(value)
	if !ok {
		return fmt.Errorf("%w: quantity must be an integer and not negative", ErrInvalidArgument)
	}
	i.quantity = quantity
	return nil
}

// Price is the unit price.
func (i *Item) Price() float64 {
	return i.price
}

func (i *Item) SetPrice(value any) error {
	price, ok := toFloat(value)
	if !ok || price < 0 {
		return fmt.Errorf("%w: price must be numeric and not negative", ErrInvalidArgument)
	}
	i.price = price
	return nil
}

// LineTotal is quantity multiplied by the unit price.
func (i *Item) LineTotal() float64 {
	return float64(i.quantity) * i.price
}

// IsValid reports whether the item can be put in a cart: id and name set and every
// field within its bounds.
func (i *Item) IsValid() bool {
	return i.Validate() == nil
}

// Validate returns an ErrInvalidArgument naming the first field that fails.
func (i *Item) Validate() error {
	switch {
	case !i.hasID || !ValidateInteger(i.id):
		return fmt.Errorf("%w: item id is missing or negative", ErrInvalidArgument)
	case !ValidateString(i.name):
		return fmt.Errorf("%w: item name is missing", ErrInvalidArgument)
	case !ValidateInteger(i.quantity):
		return fmt.Errorf("%w: item quantity is negative", ErrInvalidArgument)
	case !ValidateFloat(i.price):
		return fmt.Errorf("%w: item price is negative", ErrInvalidArgument)
	}
	return nil
}

func (i *Item) Clone() *Item {
	clone := *i
	if i.Attributes != nil {
		clone.Attributes = maps.Clone(i.Attributes)
	}
	return &clone
}

type itemJSON struct {
	ID         any            `json:"id,omitempty"`
	Name       any            `json:"name,omitempty"`
	Quantity   any            `json:"quantity"`
	Price      any            `json:"price"`
	Attributes map[string]any `json:"attributes,omitempty"`
}

func (i *Item) MarshalJSON() ([]byte, error) {
	out := itemJSON{
		Quantity:   i.quantity,
		Price:      i.price,
		Attributes: i.Attributes,
	}
	if i.hasID {
		out.ID = i.id
	}
	if i.name != "" {
		out.Name = i.name
	}
	return json.Marshal(out)
}

// UnmarshalJSON runs every present field through its setter, so foreign or
// tampered data fails to decode instead of producing an invalid item.
func (i *Item) UnmarshalJSON(data []byte) error {
	var in itemJSON
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&in); err != nil {
		return err
	}

	item := Item{}
	if in.ID != nil {
		if err := item.SetID(in.ID); err != nil {
			return err
		}
	}
	if in.Name != nil {
		if err := item.SetName(in.Name); err != nil {
			return err
		}
	}
	if in.Quantity != nil {
		if err := item.SetQuantity(in.Quantity); err != nil {
			return err
		}
	}
	if in.Price != nil {
		if err := item.SetPrice(in.Price); err != nil {
			return err
		}
	}
	if len(in.Attributes) > 0 {
		item.Attributes = in.Attributes
	}
	*i = item
	return nil
}
