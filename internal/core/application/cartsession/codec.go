package cartsession

import (
	"encoding/json"

	"fulfillment/internal/core/domain/model/cart"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

type storedCart struct {
	Items []storedItem `json:"items"`
}

type storedItem struct {
	Kind        string          `json:"kind"`
	ReferenceID string          `json:"referenceId"`
	Name        string          `json:"name"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Quantity    int             `json:"quantity"`
}

func encode(items []cart.Item) ([]byte, error) {
	stored := storedCart{Items: make([]storedItem, 0, len(items))}
	for _, item := range items {
		stored.Items = append(stored.Items, storedItem{
			Kind:        item.Ref.Kind.String(),
			ReferenceID: item.Ref.ReferenceID.String(),
			Name:        item.Name,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
		})
	}
	return json.Marshal(stored)
}

// decode rebuilds the cart, failing on malformed JSON and on any invalid item.
func decode(customerID kernel.UUID, data []byte) (*cart.Cart, error) {
	var stored storedCart
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, err
	}

	items := make([]cart.Item, 0, len(stored.Items))
	for _, s := range stored.Items {
		kind, err := kernel.ParseItemKind(s.Kind)
		if err != nil {
			return nil, err
		}
		refID, err := kernel.UUIDFromString(s.ReferenceID)
		if err != nil {
			return nil, err
		}
		ref, err := kernel.NewItemRef(kind, refID)
		if err != nil {
			return nil, err
		}
		items = append(items, cart.Item{Ref: ref, Name: s.Name, UnitPrice: s.UnitPrice, Quantity: s.Quantity})
	}

	return cart.Restore(customerID, items)
}
