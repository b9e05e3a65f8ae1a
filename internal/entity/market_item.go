package entity

import (
	"fmt"

	"github.com/gosimple/slug"
)

// MarketItem is one listing epoch record. Owner is empty while the marketplace
// holds the item in escrow, and carries the buyer address once sold.
type MarketItem struct {
	ItemId   uint64 `json:"itemId"`
	Contract string `json:"contract"`
	TokenId  uint64 `json:"tokenId"`
	TokenUri string `json:"tokenUri"`
	Seller   string `json:"seller"`
	Owner    string `json:"owner"`
	Price    uint64 `json:"price"`
	Sold     bool   `json:"sold"`
}

func (i MarketItem) Slug() string {
	return CreateMarketItemSlug(i.ItemId)
}

func CreateMarketItemSlug(itemId uint64) string {
	return slug.Make(fmt.Sprintf("item-%d", itemId))
}

func (i MarketItem) InEscrow() bool {
	return i.Owner == ""
}
