package entity

// Event payloads emitted by the marketplace after a transition has committed.
// Each carries a copy of the item as committed, so subscribers never read
// mutable ledger state.

type ItemListed struct {
	ItemId  uint64     `json:"itemId"`
	TokenId uint64     `json:"tokenId"`
	Seller  string     `json:"seller"`
	Price   uint64     `json:"price"`
	Fee     uint64     `json:"fee"`
	Seq     uint64     `json:"seq"`
	Item    MarketItem `json:"item"`
}

type ItemSold struct {
	ItemId  uint64     `json:"itemId"`
	TokenId uint64     `json:"tokenId"`
	Buyer   string     `json:"buyer"`
	Seller  string     `json:"seller"`
	Price   uint64     `json:"price"`
	Seq     uint64     `json:"seq"`
	Item    MarketItem `json:"item"`
}

type ItemRelisted struct {
	ItemId  uint64     `json:"itemId"`
	TokenId uint64     `json:"tokenId"`
	Seller  string     `json:"seller"`
	Price   uint64     `json:"price"`
	Fee     uint64     `json:"fee"`
	Seq     uint64     `json:"seq"`
	Item    MarketItem `json:"item"`
}
