package api

import "github.com/ZilDuck/nft-marketplace/internal/entity"

// Mutating requests carry the caller identity and the attached payment value,
// mirroring a signed transaction arriving through a trusted gateway.

type CreateTokenRequest struct {
	Caller string `json:"caller"`
	Uri    string `json:"uri"`
	Price  uint64 `json:"price"`
	Value  uint64 `json:"value"`
}

type CreateMarketItemRequest struct {
	Caller   string `json:"caller"`
	Contract string `json:"contract"`
	TokenId  uint64 `json:"tokenId"`
	Price    uint64 `json:"price"`
	Value    uint64 `json:"value"`
}

type CreateMarketSaleRequest struct {
	Caller string `json:"caller"`
	Value  uint64 `json:"value"`
}

type ResellTokenRequest struct {
	Caller string `json:"caller"`
	Price  uint64 `json:"price"`
	Value  uint64 `json:"value"`
}

type WithdrawRequest struct {
	Caller string `json:"caller"`
	Amount uint64 `json:"amount"`
}

type ItemResponse struct {
	Item entity.MarketItem `json:"item"`
}

type ItemsResponse struct {
	Items []entity.MarketItem `json:"items"`
	Total int                 `json:"total"`
}

type ActionsResponse struct {
	Actions []entity.MarketAction `json:"actions"`
	Total   int64                 `json:"total"`
}

type ListingPriceResponse struct {
	ListingPrice uint64 `json:"listingPrice"`
}

type TokenUriResponse struct {
	TokenId  uint64 `json:"tokenId"`
	TokenUri string `json:"tokenUri"`
}

type BalanceResponse struct {
	Address string `json:"address"`
	Balance uint64 `json:"balance"`
}

type TreasuryResponse struct {
	Escrowed uint64 `json:"escrowed"`
	Realized uint64 `json:"realized"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
