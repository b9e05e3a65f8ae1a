package entity

import (
	"crypto/md5"
	"fmt"
)

type MarketAction struct {
	ItemId   uint64     `json:"itemId"`
	Contract string     `json:"contract"`
	TokenId  uint64     `json:"tokenId"`
	Action   ActionType `json:"action"`
	From     string     `json:"from"`
	To       string     `json:"to"`
	Price    uint64     `json:"price"`
	Fee      uint64     `json:"fee"`
	Seq      uint64     `json:"seq"`
}

type ActionType string

const (
	ListingAction   ActionType = "listing"
	SaleAction      ActionType = "sale"
	RelistingAction ActionType = "relisting"
)

func (a MarketAction) Slug() string {
	return CreateMarketActionSlug(a.ItemId, a.Seq, string(a.Action))
}

func CreateMarketActionSlug(itemId, seq uint64, action string) string {
	data := []byte(fmt.Sprintf("marketaction-%d-%d-%s", itemId, seq, action))
	return fmt.Sprintf("%x", md5.Sum(data))
}
