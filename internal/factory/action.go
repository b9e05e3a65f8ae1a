package factory

import (
	"github.com/ZilDuck/nft-marketplace/internal/entity"
)

// Audit actions are derived from committed market events. From/To follow the
// custody of the item: listings move it from the seller into escrow, sales
// from escrow to the buyer.

func CreateListingAction(listed entity.ItemListed) entity.MarketAction {
	return entity.MarketAction{
		ItemId:   listed.ItemId,
		Contract: listed.Item.Contract,
		TokenId:  listed.TokenId,
		Action:   entity.ListingAction,
		From:     listed.Seller,
		To:       "",
		Price:    listed.Price,
		Fee:      listed.Fee,
		Seq:      listed.Seq,
	}
}

func CreateSaleAction(sold entity.ItemSold) entity.MarketAction {
	return entity.MarketAction{
		ItemId:   sold.ItemId,
		Contract: sold.Item.Contract,
		TokenId:  sold.TokenId,
		Action:   entity.SaleAction,
		From:     "",
		To:       sold.Buyer,
		Price:    sold.Price,
		Seq:      sold.Seq,
	}
}

func CreateRelistingAction(relisted entity.ItemRelisted) entity.MarketAction {
	return entity.MarketAction{
		ItemId:   relisted.ItemId,
		Contract: relisted.Item.Contract,
		TokenId:  relisted.TokenId,
		Action:   entity.RelistingAction,
		From:     relisted.Seller,
		To:       "",
		Price:    relisted.Price,
		Fee:      relisted.Fee,
		Seq:      relisted.Seq,
	}
}
