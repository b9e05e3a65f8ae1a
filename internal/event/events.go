package event

type Type string

const (
	ItemListedEvent   Type = "ItemListedEvent"
	ItemSoldEvent     Type = "ItemSoldEvent"
	ItemRelistedEvent Type = "ItemRelistedEvent"
	TokenMintedEvent  Type = "TokenMintedEvent"
)
