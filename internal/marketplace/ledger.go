package marketplace

import (
	"sync"

	"github.com/ZilDuck/nft-marketplace/internal/entity"
	"github.com/ZilDuck/nft-marketplace/internal/event"
	"github.com/ZilDuck/nft-marketplace/internal/registry"
	"go.uber.org/zap"
)

// Ledger is the authoritative marketplace state. Every mutating operation is
// validate-then-mutate under a single lock: a precondition failure returns
// before any state is touched, and a success commits the item table, the
// unsold index, the treasury and the settlement balances together. Events are
// emitted only after the commit.
type Ledger interface {
	GetListingPrice() uint64
	CreateToken(caller, uri string, price, paidFee uint64) (entity.MarketItem, error)
	CreateMarketItem(caller, contract string, tokenId, price, paidFee uint64) (entity.MarketItem, error)
	CreateMarketSale(caller string, itemId, payment uint64) (entity.MarketItem, error)
	ResellToken(caller string, itemId, newPrice, paidFee uint64) (entity.MarketItem, error)
	FetchMarketItems() []entity.MarketItem
	GetItem(itemId uint64) (entity.MarketItem, error)
	TokenURI(tokenId uint64) (string, error)
	BalanceOf(address string) uint64
	Treasury() (escrowed, realized uint64)
	WithdrawFees(caller string, amount uint64) error
}

type ledger struct {
	mtx sync.RWMutex

	listingPrice uint64
	registry     registry.Registry
	treasury     *Treasury

	nextItemId uint64
	seq        uint64
	items      map[uint64]*entity.MarketItem
	index      *itemIndex
	balances   map[string]uint64
}

func NewLedger(listingPrice uint64, operator string, reg registry.Registry) Ledger {
	return &ledger{
		listingPrice: listingPrice,
		registry:     reg,
		treasury:     NewTreasury(operator),
		items:        map[uint64]*entity.MarketItem{},
		index:        newItemIndex(),
		balances:     map[string]uint64{},
	}
}

func (l *ledger) GetListingPrice() uint64 {
	return l.listingPrice
}

func (l *ledger) CreateToken(caller, uri string, price, paidFee uint64) (entity.MarketItem, error) {
	if price == 0 {
		return entity.MarketItem{}, ErrInvalidPrice
	}
	if paidFee != l.listingPrice {
		return entity.MarketItem{}, ErrFeeMismatch
	}

	token, err := l.registry.Mint(caller, uri)
	if err != nil {
		zap.L().With(zap.String("caller", caller), zap.Error(err)).Error("Marketplace: Failed to mint token")
		return entity.MarketItem{}, err
	}

	return l.CreateMarketItem(caller, token.Contract, token.TokenId, price, paidFee)
}

func (l *ledger) CreateMarketItem(caller, contract string, tokenId, price, paidFee uint64) (entity.MarketItem, error) {
	if price == 0 {
		return entity.MarketItem{}, ErrInvalidPrice
	}
	if paidFee != l.listingPrice {
		return entity.MarketItem{}, ErrFeeMismatch
	}

	l.mtx.Lock()

	l.nextItemId++
	l.seq++

	item := &entity.MarketItem{
		ItemId:   l.nextItemId,
		Contract: contract,
		TokenId:  tokenId,
		Seller:   caller,
		Price:    price,
	}

	if contract == l.registry.Contract() {
		if uri, err := l.registry.TokenURI(tokenId); err == nil {
			item.TokenUri = uri
		}
	}

	l.items[item.ItemId] = item
	l.index.Add(item.ItemId)
	l.treasury.Deposit(paidFee)

	listed := entity.ItemListed{
		ItemId:  item.ItemId,
		TokenId: item.TokenId,
		Seller:  item.Seller,
		Price:   item.Price,
		Fee:     paidFee,
		Seq:     l.seq,
		Item:    *item,
	}

	l.mtx.Unlock()

	l.escrowToken(listed.Item)

	zap.L().With(
		zap.Uint64("itemId", listed.ItemId),
		zap.Uint64("tokenId", listed.TokenId),
		zap.String("seller", caller),
		zap.Uint64("price", price),
	).Info("Marketplace: Item listed")

	event.EmitEvent(event.ItemListedEvent, listed)

	return listed.Item, nil
}

func (l *ledger) CreateMarketSale(caller string, itemId, payment uint64) (entity.MarketItem, error) {
	l.mtx.Lock()

	item, ok := l.items[itemId]
	if !ok {
		l.mtx.Unlock()
		return entity.MarketItem{}, ErrItemNotFound
	}
	if item.Sold {
		l.mtx.Unlock()
		zap.L().With(zap.Uint64("itemId", itemId), zap.String("buyer", caller)).Warn("Marketplace: Sale rejected, already sold")
		return entity.MarketItem{}, ErrAlreadySold
	}
	if payment != item.Price {
		l.mtx.Unlock()
		return entity.MarketItem{}, ErrPriceMismatch
	}

	l.seq++

	seller := item.Seller
	item.Owner = caller
	item.Sold = true
	l.index.Remove(item.ItemId)

	if err := l.treasury.Realize(l.listingPrice); err != nil {
		zap.L().With(zap.Uint64("itemId", itemId), zap.Error(err)).Error("Marketplace: Failed to realize listing fee")
	}

	// Value leaves the ledger only after the bookkeeping above is committed.
	l.balances[seller] += payment

	sold := entity.ItemSold{
		ItemId:  item.ItemId,
		TokenId: item.TokenId,
		Buyer:   caller,
		Seller:  seller,
		Price:   payment,
		Seq:     l.seq,
		Item:    *item,
	}

	l.mtx.Unlock()

	l.releaseToken(sold.Item, caller)

	zap.L().With(
		zap.Uint64("itemId", itemId),
		zap.String("buyer", caller),
		zap.String("seller", seller),
		zap.Uint64("price", payment),
	).Info("Marketplace: Item sold")

	event.EmitEvent(event.ItemSoldEvent, sold)

	return sold.Item, nil
}

func (l *ledger) ResellToken(caller string, itemId, newPrice, paidFee uint64) (entity.MarketItem, error) {
	l.mtx.Lock()

	item, ok := l.items[itemId]
	if !ok {
		l.mtx.Unlock()
		return entity.MarketItem{}, ErrItemNotFound
	}
	if !item.Sold {
		l.mtx.Unlock()
		return entity.MarketItem{}, ErrNotYetSold
	}
	if item.Owner != caller {
		l.mtx.Unlock()
		zap.L().With(zap.Uint64("itemId", itemId), zap.String("caller", caller)).Warn("Marketplace: Resale rejected, not the owner")
		return entity.MarketItem{}, ErrNotOwner
	}
	if newPrice == 0 {
		l.mtx.Unlock()
		return entity.MarketItem{}, ErrInvalidPrice
	}
	if paidFee != l.listingPrice {
		l.mtx.Unlock()
		return entity.MarketItem{}, ErrFeeMismatch
	}

	l.seq++

	item.Sold = false
	item.Price = newPrice
	item.Seller = caller
	item.Owner = ""
	l.index.Add(item.ItemId)
	l.treasury.Deposit(paidFee)

	relisted := entity.ItemRelisted{
		ItemId:  item.ItemId,
		TokenId: item.TokenId,
		Seller:  item.Seller,
		Price:   item.Price,
		Fee:     paidFee,
		Seq:     l.seq,
		Item:    *item,
	}

	l.mtx.Unlock()

	l.escrowToken(relisted.Item)

	zap.L().With(
		zap.Uint64("itemId", itemId),
		zap.String("seller", caller),
		zap.Uint64("price", newPrice),
	).Info("Marketplace: Item relisted")

	event.EmitEvent(event.ItemRelistedEvent, relisted)

	return relisted.Item, nil
}

func (l *ledger) FetchMarketItems() []entity.MarketItem {
	l.mtx.RLock()
	defer l.mtx.RUnlock()

	items := make([]entity.MarketItem, 0, l.index.Len())
	for _, id := range l.index.Ids() {
		items = append(items, *l.items[id])
	}

	return items
}

func (l *ledger) GetItem(itemId uint64) (entity.MarketItem, error) {
	l.mtx.RLock()
	defer l.mtx.RUnlock()

	item, ok := l.items[itemId]
	if !ok {
		return entity.MarketItem{}, ErrItemNotFound
	}

	return *item, nil
}

func (l *ledger) TokenURI(tokenId uint64) (string, error) {
	return l.registry.TokenURI(tokenId)
}

func (l *ledger) BalanceOf(address string) uint64 {
	l.mtx.RLock()
	defer l.mtx.RUnlock()

	return l.balances[address]
}

func (l *ledger) Treasury() (uint64, uint64) {
	l.mtx.RLock()
	defer l.mtx.RUnlock()

	return l.treasury.Escrowed(), l.treasury.Realized()
}

func (l *ledger) WithdrawFees(caller string, amount uint64) error {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	if err := l.treasury.Withdraw(caller, amount); err != nil {
		return err
	}

	zap.L().With(zap.String("operator", caller), zap.Uint64("amount", amount)).Info("Marketplace: Fees withdrawn")

	return nil
}

// escrowToken and releaseToken update custody with the registry. Tokens from
// foreign contracts are opaque references; their custody is settled by the
// external network, not by us.
func (l *ledger) escrowToken(item entity.MarketItem) {
	if item.Contract != l.registry.Contract() {
		return
	}

	if err := l.registry.Transfer(item.TokenId, ""); err != nil {
		zap.L().With(zap.Uint64("tokenId", item.TokenId), zap.Error(err)).Error("Marketplace: Failed to escrow token")
	}
}

func (l *ledger) releaseToken(item entity.MarketItem, to string) {
	if item.Contract != l.registry.Contract() {
		return
	}

	if err := l.registry.Transfer(item.TokenId, to); err != nil {
		zap.L().With(zap.Uint64("tokenId", item.TokenId), zap.Error(err)).Error("Marketplace: Failed to release token")
	}
}
