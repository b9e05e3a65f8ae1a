package projector

import (
	"encoding/json"
	"sync"

	"github.com/ZilDuck/nft-marketplace/internal/dev"
	"github.com/ZilDuck/nft-marketplace/internal/elastic_search"
	"github.com/ZilDuck/nft-marketplace/internal/entity"
	"github.com/ZilDuck/nft-marketplace/internal/factory"
	"github.com/ZilDuck/nft-marketplace/internal/messenger"
	"github.com/ZilDuck/nft-marketplace/internal/registry"
	"go.uber.org/zap"
)

// Projector subscribes to committed market events and maintains the derived
// views: the Elasticsearch projection of the item table, the action audit
// trail, the token documents, and the AMQP fan-out to external subscribers.
// The ledger never waits on any of this.
type Projector interface {
	OnItemListed(msg interface{})
	OnItemSold(msg interface{})
	OnItemRelisted(msg interface{})
	OnTokenMinted(msg interface{})
}

type projector struct {
	elastic   elastic_search.Index
	messenger messenger.MessageService
	registry  registry.Registry

	mtx     sync.Mutex
	lastSeq map[uint64]uint64
}

func NewProjector(elastic elastic_search.Index, msgService messenger.MessageService, reg registry.Registry) Projector {
	return &projector{
		elastic:   elastic,
		messenger: msgService,
		registry:  reg,
		lastSeq:   map[uint64]uint64{},
	}
}

func (p *projector) OnItemListed(msg interface{}) {
	listed, ok := msg.(entity.ItemListed)
	if !ok {
		zap.L().Error("Projector: Unexpected payload for item listed")
		return
	}

	if !p.stale(listed.ItemId, listed.Seq) {
		p.elastic.AddIndexRequest(elastic_search.MarketItemIndex.Get(), listed.Item, elastic_search.ItemListed)
	}
	p.elastic.AddIndexRequest(elastic_search.MarketActionIndex.Get(), factory.CreateListingAction(listed), elastic_search.MarketAction)
	p.elastic.Persist()

	p.publish(messenger.ItemListed, listed)
}

func (p *projector) OnItemSold(msg interface{}) {
	sold, ok := msg.(entity.ItemSold)
	if !ok {
		zap.L().Error("Projector: Unexpected payload for item sold")
		return
	}

	if !p.stale(sold.ItemId, sold.Seq) {
		p.elastic.AddIndexRequest(elastic_search.MarketItemIndex.Get(), sold.Item, elastic_search.ItemSold)
	}
	p.elastic.AddIndexRequest(elastic_search.MarketActionIndex.Get(), factory.CreateSaleAction(sold), elastic_search.MarketAction)
	p.elastic.Persist()

	p.publish(messenger.ItemSold, sold)
}

func (p *projector) OnItemRelisted(msg interface{}) {
	relisted, ok := msg.(entity.ItemRelisted)
	if !ok {
		zap.L().Error("Projector: Unexpected payload for item relisted")
		return
	}

	if !p.stale(relisted.ItemId, relisted.Seq) {
		p.elastic.AddIndexRequest(elastic_search.MarketItemIndex.Get(), relisted.Item, elastic_search.ItemRelisted)
	}
	p.elastic.AddIndexRequest(elastic_search.MarketActionIndex.Get(), factory.CreateRelistingAction(relisted), elastic_search.MarketAction)
	p.elastic.Persist()

	p.publish(messenger.ItemRelisted, relisted)
}

func (p *projector) OnTokenMinted(msg interface{}) {
	token, ok := msg.(entity.Token)
	if !ok {
		zap.L().Error("Projector: Unexpected payload for token minted")
		return
	}

	md, err := p.registry.Metadata(token.TokenId)
	if err != nil {
		token.MetadataError = err.Error()
		p.elastic.AddIndexRequest(elastic_search.DevErrorIndex.Get(),
			dev.NewError("projector", "metadata", err, map[string]interface{}{"tokenId": token.TokenId}),
			elastic_search.DevError)
	} else {
		token.HasMetadata = true
		token.Metadata = md
	}

	p.elastic.AddIndexRequest(elastic_search.TokenIndex.Get(), token, elastic_search.TokenMinted)
	p.elastic.Persist()
}

// stale reports whether seq is behind the latest transition already projected
// for the item, and records seq otherwise. The item document only ever moves
// forward by seq; actions are keyed by seq and are indexed regardless.
func (p *projector) stale(itemId, seq uint64) bool {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	if seq <= p.lastSeq[itemId] {
		zap.L().With(zap.Uint64("itemId", itemId), zap.Uint64("seq", seq)).Warn("Projector: Dropping stale item update")
		return true
	}

	p.lastSeq[itemId] = seq

	return false
}

func (p *projector) publish(item messenger.Item, payload interface{}) {
	body, err := json.Marshal(payload)
	if err != nil {
		zap.L().With(zap.Error(err)).Error("Projector: Failed to marshal event")
		return
	}

	if err := p.messenger.SendMessage(item, body, false); err != nil {
		zap.L().With(zap.Error(err), zap.String("item", string(item))).Error("Projector: Failed to publish event")
	}
}
