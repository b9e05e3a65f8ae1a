package projector

import (
	"testing"

	"github.com/ZilDuck/nft-marketplace/internal/elastic_search"
	"github.com/ZilDuck/nft-marketplace/internal/entity"
	"github.com/ZilDuck/nft-marketplace/internal/messenger"
	"github.com/olivere/elastic/v7"
	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeIndex struct {
	requests []elastic_search.Request
}

func (f *fakeIndex) GetClient() *elastic.Client { return nil }

func (f *fakeIndex) InstallMappings() {}

func (f *fakeIndex) AddIndexRequest(index string, e entity.Entity, action elastic_search.RequestAction) {
	f.AddRequest(index, e, elastic_search.IndexRequest, action)
}

func (f *fakeIndex) AddUpdateRequest(index string, e entity.Entity, action elastic_search.RequestAction) {
	f.AddRequest(index, e, elastic_search.UpdateRequest, action)
}

func (f *fakeIndex) HasRequest(e entity.Entity) bool { return false }

func (f *fakeIndex) AddRequest(index string, e entity.Entity, reqType elastic_search.RequestType, action elastic_search.RequestAction) {
	f.requests = append(f.requests, elastic_search.Request{Index: index, Entity: e, Type: reqType, Action: action})
}

func (f *fakeIndex) GetRequests() []elastic_search.Request { return f.requests }

func (f *fakeIndex) GetRequest(id string) *elastic_search.Request { return nil }

func (f *fakeIndex) ClearRequests() { f.requests = nil }

func (f *fakeIndex) Save(index string, e entity.Entity) {}

func (f *fakeIndex) BatchPersist() bool { return false }

func (f *fakeIndex) Persist() int { return len(f.requests) }

func (f *fakeIndex) itemRequests() []elastic_search.Request {
	requests := make([]elastic_search.Request, 0)
	for _, req := range f.requests {
		if req.Index == elastic_search.MarketItemIndex.Get() {
			requests = append(requests, req)
		}
	}

	return requests
}

func (f *fakeIndex) actionRequests() []elastic_search.Request {
	requests := make([]elastic_search.Request, 0)
	for _, req := range f.requests {
		if req.Index == elastic_search.MarketActionIndex.Get() {
			requests = append(requests, req)
		}
	}

	return requests
}

type fakeMessenger struct {
	published []messenger.Item
}

func (f *fakeMessenger) GetQueue(item messenger.Item) (*amqp.Queue, error) { return nil, nil }

func (f *fakeMessenger) SendMessage(item messenger.Item, body []byte, reliable bool) error {
	f.published = append(f.published, item)
	return nil
}

func (f *fakeMessenger) ConsumeMessages(item messenger.Item, callback func(msg string)) error {
	return nil
}

func (f *fakeMessenger) GetQueueSize(item messenger.Item) (*int, error) { return nil, nil }

func TestProjectorIndexesTransitionsInOrder(t *testing.T) {
	idx := &fakeIndex{}
	msgService := &fakeMessenger{}
	p := NewProjector(idx, msgService, nil)

	item := entity.MarketItem{ItemId: 1, TokenId: 1, Seller: "0xalice", Price: 100}

	p.OnItemListed(entity.ItemListed{ItemId: 1, TokenId: 1, Seller: "0xalice", Price: 100, Seq: 1, Item: item})

	item.Owner = "0xbob"
	item.Sold = true
	p.OnItemSold(entity.ItemSold{ItemId: 1, TokenId: 1, Buyer: "0xbob", Seller: "0xalice", Price: 100, Seq: 2, Item: item})

	itemRequests := idx.itemRequests()
	require.Len(t, itemRequests, 2)
	assert.Equal(t, elastic_search.ItemListed, itemRequests[0].Action)
	assert.Equal(t, elastic_search.ItemSold, itemRequests[1].Action)
	assert.Len(t, idx.actionRequests(), 2)
	assert.Equal(t, []messenger.Item{messenger.ItemListed, messenger.ItemSold}, msgService.published)
}

func TestProjectorDropsStaleItemUpdate(t *testing.T) {
	idx := &fakeIndex{}
	msgService := &fakeMessenger{}
	p := NewProjector(idx, msgService, nil)

	item := entity.MarketItem{ItemId: 1, TokenId: 1, Seller: "0xalice", Owner: "0xbob", Price: 100, Sold: true}

	// The sale arrives first; the listing it superseded arrives late.
	p.OnItemSold(entity.ItemSold{ItemId: 1, TokenId: 1, Buyer: "0xbob", Seller: "0xalice", Price: 100, Seq: 2, Item: item})

	unsold := entity.MarketItem{ItemId: 1, TokenId: 1, Seller: "0xalice", Price: 100}
	p.OnItemListed(entity.ItemListed{ItemId: 1, TokenId: 1, Seller: "0xalice", Price: 100, Seq: 1, Item: unsold})

	// The stale listing must not overwrite the sold item document.
	itemRequests := idx.itemRequests()
	require.Len(t, itemRequests, 1)
	assert.Equal(t, elastic_search.ItemSold, itemRequests[0].Action)

	soldItem, ok := itemRequests[0].Entity.(entity.MarketItem)
	require.True(t, ok)
	assert.True(t, soldItem.Sold)

	// The audit trail and the fan-out still carry both events.
	assert.Len(t, idx.actionRequests(), 2)
	assert.Equal(t, []messenger.Item{messenger.ItemSold, messenger.ItemListed}, msgService.published)
}

func TestProjectorTracksSeqPerItem(t *testing.T) {
	idx := &fakeIndex{}
	p := NewProjector(idx, &fakeMessenger{}, nil)

	p.OnItemSold(entity.ItemSold{ItemId: 1, Seq: 2, Item: entity.MarketItem{ItemId: 1, Sold: true}})

	// A lower global seq on a different item is not stale.
	p.OnItemListed(entity.ItemListed{ItemId: 2, Seq: 1, Item: entity.MarketItem{ItemId: 2}})

	assert.Len(t, idx.itemRequests(), 2)
}
