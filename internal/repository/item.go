package repository

import (
	"encoding/json"
	"errors"

	"github.com/ZilDuck/nft-marketplace/internal/elastic_search"
	"github.com/ZilDuck/nft-marketplace/internal/entity"
	"github.com/olivere/elastic/v7"
)

var (
	ErrItemNotFound = errors.New("market item not found")
)

// ItemRepository serves queries over the Elasticsearch projection of the item
// table. The in-memory ledger is authoritative; this view trails it by at most
// one persist cycle and exists for history and rich queries.
type ItemRepository interface {
	GetItem(itemId uint64) (*entity.MarketItem, error)
	GetUnsoldItems(size, from int) ([]entity.MarketItem, int64, error)
	GetItemsBySeller(seller string, size, from int) ([]entity.MarketItem, int64, error)
	GetItemsByOwner(owner string, size, from int) ([]entity.MarketItem, int64, error)
}

type itemRepository struct {
	elastic elastic_search.Index
}

func NewItemRepository(elastic elastic_search.Index) ItemRepository {
	return itemRepository{elastic}
}

func (r itemRepository) GetItem(itemId uint64) (*entity.MarketItem, error) {
	query := elastic.NewTermQuery("itemId", itemId)

	result, err := search(r.elastic.GetClient().
		Search(elastic_search.MarketItemIndex.Get()).
		Query(query).
		Size(1))

	return r.findOne(result, err)
}

func (r itemRepository) GetUnsoldItems(size, from int) ([]entity.MarketItem, int64, error) {
	query := elastic.NewTermQuery("sold", false)

	result, err := search(r.elastic.GetClient().
		Search(elastic_search.MarketItemIndex.Get()).
		Query(query).
		Sort("itemId", true).
		Size(size).
		From(from))

	return r.findMany(result, err)
}

func (r itemRepository) GetItemsBySeller(seller string, size, from int) ([]entity.MarketItem, int64, error) {
	query := elastic.NewTermQuery("seller.keyword", seller)

	result, err := search(r.elastic.GetClient().
		Search(elastic_search.MarketItemIndex.Get()).
		Query(query).
		Sort("itemId", true).
		Size(size).
		From(from))

	return r.findMany(result, err)
}

func (r itemRepository) GetItemsByOwner(owner string, size, from int) ([]entity.MarketItem, int64, error) {
	query := elastic.NewBoolQuery().Must(
		elastic.NewTermQuery("owner.keyword", owner),
		elastic.NewTermQuery("sold", true),
	)

	result, err := search(r.elastic.GetClient().
		Search(elastic_search.MarketItemIndex.Get()).
		Query(query).
		Sort("itemId", true).
		Size(size).
		From(from))

	return r.findMany(result, err)
}

func (r itemRepository) findOne(results *elastic.SearchResult, err error) (*entity.MarketItem, error) {
	if err != nil {
		return nil, err
	}

	if len(results.Hits.Hits) == 0 {
		return nil, ErrItemNotFound
	}

	var item entity.MarketItem
	hit := results.Hits.Hits[0]
	err = json.Unmarshal(hit.Source, &item)

	return &item, err
}

func (r itemRepository) findMany(results *elastic.SearchResult, err error) ([]entity.MarketItem, int64, error) {
	items := make([]entity.MarketItem, 0)

	if err != nil {
		return items, 0, err
	}

	for _, hit := range results.Hits.Hits {
		var item entity.MarketItem
		if err := json.Unmarshal(hit.Source, &item); err == nil {
			items = append(items, item)
		}
	}

	return items, results.TotalHits(), nil
}
