package repository

import (
	"encoding/json"
	"errors"

	"github.com/ZilDuck/nft-marketplace/internal/elastic_search"
	"github.com/ZilDuck/nft-marketplace/internal/entity"
	"github.com/olivere/elastic/v7"
)

var (
	ErrActionNotFound = errors.New("market action not found")
)

type ActionRepository interface {
	GetActionsByItem(itemId uint64, size, from int) ([]entity.MarketAction, int64, error)
	GetLatestAction(itemId uint64) (*entity.MarketAction, error)
}

type actionRepository struct {
	elastic elastic_search.Index
}

func NewActionRepository(elastic elastic_search.Index) ActionRepository {
	return actionRepository{elastic}
}

func (r actionRepository) GetActionsByItem(itemId uint64, size, from int) ([]entity.MarketAction, int64, error) {
	query := elastic.NewTermQuery("itemId", itemId)

	results, err := search(r.elastic.GetClient().
		Search(elastic_search.MarketActionIndex.Get()).
		Query(query).
		Sort("seq", true).
		Size(size).
		From(from))

	return r.findMany(results, err)
}

func (r actionRepository) GetLatestAction(itemId uint64) (*entity.MarketAction, error) {
	query := elastic.NewTermQuery("itemId", itemId)

	results, err := search(r.elastic.GetClient().
		Search(elastic_search.MarketActionIndex.Get()).
		Query(query).
		Sort("seq", false).
		Size(1))

	return r.findOne(results, err)
}

func (r actionRepository) findOne(results *elastic.SearchResult, err error) (*entity.MarketAction, error) {
	if err != nil {
		return nil, err
	}

	if len(results.Hits.Hits) == 0 {
		return nil, ErrActionNotFound
	}

	var action entity.MarketAction
	hit := results.Hits.Hits[0]
	err = json.Unmarshal(hit.Source, &action)

	return &action, err
}

func (r actionRepository) findMany(results *elastic.SearchResult, err error) ([]entity.MarketAction, int64, error) {
	actions := make([]entity.MarketAction, 0)

	if err != nil {
		return actions, 0, err
	}

	for _, hit := range results.Hits.Hits {
		var action entity.MarketAction
		if err := json.Unmarshal(hit.Source, &action); err == nil {
			actions = append(actions, action)
		}
	}

	return actions, results.TotalHits(), nil
}
