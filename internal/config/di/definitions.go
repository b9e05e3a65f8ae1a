package di

import (
	"github.com/ZilDuck/nft-marketplace/internal/api"
	"github.com/ZilDuck/nft-marketplace/internal/config"
	"github.com/ZilDuck/nft-marketplace/internal/elastic_search"
	"github.com/ZilDuck/nft-marketplace/internal/marketplace"
	"github.com/ZilDuck/nft-marketplace/internal/messenger"
	"github.com/ZilDuck/nft-marketplace/internal/projector"
	"github.com/ZilDuck/nft-marketplace/internal/registry"
	"github.com/ZilDuck/nft-marketplace/internal/repository"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/sarulabs/di/v2"
	"go.uber.org/zap"
)

var Definitions = []di.Def{
	{
		Name: "elastic",
		Build: func(ctn di.Container) (interface{}, error) {
			elastic, err := elastic_search.New()
			if err != nil {
				zap.L().With(zap.Error(err)).Fatal("Failed to start ES")
			}

			return elastic, nil
		},
	},
	{
		Name: "messenger",
		Build: func(ctn di.Container) (interface{}, error) {
			return messenger.NewMessenger(config.Get().Amqp.Uri), nil
		},
	},
	{
		Name: "registry",
		Build: func(ctn di.Container) (interface{}, error) {
			client := retryablehttp.NewClient()
			client.RetryMax = config.Get().Registry.MetadataRetries
			client.Logger = nil

			return registry.NewTokenRegistry(
				config.Get().Registry.Contract,
				config.Get().Registry.IpfsHosts,
				client,
			), nil
		},
	},
	{
		Name: "marketplace",
		Build: func(ctn di.Container) (interface{}, error) {
			return marketplace.NewLedger(
				config.Get().Market.ListingPrice,
				config.Get().Market.Operator,
				ctn.Get("registry").(registry.Registry),
			), nil
		},
	},
	{
		Name: "item.repo",
		Build: func(ctn di.Container) (interface{}, error) {
			return repository.NewItemRepository(ctn.Get("elastic").(elastic_search.Index)), nil
		},
	},
	{
		Name: "action.repo",
		Build: func(ctn di.Container) (interface{}, error) {
			return repository.NewActionRepository(ctn.Get("elastic").(elastic_search.Index)), nil
		},
	},
	{
		Name: "projector",
		Build: func(ctn di.Container) (interface{}, error) {
			return projector.NewProjector(
				ctn.Get("elastic").(elastic_search.Index),
				ctn.Get("messenger").(messenger.MessageService),
				ctn.Get("registry").(registry.Registry),
			), nil
		},
	},
	{
		Name: "api",
		Build: func(ctn di.Container) (interface{}, error) {
			return api.NewServer(
				ctn.Get("marketplace").(marketplace.Ledger),
				ctn.Get("action.repo").(repository.ActionRepository),
			), nil
		},
	},
}
