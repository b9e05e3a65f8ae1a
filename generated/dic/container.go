// Package dic exposes the typed dependency container consumed by the cmds.
// It used to be generated; it is maintained by hand since the move to
// sarulabs/di definitions.
package dic

import (
	"github.com/ZilDuck/nft-marketplace/internal/api"
	internaldi "github.com/ZilDuck/nft-marketplace/internal/config/di"
	"github.com/ZilDuck/nft-marketplace/internal/elastic_search"
	"github.com/ZilDuck/nft-marketplace/internal/marketplace"
	"github.com/ZilDuck/nft-marketplace/internal/messenger"
	"github.com/ZilDuck/nft-marketplace/internal/projector"
	"github.com/ZilDuck/nft-marketplace/internal/registry"
	"github.com/ZilDuck/nft-marketplace/internal/repository"
	"github.com/sarulabs/di/v2"
)

type Container struct {
	ctn di.Container
}

func NewContainer() (*Container, error) {
	builder, err := di.NewBuilder()
	if err != nil {
		return nil, err
	}

	if err := builder.Add(internaldi.Definitions...); err != nil {
		return nil, err
	}

	return &Container{ctn: builder.Build()}, nil
}

func (c *Container) GetElastic() elastic_search.Index {
	return c.ctn.Get("elastic").(elastic_search.Index)
}

func (c *Container) GetMessenger() messenger.MessageService {
	return c.ctn.Get("messenger").(messenger.MessageService)
}

func (c *Container) GetRegistry() registry.Registry {
	return c.ctn.Get("registry").(registry.Registry)
}

func (c *Container) GetMarketplace() marketplace.Ledger {
	return c.ctn.Get("marketplace").(marketplace.Ledger)
}

func (c *Container) GetItemRepo() repository.ItemRepository {
	return c.ctn.Get("item.repo").(repository.ItemRepository)
}

func (c *Container) GetActionRepo() repository.ActionRepository {
	return c.ctn.Get("action.repo").(repository.ActionRepository)
}

func (c *Container) GetProjector() projector.Projector {
	return c.ctn.Get("projector").(projector.Projector)
}

func (c *Container) GetApi() api.Server {
	return c.ctn.Get("api").(api.Server)
}

func (c *Container) Delete() error {
	return c.ctn.Delete()
}
