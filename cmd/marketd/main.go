package main

import (
	"fmt"
	"net/http"

	"github.com/ZilDuck/nft-marketplace/generated/dic"
	"github.com/ZilDuck/nft-marketplace/internal/config"
	"github.com/ZilDuck/nft-marketplace/internal/event"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

var container *dic.Container

func main() {
	config.Init("marketd")

	var err error
	container, err = dic.NewContainer()
	if err != nil {
		zap.L().With(zap.Error(err)).Fatal("Failed to build container")
	}

	container.GetElastic().InstallMappings()

	event.AddEventListener(event.ItemListedEvent, container.GetProjector().OnItemListed)
	event.AddEventListener(event.ItemSoldEvent, container.GetProjector().OnItemSold)
	event.AddEventListener(event.ItemRelistedEvent, container.GetProjector().OnItemRelisted)
	event.AddEventListener(event.TokenMintedEvent, container.GetProjector().OnTokenMinted)

	go health()

	zap.L().With(
		zap.String("port", config.Get().Api.Port),
		zap.Uint64("listingPrice", config.Get().Market.ListingPrice),
	).Info("Marketplace Started")

	if err := http.ListenAndServe(":"+config.Get().Api.Port, container.GetApi().Router()); err != nil {
		zap.L().With(zap.Error(err)).Fatal("Failed to start marketplace api")
	}
}

func health() {
	if err := http.ListenAndServe(":"+config.Get().Api.HealthPort, healthRouter()); err != nil {
		zap.L().With(zap.Error(err)).Error("Failed to start health server")
	}
}

func healthRouter() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprintf(w, "OK")
	}).Methods("GET")

	return r
}
