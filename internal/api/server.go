package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/ZilDuck/nft-marketplace/internal/marketplace"
	"github.com/ZilDuck/nft-marketplace/internal/registry"
	"github.com/ZilDuck/nft-marketplace/internal/repository"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type Server struct {
	market     marketplace.Ledger
	actionRepo repository.ActionRepository
}

func NewServer(market marketplace.Ledger, actionRepo repository.ActionRepository) Server {
	return Server{market, actionRepo}
}

func (s Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/", s.handleHomepage).Methods("GET")
	r.HandleFunc("/listing-price", s.handleGetListingPrice).Methods("GET")
	r.HandleFunc("/items", s.handleFetchMarketItems).Methods("GET")
	r.HandleFunc("/items", s.handleCreateMarketItem).Methods("POST")
	r.HandleFunc("/items/{itemId}", s.handleGetItem).Methods("GET")
	r.HandleFunc("/items/{itemId}/sale", s.handleCreateMarketSale).Methods("POST")
	r.HandleFunc("/items/{itemId}/resell", s.handleResellToken).Methods("POST")
	r.HandleFunc("/items/{itemId}/actions", s.handleGetItemActions).Methods("GET")
	r.HandleFunc("/tokens", s.handleCreateToken).Methods("POST")
	r.HandleFunc("/tokens/{tokenId}/uri", s.handleTokenURI).Methods("GET")
	r.HandleFunc("/balances/{address}", s.handleGetBalance).Methods("GET")
	r.HandleFunc("/treasury", s.handleGetTreasury).Methods("GET")
	r.HandleFunc("/treasury/withdraw", s.handleWithdraw).Methods("POST")
	r.NotFoundHandler = notFoundHandler()

	return r
}

func (s Server) handleHomepage(w http.ResponseWriter, r *http.Request) {
	_, _ = fmt.Fprintf(w, "NFT Marketplace")
}

func (s Server) handleGetListingPrice(w http.ResponseWriter, r *http.Request) {
	writeJson(w, http.StatusOK, ListingPriceResponse{ListingPrice: s.market.GetListingPrice()})
}

func (s Server) handleFetchMarketItems(w http.ResponseWriter, r *http.Request) {
	items := s.market.FetchMarketItems()

	writeJson(w, http.StatusOK, ItemsResponse{Items: items, Total: len(items)})
}

func (s Server) handleGetItem(w http.ResponseWriter, r *http.Request) {
	itemId, err := getUint64Var(r, "itemId")
	if err != nil {
		writeError(w, marketplace.ErrItemNotFound)
		return
	}

	item, err := s.market.GetItem(itemId)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJson(w, http.StatusOK, ItemResponse{Item: item})
}

func (s Server) handleCreateToken(w http.ResponseWriter, r *http.Request) {
	var req CreateTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	item, err := s.market.CreateToken(req.Caller, req.Uri, req.Price, req.Value)
	if err != nil {
		zap.L().With(zap.Error(err), zap.String("caller", req.Caller)).Warn("Api: Create token rejected")
		writeError(w, err)
		return
	}

	writeJson(w, http.StatusCreated, ItemResponse{Item: item})
}

func (s Server) handleCreateMarketItem(w http.ResponseWriter, r *http.Request) {
	var req CreateMarketItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	item, err := s.market.CreateMarketItem(req.Caller, req.Contract, req.TokenId, req.Price, req.Value)
	if err != nil {
		zap.L().With(zap.Error(err), zap.String("caller", req.Caller)).Warn("Api: Create market item rejected")
		writeError(w, err)
		return
	}

	writeJson(w, http.StatusCreated, ItemResponse{Item: item})
}

func (s Server) handleCreateMarketSale(w http.ResponseWriter, r *http.Request) {
	itemId, err := getUint64Var(r, "itemId")
	if err != nil {
		writeError(w, marketplace.ErrItemNotFound)
		return
	}

	var req CreateMarketSaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	item, err := s.market.CreateMarketSale(req.Caller, itemId, req.Value)
	if err != nil {
		zap.L().With(zap.Error(err), zap.Uint64("itemId", itemId)).Warn("Api: Sale rejected")
		writeError(w, err)
		return
	}

	writeJson(w, http.StatusOK, ItemResponse{Item: item})
}

func (s Server) handleResellToken(w http.ResponseWriter, r *http.Request) {
	itemId, err := getUint64Var(r, "itemId")
	if err != nil {
		writeError(w, marketplace.ErrItemNotFound)
		return
	}

	var req ResellTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	item, err := s.market.ResellToken(req.Caller, itemId, req.Price, req.Value)
	if err != nil {
		zap.L().With(zap.Error(err), zap.Uint64("itemId", itemId)).Warn("Api: Resale rejected")
		writeError(w, err)
		return
	}

	writeJson(w, http.StatusOK, ItemResponse{Item: item})
}

func (s Server) handleGetItemActions(w http.ResponseWriter, r *http.Request) {
	itemId, err := getUint64Var(r, "itemId")
	if err != nil {
		writeError(w, marketplace.ErrItemNotFound)
		return
	}

	size, from := getPagination(r)

	actions, total, err := s.actionRepo.GetActionsByItem(itemId, size, from)
	if err != nil {
		zap.L().With(zap.Error(err), zap.Uint64("itemId", itemId)).Error("Api: Failed to get item actions")
		http.Error(w, "Failed to get item actions", http.StatusInternalServerError)
		return
	}

	writeJson(w, http.StatusOK, ActionsResponse{Actions: actions, Total: total})
}

func (s Server) handleTokenURI(w http.ResponseWriter, r *http.Request) {
	tokenId, err := getUint64Var(r, "tokenId")
	if err != nil {
		writeError(w, registry.ErrTokenNotFound)
		return
	}

	uri, err := s.market.TokenURI(tokenId)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJson(w, http.StatusOK, TokenUriResponse{TokenId: tokenId, TokenUri: uri})
}

func (s Server) handleGetBalance(w http.ResponseWriter, r *http.Request) {
	address := mux.Vars(r)["address"]

	writeJson(w, http.StatusOK, BalanceResponse{Address: address, Balance: s.market.BalanceOf(address)})
}

func (s Server) handleGetTreasury(w http.ResponseWriter, r *http.Request) {
	escrowed, realized := s.market.Treasury()

	writeJson(w, http.StatusOK, TreasuryResponse{Escrowed: escrowed, Realized: realized})
}

func (s Server) handleWithdraw(w http.ResponseWriter, r *http.Request) {
	var req WithdrawRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := s.market.WithdrawFees(req.Caller, req.Amount); err != nil {
		zap.L().With(zap.Error(err), zap.String("caller", req.Caller)).Warn("Api: Withdraw rejected")
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func getUint64Var(r *http.Request, name string) (uint64, error) {
	value, ok := mux.Vars(r)[name]
	if !ok {
		return 0, errors.New("invalid parameters")
	}

	return strconv.ParseUint(value, 10, 64)
}

func getPagination(r *http.Request) (size, from int) {
	size = 100
	if value, err := strconv.Atoi(r.URL.Query().Get("size")); err == nil && value > 0 {
		size = value
	}
	if value, err := strconv.Atoi(r.URL.Query().Get("from")); err == nil && value > 0 {
		from = value
	}

	return size, from
}

func writeJson(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, err error) {
	writeJson(w, statusForError(err), ErrorResponse{Error: err.Error()})
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, marketplace.ErrItemNotFound), errors.Is(err, registry.ErrTokenNotFound):
		return http.StatusNotFound
	case errors.Is(err, marketplace.ErrAlreadySold), errors.Is(err, marketplace.ErrNotYetSold):
		return http.StatusConflict
	case errors.Is(err, marketplace.ErrNotOwner), errors.Is(err, marketplace.ErrNotOperator):
		return http.StatusForbidden
	case errors.Is(err, marketplace.ErrFeeMismatch), errors.Is(err, marketplace.ErrPriceMismatch):
		return http.StatusPaymentRequired
	default:
		return http.StatusBadRequest
	}
}

func notFoundHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Not found", http.StatusNotFound)
	})
}
