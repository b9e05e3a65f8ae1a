package registry

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/ZilDuck/nft-marketplace/internal/entity"
	"github.com/ZilDuck/nft-marketplace/internal/event"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

var (
	ErrTokenNotFound   = errors.New("token not found")
	ErrInvalidTokenUri = errors.New("invalid token uri")
)

// Registry is the opaque minting service behind the marketplace: it issues
// monotonic token ids, keeps the per-token uri and tracks custody of the
// underlying token.
type Registry interface {
	Mint(minter, uri string) (entity.Token, error)
	GetToken(tokenId uint64) (entity.Token, error)
	TokenURI(tokenId uint64) (string, error)
	Transfer(tokenId uint64, to string) error
	Contract() string
	Metadata(tokenId uint64) (map[string]interface{}, error)
}

type registry struct {
	mtx         sync.Mutex
	contract    string
	ipfsHosts   []string
	client      *retryablehttp.Client
	metadata    *cache.Cache
	nextTokenId uint64
	tokens      map[uint64]*entity.Token
}

func NewTokenRegistry(contract string, ipfsHosts []string, client *retryablehttp.Client) Registry {
	return &registry{
		contract:  contract,
		ipfsHosts: ipfsHosts,
		client:    client,
		metadata:  cache.New(5*time.Minute, 10*time.Minute),
		tokens:    map[uint64]*entity.Token{},
	}
}

func (r *registry) Mint(minter, uri string) (entity.Token, error) {
	if uri == "" {
		return entity.Token{}, ErrInvalidTokenUri
	}

	r.mtx.Lock()
	r.nextTokenId++
	token := &entity.Token{
		Contract: r.contract,
		TokenId:  r.nextTokenId,
		TokenUri: uri,
		Minter:   minter,
		Owner:    minter,
	}
	r.tokens[token.TokenId] = token
	r.mtx.Unlock()

	zap.L().With(
		zap.Uint64("tokenId", token.TokenId),
		zap.String("minter", minter),
	).Info("Registry: Token minted")

	event.EmitEvent(event.TokenMintedEvent, *token)

	return *token, nil
}

func (r *registry) GetToken(tokenId uint64) (entity.Token, error) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	token, ok := r.tokens[tokenId]
	if !ok {
		return entity.Token{}, ErrTokenNotFound
	}

	return *token, nil
}

func (r *registry) TokenURI(tokenId uint64) (string, error) {
	token, err := r.GetToken(tokenId)
	if err != nil {
		return "", err
	}

	return token.TokenUri, nil
}

func (r *registry) Transfer(tokenId uint64, to string) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	token, ok := r.tokens[tokenId]
	if !ok {
		return ErrTokenNotFound
	}

	token.Owner = to

	return nil
}

func (r *registry) Contract() string {
	return r.contract
}

func (r *registry) Metadata(tokenId uint64) (map[string]interface{}, error) {
	token, err := r.GetToken(tokenId)
	if err != nil {
		return nil, err
	}

	if md, found := r.metadata.Get(token.Slug()); found {
		return md.(map[string]interface{}), nil
	}

	metadataUri, err := token.MetadataUri()
	if err != nil {
		return nil, err
	}

	md, err := r.fetchMetadata(metadataUri)
	if err != nil {
		zap.L().With(zap.Uint64("tokenId", tokenId), zap.Error(err)).Warn("Registry: Failed to fetch metadata")
		return nil, err
	}

	r.metadata.Set(token.Slug(), md, cache.DefaultExpiration)

	return md, nil
}

func (r *registry) fetchMetadata(metadataUri string) (map[string]interface{}, error) {
	resp, err := r.client.Get(r.resolveIpfs(metadataUri))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, errors.New(resp.Status)
	}

	buf := new(bytes.Buffer)
	if _, err = buf.ReadFrom(resp.Body); err != nil {
		return nil, err
	}

	var md map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &md); err != nil {
		return nil, err
	}

	return md, nil
}

func (r *registry) resolveIpfs(metadataUri string) string {
	if !strings.HasPrefix(metadataUri, "ipfs://") {
		return metadataUri
	}

	host := "https://gateway.ipfs.io"
	if len(r.ipfsHosts) != 0 {
		host = r.ipfsHosts[0]
	}

	return host + "/ipfs/" + metadataUri[7:]
}
