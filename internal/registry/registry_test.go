package registry

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const contractAddr = "0x1ca8a5b17a762aa7bf2c4eb94bbb5975de7ac247"

func newTestClient() *retryablehttp.Client {
	client := retryablehttp.NewClient()
	client.RetryMax = 0
	client.Logger = nil

	return client
}

func TestMint(t *testing.T) {
	reg := NewTokenRegistry(contractAddr, nil, nil)

	first, err := reg.Mint("0xalice", "https://uri/1")
	require.NoError(t, err)

	second, err := reg.Mint("0xbob", "https://uri/2")
	require.NoError(t, err)

	assert.Equal(t, uint64(1), first.TokenId)
	assert.Equal(t, uint64(2), second.TokenId)
	assert.Equal(t, contractAddr, first.Contract)
	assert.Equal(t, "0xalice", first.Minter)
	assert.Equal(t, "0xalice", first.Owner)

	_, err = reg.Mint("0xalice", "")
	assert.ErrorIs(t, err, ErrInvalidTokenUri)
}

func TestTokenURI(t *testing.T) {
	reg := NewTokenRegistry(contractAddr, nil, nil)

	token, err := reg.Mint("0xalice", "https://www.mytokenlocation.com")
	require.NoError(t, err)

	uri, err := reg.TokenURI(token.TokenId)
	require.NoError(t, err)
	assert.Equal(t, "https://www.mytokenlocation.com", uri)

	_, err = reg.TokenURI(999)
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestTransfer(t *testing.T) {
	reg := NewTokenRegistry(contractAddr, nil, nil)

	token, err := reg.Mint("0xalice", "https://uri")
	require.NoError(t, err)

	require.NoError(t, reg.Transfer(token.TokenId, "0xbob"))

	after, err := reg.GetToken(token.TokenId)
	require.NoError(t, err)
	assert.Equal(t, "0xbob", after.Owner)

	// Escrow is modelled as custody by nobody.
	require.NoError(t, reg.Transfer(token.TokenId, ""))

	after, err = reg.GetToken(token.TokenId)
	require.NoError(t, err)
	assert.Equal(t, "", after.Owner)

	assert.ErrorIs(t, reg.Transfer(999, "0xbob"), ErrTokenNotFound)
}

func TestMetadata(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Write([]byte(`{"name":"Creature #1","image":"ipfs://QmPbxeGcXhYQQNgsC6a36dDyYUcHgMLnGKnF8pVFmGsvqi"}`))
	}))
	defer srv.Close()

	reg := NewTokenRegistry(contractAddr, nil, newTestClient())

	token, err := reg.Mint("0xalice", srv.URL+"/metadata/1")
	require.NoError(t, err)

	md, err := reg.Metadata(token.TokenId)
	require.NoError(t, err)
	assert.Equal(t, "Creature #1", md["name"])

	// Second fetch is served from the cache.
	_, err = reg.Metadata(token.TokenId)
	require.NoError(t, err)
	assert.Equal(t, 1, requests)
}

func TestMetadataUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	reg := NewTokenRegistry(contractAddr, nil, newTestClient())

	token, err := reg.Mint("0xalice", srv.URL+"/metadata/1")
	require.NoError(t, err)

	_, err = reg.Metadata(token.TokenId)
	assert.Error(t, err)
}

func TestMetadataUnknownToken(t *testing.T) {
	reg := NewTokenRegistry(contractAddr, nil, nil)

	_, err := reg.Metadata(1)
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestResolveIpfs(t *testing.T) {
	reg := NewTokenRegistry(contractAddr, []string{"https://ipfs.example.com"}, nil).(*registry)

	cases := map[string]struct {
		uri  string
		want string
	}{
		"plain http":    {uri: "https://uri/1", want: "https://uri/1"},
		"ipfs scheme":   {uri: "ipfs://QmPbxe", want: "https://ipfs.example.com/ipfs/QmPbxe"},
		"empty gateway": {uri: "https://uri/2", want: "https://uri/2"},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.want, reg.resolveIpfs(tc.uri))
		})
	}
}
