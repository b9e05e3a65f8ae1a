package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenMetadataUri(t *testing.T) {
	cases := map[string]struct {
		tokenUri string
		want     string
		wantErr  bool
	}{
		"plain http": {
			tokenUri: "https://www.mytokenlocation.com/1",
			want:     "https://www.mytokenlocation.com/1",
		},
		"ipfs scheme": {
			tokenUri: "ipfs://QmYuKY45Aq87LeL1R5dhb1hqHLp6ZFbJaCP8jxqKM1MX64",
			want:     "ipfs://QmYuKY45Aq87LeL1R5dhb1hqHLp6ZFbJaCP8jxqKM1MX64",
		},
		"qm hash inside gateway url": {
			tokenUri: "https://gateway.pinata.cloud/ipfs/QmYuKY45Aq87LeL1R5dhb1hqHLp6ZFbJaCP8jxqKM1MX64",
			want:     "ipfs://QmYuKY45Aq87LeL1R5dhb1hqHLp6ZFbJaCP8jxqKM1MX64",
		},
		"unsupported scheme": {
			tokenUri: "ftp://mytokenlocation.com/1",
			wantErr:  true,
		},
		"empty": {
			tokenUri: "",
			wantErr:  true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			token := Token{TokenUri: tc.tokenUri}

			uri, err := token.MetadataUri()
			if tc.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tc.want, uri)
		})
	}
}

func TestMarketItemSlug(t *testing.T) {
	item := MarketItem{ItemId: 42}

	assert.Equal(t, "item-42", item.Slug())
}

func TestMarketItemInEscrow(t *testing.T) {
	assert.True(t, MarketItem{}.InEscrow())
	assert.False(t, MarketItem{Owner: "0xbob"}.InEscrow())
}
