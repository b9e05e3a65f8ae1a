package entity

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/gosimple/slug"
)

type Token struct {
	Contract string `json:"contract"`
	TokenId  uint64 `json:"tokenId"`
	TokenUri string `json:"tokenUri"`
	Minter   string `json:"minter"`
	Owner    string `json:"owner"`

	HasMetadata   bool        `json:"hasMetadata"`
	MetadataError string      `json:"metadataError"`
	Metadata      interface{} `json:"metadata"`
}

func (t Token) Slug() string {
	return CreateTokenSlug(t.TokenId, t.Contract)
}

func CreateTokenSlug(tokenId uint64, contract string) string {
	return slug.Make(fmt.Sprintf("token-%d-%s", tokenId, contract))
}

func (t Token) MetadataUri() (string, error) {
	metadataUri := t.TokenUri

	if ipfs := getIpfs(metadataUri); ipfs != "" {
		metadataUri = ipfs
	}

	if len(metadataUri) < 4 || (metadataUri[:4] != "http" && metadataUri[:4] != "ipfs") {
		return "", errors.New("invalid metadata")
	}

	return metadataUri, nil
}

func getIpfs(metadataUri string) string {
	if len(metadataUri) < 7 {
		return ""
	}

	if metadataUri[:7] == "ipfs://" {
		return metadataUri
	}

	re := regexp.MustCompile("(Qm[1-9A-HJ-NP-Za-km-z]{44})")
	parts := re.FindStringSubmatch(metadataUri)
	if len(parts) == 2 {
		return "ipfs://" + parts[1]
	}

	return ""
}
