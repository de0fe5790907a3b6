package ipfs

import (
	"context"
	"fmt"
)

const (
	PlaceholderImage = "ipfs://QmPlaceholderImage"
	PlatformName     = "Zora Creator Bounty Board"
)

type Attribute struct {
	TraitType string `json:"trait_type"`
	Value     string `json:"value"`
}

// TokenMetadata follows the ERC-721/1155 style metadata JSON used for bounty tokens
type TokenMetadata struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Image       string      `json:"image,omitempty"`
	Attributes  []Attribute `json:"attributes"`
}

func NewBountyMetadata(name, description, imageURL string) TokenMetadata {
	if imageURL == "" {
		imageURL = PlaceholderImage
	}
	return TokenMetadata{
		Name:        name,
		Description: description,
		Image:       imageURL,
		Attributes: []Attribute{
			{TraitType: "Type", Value: "Bounty Token"},
			{TraitType: "Platform", Value: PlatformName},
		},
	}
}

func NewRequestMetadata(prompt, bountyName, supporterAddress string) TokenMetadata {
	return TokenMetadata{
		Name:        fmt.Sprintf("Request for %s", bountyName),
		Description: prompt,
		Attributes: []Attribute{
			{TraitType: "Bounty", Value: bountyName},
			{TraitType: "Supporter", Value: supporterAddress},
			{TraitType: "Status", Value: "Pending"},
		},
	}
}

func PinBountyMetadata(ctx context.Context, store ContentStore, name, description, imageURL string) (string, error) {
	return store.PinJSON(ctx, fmt.Sprintf("bounty-%s", name), NewBountyMetadata(name, description, imageURL))
}

func PinRequestMetadata(ctx context.Context, store ContentStore, prompt, bountyName, supporterAddress string) (string, error) {
	return store.PinJSON(ctx, fmt.Sprintf("request-%s", bountyName), NewRequestMetadata(prompt, bountyName, supporterAddress))
}
