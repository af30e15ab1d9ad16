package mirror

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashgraph-online/nft-challenge-go/pkg/shared"
)

type Config struct {
	Network    string
	BaseURL    string
	HTTPClient *http.Client
	APIKey     string
	Headers    map[string]string
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	apiKey     string
	headers    map[string]string
}

var defaultBaseURLs = map[string]string{
	shared.NetworkMainnet:    "https://mainnet-public.mirrornode.hedera.com",
	shared.NetworkTestnet:    "https://testnet.mirrornode.hedera.com",
	shared.NetworkPreviewnet: "https://previewnet.mirrornode.hedera.com",
}

// NewClient creates a new Client.
func NewClient(config Config) (*Client, error) {
	network, err := shared.NormalizeNetwork(config.Network)
	if err != nil {
		return nil, err
	}

	baseURL := strings.TrimRight(config.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURLs[network]
	}
	parsedBaseURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid mirror base URL: %w", err)
	}
	if parsedBaseURL.Scheme != "http" && parsedBaseURL.Scheme != "https" {
		return nil, fmt.Errorf("invalid mirror base URL: scheme must be http or https")
	}
	if strings.TrimSpace(parsedBaseURL.Host) == "" {
		return nil, fmt.Errorf("invalid mirror base URL: host is required")
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	headers := make(map[string]string, len(config.Headers))
	for key, value := range config.Headers {
		headers[key] = value
	}

	return &Client{
		baseURL:    strings.TrimRight(parsedBaseURL.String(), "/"),
		httpClient: httpClient,
		apiKey:     strings.TrimSpace(config.APIKey),
		headers:    headers,
	}, nil
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// GetToken returns the mirror node view of a token.
func (c *Client) GetToken(ctx context.Context, tokenID string) (TokenInfo, error) {
	var tokenInfo TokenInfo
	normalized := strings.TrimSpace(tokenID)
	if normalized == "" {
		return tokenInfo, fmt.Errorf("token ID is required")
	}

	if err := c.getJSON(ctx, "/api/v1/tokens/"+url.PathEscape(normalized), &tokenInfo); err != nil {
		return tokenInfo, err
	}
	return tokenInfo, nil
}

// GetAccountNFTs lists every NFT of tokenID currently owned by accountID,
// following pagination links. An empty tokenID lists NFTs of all tokens.
func (c *Client) GetAccountNFTs(ctx context.Context, accountID string, tokenID string) ([]NFT, error) {
	normalizedAccountID := strings.TrimSpace(accountID)
	if normalizedAccountID == "" {
		return nil, fmt.Errorf("account ID is required")
	}

	values := url.Values{}
	if normalizedTokenID := strings.TrimSpace(tokenID); normalizedTokenID != "" {
		values.Set("token.id", normalizedTokenID)
	}
	values.Set("limit", "100")
	values.Set("order", "asc")

	next := fmt.Sprintf("/api/v1/accounts/%s/nfts?%s", url.PathEscape(normalizedAccountID), values.Encode())
	result := make([]NFT, 0)
	for next != "" {
		var page nftsResponse
		if err := c.getJSON(ctx, next, &page); err != nil {
			return nil, err
		}
		for _, nft := range page.NFTs {
			if !nft.Deleted {
				result = append(result, nft)
			}
		}
		next = page.Links.Next
	}

	return result, nil
}

// DecodeNFTMetadata returns the raw metadata bytes of an NFT.
func DecodeNFTMetadata(nft NFT) ([]byte, error) {
	if strings.TrimSpace(nft.Metadata) == "" {
		return nil, fmt.Errorf("nft metadata is empty")
	}
	return base64.StdEncoding.DecodeString(nft.Metadata)
}

func (c *Client) getJSON(ctx context.Context, pathOrURL string, target any) error {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, c.resolveURL(pathOrURL), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	request.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		request.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))
	}
	for key, value := range c.headers {
		request.Header.Set(key, value)
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("mirror node request failed: %w", err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return fmt.Errorf("failed to read mirror node response: %w", err)
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return fmt.Errorf(
			"mirror node request failed with status %d: %s",
			response.StatusCode,
			strings.TrimSpace(string(body)),
		)
	}

	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("failed to decode mirror node response: %w", err)
	}

	return nil
}

// resolveURL accepts both absolute URLs and the relative "next" links the
// mirror node returns.
func (c *Client) resolveURL(pathOrURL string) string {
	if strings.HasPrefix(pathOrURL, "http://") || strings.HasPrefix(pathOrURL, "https://") {
		return pathOrURL
	}

	path := pathOrURL
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	return c.baseURL + path
}
