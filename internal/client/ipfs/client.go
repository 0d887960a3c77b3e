package ipfs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// placeholderURI is returned when no Pinata credentials are configured,
// so badge publishing keeps working in local and test environments.
const placeholderURI = "ipfs://QmPlaceholderMetadata123456789"

// Client pins JSON documents to IPFS through Pinata.
type Client struct {
	host       string
	gateway    string
	jwt        string
	httpClient *http.Client
}

type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (%d): %s", e.Status, e.Body)
}

func NewClient(httpClient *http.Client, host, gateway, jwt string) *Client {
	if host == "" {
		host = "https://api.pinata.cloud"
	}
	if gateway == "" {
		gateway = "https://gateway.pinata.cloud/ipfs"
	}
	return &Client{
		host:       strings.TrimRight(host, "/"),
		gateway:    strings.TrimRight(gateway, "/"),
		jwt:        jwt,
		httpClient: httpClient,
	}
}

type pinRequest struct {
	PinataContent  any         `json:"pinataContent"`
	PinataMetadata pinMetadata `json:"pinataMetadata"`
}

type pinMetadata struct {
	Name string `json:"name"`
}

type pinResponse struct {
	IpfsHash string `json:"IpfsHash"`
}

// PinJSON uploads content under the given pin name and returns an
// ipfs:// URI. Without a JWT it returns a fixed placeholder URI.
func (c *Client) PinJSON(ctx context.Context, name string, content any) (string, error) {
	if c.jwt == "" {
		return placeholderURI, nil
	}
	payload, err := json.Marshal(pinRequest{
		PinataContent:  content,
		PinataMetadata: pinMetadata{Name: name},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode pin request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.host+"/pinning/pinJSONToIPFS", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.jwt)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", &APIError{Status: resp.StatusCode, Body: string(body)}
	}
	var out pinResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("failed to decode pin response: %w", err)
	}
	if out.IpfsHash == "" {
		return "", fmt.Errorf("pinata returned an empty hash")
	}
	return "ipfs://" + out.IpfsHash, nil
}

// GatewayURL rewrites an ipfs:// URI to an HTTP gateway URL.
func (c *Client) GatewayURL(uri string) string {
	if strings.HasPrefix(uri, "ipfs://") {
		return c.gateway + "/" + strings.TrimPrefix(uri, "ipfs://")
	}
	return uri
}
