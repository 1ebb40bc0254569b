package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPStoreClient talks to the store-platform gateway that owns the actual
// Shopify Admin API credentials. One call, one mutation; retries belong to the
// caller.
type HTTPStoreClient struct {
	Address string
	client  *http.Client
}

func NewHTTPStoreClient(address string) (*HTTPStoreClient, error) {
	return &HTTPStoreClient{
		Address: address,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}, nil
}

type applyContentRequest struct {
	EntityType string `json:"entity_type"`
	EntityID   string `json:"entity_id"`
	Content    any    `json:"content"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (c *HTTPStoreClient) ApplyContent(ctx context.Context, entityType, entityID string, content any) error {
	requestBodyBytes, err := json.Marshal(applyContentRequest{
		EntityType: entityType,
		EntityID:   entityID,
		Content:    content,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/store/apply-content", c.Address), bytes.NewBuffer(requestBodyBytes))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	response, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer response.Body.Close()
	responseBodyBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return err
	}

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		return nil
	} else {
		var errResp errorResponse
		if err := json.Unmarshal(responseBodyBytes, &errResp); err != nil {
			return fmt.Errorf("store platform returned %s", response.Status)
		}
		return errors.New(errResp.Error)
	}
}
