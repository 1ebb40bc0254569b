package domain

import "context"

// StorePlatform is the external system of record (the Shopify store). Calls are
// idempotent on failure; retries are always the caller's decision, the platform
// client never retries internally.
type StorePlatform interface {
	ApplyContent(ctx context.Context, entityType, entityID string, content any) error
}
