package treeCache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"document-service/internal/model/document"
)

// TreeCache keeps folder trees derived from prefix listings. Entries are
// short-lived and must be invalidated on every write or delete under the
// cached prefix.
type TreeCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func New(client *redis.Client, ttl time.Duration) *TreeCache {
	return &TreeCache{
		Client: client,
		TTL:    ttl,
	}
}

func (c *TreeCache) buildKey(rootPrefix string) string {
	return fmt.Sprintf("foldertree:%s", rootPrefix)
}

func (c *TreeCache) Get(ctx context.Context, rootPrefix string) (*document.FolderNode, error) {
	raw, err := c.Client.Get(ctx, c.buildKey(rootPrefix)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var node document.FolderNode
	if err := json.Unmarshal([]byte(raw), &node); err != nil {
		return nil, err
	}
	return &node, nil
}

func (c *TreeCache) Set(ctx context.Context, rootPrefix string, node *document.FolderNode) error {
	raw, err := json.Marshal(node)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, c.buildKey(rootPrefix), raw, c.TTL).Err()
}

func (c *TreeCache) Invalidate(ctx context.Context, rootPrefix string) error {
	return c.Client.Del(ctx, c.buildKey(rootPrefix)).Err()
}
