package cache

import (
	"context"
	"fmt"
)

// Backend names accepted by [Open].
const (
	BackendFile  = "file"
	BackendNone  = "none"
	BackendRedis = "redis"
	BackendMongo = "mongo"
)

// KeyPrefix namespaces keys in shared backends.
const KeyPrefix = "chord2svg:"

// Clearer is implemented by backends that can drop all their entries.
type Clearer interface {
	Clear(ctx context.Context) (int, error)
}

// Open creates the named backend. dir is used by the file backend, url
// by Redis and MongoDB. An empty backend means file.
func Open(ctx context.Context, backend, url, dir string) (Cache, error) {
	switch backend {
	case BackendFile, "":
		return NewFileCache(dir)
	case BackendNone:
		return NewNullCache(), nil
	case BackendRedis:
		return NewRedisCache(ctx, url, KeyPrefix)
	case BackendMongo:
		return NewMongoCache(ctx, url, "", "")
	default:
		return nil, fmt.Errorf("unknown cache backend %q (must be one of: file, none, redis, mongo)", backend)
	}
}
