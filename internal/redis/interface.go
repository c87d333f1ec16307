package redis

import (
	"github.com/redis/go-redis/v9"
)

//go:generate mockgen -destination=mock/mock_client.go -package=redismock -source=interface.go

// Client is the go-redis universal client. Single node and cluster clients
// both satisfy it.
type Client interface {
	redis.UniversalClient
}

// Nil is returned by Redis when a key does not exist
const Nil = redis.Nil
