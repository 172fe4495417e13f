package redis

import "errors"

var (
	ErrConnectionFailed = errors.New("failed to connect to redis")
	ErrPingFailed       = errors.New("failed to ping redis")
	ErrMarshalFailed    = errors.New("failed to marshal item")
	ErrPushFailed       = errors.New("failed to push batch")
)
