package mongodb

import "errors"

var (
	ErrConnectFailed    = errors.New("failed to connect to mongodb")
	ErrPingFailed       = errors.New("failed to ping mongodb")
	ErrDisconnectFailed = errors.New("failed to disconnect from mongodb")
	ErrInsertFailed     = errors.New("failed to insert batch")
)
