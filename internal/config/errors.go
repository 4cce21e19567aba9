package config

import "errors"

var (
	ErrInvalidStorageConfigs = errors.New("invalid storage configs provided")
	ErrInvalidClientConfigs  = errors.New("invalid client configs provided")
	ErrInvalidServerConfigs  = errors.New("invalid server configs provided")
)
