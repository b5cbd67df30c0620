package zk

import (
	"time"
)

type Config struct {
	ZkAddrs string // comma separated, optional /chroot suffix
	Timeout time.Duration
}

func DefaultConfig(addrs string) *Config {
	return &Config{
		ZkAddrs: addrs,
		Timeout: time.Minute,
	}
}
