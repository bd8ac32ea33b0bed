// Package cache provides the Redis and in-process stores shared by the importer.
package cache

import (
	"fmt"
	"time"
)

// RedisConfig holds the settings for connecting to a Redis instance.
type RedisConfig struct {
	Host        string
	Port        int
	Password    string
	DB          int
	TLSEnabled  bool
	TLSCertFile string
	DialTimeout time.Duration
}

func (c *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
