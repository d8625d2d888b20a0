package global

import (
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// Datastores owned by the hosting application. Both stay nil unless
// enabled in config.
var (
	DB      *gorm.DB
	RedisDB *redis.Client
)
