// app/seenmw.go
package app

import (
	"time"

	"Gin_postgres_redis_library_tool/db"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// TouchLastSeen stamps the user's last-seen time at most once per
// throttle window, using Redis SetNX as the gate so the DB is not
// written on every request.
func TouchLastSeen(repo *db.Repo, rdb *redis.Client, throttle time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, ok := c.Get(CtxUserID)
		if !ok {
			c.Next()
			return
		}
		uid, _ := v.(string)
		if uid == "" {
			c.Next()
			return
		}

		key := "user:lastseen:" + uid
		if ok, _ := rdb.SetNX(c, key, "1", throttle).Result(); ok {
			_ = repo.TouchUserSeen(c, uid) // ignore errors, never block the request
		}
		c.Next()
	}
}
