package cache

import (
	"context"
	"encoding/json"
	"time"

	"proxi_back_end/internal/database"
)

const (
	CategoriesCacheTTL = 10 * time.Minute
	SuggestCacheTTL    = 5 * time.Minute
	StoresCacheTTL     = 10 * time.Minute
)

// GetJSON lit une clé Redis et la désérialise dans dest. Retourne false en
// cas d'absence, de Redis indisponible ou de JSON corrompu (cache best-effort).
func GetJSON(key string, dest any) bool {
	if database.Redis == nil {
		return false
	}
	ctx := context.Background()
	data, err := database.Redis.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	return json.Unmarshal([]byte(data), dest) == nil
}

// SetJSON sérialise et met en cache avec TTL. Les erreurs sont ignorées : le
// cache ne doit jamais faire échouer une requête.
func SetJSON(key string, v any, ttl time.Duration) {
	if database.Redis == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	database.Redis.Set(context.Background(), key, data, ttl)
}

// InvalidatePrefix supprime les clés d'un préfixe après une ingestion
// inventaire (les compteurs de catégories et suggestions changent).
func InvalidatePrefix(prefix string) {
	if database.Redis == nil {
		return
	}
	ctx := context.Background()
	iter := database.Redis.Scan(ctx, 0, prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		database.Redis.Del(ctx, iter.Val())
	}
}
