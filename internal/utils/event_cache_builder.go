package utils

import "strconv"

const (
	EventCacheKeyspace        = "events:id"
	LatestEventsCacheKeyspace = "events:latest"
)

func BuildEventCacheKey(id string) string {
	return EventCacheKeyspace + ":v1:" + id
}

func BuildLatestEventsCacheKey(limit, offset int) string {
	return LatestEventsCacheKeyspace + ":v1:limit=" + strconv.Itoa(limit) +
		":offset=" + strconv.Itoa(offset)
}
