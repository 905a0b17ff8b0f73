package redis

import "strconv"

// KeyPrefixLatestStatus prefixes the cached latest observation of a service.
const KeyPrefixLatestStatus = "monitor:status:latest:"

// LatestStatusKey returns the cache key for a service's latest observation.
func LatestStatusKey(serviceID int64) string {
	return KeyPrefixLatestStatus + strconv.FormatInt(serviceID, 10)
}

