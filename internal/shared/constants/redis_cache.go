package constants

import (
	"fmt"
	"time"
)

// Redis cache keys and TTLs.
// Pattern: ticketly:{module}:{operation}:{identifier}:{params?}

const (
	TTL_STATIC_SHORT       = 6 * time.Hour
	TTL_SEMI_STATIC_MEDIUM = 2 * time.Hour
	TTL_SEMI_STATIC_SHORT  = 1 * time.Hour
	TTL_SEMI_STATIC_QUICK  = 15 * time.Minute
	TTL_DYNAMIC_MEDIUM     = 10 * time.Minute
	TTL_DYNAMIC_SHORT      = 5 * time.Minute
)

const (
	CACHE_PREFIX = "ticketly"
)

// Events
const (
	CACHE_KEY_EVENTS_LIST    = CACHE_PREFIX + ":events:list"         // + :page:X:size:Y:...
	CACHE_KEY_EVENT_DETAIL   = CACHE_PREFIX + ":events:detail:uuid:" // + event-id
	CACHE_KEY_EVENT_BY_SLUG  = CACHE_PREFIX + ":events:detail:slug:" // + slug
	CACHE_KEY_EVENT_UPCOMING = CACHE_PREFIX + ":events:upcoming"
)

const (
	TTL_EVENT_LIST     = TTL_SEMI_STATIC_SHORT
	TTL_EVENT_DETAIL   = TTL_SEMI_STATIC_MEDIUM
	TTL_EVENT_UPCOMING = TTL_SEMI_STATIC_QUICK
)

// Seats
const (
	CACHE_KEY_SEATS_BY_EVENT = CACHE_PREFIX + ":seats:event:" // + event-id(:section:X)
)

const (
	TTL_SEATS_BY_EVENT = TTL_DYNAMIC_SHORT
)

// Admin analytics
const (
	CACHE_KEY_ADMIN_DASHBOARD   = CACHE_PREFIX + ":admin:dashboard"
	CACHE_KEY_ADMIN_EVENT_STATS = CACHE_PREFIX + ":admin:events:stats:uuid:" // + event-id
)

const (
	TTL_ADMIN_DASHBOARD   = TTL_DYNAMIC_MEDIUM
	TTL_ADMIN_EVENT_STATS = TTL_DYNAMIC_MEDIUM
)

// Invalidation patterns, used with DeletePattern.
const (
	PATTERN_INVALIDATE_EVENTS_ALL = CACHE_PREFIX + ":events:*"
	PATTERN_INVALIDATE_SEATS_ALL  = CACHE_PREFIX + ":seats:*"
	PATTERN_INVALIDATE_ADMIN_ALL  = CACHE_PREFIX + ":admin:*"
)

func BuildEventListKey(page, size int, filters string) string {
	key := fmt.Sprintf("%s:page:%d:size:%d", CACHE_KEY_EVENTS_LIST, page, size)
	if filters != "" {
		key += ":" + filters
	}
	return key
}

func BuildEventDetailKey(eventID string) string {
	return CACHE_KEY_EVENT_DETAIL + eventID
}

func BuildEventSlugKey(slug string) string {
	return CACHE_KEY_EVENT_BY_SLUG + slug
}

func BuildSeatsByEventKey(eventID, section string) string {
	if section != "" {
		return CACHE_KEY_SEATS_BY_EVENT + eventID + ":section:" + section
	}
	return CACHE_KEY_SEATS_BY_EVENT + eventID
}

func BuildEventStatsKey(eventID string) string {
	return CACHE_KEY_ADMIN_EVENT_STATS + eventID
}
