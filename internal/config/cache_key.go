package config

import "fmt"

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// AthleteSessionKey returns the cache key for an athlete's login session.
func (r *CacheKeyStruct) AthleteSessionKey(athleteID int) string {
	return fmt.Sprintf("login:athlete:%d", athleteID)
}

// OrganizerSessionKey returns the cache key for an organizer's login session.
func (r *CacheKeyStruct) OrganizerSessionKey(organizerID int) string {
	return fmt.Sprintf("login:organizer:%d", organizerID)
}

// EventMonitorChannel returns the Redis PubSub channel carrying live
// registration events of an event, consumed by the organizer WebSocket.
func (r *CacheKeyStruct) EventMonitorChannel(eventID string) string {
	return fmt.Sprintf("event:%s:monitor", eventID)
}

var CacheKey = NewCacheKeyStruct()
