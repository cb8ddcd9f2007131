package db

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"path"
	"sort"
	"sync"
	"time"
)

const EARTH_RADIUS_KM = 6371.0

// MockRedisClient is an in-memory RedisClient used by tests and the demo mode.
type MockRedisClient struct {
	data    map[string]string            // Key-value store
	expires map[string]time.Time         // Expiry per key, absent means persistent
	geoData map[string]map[string]GeoLoc // Geolocation data
	mu      sync.RWMutex
	context context.Context
	now     func() time.Time
}

// GeoLoc represents a geolocation with latitude and longitude.
type GeoLoc struct {
	Latitude  float64
	Longitude float64
}

// NewMockRedisClient initializes a new MockRedisClient.
func NewMockRedisClient(ctx context.Context) *MockRedisClient {
	return &MockRedisClient{
		data:    make(map[string]string),
		expires: make(map[string]time.Time),
		geoData: make(map[string]map[string]GeoLoc),
		context: ctx,
		now:     time.Now,
	}
}

// SetClock replaces the time source used for key expiry.
func (m *MockRedisClient) SetClock(now func() time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}

// Set stores a key-value pair in the mock Redis.
func (m *MockRedisClient) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	delete(m.expires, key)
	return nil
}

func (m *MockRedisClient) SetWithTTL(key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	if ttl > 0 {
		m.expires[key] = m.now().Add(ttl)
	} else {
		delete(m.expires, key)
	}
	return nil
}

// alive must be called with the lock held.
func (m *MockRedisClient) alive(key string) bool {
	if _, ok := m.data[key]; !ok {
		return false
	}
	exp, ok := m.expires[key]
	return !ok || m.now().Before(exp)
}

// Get retrieves a value for a given key from the mock Redis.
func (m *MockRedisClient) SetNX(key, value string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.alive(key) {
		return false, nil
	}
	m.data[key] = value
	delete(m.expires, key)
	return true, nil
}

func (m *MockRedisClient) Get(key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.alive(key) {
		return "", fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}
	return m.data[key], nil
}

func (m *MockRedisClient) Del(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	delete(m.expires, key)
	return nil
}

// Keys matches live keys against a glob pattern, sorted.
func (m *MockRedisClient) Keys(pattern string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := []string{}
	for k := range m.data {
		ok, err := path.Match(pattern, k)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
		}
		if ok && m.alive(k) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// AddLocationWithJSON adds geolocation with JSON data in the mock Redis.
func (m *MockRedisClient) AddLocationWithJSON(ctx context.Context, geoKey, memberKey string, lat, lon float64, data interface{}) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.geoData[geoKey]; !exists {
		m.geoData[geoKey] = make(map[string]GeoLoc)
	}
	m.geoData[geoKey][memberKey] = GeoLoc{Latitude: lat, Longitude: lon}
	m.data[memberKey] = string(jsonData)
	delete(m.expires, memberKey)
	return nil
}

func (m *MockRedisClient) RemoveLocation(ctx context.Context, geoKey, memberKey string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if members, ok := m.geoData[geoKey]; ok {
		delete(members, memberKey)
	}
	delete(m.data, memberKey)
	delete(m.expires, memberKey)
	return nil
}

// GetLocationsWithinRadius returns JSON data for members within radius km, nearest first.
func (m *MockRedisClient) GetLocationsWithinRadius(key string, lat, lon, radius float64) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	geoMembers, exists := m.geoData[key]
	if !exists {
		return nil, nil
	}

	type hit struct {
		member string
		dist   float64
	}
	var hits []hit
	for memberKey, loc := range geoMembers {
		d := HaversineKm(lat, lon, loc.Latitude, loc.Longitude)
		if d <= radius && m.alive(memberKey) {
			hits = append(hits, hit{memberKey, d})
		}
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].dist == hits[j].dist {
			return hits[i].member < hits[j].member
		}
		return hits[i].dist < hits[j].dist
	})

	results := make([]string, 0, len(hits))
	for _, h := range hits {
		results = append(results, m.data[h.member])
	}
	return results, nil
}

// HaversineKm is the great-circle distance between two points in km.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	rad := func(deg float64) float64 { return deg * math.Pi / 180 }
	dLat := rad(lat2 - lat1)
	dLon := rad(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rad(lat1))*math.Cos(rad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * EARTH_RADIUS_KM * math.Asin(math.Sqrt(a))
}

// GetContext returns the mock Redis client's context.
func (m *MockRedisClient) GetContext() context.Context {
	return m.context
}

// Ping always succeeds.
func (m *MockRedisClient) Ping() error {
	log.Println("[MockRedisClient] Ping successful")
	return nil
}
