package cache

import "sync"

// TeamCache maps team names to their database IDs so repeat drives skip the lookup
type TeamCache struct {
	mu    sync.RWMutex
	teams map[string]uint
}

// NewTeamCache creates a new TeamCache
func NewTeamCache() *TeamCache {
	return &TeamCache{
		teams: make(map[string]uint),
	}
}

// Get retrieves a team ID by name
func (c *TeamCache) Get(name string) (uint, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	id, ok := c.teams[name]
	return id, ok
}

// Set stores a team ID by name
func (c *TeamCache) Set(name string, id uint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.teams[name] = id
}

// Delete removes a team by name
func (c *TeamCache) Delete(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.teams, name)
}

// Len returns the number of cached teams
func (c *TeamCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.teams)
}

// Reset clears all teams from the cache
func (c *TeamCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.teams = make(map[string]uint)
}
