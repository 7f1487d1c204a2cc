package colors

import "sync"

//Key identifies one analysis: the content hash of the decoded image plus the
//two parameters that shape the result. Identical keys always map to the same
//result set, that determinism is what makes caching correct at all.
type Key struct {
	Hash     string
	Clusters int
	Factor   float64
}

//Cache memoizes analysis results per Key. When a new image hash shows up the
//entries of the previous image are dropped, there is no other eviction: the
//tool holds one image at a time and parameter tweaks on it should be free.
type Cache struct {
	mu          sync.Mutex
	currentHash string
	entries     map[Key][]ColorCluster
}

func NewCache() *Cache {
	return &Cache{entries: make(map[Key][]ColorCluster)}
}

//Get returns the stored result for the key, if any
func (c *Cache) Get(key Key) ([]ColorCluster, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	result, ok := c.entries[key]
	return result, ok
}

//Put stores a result. A key carrying a hash different from the current one
//invalidates everything cached for the old image first.
func (c *Cache) Put(key Key, result []ColorCluster) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if key.Hash != c.currentHash {
		c.entries = make(map[Key][]ColorCluster)
		c.currentHash = key.Hash
	}

	c.entries[key] = result
}

//Len reports how many results are currently cached
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
