package cache

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// The cache holds objects that are expensive to build and shared by every
// game of the same shape, such as the virtual-line index of a board size
// or a weights file. Objects are built once per key and never evicted.
//
// A loader may itself call Load for a different key. Loading a key from
// inside its own loader deadlocks.

type entry struct {
	once sync.Once
	obj  any
	err  error
}

type cache struct {
	sync.Mutex
	objects map[string]*entry
}

// GlobalObjectCache is our global object cache, of course.
var GlobalObjectCache *cache

var once sync.Once

func (c *cache) get(key string, loadFunc func(key string) (any, error)) (any, error) {
	c.Lock()
	e, ok := c.objects[key]
	if !ok {
		e = &entry{}
		c.objects[key] = e
	}
	c.Unlock()
	if ok {
		log.Debug().Str("key", key).Msg("getting-obj-from-cache")
	}

	// The build runs outside the map lock so loaders can nest.
	e.once.Do(func() {
		log.Debug().Str("key", key).Msg("loading-into-cache")
		e.obj, e.err = loadFunc(key)
	})
	if e.err != nil {
		c.Lock()
		if c.objects[key] == e {
			delete(c.objects, key)
		}
		c.Unlock()
		return nil, e.err
	}
	return e.obj, nil
}

func CreateGlobalObjectCache() {
	GlobalObjectCache = &cache{objects: make(map[string]*entry)}
}

// Load returns the object stored under name, building it with loadFunc the
// first time it is asked for. A failed load is not cached.
func Load[T any](name string, loadFunc func(key string) (T, error)) (T, error) {
	once.Do(func() {
		if GlobalObjectCache == nil {
			CreateGlobalObjectCache()
		}
	})
	obj, err := GlobalObjectCache.get(name, func(key string) (any, error) {
		return loadFunc(key)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return obj.(T), nil
}

// Len returns the number of cached objects, counting loads in flight.
func Len() int {
	if GlobalObjectCache == nil {
		return 0
	}
	GlobalObjectCache.Lock()
	defer GlobalObjectCache.Unlock()
	return len(GlobalObjectCache.objects)
}
