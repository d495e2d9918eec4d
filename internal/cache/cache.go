// Package cache implementa un caché en memoria con TTL para las
// respuestas del catálogo. Las escrituras del catálogo invalidan por
// prefijo las entradas relacionadas.
package cache

import (
	"strings"
	"sync"
	"time"
)

type entry struct {
	value      any
	expiration int64
}

// Cache es seguro para uso concurrente. Un janitor en background barre
// las entradas expiradas; Stop lo detiene.
type Cache struct {
	mu    sync.RWMutex
	items map[string]entry
	ttl   time.Duration
	done  chan struct{}
	stop  sync.Once
}

// New crea un caché con TTL por defecto y arranca el janitor.
func New(defaultTTL time.Duration) *Cache {
	c := &Cache{
		items: make(map[string]entry),
		ttl:   defaultTTL,
		done:  make(chan struct{}),
	}
	go c.janitor()
	return c
}

// Set guarda un valor. Un TTL opcional reemplaza al de por defecto.
func (c *Cache) Set(key string, value any, ttl ...time.Duration) {
	d := c.ttl
	if len(ttl) > 0 {
		d = ttl[0]
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = entry{
		value:      value,
		expiration: time.Now().Add(d).UnixNano(),
	}
}

// Get devuelve el valor si existe y no expiró.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	it, ok := c.items[key]
	if !ok || time.Now().UnixNano() > it.expiration {
		return nil, false
	}
	return it.value, true
}

// Delete elimina una clave.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

// DeleteByPrefix invalida todas las claves con el prefijo dado.
func (c *Cache) DeleteByPrefix(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.items {
		if strings.HasPrefix(key, prefix) {
			delete(c.items, key)
		}
	}
}

// Len devuelve la cantidad de entradas, incluyendo las expiradas que el
// janitor todavía no barre.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Stop detiene el janitor. Idempotente.
func (c *Cache) Stop() {
	c.stop.Do(func() { close(c.done) })
}

func (c *Cache) janitor() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.sweep()
		case <-c.done:
			return
		}
	}
}

func (c *Cache) sweep() {
	now := time.Now().UnixNano()
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, it := range c.items {
		if now > it.expiration {
			delete(c.items, key)
		}
	}
}
