package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSetAndGet(t *testing.T) {
	c := New(time.Minute)
	defer c.Stop()

	c.Set("product:1", "mouse")

	v, ok := c.Get("product:1")
	assert.True(t, ok)
	assert.Equal(t, "mouse", v)

	_, ok = c.Get("product:2")
	assert.False(t, ok)
}

func TestExpiration(t *testing.T) {
	c := New(time.Minute)
	defer c.Stop()

	c.Set("product:1", "mouse", 10*time.Millisecond)

	assert.Eventually(t, func() bool {
		_, ok := c.Get("product:1")
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestDeleteByPrefix(t *testing.T) {
	c := New(time.Minute)
	defer c.Stop()

	c.Set("products:list:q:mouse", 1)
	c.Set("products:list:cat:Periféricos", 2)
	c.Set("products:categories", 3)
	c.Set("product:7", 4)

	c.DeleteByPrefix("products:")

	assert.Equal(t, 1, c.Len())
	_, ok := c.Get("product:7")
	assert.True(t, ok)
}

func TestDelete(t *testing.T) {
	c := New(time.Minute)
	defer c.Stop()

	c.Set("product:1", "mouse")
	c.Delete("product:1")

	_, ok := c.Get("product:1")
	assert.False(t, ok)
}

func TestSweep(t *testing.T) {
	c := New(time.Minute)
	defer c.Stop()

	c.Set("a", 1, time.Nanosecond)
	c.Set("b", 2)

	time.Sleep(time.Millisecond)
	c.sweep()

	assert.Equal(t, 1, c.Len())
}
