package cache

import (
	"container/list"
	"context"
	"sync"
	"time"
)

// Memory — процессный LRU-кэш с TTL и ограничением числа записей.
// Подходит для одного экземпляра сервиса; для нескольких экземпляров
// используется Redis.
type Memory struct {
	mu   sync.Mutex
	cap  int
	ttl  time.Duration
	lst  *list.List
	dict map[string]*list.Element

	now func() time.Time // подменяется в тестах
}

type entry struct {
	key string
	val []byte
	exp time.Time
}

func NewMemory(capacity int, ttl time.Duration) *Memory {
	if capacity <= 0 {
		capacity = 1
	}
	return &Memory{
		cap:  capacity,
		ttl:  ttl,
		lst:  list.New(),
		dict: make(map[string]*list.Element),
		now:  time.Now,
	}
}

func (c *Memory) Get(_ context.Context, key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.dict[key]
	if !ok {
		return nil, false
	}
	it := e.Value.(entry)
	if !c.now().Before(it.exp) {
		c.lst.Remove(e)
		delete(c.dict, key)
		return nil, false
	}
	c.lst.MoveToFront(e)
	return it.val, true
}

func (c *Memory) Set(_ context.Context, key string, value []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.dict[key]; ok {
		e.Value = entry{key: key, val: value, exp: c.now().Add(c.ttl)}
		c.lst.MoveToFront(e)
		return
	}
	c.dict[key] = c.lst.PushFront(entry{key: key, val: value, exp: c.now().Add(c.ttl)})
	for c.lst.Len() > c.cap {
		back := c.lst.Back()
		if back == nil {
			break
		}
		it := back.Value.(entry)
		delete(c.dict, it.key)
		c.lst.Remove(back)
	}
}
