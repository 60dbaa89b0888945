package lock

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetMesmaChaveMesmoMutex(t *testing.T) {
	k := NewKeyed()
	assert.Same(t, k.Get("g1:1"), k.Get("g1:1"))
	assert.NotSame(t, k.Get("g1:1"), k.Get("g1:2"))
}

func TestSerializaPorChave(t *testing.T) {
	k := NewKeyed()

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			mu := k.Get("g1:1")
			mu.Lock()
			counter++
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
}
