package util

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyMutexSerializesSameKey(t *testing.T) {
	km := NewKeyMutex()
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			km.Lock("session-1")
			defer km.Unlock("session-1")
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, counter)
}

func TestKeyMutexIndependentKeys(t *testing.T) {
	km := NewKeyMutex()
	km.Lock("a")

	done := make(chan struct{})
	go func() {
		km.Lock("b")
		km.Unlock("b")
		close(done)
	}()

	// A held lock on "a" must not block "b".
	<-done
	km.Unlock("a")
}

func TestKeyMutexReleasesEntries(t *testing.T) {
	km := NewKeyMutex()
	km.Lock("x")
	km.Unlock("x")
	assert.Empty(t, km.locks)
}
