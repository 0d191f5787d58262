package locks

import (
	"sync"
)

type (
	// HashFunc represents a hash function for a key
	HashFunc[K comparable] func(K) uint32

	// KeyedMutex is an interface which can lock on a specific comparable key.
	// Locks held for distinct keys are independent of each other.
	KeyedMutex[K comparable] interface {
		LockKey(key K)
		UnlockKey(key K)
	}

	keyedMutexImpl[K comparable] struct {
		hashFn HashFunc[K]
		shards []*keyedMutexShard[K]
	}

	keyedMutexShard[K comparable] struct {
		sync.Mutex
		mutexInfos map[K]*mutexInfo
	}

	mutexInfo struct {
		// how many callers are using this lock info, including the
		// caller which already holds the lock
		// this is guarded by the lock in keyedMutexShard
		waitCount int

		// actual lock
		sync.Mutex
	}
)

// NewKeyedMutex creates a new KeyedMutex with the given number of shards
func NewKeyedMutex[K comparable](numShards uint32, hashFn HashFunc[K]) KeyedMutex[K] {
	impl := &keyedMutexImpl[K]{
		hashFn: hashFn,
		shards: make([]*keyedMutexShard[K], numShards),
	}
	for i := range impl.shards {
		impl.shards[i] = &keyedMutexShard[K]{
			mutexInfos: make(map[K]*mutexInfo),
		}
	}

	return impl
}

func newMutexInfo() *mutexInfo {
	return &mutexInfo{
		waitCount: 1,
	}
}

// LockKey locks by a specific key
func (k *keyedMutexImpl[K]) LockKey(key K) {
	shard := k.shards[k.getShardIndex(key)]

	shard.Lock()
	info, ok := shard.mutexInfos[key]
	if !ok {
		info := newMutexInfo()
		shard.mutexInfos[key] = info
		shard.Unlock()
		info.Lock()
		return
	}

	info.waitCount++
	shard.Unlock()
	info.Lock()
}

// UnlockKey unlocks by a specific key
func (k *keyedMutexImpl[K]) UnlockKey(key K) {
	shard := k.shards[k.getShardIndex(key)]

	shard.Lock()
	defer shard.Unlock()
	info, ok := shard.mutexInfos[key]
	if !ok {
		panic("cannot find lock for key")
	}
	info.Unlock()
	if info.waitCount == 1 {
		delete(shard.mutexInfos, key)
	} else {
		info.waitCount--
	}
}

func (k *keyedMutexImpl[K]) getShardIndex(key K) uint32 {
	return k.hashFn(key) % uint32(len(k.shards))
}
