// Package cache provides a sharded LRU cache for values that are costly
// to build and cheap to share, such as blur kernels.
//
// The cache is split into 16 shards, each with its own lock and its own
// LRU list. A full shard evicts its least recently used entry.
package cache
