// Package notify provides a bounded notification queue whose messages
// evict themselves after a TTL.
//
// Each pushed message gets a unique ID and its own eviction timer on
// the queue's scheduler. The queue's current contents are exposed as a
// reactive snapshot: observers are notified on every push, dismissal,
// and eviction.
package notify
