package internal

import "sync"

var bufPool = sync.Pool{New: func() interface{} {
	return []byte(nil)
}}

// ReserveByteBuffer fetches a byte slice of length 0 from an internal
// sync.Pool. The slice may keep a capacity left over from earlier
// formatting work, which avoids reallocations when evidence records
// are rendered in a loop.
//
// Use ReleaseByteBuffer to return the slice to the pool.
func ReserveByteBuffer() []byte {
	return bufPool.Get().([]byte)[:0]
}

// ReleaseByteBuffer returns the given byte slice to the internal
// sync.Pool from which ReserveByteBuffer can fetch it again.
func ReleaseByteBuffer(buf []byte) {
	bufPool.Put(buf)
}
