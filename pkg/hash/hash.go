// Package hash provides the key hashing functions used by the rhmap package.
package hash

import (
	"encoding/binary"
	"hash/maphash"
	"reflect"
	"unsafe"

	"github.com/cespare/xxhash/v2"
	"github.com/spaolacci/murmur3"
)

// Func maps a key to an unsigned integer. It must be deterministic: equal
// keys must always produce equal values for the lifetime of a map.
type Func[K comparable] func(key K) uint64

// seed is shared by every fallback hasher in the process
var seed = maphash.MakeSeed()

// String hashes a string using xxhash
func String(s string) uint64 {
	return xxhash.Sum64String(s)
}

// Bytes hashes a byte slice using xxhash
func Bytes(b []byte) uint64 {
	return xxhash.Sum64(b)
}

// Uint64 hashes an integer using murmur3 over its little endian encoding
func Uint64(x uint64) uint64 {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], x)
	return murmur3.Sum64(b[:])
}

// Comparable hashes any comparable value with a process wide seed
func Comparable[K comparable](key K) uint64 {
	return maphash.Comparable(seed, key)
}

// Constant returns a hash function that maps every key to c. Every key
// will collide, which is only useful for testing worst case probing.
func Constant[K comparable](c uint64) Func[K] {
	return func(K) uint64 {
		return c
	}
}

// Default returns the default hash function for K. String kinds and byte
// arrays are hashed with xxhash, integer kinds with murmur3, and everything
// else falls back to maphash.
func Default[K comparable]() Func[K] {
	typ := reflect.TypeFor[K]()
	switch typ.Kind() {
	case reflect.String:
		return func(key K) uint64 {
			return String(*(*string)(unsafe.Pointer(&key)))
		}
	case reflect.Int8, reflect.Uint8:
		return func(key K) uint64 {
			return Uint64(uint64(*(*uint8)(unsafe.Pointer(&key))))
		}
	case reflect.Int16, reflect.Uint16:
		return func(key K) uint64 {
			return Uint64(uint64(*(*uint16)(unsafe.Pointer(&key))))
		}
	case reflect.Int32, reflect.Uint32:
		return func(key K) uint64 {
			return Uint64(uint64(*(*uint32)(unsafe.Pointer(&key))))
		}
	case reflect.Int, reflect.Uint, reflect.Int64, reflect.Uint64, reflect.Uintptr:
		if typ.Size() == 8 {
			return func(key K) uint64 {
				return Uint64(*(*uint64)(unsafe.Pointer(&key)))
			}
		}
		return func(key K) uint64 {
			return Uint64(uint64(*(*uint32)(unsafe.Pointer(&key))))
		}
	case reflect.Array:
		if typ.Elem().Kind() == reflect.Uint8 {
			n := typ.Len()
			return func(key K) uint64 {
				return Bytes(unsafe.Slice((*byte)(unsafe.Pointer(&key)), n))
			}
		}
	}
	return Comparable[K]
}
