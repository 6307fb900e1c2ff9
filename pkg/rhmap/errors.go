package rhmap

import "github.com/cockroachdb/errors"

// ErrKeyNotFound is returned by At when the key is not in the map
var ErrKeyNotFound = errors.New("rhmap: key not found")
