package hash

import (
	"encoding/binary"
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/spaolacci/murmur3"
	"github.com/stretchr/testify/require"
)

type name string

type id int32

type point struct {
	x, y int
}

func Test_String(t *testing.T) {
	require.Equal(t, xxhash.Sum64String("robin"), String("robin"))
	require.Equal(t, String("robin"), Bytes([]byte("robin")))
	require.NotEqual(t, String("robin"), String("hood"))
}

func Test_Uint64(t *testing.T) {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, 42)
	require.Equal(t, murmur3.Sum64(b), Uint64(42))
	require.NotEqual(t, Uint64(1), Uint64(2))
}

func Test_Default(t *testing.T) {
	require.Equal(t, String("abc"), Default[string]()("abc"))
	require.Equal(t, String("abc"), Default[name]()(name("abc")))
	require.Equal(t, Uint64(7), Default[int]()(7))
	require.Equal(t, Uint64(7), Default[uint64]()(7))
	require.Equal(t, Uint64(0xffffffff), Default[id]()(-1))
	require.Equal(t, Uint64(0xff), Default[int8]()(-1))
	require.Equal(t, Uint64(0x1234), Default[uint16]()(0x1234))

	h := Default[point]()
	require.Equal(t, h(point{1, 2}), h(point{1, 2}))
	require.NotEqual(t, h(point{1, 2}), h(point{2, 1}))

	f := Default[float64]()
	require.Equal(t, f(0.0), f(negZero()))

	type digest [4]byte
	require.Equal(t, Bytes([]byte{1, 2, 3, 4}), Default[[4]byte]()([4]byte{1, 2, 3, 4}))
	require.Equal(t, Bytes([]byte{1, 2, 3, 4}), Default[digest]()(digest{1, 2, 3, 4}))
	require.NotEqual(t, Default[digest]()(digest{1}), Default[digest]()(digest{2}))

	i := Default[any]()
	require.Equal(t, i("x"), i("x"))
}

func negZero() float64 {
	z := 0.0
	return -z
}

func Test_Constant(t *testing.T) {
	h := Constant[string](9)
	for _, k := range []string{"", "a", "bb"} {
		require.Equal(t, uint64(9), h(k))
	}
}
