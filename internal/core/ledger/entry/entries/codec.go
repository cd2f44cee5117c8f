package entries

import (
	"encoding/binary"

	"github.com/gagliardetto/solana-go"
)

func appendUint64(buf []byte, v uint64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	return append(buf, b[:]...)
}

func readKey(data []byte, off int, k *solana.PublicKey) int {
	copy(k[:], data[off:off+32])
	return off + 32
}

func readUint64(data []byte, off int) (int, uint64) {
	return off + 8, binary.BigEndian.Uint64(data[off : off+8])
}
