package codec

import "encoding/binary"

// NonceByteLen is the fixed width of an encoded nonce.
const NonceByteLen = 8

// EncodeNonce encodes a 64-bit account nonce as 8 little-endian bytes.
// The nonce must come from the ledger's nonce tracker, never be invented
// locally.
func EncodeNonce(nonce uint64) []byte {
	buf := make([]byte, NonceByteLen)
	binary.LittleEndian.PutUint64(buf, nonce)
	return buf
}
