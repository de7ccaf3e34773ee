package host

import (
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/blake2b"

	"github.com/latchlang/latch/internal/value"
)

// Hash implements the supplemental hash module: sha256, md5, blake2b,
// all returning lowercase hex digests.
type Hash struct{}

func NewHash() *Hash { return &Hash{} }

func (h *Hash) Call(method string, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return value.Null(), argErr("hash", method, 1, len(args))
	}
	data := []byte(args[0].Str)
	switch method {
	case "sha256":
		sum := sha256.Sum256(data)
		return value.Str(hex.EncodeToString(sum[:])), nil
	case "md5":
		sum := md5.Sum(data)
		return value.Str(hex.EncodeToString(sum[:])), nil
	case "blake2b":
		sum := blake2b.Sum256(data)
		return value.Str(hex.EncodeToString(sum[:])), nil
	default:
		return value.Null(), wrongType("hash", method, "method", "sha256, md5, or blake2b")
	}
}
