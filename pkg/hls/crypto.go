package hls

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/hex"
	"fmt"
	"strings"
)

// ivDigits is the normalized IV width in hex digits (16 bytes).
const ivDigits = 32

// NormalizeIV converts a declared IV literal, "0x"-prefixed or bare hex, into
// exactly 32 lowercase hex digits: shorter values are zero-padded on the
// left, longer ones truncated from the right.
func NormalizeIV(iv string) (string, error) {
	raw := strings.TrimPrefix(strings.TrimPrefix(iv, "0x"), "0X")
	raw = strings.ToLower(raw)
	for _, c := range raw {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return "", newError(ErrCodeFormat, "", nil, "invalid IV literal %q", iv)
		}
	}
	if len(raw) > ivDigits {
		return raw[:ivDigits], nil
	}
	return strings.Repeat("0", ivDigits-len(raw)) + raw, nil
}

// SequenceIV renders a segment sequence number as a 32-hex-digit IV, the
// default when the playlist declares none.
func SequenceIV(seq uint64) string {
	return fmt.Sprintf("%0*x", ivDigits, seq)
}

// Decrypter turns an encrypted segment body into plaintext.
type Decrypter interface {
	Decrypt(ciphertext []byte, hexKey, hexIV string) ([]byte, error)
}

// CBCDecrypter decrypts AES-128-CBC segment bodies into fresh buffers,
// stripping PKCS#7 padding when present.
type CBCDecrypter struct{}

func (CBCDecrypter) Decrypt(ciphertext []byte, hexKey, hexIV string) ([]byte, error) {
	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, newError(ErrCodeCrypto, "", err, "invalid hex key")
	}
	iv, err := hex.DecodeString(hexIV)
	if err != nil {
		return nil, newError(ErrCodeCrypto, "", err, "invalid hex IV")
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, newError(ErrCodeCrypto, "", err, "failed to initialize cipher")
	}
	if len(iv) != block.BlockSize() {
		return nil, newError(ErrCodeCrypto, "", nil, "IV length %d does not match the block size", len(iv))
	}
	if len(ciphertext)%block.BlockSize() != 0 {
		return nil, newError(ErrCodeCrypto, "", nil, "ciphertext length %d is not a multiple of the block size", len(ciphertext))
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, ciphertext)
	return unpad(plaintext, block.BlockSize()), nil
}

// unpad strips PKCS#7 padding. Data whose tail is not valid padding is
// returned unchanged, since not every encoder pads segment bodies.
func unpad(data []byte, blockSize int) []byte {
	if len(data) == 0 {
		return data
	}
	n := int(data[len(data)-1])
	if n < 1 || n > blockSize || n > len(data) {
		return data
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return data
		}
	}
	return data[:len(data)-n]
}
