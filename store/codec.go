package store

import (
	"bytes"

	binary "github.com/gagliardetto/binary"
)

// Marshal borsh-encodes a record struct.
func Marshal(v interface{}) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := binary.NewBorshEncoder(buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal borsh-decodes data into a record struct.
func Unmarshal(data []byte, v interface{}) error {
	return binary.NewBorshDecoder(data).Decode(v)
}
