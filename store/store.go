// Package store persists protocol records as borsh-encoded blobs keyed by
// their derived addresses. Mutating operations stage all record writes and
// deletes into a single batch that is applied atomically, so a failed
// operation leaves nothing behind.
package store

import (
	"errors"

	solanago "github.com/gagliardetto/solana-go"
)

// ErrClosed is returned by stores after Close.
var ErrClosed = errors.New("store: closed")

// Record is one staged write.
type Record struct {
	Address solanago.PublicKey
	Data    []byte
}

// Batch is the unit of atomic application.
type Batch struct {
	Puts    []Record
	Deletes []solanago.PublicKey
}

// Put stages an encoded record.
func (b *Batch) Put(addr solanago.PublicKey, data []byte) {
	b.Puts = append(b.Puts, Record{Address: addr, Data: data})
}

// Delete stages a record removal.
func (b *Batch) Delete(addr solanago.PublicKey) {
	b.Deletes = append(b.Deletes, addr)
}

// Store is the account persistence contract. Get returns found=false for a
// missing record without error. Apply is all-or-nothing.
type Store interface {
	Get(addr solanago.PublicKey) (data []byte, found bool, err error)
	Apply(batch Batch) error
	Close() error
}
