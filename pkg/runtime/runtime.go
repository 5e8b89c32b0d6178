// Package runtime is the support surface imported by generated binding
// packages. It supplies the opaque account handle, the permission
// metadata constructors, and the invocation capability the emitted call
// stubs are written against. The actual submission mechanism is
// injected by the host application through SetInvoker.
package runtime

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gagliardetto/solana-go"
)

// SentinelProgramID is the well-known unassigned program identifier,
// substituted when a directive does not pin an id. It decodes to the
// all-zero address.
const SentinelProgramID = "11111111111111111111111111111111"

// Classified invocation failures
var (
	ErrNoInvoker              = errors.New("no invoker configured")
	ErrInvalidProgram         = errors.New("invalid program id")
	ErrInvalidAccountData     = errors.New("unexpected account data")
	ErrInvalidInstructionData = errors.New("unexpected instruction data")
)

// Account is an opaque handle to an on-chain account passed into a
// generated binding.
type Account struct {
	Key solana.PublicKey
}

// NewAccount creates an account handle for the given address
func NewAccount(key solana.PublicKey) *Account {
	return &Account{Key: key}
}

// AccountMeta carries the permission classification of one account
// reference inside an instruction.
type AccountMeta struct {
	PublicKey  solana.PublicKey
	IsWritable bool
	IsSigner   bool
}

// WritableSigner builds the metadata for a writable signing account
func WritableSigner(key solana.PublicKey) AccountMeta {
	return AccountMeta{PublicKey: key, IsWritable: true, IsSigner: true}
}

// Writable builds the metadata for a writable non-signing account
func Writable(key solana.PublicKey) AccountMeta {
	return AccountMeta{PublicKey: key, IsWritable: true}
}

// ReadonlySigner builds the metadata for a read-only signing account
func ReadonlySigner(key solana.PublicKey) AccountMeta {
	return AccountMeta{PublicKey: key, IsSigner: true}
}

// Readonly builds the metadata for a read-only non-signing account
func Readonly(key solana.PublicKey) AccountMeta {
	return AccountMeta{PublicKey: key}
}

// Instruction is one assembled program call: the target program, the
// ordered account-permission list, and the discriminant-tagged payload.
type Instruction struct {
	ProgramID solana.PublicKey
	Accounts  []AccountMeta
	Data      []byte
}

// Invoker is the capability that actually executes an assembled
// instruction. Hosts provide one; generated stubs never construct it.
type Invoker interface {
	Invoke(ix Instruction, accounts []*Account) error
}

var (
	invokerMu sync.RWMutex
	invoker   Invoker
)

// SetInvoker installs the process-wide invocation capability. Passing
// nil removes it.
func SetInvoker(inv Invoker) {
	invokerMu.Lock()
	defer invokerMu.Unlock()
	invoker = inv
}

// Invoke dispatches an assembled instruction to the installed invoker
func Invoke(ix Instruction, accounts ...*Account) error {
	invokerMu.RLock()
	inv := invoker
	invokerMu.RUnlock()

	if inv == nil {
		return fmt.Errorf("invoke %s: %w", ix.ProgramID, ErrNoInvoker)
	}
	return inv.Invoke(ix, accounts)
}

// InvokerFunc adapts a plain function into an Invoker
type InvokerFunc func(ix Instruction, accounts []*Account) error

// Invoke implements the Invoker interface
func (f InvokerFunc) Invoke(ix Instruction, accounts []*Account) error {
	return f(ix, accounts)
}
