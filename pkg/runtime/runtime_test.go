package runtime

import (
	"errors"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelDecodesToZeroAddress(t *testing.T) {
	key, err := solana.PublicKeyFromBase58(SentinelProgramID)
	require.NoError(t, err)
	assert.True(t, key.IsZero(), "sentinel must materialize to the all-zero address")
}

func TestAccountMetaConstructors(t *testing.T) {
	key := solana.MustPublicKeyFromBase58("TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA")

	tests := []struct {
		name       string
		meta       AccountMeta
		isWritable bool
		isSigner   bool
	}{
		{"writable signer", WritableSigner(key), true, true},
		{"writable", Writable(key), true, false},
		{"readonly signer", ReadonlySigner(key), false, true},
		{"readonly", Readonly(key), false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, key, tt.meta.PublicKey)
			assert.Equal(t, tt.isWritable, tt.meta.IsWritable)
			assert.Equal(t, tt.isSigner, tt.meta.IsSigner)
		})
	}
}

func TestInvokeWithoutInvoker(t *testing.T) {
	SetInvoker(nil)

	err := Invoke(Instruction{Data: []byte{0}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoInvoker)
}

func TestInvokeDispatches(t *testing.T) {
	key := solana.MustPublicKeyFromBase58("TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA")
	account := NewAccount(key)

	var captured Instruction
	var capturedAccounts []*Account
	SetInvoker(InvokerFunc(func(ix Instruction, accounts []*Account) error {
		captured = ix
		capturedAccounts = accounts
		return nil
	}))
	defer SetInvoker(nil)

	ix := Instruction{
		ProgramID: key,
		Accounts:  []AccountMeta{Writable(key)},
		Data:      []byte{2, 0xaa},
	}
	err := Invoke(ix, account)
	require.NoError(t, err)

	assert.Equal(t, ix, captured)
	require.Len(t, capturedAccounts, 1)
	assert.Same(t, account, capturedAccounts[0])
}

func TestInvokePropagatesClassifiedFailure(t *testing.T) {
	SetInvoker(InvokerFunc(func(ix Instruction, accounts []*Account) error {
		return ErrInvalidProgram
	}))
	defer SetInvoker(nil)

	err := Invoke(Instruction{})
	assert.True(t, errors.Is(err, ErrInvalidProgram))
}
