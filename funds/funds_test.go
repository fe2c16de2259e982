package funds

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/capmintorg/libcapmint-go/wallet"
)

func addr(seed byte) wallet.Address {
	var a wallet.Address
	for i := range a {
		a[i] = seed
	}
	return a
}

func TestDeposit(t *testing.T) {
	b := NewBank()

	require.NoError(t, b.Deposit(addr(0x01), 100))
	require.NoError(t, b.Deposit(addr(0x01), 50))
	assert.Equal(t, uint64(150), b.BalanceOf(addr(0x01)))
	assert.Equal(t, uint64(0), b.BalanceOf(addr(0x02)))
}

func TestDeposit_ZeroAddress(t *testing.T) {
	b := NewBank()
	err := b.Deposit(wallet.ZeroAddress, 10)
	assert.ErrorIs(t, err, ErrZeroAddress)
}

func TestTransfer(t *testing.T) {
	b := NewBank()
	require.NoError(t, b.Deposit(addr(0x01), 100))

	require.NoError(t, b.Transfer(addr(0x01), addr(0x02), 60))
	assert.Equal(t, uint64(40), b.BalanceOf(addr(0x01)))
	assert.Equal(t, uint64(60), b.BalanceOf(addr(0x02)))
}

func TestTransfer_InsufficientBalance(t *testing.T) {
	b := NewBank()
	require.NoError(t, b.Deposit(addr(0x01), 10))

	err := b.Transfer(addr(0x01), addr(0x02), 11)
	assert.ErrorIs(t, err, ErrInsufficientBalance)
	assert.Equal(t, uint64(10), b.BalanceOf(addr(0x01)))
	assert.Equal(t, uint64(0), b.BalanceOf(addr(0x02)))
}

func TestTransfer_RejectingReceiver(t *testing.T) {
	b := NewBank()
	require.NoError(t, b.Deposit(addr(0x01), 100))

	refuse := errors.New("not accepting payments")
	b.SetReceiver(addr(0x02), ReceiverFunc(func(from wallet.Address, amount uint64) error {
		return refuse
	}))

	err := b.Transfer(addr(0x01), addr(0x02), 60)
	assert.ErrorIs(t, err, ErrTransferRejected)
	assert.ErrorIs(t, err, refuse)

	// Balances untouched after refusal.
	assert.Equal(t, uint64(100), b.BalanceOf(addr(0x01)))
	assert.Equal(t, uint64(0), b.BalanceOf(addr(0x02)))
}

func TestTransfer_ReceiverSeesPayment(t *testing.T) {
	b := NewBank()
	require.NoError(t, b.Deposit(addr(0x01), 100))

	var gotFrom wallet.Address
	var gotAmount uint64
	b.SetReceiver(addr(0x02), ReceiverFunc(func(from wallet.Address, amount uint64) error {
		gotFrom = from
		gotAmount = amount
		return nil
	}))

	require.NoError(t, b.Transfer(addr(0x01), addr(0x02), 25))
	assert.Equal(t, addr(0x01), gotFrom)
	assert.Equal(t, uint64(25), gotAmount)
}

func TestSetReceiver_Clear(t *testing.T) {
	b := NewBank()
	require.NoError(t, b.Deposit(addr(0x01), 100))

	b.SetReceiver(addr(0x02), ReceiverFunc(func(wallet.Address, uint64) error {
		return errors.New("no")
	}))
	b.SetReceiver(addr(0x02), nil)

	assert.NoError(t, b.Transfer(addr(0x01), addr(0x02), 10))
}

func TestSnapshotRestore(t *testing.T) {
	b := NewBank()
	require.NoError(t, b.Deposit(addr(0x01), 100))

	snap := b.Snapshot()

	require.NoError(t, b.Transfer(addr(0x01), addr(0x02), 70))
	require.NoError(t, b.Deposit(addr(0x03), 5))

	b.Restore(snap)
	assert.Equal(t, uint64(100), b.BalanceOf(addr(0x01)))
	assert.Equal(t, uint64(0), b.BalanceOf(addr(0x02)))
	assert.Equal(t, uint64(0), b.BalanceOf(addr(0x03)))
}

func TestSnapshot_Isolated(t *testing.T) {
	b := NewBank()
	require.NoError(t, b.Deposit(addr(0x01), 100))

	snap := b.Snapshot()
	require.NoError(t, b.Deposit(addr(0x01), 1))

	// Mutations after the snapshot must not leak into it.
	b.Restore(snap)
	assert.Equal(t, uint64(100), b.BalanceOf(addr(0x01)))
}
