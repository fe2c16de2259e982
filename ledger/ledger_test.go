package ledger

import (
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

func TestIssue_SequentialIDs(t *testing.T) {
	l := New()

	ids, err := l.Issue(addr(0x01), 3)
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 2, 3}, ids)
	assert.Equal(t, uint64(3), l.TotalIssued())

	more, err := l.Issue(addr(0x02), 2)
	require.NoError(t, err)
	assert.Equal(t, []uint64{4, 5}, more)
	assert.Equal(t, uint64(5), l.TotalIssued())
}

func TestIssue_Invalid(t *testing.T) {
	l := New()

	_, err := l.Issue(wallet.ZeroAddress, 1)
	assert.ErrorIs(t, err, ErrZeroAddress)

	_, err = l.Issue(addr(0x01), 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestOwnerOfAndExists(t *testing.T) {
	l := New()
	_, err := l.Issue(addr(0x01), 2)
	require.NoError(t, err)

	owner, err := l.OwnerOf(1)
	require.NoError(t, err)
	assert.Equal(t, addr(0x01), owner)

	assert.True(t, l.Exists(2))
	assert.False(t, l.Exists(3))

	_, err = l.OwnerOf(3)
	assert.ErrorIs(t, err, ErrUnknownToken)
}

func TestBalanceOf(t *testing.T) {
	l := New()
	_, err := l.Issue(addr(0x01), 3)
	require.NoError(t, err)
	_, err = l.Issue(addr(0x02), 1)
	require.NoError(t, err)

	assert.Equal(t, uint64(3), l.BalanceOf(addr(0x01)))
	assert.Equal(t, uint64(1), l.BalanceOf(addr(0x02)))
	assert.Equal(t, uint64(0), l.BalanceOf(addr(0x03)))
}

func TestTransfer(t *testing.T) {
	l := New()
	_, err := l.Issue(addr(0x01), 1)
	require.NoError(t, err)

	require.NoError(t, l.Transfer(addr(0x01), addr(0x02), 1))

	owner, err := l.OwnerOf(1)
	require.NoError(t, err)
	assert.Equal(t, addr(0x02), owner)
	assert.Equal(t, uint64(0), l.BalanceOf(addr(0x01)))
	assert.Equal(t, uint64(1), l.BalanceOf(addr(0x02)))
}

func TestTransfer_Errors(t *testing.T) {
	l := New()
	_, err := l.Issue(addr(0x01), 1)
	require.NoError(t, err)

	assert.ErrorIs(t, l.Transfer(addr(0x01), addr(0x02), 99), ErrUnknownToken)
	assert.ErrorIs(t, l.Transfer(addr(0x03), addr(0x02), 1), ErrNotTokenOwner)
	assert.ErrorIs(t, l.Transfer(addr(0x01), wallet.ZeroAddress, 1), ErrZeroAddress)
}

func TestSnapshotRestore(t *testing.T) {
	l := New()
	_, err := l.Issue(addr(0x01), 2)
	require.NoError(t, err)

	snap := l.Snapshot()

	_, err = l.Issue(addr(0x02), 3)
	require.NoError(t, err)
	require.NoError(t, l.Transfer(addr(0x01), addr(0x02), 1))

	l.Restore(snap)
	assert.Equal(t, uint64(2), l.TotalIssued())
	assert.False(t, l.Exists(3))
	assert.Equal(t, uint64(2), l.BalanceOf(addr(0x01)))
	assert.Equal(t, uint64(0), l.BalanceOf(addr(0x02)))

	owner, err := l.OwnerOf(1)
	require.NoError(t, err)
	assert.Equal(t, addr(0x01), owner)
}
