package split

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

func configured(t *testing.T, percents ...uint8) *Registry {
	t.Helper()
	addrs := make([]wallet.Address, len(percents))
	for i := range percents {
		addrs[i] = addr(byte(i + 1))
	}
	r := NewRegistry()
	require.NoError(t, r.Set(addrs, percents))
	return r
}

// --- Registry tests ---

func TestSet(t *testing.T) {
	r := configured(t, 60, 40)

	entries := r.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, addr(0x01), entries[0].Address)
	assert.Equal(t, uint8(60), entries[0].Percent)
	assert.Equal(t, addr(0x02), entries[1].Address)
	assert.Equal(t, uint8(40), entries[1].Percent)
}

func TestSet_Replaces(t *testing.T) {
	r := configured(t, 60, 40)

	require.NoError(t, r.Set([]wallet.Address{addr(0x09)}, []uint8{100}))

	entries := r.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, addr(0x09), entries[0].Address)
}

func TestSet_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		addrs    []wallet.Address
		percents []uint8
		wantErr  error
	}{
		{"length mismatch", []wallet.Address{addr(0x01)}, []uint8{60, 40}, ErrLengthMismatch},
		{"empty", nil, nil, ErrNoEntries},
		{"sum under 100", []wallet.Address{addr(0x01), addr(0x02)}, []uint8{60, 39}, ErrInvalidSplitTotal},
		{"sum over 100", []wallet.Address{addr(0x01), addr(0x02)}, []uint8{60, 41}, ErrInvalidSplitTotal},
		{"zero share", []wallet.Address{addr(0x01), addr(0x02)}, []uint8{100, 0}, ErrInvalidShare},
		{"oversize share", []wallet.Address{addr(0x01)}, []uint8{101}, ErrInvalidShare},
		{"duplicate address", []wallet.Address{addr(0x01), addr(0x01)}, []uint8{60, 40}, ErrDuplicateRecipient},
		{"zero address", []wallet.Address{wallet.ZeroAddress}, []uint8{100}, ErrInvalidShare},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := configured(t, 50, 50)
			err := r.Set(tt.addrs, tt.percents)
			assert.ErrorIs(t, err, tt.wantErr)

			// Registry unchanged on failure.
			entries := r.Entries()
			require.Len(t, entries, 2)
			assert.Equal(t, uint8(50), entries[0].Percent)
		})
	}
}

func TestLock(t *testing.T) {
	r := configured(t, 50, 50)

	assert.False(t, r.Locked())
	r.Lock()
	assert.True(t, r.Locked())

	err := r.Set([]wallet.Address{addr(0x09)}, []uint8{100})
	assert.ErrorIs(t, err, ErrSplitsLocked)
	require.Len(t, r.Entries(), 2)

	// Locking again is a no-op.
	r.Lock()
	assert.True(t, r.Locked())
}

func TestSnapshotRestore(t *testing.T) {
	r := configured(t, 60, 40)
	snap := r.Snapshot()

	require.NoError(t, r.Set([]wallet.Address{addr(0x09)}, []uint8{100}))
	r.Lock()

	r.Restore(snap)
	assert.False(t, r.Locked())
	entries := r.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, uint8(60), entries[0].Percent)

	// Restoring undoes the lock, so the registry accepts changes again.
	require.NoError(t, r.Set([]wallet.Address{addr(0x09)}, []uint8{100}))
}

// --- Distribution tests ---

func TestPlan_ExactSplit(t *testing.T) {
	r := configured(t, 60, 40)

	payouts, err := r.Plan(100)
	require.NoError(t, err)
	require.Len(t, payouts, 2)
	assert.Equal(t, uint64(60), payouts[0].Amount)
	assert.Equal(t, uint64(40), payouts[1].Amount)
}

func TestPlan_RemainderToLast(t *testing.T) {
	tests := []struct {
		name     string
		percents []uint8
		amount   uint64
		want     []uint64
	}{
		{"60/40 over 101", []uint8{60, 40}, 101, []uint64{60, 41}},
		{"60/40 over 99", []uint8{60, 40}, 99, []uint64{59, 40}},
		{"three way over 100", []uint8{33, 33, 34}, 100, []uint64{33, 33, 34}},
		{"three way over 10", []uint8{33, 33, 34}, 10, []uint64{3, 3, 4}},
		{"single recipient", []uint8{100}, 7, []uint64{7}},
		{"tiny amount", []uint8{60, 40}, 1, []uint64{0, 1}},
		{"zero amount", []uint8{60, 40}, 0, []uint64{0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := configured(t, tt.percents...)
			payouts, err := r.Plan(tt.amount)
			require.NoError(t, err)
			require.Len(t, payouts, len(tt.want))

			var total uint64
			for i, p := range payouts {
				assert.Equal(t, tt.want[i], p.Amount, "payout %d", i)
				total += p.Amount
			}
			assert.Equal(t, tt.amount, total, "payouts must partition the amount exactly")
		})
	}
}

func TestPlan_Empty(t *testing.T) {
	r := NewRegistry()
	_, err := r.Plan(100)
	assert.ErrorIs(t, err, ErrNoSplitsDefined)
}

func TestPlan_AmountTooLarge(t *testing.T) {
	r := configured(t, 100)
	_, err := r.Plan(1 << 63)
	assert.ErrorIs(t, err, ErrAmountTooLarge)
}

func TestDistribute_PaysInOrder(t *testing.T) {
	r := configured(t, 60, 40)

	var got []Payout
	err := r.Distribute(100, func(p Payout) error {
		got = append(got, p)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, addr(0x01), got[0].Address)
	assert.Equal(t, uint64(60), got[0].Amount)
	assert.Equal(t, addr(0x02), got[1].Address)
	assert.Equal(t, uint64(40), got[1].Amount)
}

func TestDistribute_AbortsOnPayError(t *testing.T) {
	r := configured(t, 50, 30, 20)

	refuse := errors.New("recipient refused")
	var paid int
	err := r.Distribute(100, func(p Payout) error {
		if paid == 1 {
			return refuse
		}
		paid++
		return nil
	})
	assert.ErrorIs(t, err, refuse)
	assert.Equal(t, 1, paid)
}

// --- Serialization tests ---

func TestSerializeRegistry_RoundTrip(t *testing.T) {
	r := configured(t, 60, 40)
	r.Lock()

	data := SerializeRegistry(r)
	assert.Len(t, data, 4+21*2+1)

	decoded, err := DeserializeRegistry(data)
	require.NoError(t, err)
	assert.Equal(t, r.Entries(), decoded.Entries())
	assert.True(t, decoded.Locked())
}

func TestSerializeRegistry_Empty(t *testing.T) {
	r := NewRegistry()
	data := SerializeRegistry(r)

	decoded, err := DeserializeRegistry(data)
	require.NoError(t, err)
	assert.Equal(t, 0, decoded.Len())
	assert.False(t, decoded.Locked())
}

func TestDeserializeRegistry_Malformed(t *testing.T) {
	_, err := DeserializeRegistry([]byte{0x01, 0x02})
	assert.ErrorIs(t, err, ErrInvalidRegistryData)

	// Header claims more entries than the data holds.
	r := configured(t, 100)
	data := SerializeRegistry(r)
	data[3] = 5
	_, err = DeserializeRegistry(data)
	assert.ErrorIs(t, err, ErrInvalidRegistryData)
}

func TestDeserializeRegistry_InvalidEntries(t *testing.T) {
	// Well-framed registries with contents Set would reject must not load
	// either; a tampered store cannot smuggle in a broken configuration.
	tests := []struct {
		name   string
		mutate func(data []byte)
	}{
		{
			name:   "sum_below_100",
			mutate: func(data []byte) { data[4+20] = 59 },
		},
		{
			name:   "zero_percent",
			mutate: func(data []byte) { data[4+20] = 0 },
		},
		{
			name:   "percent_above_100",
			mutate: func(data []byte) { data[4+20] = 101 },
		},
		{
			name: "zero_address",
			mutate: func(data []byte) {
				for i := 4; i < 4+20; i++ {
					data[i] = 0
				}
			},
		},
		{
			name: "duplicate_recipient",
			mutate: func(data []byte) {
				copy(data[4+21:4+21+20], data[4:4+20])
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			data := SerializeRegistry(configured(t, 60, 40))
			tc.mutate(data)
			_, err := DeserializeRegistry(data)
			assert.ErrorIs(t, err, ErrInvalidRegistryData)
		})
	}
}
