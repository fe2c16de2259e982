package mint

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"go.etcd.io/bbolt"

	"github.com/capmintorg/libcapmint-go/wallet"
)

var (
	bucketContract = []byte("contract")
	bucketRecords  = []byte("records")
	bucketTokens   = []byte("tokens")
	bucketBalances = []byte("balances")

	keyState = []byte("state")
)

// boltHeader is the scalar part of the contract state, gob-encoded under
// the contract bucket. Per-wallet records, token owners, and balances live
// in their own buckets.
type boltHeader struct {
	Params         Params
	Admin          wallet.Address
	ContractAddr   wallet.Address
	MintPaused     bool
	DevMintLocked  bool
	Revealed       bool
	BaseURI        string
	PlaceholderURI string
	Registry       []byte
}

// BoltStore persists contract state in a bbolt database.
type BoltStore struct {
	db *bbolt.DB
}

// Compile-time interface check.
var _ Store = (*BoltStore)(nil)

// OpenBoltStore opens or creates the bbolt database at dbPath.
// The parent directory is created if it does not exist.
func OpenBoltStore(dbPath string) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("mint: create directory: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("mint: open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketContract, bucketRecords, bucketTokens, bucketBalances} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("boltstore: create bucket %q: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("mint: create buckets: %w", err)
	}

	return &BoltStore{db: db}, nil
}

// Close closes the underlying database.
func (s *BoltStore) Close() error { return s.db.Close() }

// idKey encodes a token ID as an 8-byte big-endian key for sorted storage.
func idKey(id uint64) []byte {
	k := make([]byte, 8)
	binary.BigEndian.PutUint64(k, id)
	return k
}

// amountValue encodes a uint64 value big-endian.
func amountValue(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}

// encodeGob serializes a value using gob encoding.
func encodeGob(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decodeGob deserializes gob-encoded data into a value.
func decodeGob(data []byte, v interface{}) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(v)
}

// Save writes a full state snapshot in a single transaction, replacing the
// previous one.
func (s *BoltStore) Save(st *State) error {
	header := boltHeader{
		Params:         st.Params,
		Admin:          st.Admin,
		ContractAddr:   st.ContractAddr,
		MintPaused:     st.MintPaused,
		DevMintLocked:  st.DevMintLocked,
		Revealed:       st.Revealed,
		BaseURI:        st.BaseURI,
		PlaceholderURI: st.PlaceholderURI,
		Registry:       st.Registry,
	}
	headerData, err := encodeGob(&header)
	if err != nil {
		return fmt.Errorf("boltstore: encode state header: %w", err)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.Bucket(bucketContract).Put(keyState, headerData); err != nil {
			return fmt.Errorf("boltstore: put state header: %w", err)
		}

		// Snapshots replace, not merge: rewrite the table buckets.
		for _, name := range [][]byte{bucketRecords, bucketTokens, bucketBalances} {
			if err := tx.DeleteBucket(name); err != nil {
				return fmt.Errorf("boltstore: reset bucket %q: %w", name, err)
			}
			if _, err := tx.CreateBucket(name); err != nil {
				return fmt.Errorf("boltstore: recreate bucket %q: %w", name, err)
			}
		}

		records := tx.Bucket(bucketRecords)
		for addr, n := range st.Minted {
			if err := records.Put(addr[:], amountValue(n)); err != nil {
				return fmt.Errorf("boltstore: put mint record: %w", err)
			}
		}

		tokens := tx.Bucket(bucketTokens)
		for id, owner := range st.Owners {
			if err := tokens.Put(idKey(id), owner[:]); err != nil {
				return fmt.Errorf("boltstore: put token owner: %w", err)
			}
		}

		balances := tx.Bucket(bucketBalances)
		for addr, bal := range st.Balances {
			if err := balances.Put(addr[:], amountValue(bal)); err != nil {
				return fmt.Errorf("boltstore: put balance: %w", err)
			}
		}
		return nil
	})
}

// Load reads the last saved state snapshot.
func (s *BoltStore) Load() (*State, error) {
	st := &State{
		Minted:   make(map[wallet.Address]uint64),
		Owners:   make(map[uint64]wallet.Address),
		Balances: make(map[wallet.Address]uint64),
	}

	err := s.db.View(func(tx *bbolt.Tx) error {
		headerData := tx.Bucket(bucketContract).Get(keyState)
		if headerData == nil {
			return ErrStateNotFound
		}
		var header boltHeader
		if err := decodeGob(headerData, &header); err != nil {
			return fmt.Errorf("boltstore: decode state header: %w", err)
		}
		st.Params = header.Params
		st.Admin = header.Admin
		st.ContractAddr = header.ContractAddr
		st.MintPaused = header.MintPaused
		st.DevMintLocked = header.DevMintLocked
		st.Revealed = header.Revealed
		st.BaseURI = header.BaseURI
		st.PlaceholderURI = header.PlaceholderURI
		st.Registry = append([]byte(nil), header.Registry...)

		err := tx.Bucket(bucketRecords).ForEach(func(k, v []byte) error {
			addr, err := wallet.AddressFromBytes(k)
			if err != nil {
				return fmt.Errorf("boltstore: mint record key: %w", err)
			}
			st.Minted[addr] = binary.BigEndian.Uint64(v)
			return nil
		})
		if err != nil {
			return err
		}

		err = tx.Bucket(bucketTokens).ForEach(func(k, v []byte) error {
			owner, err := wallet.AddressFromBytes(v)
			if err != nil {
				return fmt.Errorf("boltstore: token owner value: %w", err)
			}
			st.Owners[binary.BigEndian.Uint64(k)] = owner
			return nil
		})
		if err != nil {
			return err
		}

		return tx.Bucket(bucketBalances).ForEach(func(k, v []byte) error {
			addr, err := wallet.AddressFromBytes(k)
			if err != nil {
				return fmt.Errorf("boltstore: balance key: %w", err)
			}
			st.Balances[addr] = binary.BigEndian.Uint64(v)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return st, nil
}
