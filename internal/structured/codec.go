package structured

import "github.com/roach88/xmeta/internal/attrerr"

// Store is the byte channel structured values travel over; *xattr.Store
// satisfies it.
type Store interface {
	GetRaw(ref, key string) ([]byte, error)
	SetRaw(ref, key string, data []byte) error
	RemoveRaw(ref, key string) error
}

// Set stores v under key. A nil v removes the attribute.
func Set(s Store, ref, key string, v Value) error {
	if v == nil {
		return s.RemoveRaw(ref, key)
	}
	data, err := Marshal(v)
	if err != nil {
		return attrerr.EncodeFailure(ref, key, err)
	}
	return s.SetRaw(ref, key, data)
}

// Get reads the value under key. A missing attribute returns (nil, nil);
// other read failures are returned unchanged. Bytes that are not a valid
// envelope fail with a decode-failure.
func Get(s Store, ref, key string) (Value, error) {
	data, err := s.GetRaw(ref, key)
	if attrerr.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	v, err := Unmarshal(data)
	if err != nil {
		return nil, attrerr.DecodeFailure(ref, key, err)
	}
	return v, nil
}
