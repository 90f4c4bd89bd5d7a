package fixed

import "github.com/roach88/xmeta/internal/attrerr"

// RawStore is the byte channel fixed values travel over; *xattr.Store
// satisfies it.
type RawStore interface {
	GetRaw(ref, key string) ([]byte, error)
	SetRaw(ref, key string, data []byte) error
}

// Set encodes v with layout l and stores it under key.
func Set[T any](s RawStore, ref, key string, l Layout[T], v T) error {
	return s.SetRaw(ref, key, l.Encode(v))
}

// Get reads key and decodes it with layout l. An absent key is a
// read-failure; a blob whose length differs from l.Size is a size-mismatch.
func Get[T any](s RawStore, ref, key string, l Layout[T]) (T, error) {
	var zero T
	data, err := s.GetRaw(ref, key)
	if err != nil {
		return zero, err
	}
	v, ok := l.Decode(data)
	if !ok {
		return zero, attrerr.SizeMismatch(ref, key, l.name, l.size, len(data))
	}
	return v, nil
}

// SetText parses text with c and stores the encoded bytes under key.
func SetText(s RawStore, ref, key string, c Codec, text string) error {
	data, err := c.EncodeText(text)
	if err != nil {
		return attrerr.EncodeFailure(ref, key, err)
	}
	return s.SetRaw(ref, key, data)
}

// GetText reads key and formats it with c.
func GetText(s RawStore, ref, key string, c Codec) (string, error) {
	data, err := s.GetRaw(ref, key)
	if err != nil {
		return "", err
	}
	text, ok := c.DecodeText(data)
	if !ok {
		return "", attrerr.SizeMismatch(ref, key, c.Name(), c.Size(), len(data))
	}
	return text, nil
}
