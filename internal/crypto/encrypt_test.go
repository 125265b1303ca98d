package crypto

import (
	"bytes"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEncryptor(t *testing.T) *AESEncryptor {
	t.Helper()
	key, err := GenerateKey()
	require.NoError(t, err)
	enc, err := NewAESEncryptor(key)
	require.NoError(t, err)
	return enc
}

func TestAESEncryptor_SessionRecordRoundTrip(t *testing.T) {
	enc := newTestEncryptor(t)
	record := []byte(`{"token":"user:u1","user":{"id":"u1","role":"user"}}`)

	sealed, err := enc.Encrypt(record)
	require.NoError(t, err)
	assert.NotContains(t, string(sealed), "user:u1")

	// The sealed form is stored as text, so it must be valid base64.
	_, err = base64.StdEncoding.DecodeString(string(sealed))
	require.NoError(t, err)

	opened, err := enc.Decrypt(sealed)
	require.NoError(t, err)
	assert.Equal(t, record, opened)
}

func TestAESEncryptor_FreshNonceEachTime(t *testing.T) {
	enc := newTestEncryptor(t)

	a, err := enc.Encrypt([]byte("same"))
	require.NoError(t, err)
	b, err := enc.Encrypt([]byte("same"))
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestAESEncryptor_DecryptFailures(t *testing.T) {
	enc := newTestEncryptor(t)
	sealed, err := enc.Encrypt([]byte(`{"token":"admin:a1"}`))
	require.NoError(t, err)

	raw, _ := base64.StdEncoding.DecodeString(string(sealed))
	raw[len(raw)-1] ^= 0xff
	tampered := []byte(base64.StdEncoding.EncodeToString(raw))

	tests := []struct {
		name    string
		input   []byte
		wantErr error
	}{
		{name: "tampered tag", input: tampered},
		{name: "not base64", input: []byte("{plain json}")},
		{name: "shorter than nonce", input: []byte(base64.StdEncoding.EncodeToString([]byte("abc"))), wantErr: ErrCiphertextTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := enc.Decrypt(tt.input)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestAESEncryptor_WrongKeyCannotOpen(t *testing.T) {
	sealed, err := newTestEncryptor(t).Encrypt([]byte("secret"))
	require.NoError(t, err)

	_, err = newTestEncryptor(t).Decrypt(sealed)
	assert.Error(t, err)
}

func TestNewAESEncryptor_KeySize(t *testing.T) {
	for _, size := range []int{0, 16, 24, 33} {
		_, err := NewAESEncryptor(make([]byte, size))
		assert.ErrorIs(t, err, ErrInvalidKeySize, "size %d", size)
	}
}

func TestKeyBase64(t *testing.T) {
	key, err := GenerateKey()
	require.NoError(t, err)

	decoded, err := DecodeKeyBase64(EncodeKeyBase64(key))
	require.NoError(t, err)
	assert.True(t, bytes.Equal(key, decoded))

	_, err = DecodeKeyBase64(EncodeKeyBase64(make([]byte, 16)))
	assert.Error(t, err)

	_, err = DecodeKeyBase64("not-valid-base64!!!")
	assert.Error(t, err)
}
