package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestHasher(t *testing.T) *Hasher {
	t.Helper()
	h, err := NewHasher(bcrypt.MinCost)
	require.NoError(t, err)
	return h
}

func TestNewHasher(t *testing.T) {
	tests := []struct {
		name    string
		cost    int
		wantErr bool
	}{
		{name: "min cost", cost: bcrypt.MinCost},
		{name: "default cost", cost: DefaultCost},
		{name: "max cost", cost: bcrypt.MaxCost},
		{name: "too low", cost: bcrypt.MinCost - 1, wantErr: true},
		{name: "too high", cost: bcrypt.MaxCost + 1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := NewHasher(tt.cost)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, h)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.cost, h.Cost())
		})
	}
}

func TestHash_SaltedAndVerifiable(t *testing.T) {
	h := newTestHasher(t)

	passwords := []string{"password123", "p@ssw0rd!@#$%^&*()", "zażółć gęślą jaźń", "short"}
	for _, p := range passwords {
		t.Run(p, func(t *testing.T) {
			first, err := h.Hash(p)
			require.NoError(t, err)
			second, err := h.Hash(p)
			require.NoError(t, err)

			assert.NotEqual(t, first, second)

			ok, err := h.Verify(p, first)
			require.NoError(t, err)
			assert.True(t, ok)

			ok, err = h.Verify(p, second)
			require.NoError(t, err)
			assert.True(t, ok)
		})
	}
}

func TestVerify(t *testing.T) {
	h := newTestHasher(t)
	hash, err := h.Hash("correct_password")
	require.NoError(t, err)

	tests := []struct {
		name    string
		plain   string
		hash    string
		want    bool
		wantErr bool
	}{
		{name: "match", plain: "correct_password", hash: hash, want: true},
		{name: "mismatch", plain: "wrong_password", hash: hash, want: false},
		{name: "empty password", plain: "", hash: hash, want: false},
		{name: "malformed hash", plain: "correct_password", hash: "not-a-bcrypt-hash", wantErr: true},
		{name: "empty hash", plain: "correct_password", hash: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := h.Verify(tt.plain, tt.hash)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrMalformedHash)
				assert.False(t, ok)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestVerify_HashFromOtherCost(t *testing.T) {
	stored, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost+1)
	require.NoError(t, err)

	ok, err := newTestHasher(t).Verify("secret1", string(stored))
	require.NoError(t, err)
	assert.True(t, ok)
}
