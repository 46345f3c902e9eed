package testutil

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/contactlens/internal/store"
)

func TestFixedTokenGenerator(t *testing.T) {
	gen := NewFixedTokenGenerator("sub-123")
	assert.Equal(t, "sub-123", gen.Generate())
	assert.Equal(t, "sub-123", gen.Generate())

	assert.Equal(t, DefaultToken, NewFixedTokenGenerator("").Generate())
}

func TestFixedTokenGenerator_Concurrent(t *testing.T) {
	gen := NewFixedTokenGenerator("shared")
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				assert.Equal(t, "shared", gen.Generate())
			}
		}()
	}
	wg.Wait()
}

func TestNewStore(t *testing.T) {
	s := NewStore(t)
	id, err := s.InsertContact(context.Background(), store.ContactRecord{DisplayName: "Alice"})
	require.NoError(t, err)
	assert.NotZero(t, id)

	Logger(t).Info("store ready", "contact_id", int64(id))
}
