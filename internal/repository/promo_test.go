package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-promo/testing/suite"
)

func TestPromoRepository_Save(t *testing.T) {
	ctx, st := suite.New(t)

	promoRepo := NewPromoRepository(st.Storage)

	// When: a code is saved with a ttl
	err := promoRepo.Save(ctx, "12345", time.Hour)

	// Then: it is stored with that ttl
	require.NoError(t, err)

	ttl, err := st.Storage.TTL(ctx, "promo:12345").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Hour)
}

func TestPromoRepository_Exists(t *testing.T) {
	t.Run("Exists_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		promoRepo := NewPromoRepository(st.Storage)

		// Given: a saved code
		require.NoError(t, promoRepo.Save(ctx, "12345", time.Hour))

		// When: checking the code
		exists, err := promoRepo.Exists(ctx, "12345")

		// Then: it is found
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("Exists_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		promoRepo := NewPromoRepository(st.Storage)

		// When: checking a code that was never issued
		exists, err := promoRepo.Exists(ctx, "99999")

		// Then: it is not found
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("Exists_Expired", func(t *testing.T) {
		ctx, st := suite.New(t)

		promoRepo := NewPromoRepository(st.Storage)

		// Given: a code that lives for a moment only
		require.NoError(t, promoRepo.Save(ctx, "12345", 50*time.Millisecond))

		// When: the ttl has passed
		// Then: the code is gone
		assert.Eventually(t, func() bool {
			exists, err := promoRepo.Exists(ctx, "12345")
			return err == nil && !exists
		}, 5*time.Second, 50*time.Millisecond)
	})
}
