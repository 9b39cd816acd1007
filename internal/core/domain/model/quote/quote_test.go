package quote_test

import (
	"testing"
	"time"

	"bookrider/internal/core/domain/model/kernel"
	"bookrider/internal/core/domain/model/quote"
	"bookrider/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestOption(t *testing.T, costStr, distanceStr string) quote.Option {
	t.Helper()
	option, err := quote.NewOption(
		kernel.NewUUID(), kernel.NewUUID(), "Central Library",
		decimal.RequireFromString(distanceStr), decimal.RequireFromString(costStr))
	require.NoError(t, err)
	return option
}

func TestNewQuote(t *testing.T) {
	t.Run("valid until TTL from now", func(t *testing.T) {
		q, err := quote.NewQuote(
			kernel.NewUUID(), "reader-1", kernel.NewUUID(), "Dune", 2,
			[]quote.Option{newTestOption(t, "12.00", "1.5")}, now)

		require.NoError(t, err)
		assert.Equal(t, now.Add(15*time.Minute), q.ValidUntil())
		require.NoError(t, q.Validate())
	})

	t.Run("no stocking library yields an empty quote, not an error", func(t *testing.T) {
		q, err := quote.NewQuote(
			kernel.NewUUID(), "reader-1", kernel.NewUUID(), "Dune", 1, nil, now)

		require.NoError(t, err)
		assert.Empty(t, q.Options())
	})

	t.Run("options sorted by cost, then distance, then library", func(t *testing.T) {
		cheapFar := newTestOption(t, "12.00", "9.0")
		cheapNear := newTestOption(t, "12.00", "1.0")
		expensive := newTestOption(t, "20.40", "0.5")

		q, err := quote.NewQuote(
			kernel.NewUUID(), "reader-1", kernel.NewUUID(), "Dune", 1,
			[]quote.Option{expensive, cheapFar, cheapNear}, now)

		require.NoError(t, err)
		options := q.Options()
		require.Len(t, options, 3)
		assert.True(t, options[0].ID().IsEqual(cheapNear.ID()))
		assert.True(t, options[1].ID().IsEqual(cheapFar.ID()))
		assert.True(t, options[2].ID().IsEqual(expensive.ID()))
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		_, err := quote.NewQuote(
			kernel.NewUUID(), "reader-1", kernel.NewUUID(), "Dune", 0, nil, now)
		require.Error(t, err)
	})
}

func TestQuote_OptionByID(t *testing.T) {
	option := newTestOption(t, "12.00", "1.5")
	q, err := quote.NewQuote(
		kernel.NewUUID(), "reader-1", kernel.NewUUID(), "Dune", 1,
		[]quote.Option{option}, now)
	require.NoError(t, err)

	t.Run("finds a live option", func(t *testing.T) {
		found, err := q.OptionByID(option.ID(), now.Add(14*time.Minute))

		require.NoError(t, err)
		assert.True(t, found.ID().IsEqual(option.ID()))
	})

	t.Run("unknown option", func(t *testing.T) {
		_, err := q.OptionByID(kernel.NewUUID(), now)
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("expired quote rejects every option", func(t *testing.T) {
		_, err := q.OptionByID(option.ID(), now.Add(16*time.Minute))
		require.ErrorIs(t, err, quote.ErrQuoteExpired)
	})

	t.Run("expiry is exclusive of the boundary", func(t *testing.T) {
		_, err := q.OptionByID(option.ID(), q.ValidUntil())
		require.NoError(t, err)
	})
}

func TestNewOption(t *testing.T) {
	t.Run("cost is rounded up to cents", func(t *testing.T) {
		option, err := quote.NewOption(
			kernel.NewUUID(), kernel.NewUUID(), "Central Library",
			decimal.RequireFromString("1.5"), decimal.RequireFromString("12.001"))

		require.NoError(t, err)
		assert.True(t, option.TotalDeliveryCost().Equal(decimal.RequireFromString("12.01")))
	})

	t.Run("negative distance is rejected", func(t *testing.T) {
		_, err := quote.NewOption(
			kernel.NewUUID(), kernel.NewUUID(), "Central Library",
			decimal.RequireFromString("-1"), decimal.RequireFromString("12.00"))
		require.Error(t, err)
	})
}
