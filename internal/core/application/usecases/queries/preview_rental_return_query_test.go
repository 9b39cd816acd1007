package queries_test

import (
	"testing"

	"bookrider/internal/core/application/usecases/queries"
	"bookrider/internal/core/domain/model/kernel"
	"bookrider/internal/core/domain/model/rental"
	"bookrider/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func returnItems(t *testing.T) []rental.ReturnItem {
	t.Helper()
	item, err := rental.NewReturnItem(kernel.NewUUID(), 2)
	require.NoError(t, err)
	return []rental.ReturnItem{item}
}

func TestNewPreviewRentalReturnQuery_Valid(t *testing.T) {
	items := returnItems(t)

	query, err := queries.NewPreviewRentalReturnQuery("user-1", items, true)
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Equal(t, "user-1", query.UserID())
	assert.Equal(t, items, query.Items())
	assert.True(t, query.InPerson())
}

func TestNewPreviewRentalReturnQuery_EmptyUserID(t *testing.T) {
	_, err := queries.NewPreviewRentalReturnQuery("", returnItems(t), false)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNewPreviewRentalReturnQuery_EmptyItems(t *testing.T) {
	_, err := queries.NewPreviewRentalReturnQuery("user-1", nil, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestPreviewRentalReturnQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.PreviewRentalReturnQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrPreviewRentalReturnQueryIsNotConstructed)
}
