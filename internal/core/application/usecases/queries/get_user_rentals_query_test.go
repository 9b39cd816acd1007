package queries_test

import (
	"testing"

	"bookrider/internal/core/application/usecases/queries"
	"bookrider/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetUserRentalsQuery_Valid(t *testing.T) {
	query, err := queries.NewGetUserRentalsQuery("user-1")
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Equal(t, "user-1", query.UserID())
}

func TestNewGetUserRentalsQuery_EmptyUserID(t *testing.T) {
	_, err := queries.NewGetUserRentalsQuery("")
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestGetUserRentalsQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetUserRentalsQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetUserRentalsQueryIsNotConstructed)
}
