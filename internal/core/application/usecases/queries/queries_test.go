package queries_test

import (
	"testing"

	"pricing/internal/core/application/usecases/queries"
	"pricing/internal/core/domain/model/kernel"
	"pricing/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetProductPriceQuery(t *testing.T) {
	query, err := queries.NewGetProductPriceQuery("sku-1")
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Equal(t, "sku-1", query.ProductID())

	_, err = queries.NewGetProductPriceQuery("")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNewGetProductDemandQuery(t *testing.T) {
	query, err := queries.NewGetProductDemandQuery("sku-1")
	require.NoError(t, err)
	require.NoError(t, query.Validate())

	_, err = queries.NewGetProductDemandQuery(" ")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNewGetOrderQuery(t *testing.T) {
	id := kernel.NewUUID()
	query, err := queries.NewGetOrderQuery(id)
	require.NoError(t, err)
	assert.Equal(t, id, query.OrderID())

	_, err = queries.NewGetOrderQuery(kernel.UUID{})
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestQueries_NotConstructedViaConstructor(t *testing.T) {
	assert.ErrorIs(t, queries.GetProductPriceQuery{}.Validate(), queries.ErrGetProductPriceQueryIsNotConstructed)
	assert.ErrorIs(t, queries.GetProductDemandQuery{}.Validate(), queries.ErrGetProductDemandQueryIsNotConstructed)
	assert.ErrorIs(t, queries.GetOrderQuery{}.Validate(), queries.ErrGetOrderQueryIsNotConstructed)
}
