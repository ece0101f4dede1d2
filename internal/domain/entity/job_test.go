package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/Badkirked/quoteforge/internal/domain/entity"
)

func TestJob_GSTYTotal(t *testing.T) {
	job := &entity.Job{Price: decimal.NewFromInt(1000)}

	assert.Equal(t, "100", job.GST().String(), "el GST es el 10% del precio sin impuesto")
	assert.Equal(t, "1100", job.PriceIncGST().String())
}

func TestJob_GSTConCentavos(t *testing.T) {
	job := &entity.Job{Price: decimal.RequireFromString("1234.50")}

	assert.Equal(t, "123.45", job.GST().String())
	assert.Equal(t, "1357.95", job.PriceIncGST().String())
}

func TestJob_CostosYGananciaBruta(t *testing.T) {
	job := &entity.Job{Price: decimal.NewFromInt(1000)}
	materials := []*entity.Material{
		{Category: entity.CategoryLabour, Cost: decimal.NewFromInt(300)},
		{Category: entity.CategoryMaterials, Cost: decimal.RequireFromString("150.50")},
		{Category: entity.CategoryFreight, Cost: decimal.NewFromInt(49)},
	}

	assert.Equal(t, "499.5", job.TotalCOGS(materials).String())
	assert.Equal(t, "500.5", job.GrossProfit(materials).String())
}

func TestJob_GananciaSinMateriales(t *testing.T) {
	job := &entity.Job{Price: decimal.NewFromInt(800)}
	assert.Equal(t, "800", job.GrossProfit(nil).String(), "sin materiales la ganancia bruta es el precio")
}

func TestValidStatus(t *testing.T) {
	for _, s := range []string{
		entity.StatusQuoted,
		entity.StatusDepositPaid,
		entity.StatusInProgress,
		entity.StatusCompleted,
		entity.StatusCancelled,
	} {
		assert.True(t, entity.ValidStatus(s), "%q es un estado conocido", s)
	}
	assert.False(t, entity.ValidStatus("archived"))
	assert.False(t, entity.ValidStatus(""))
}
