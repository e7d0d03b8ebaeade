package models_test

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/towerledger/backend/internal/models"
	"github.com/towerledger/backend/internal/types"
)

func (suite *TestSuiteStandard) TestUpsertMonthClose() {
	month := types.NewMonth(2025, 10)

	first := models.MonthClose{Month: month, ClosingBalance: decimal.NewFromInt(100), ComputedAt: time.Now()}
	suite.Require().Nil(models.UpsertMonthClose(models.DB, &first))

	second := models.MonthClose{Month: month, ClosingBalance: decimal.NewFromInt(250), ComputedAt: time.Now()}
	suite.Require().Nil(models.UpsertMonthClose(models.DB, &second))

	suite.Assert().Equal(first.ID, second.ID, "the snapshot must be overwritten, not duplicated")
	suite.Assert().True(decimal.NewFromInt(250).Equal(second.ClosingBalance))

	var count int64
	suite.Require().Nil(models.DB.Model(&models.MonthClose{}).Where("month = ?", month).Count(&count).Error)
	suite.Assert().Equal(int64(1), count)
}

func (suite *TestSuiteStandard) TestExportRegistry() {
	suite.createTestFlat(models.Flat{FlatNumber: "C-9"})

	for _, model := range models.Registry {
		b, err := model.Export(models.DB)
		suite.Require().Nil(err)
		suite.Assert().NotEmpty(b)
	}
}
