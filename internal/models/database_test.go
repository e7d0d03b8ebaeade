package models_test

import (
	"github.com/google/uuid"
	"github.com/towerledger/backend/internal/models"
)

func (suite *TestSuiteStandard) TestNotFoundMessage() {
	tests := []struct {
		model any
		want  string
	}{
		{&models.Flat{}, "there is no flat matching your query"},
		{&models.Salary{}, "there is no salary matching your query"},
		{&models.MiscellaneousExpense{}, "there is no miscellaneous expense matching your query"},
		{&models.MonthClose{}, "there is no month close matching your query"},
	}

	for _, tt := range tests {
		err := models.DB.First(tt.model, "id = ?", uuid.New()).Error
		suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
		suite.Assert().Equal(tt.want, err.Error())
	}
}

func (suite *TestSuiteStandard) TestClosedDatabaseIsGeneralError() {
	suite.CloseDB()

	err := models.DB.First(&models.Flat{}).Error
	suite.Assert().ErrorIs(err, models.ErrGeneral)
}

func (suite *TestSuiteStandard) TestReferenceMissing() {
	err := models.DB.Create(&models.Maintenance{FlatID: uuid.New()}).Error
	suite.Assert().ErrorIs(err, models.ErrReferenceMissing)
}

func (suite *TestSuiteStandard) TestAdminUsernameUnique() {
	suite.Require().Nil(models.DB.Create(&models.Admin{Username: "manager", PasswordHash: "x"}).Error)

	err := models.DB.Create(&models.Admin{Username: "manager", PasswordHash: "y"}).Error
	suite.Assert().ErrorIs(err, models.ErrAdminUsernameNotUnique)
}
