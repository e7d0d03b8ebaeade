package models_test

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/towerledger/backend/internal/models"
)

func (suite *TestSuiteStandard) TestResolveReceiptSubject() {
	flat := suite.createTestFlat(models.Flat{FlatNumber: "A-1"})
	event := suite.createTestEvent(models.Event{GivenFrom: "A-1", Title: "Eid", Amount: decimal.NewFromInt(500)})

	subject, err := models.ResolveReceiptSubject(models.DB, models.ReceiptFlat, flat.ID)
	suite.Require().Nil(err)
	suite.Assert().Equal(flat.ID, subject.(*models.Flat).ID)

	subject, err = models.ResolveReceiptSubject(models.DB, models.ReceiptEvents, event.ID)
	suite.Require().Nil(err)
	suite.Assert().Equal("Eid", subject.(*models.Event).Title)

	// The ID exists, but not for this kind
	_, err = models.ResolveReceiptSubject(models.DB, models.ReceiptShop, flat.ID)
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)

	_, err = models.ResolveReceiptSubject(models.DB, models.ReceiptKind("Tenant"), uuid.New())
	suite.Assert().ErrorIs(err, models.ErrReceiptKindInvalid)
}

func (suite *TestSuiteStandard) TestReceiptKindValid() {
	for _, kind := range models.ReceiptKinds {
		suite.Assert().True(kind.Valid(), kind)
	}
	suite.Assert().False(models.ReceiptKind("Loan").Valid())

	suite.Assert().True(models.ReceiptReceived.Valid())
	suite.Assert().False(models.ReceiptType("Recieved").Valid())
}

func (suite *TestSuiteStandard) TestCounter() {
	for want := int64(1); want <= 3; want++ {
		got, err := models.NextValue(models.DB, models.ReceiptSerialCounter)
		suite.Require().Nil(err)
		suite.Assert().Equal(want, got)
	}

	suite.Require().Nil(models.SetValue(models.DB, models.ReceiptSerialCounter, 10))

	got, err := models.NextValue(models.DB, models.ReceiptSerialCounter)
	suite.Require().Nil(err)
	suite.Assert().Equal(int64(11), got)

	// Counters are independent
	got, err = models.NextValue(models.DB, "other")
	suite.Require().Nil(err)
	suite.Assert().Equal(int64(1), got)
}

func (suite *TestSuiteStandard) TestReceiptDefaultsCreationDate() {
	r := models.Receipt{Kind: models.ReceiptFlat, SubjectID: uuid.New(), Type: models.ReceiptPaid, Amount: decimal.NewFromInt(1)}
	suite.Require().Nil(models.DB.Create(&r).Error)
	suite.Assert().False(r.DateOfCreation.IsZero())
	suite.Assert().NotEqual(uuid.Nil, r.ID)
}
