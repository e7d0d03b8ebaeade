package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
	ErrReferenceMissing = errors.New("a resource referenced in your request does not exist")

	ErrAdminUsernameNotUnique = errors.New("the username is already in use")
	ErrMonthCloseNotUnique    = errors.New("a month close for this month already exists")
	ErrManagerEmailNotUnique  = errors.New("a manager with this email already exists")

	ErrUnitLinkInvalid = errors.New("every unit link must reference exactly one of flatId and shopId")

	ErrReceiptKindInvalid = errors.New("the receipt kind must be one of Flat, Shop, Salary, ElectricityBill, MiscellaneousExpense, Events")
	ErrReceiptTypeInvalid = errors.New("the receipt type must be Paid or Received")
	ErrAmountNotPositive  = errors.New("the amount must be greater than zero")
)
