package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/towerledger/backend/internal/models"
)

func RegisterFlatRoutes(r *gin.RouterGroup, co Controller) {
	registerCRUD[models.Flat](r, co)
}

func RegisterShopRoutes(r *gin.RouterGroup, co Controller) {
	registerCRUD[models.Shop](r, co)
}

func RegisterEmployeeRoutes(r *gin.RouterGroup, co Controller) {
	registerCRUD[models.Employee](r, co)
}

func RegisterMaintenanceRoutes(r *gin.RouterGroup, co Controller) {
	registerCRUD[models.Maintenance](r, co)
}

func RegisterShopMaintenanceRoutes(r *gin.RouterGroup, co Controller) {
	registerCRUD[models.ShopMaintenance](r, co)
}

func RegisterSalaryRoutes(r *gin.RouterGroup, co Controller) {
	registerCRUD[models.Salary](r, co)
}

func RegisterCustomHeaderRoutes(r *gin.RouterGroup, co Controller) {
	registerCRUD[models.CustomHeader](r, co)
}

func RegisterSubHeaderRoutes(r *gin.RouterGroup, co Controller) {
	registerCRUD[models.SubHeader](r, co)
}

func RegisterCustomHeaderRecordRoutes(r *gin.RouterGroup, co Controller) {
	registerCRUD[models.CustomHeaderRecord](r, co)
}

func RegisterLoanRoutes(r *gin.RouterGroup, co Controller) {
	registerCRUD[models.Loan](r, co)
}

// RegisterMiscellaneousExpenseRoutes registers the CRUD routes and the payment route.
func RegisterMiscellaneousExpenseRoutes(r *gin.RouterGroup, co Controller) {
	registerCRUD[models.MiscellaneousExpense](r, co)
	r.POST("/:id/pay", co.PayMiscellaneousExpense)
}

// RegisterElectricityBillRoutes registers the CRUD routes and the payment route.
func RegisterElectricityBillRoutes(r *gin.RouterGroup, co Controller) {
	registerCRUD[models.ElectricityBill](r, co)
	r.POST("/:id/pay", co.PayElectricityBill)
}

// RegisterEventRoutes registers the CRUD routes and the collection route.
func RegisterEventRoutes(r *gin.RouterGroup, co Controller) {
	registerCRUD[models.Event](r, co)
	r.POST("/:id/receive", co.ReceiveEvent)
}
