package fleet

import (
	"github.com/nikmy/fleetsync/internal/shape"
	"github.com/nikmy/fleetsync/internal/validate"
)

// Kind names a collection. It is the URL segment of the admin API and the
// key of the collections config.
type Kind string

const (
	KindVehicles    Kind = "vehicles"
	KindDrivers     Kind = "drivers"
	KindInvestors   Kind = "investors"
	KindPayments    Kind = "payments"
	KindMaintenance Kind = "maintenance"
	KindCardex      Kind = "cardex"
	KindDiscounts   Kind = "discounts"
	KindSettlements Kind = "settlements"
	KindSettings    Kind = "settings"
)

// Kinds in registration order.
var Kinds = []Kind{
	KindVehicles,
	KindDrivers,
	KindInvestors,
	KindPayments,
	KindMaintenance,
	KindCardex,
	KindDiscounts,
	KindSettlements,
	KindSettings,
}

func (k Kind) StorageKey() string {
	return "fleet_" + string(k)
}

func (k Kind) Table() string {
	switch k {
	case KindCardex:
		return "cardex_items"
	case KindSettings:
		return "system_settings"
	default:
		return string(k)
	}
}

const dateTag = "omitempty,datetime=" + DateLayout

var (
	vehicleShape = shape.NewMapping(map[string]string{
		"investorId":      "investor_id",
		"driverId":        "driver_id",
		"purchaseDate":    "purchase_date",
		"purchasePrice":   "purchase_price",
		"insuranceExpiry": "insurance_expiry",
	}, "maintenance")

	vehicleRules = validate.All(
		validate.NewRules(
			validate.Rule{Field: "plate", Label: "Plate", Tag: "required,max=15"},
			validate.Rule{Field: "brand", Label: "Brand", Tag: "required"},
			validate.Rule{Field: "model", Label: "Model", Tag: "required"},
			validate.Rule{Field: "year", Label: "Year", Tag: "gte=1950,lte=2100"},
			validate.Rule{Field: "vin", Label: "VIN", Tag: "omitempty,alphanum,len=17"},
			validate.Rule{Field: "status", Label: "Status", Tag: "omitempty,oneof=available assigned maintenance inactive"},
			validate.Rule{Field: "purchaseDate", Label: "Purchase date", Tag: dateTag},
			validate.Rule{Field: "purchasePrice", Label: "Purchase price", Tag: "omitempty,gte=0"},
			validate.Rule{Field: "mileage", Label: "Mileage", Tag: "omitempty,gte=0"},
			validate.Rule{Field: "insuranceExpiry", Label: "Insurance expiry", Tag: dateTag},
		),
		derived("maintenance", "Maintenance"),
	)
)

var (
	driverShape = shape.NewMapping(map[string]string{
		"documentId":    "document_id",
		"licenseNumber": "license_number",
		"licenseExpiry": "license_expiry",
		"vehicleId":     "vehicle_id",
		"hireDate":      "hire_date",
		"weeklyRent":    "weekly_rent",
	})

	driverRules = validate.NewRules(
		validate.Rule{Field: "name", Label: "Name", Tag: "required"},
		validate.Rule{Field: "documentId", Label: "Document", Tag: "required"},
		validate.Rule{Field: "phone", Label: "Phone", Tag: "omitempty,min=7,max=20"},
		validate.Rule{Field: "email", Label: "Email", Tag: "omitempty,email"},
		validate.Rule{Field: "licenseExpiry", Label: "License expiry", Tag: dateTag},
		validate.Rule{Field: "status", Label: "Status", Tag: "omitempty,oneof=active inactive suspended"},
		validate.Rule{Field: "hireDate", Label: "Hire date", Tag: dateTag},
		validate.Rule{Field: "weeklyRent", Label: "Weekly rent", Tag: "omitempty,gte=0"},
	)
)

var (
	investorShape = shape.NewMapping(map[string]string{
		"documentId":  "document_id",
		"bankName":    "bank_name",
		"bankAccount": "bank_account",
		"joinDate":    "join_date",
	}, "vehicles")

	investorRules = validate.All(
		validate.NewRules(
			validate.Rule{Field: "name", Label: "Name", Tag: "required"},
			validate.Rule{Field: "documentId", Label: "Document", Tag: "required"},
			validate.Rule{Field: "email", Label: "Email", Tag: "omitempty,email"},
			validate.Rule{Field: "participation", Label: "Participation", Tag: "omitempty,gte=0,lte=100"},
			validate.Rule{Field: "joinDate", Label: "Join date", Tag: dateTag},
			validate.Rule{Field: "status", Label: "Status", Tag: "omitempty,oneof=active inactive"},
		),
		derived("vehicles", "Vehicles"),
	)
)

var (
	paymentShape = shape.NewMapping(map[string]string{
		"driverId":  "driver_id",
		"vehicleId": "vehicle_id",
	})

	paymentRules = validate.NewRules(
		validate.Rule{Field: "driverId", Label: "Driver", Tag: "required"},
		validate.Rule{Field: "amount", Label: "Amount", Tag: "gt=0"},
		validate.Rule{Field: "date", Label: "Date", Tag: "required,datetime=" + DateLayout},
		validate.Rule{Field: "method", Label: "Method", Tag: "omitempty,oneof=cash transfer card other"},
		validate.Rule{Field: "status", Label: "Status", Tag: "omitempty,oneof=pending paid overdue cancelled"},
	)
)

var (
	maintenanceShape = shape.NewMapping(map[string]string{
		"vehicleId":       "vehicle_id",
		"nextServiceDate": "next_service_date",
	})

	maintenanceRules = validate.NewRules(
		validate.Rule{Field: "vehicleId", Label: "Vehicle", Tag: "required"},
		validate.Rule{Field: "type", Label: "Type", Tag: "oneof=preventive corrective inspection"},
		validate.Rule{Field: "description", Label: "Description", Tag: "required"},
		validate.Rule{Field: "date", Label: "Date", Tag: "required,datetime=" + DateLayout},
		validate.Rule{Field: "cost", Label: "Cost", Tag: "omitempty,gte=0"},
		validate.Rule{Field: "mileage", Label: "Mileage", Tag: "omitempty,gte=0"},
		validate.Rule{Field: "status", Label: "Status", Tag: "omitempty,oneof=scheduled in_progress completed"},
		validate.Rule{Field: "nextServiceDate", Label: "Next service date", Tag: dateTag},
	)
)

var cardexShape = shape.NewMapping(map[string]string{
	"unitCost":     "unit_cost",
	"minStock":     "min_stock",
	"lastMovement": "last_movement",
})

var (
	discountShape = shape.NewMapping(map[string]string{
		"driverId":     "driver_id",
		"settlementId": "settlement_id",
	})

	discountRules = validate.NewRules(
		validate.Rule{Field: "driverId", Label: "Driver", Tag: "required"},
		validate.Rule{Field: "amount", Label: "Amount", Tag: "gt=0"},
		validate.Rule{Field: "reason", Label: "Reason", Tag: "required"},
		validate.Rule{Field: "date", Label: "Date", Tag: "required,datetime=" + DateLayout},
	)
)

var (
	settlementShape = shape.NewMapping(map[string]string{
		"investorId":    "investor_id",
		"periodStart":   "period_start",
		"periodEnd":     "period_end",
		"grossIncome":   "gross_income",
		"managementFee": "management_fee",
		"netAmount":     "net_amount",
		"paidAt":        "paid_at",
	})

	settlementRules = validate.All(
		validate.NewRules(
			validate.Rule{Field: "investorId", Label: "Investor", Tag: "required"},
			validate.Rule{Field: "periodStart", Label: "Period start", Tag: "required,datetime=" + DateLayout},
			validate.Rule{Field: "periodEnd", Label: "Period end", Tag: "required,datetime=" + DateLayout},
			validate.Rule{Field: "grossIncome", Label: "Gross income", Tag: "gte=0"},
			validate.Rule{Field: "expenses", Label: "Expenses", Tag: "gte=0"},
			validate.Rule{Field: "managementFee", Label: "Management fee", Tag: "gte=0"},
			validate.Rule{Field: "status", Label: "Status", Tag: "omitempty,oneof=pending paid"},
		),
		validate.Func(periodOrder),
	)
)

var settingsShape = shape.NewMapping(map[string]string{
	"companyName":          "company_name",
	"managementFeePercent": "management_fee_percent",
	"defaultWeeklyRent":    "default_weekly_rent",
	"lateFeePercent":       "late_fee_percent",
	"paymentDueDay":        "payment_due_day",
})
