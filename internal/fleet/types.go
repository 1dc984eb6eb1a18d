package fleet

// Dates are calendar dates in DateLayout, timestamps are RFC 3339.
const DateLayout = "2006-01-02"

type Vehicle struct {
	ID              string  `json:"id"`
	Plate           string  `json:"plate"`
	Brand           string  `json:"brand"`
	Model           string  `json:"model"`
	Year            int     `json:"year"`
	Color           string  `json:"color,omitempty"`
	VIN             string  `json:"vin,omitempty"`
	Status          string  `json:"status,omitempty"`
	InvestorID      string  `json:"investorId,omitempty"`
	DriverID        string  `json:"driverId,omitempty"`
	PurchaseDate    string  `json:"purchaseDate,omitempty"`
	PurchasePrice   float64 `json:"purchasePrice,omitempty"`
	Mileage         int     `json:"mileage,omitempty"`
	InsuranceExpiry string  `json:"insuranceExpiry,omitempty"`
	Notes           string  `json:"notes,omitempty"`

	// Maintenance is derived from the maintenance collection and never stored
	// remotely.
	Maintenance []Maintenance `json:"maintenance,omitempty"`
}

func (v Vehicle) GetID() string { return v.ID }

type Driver struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	DocumentID    string  `json:"documentId"`
	Phone         string  `json:"phone,omitempty"`
	Email         string  `json:"email,omitempty"`
	LicenseNumber string  `json:"licenseNumber,omitempty"`
	LicenseExpiry string  `json:"licenseExpiry,omitempty"`
	Address       string  `json:"address,omitempty"`
	VehicleID     string  `json:"vehicleId,omitempty"`
	Status        string  `json:"status,omitempty"`
	HireDate      string  `json:"hireDate,omitempty"`
	WeeklyRent    float64 `json:"weeklyRent,omitempty"`
}

func (d Driver) GetID() string { return d.ID }

type Investor struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	DocumentID    string  `json:"documentId"`
	Phone         string  `json:"phone,omitempty"`
	Email         string  `json:"email,omitempty"`
	BankName      string  `json:"bankName,omitempty"`
	BankAccount   string  `json:"bankAccount,omitempty"`
	Participation float64 `json:"participation,omitempty"`
	JoinDate      string  `json:"joinDate,omitempty"`
	Status        string  `json:"status,omitempty"`

	// Vehicles lists the ids of the vehicles owned by the investor. Derived,
	// never stored remotely.
	Vehicles []string `json:"vehicles,omitempty"`
}

func (i Investor) GetID() string { return i.ID }

type Payment struct {
	ID        string  `json:"id"`
	DriverID  string  `json:"driverId"`
	VehicleID string  `json:"vehicleId,omitempty"`
	Amount    float64 `json:"amount"`
	Date      string  `json:"date"`
	Method    string  `json:"method,omitempty"`
	Status    string  `json:"status,omitempty"`
	Concept   string  `json:"concept,omitempty"`
	Reference string  `json:"reference,omitempty"`
	Notes     string  `json:"notes,omitempty"`
}

func (p Payment) GetID() string { return p.ID }

type Maintenance struct {
	ID              string  `json:"id"`
	VehicleID       string  `json:"vehicleId"`
	Type            string  `json:"type"`
	Description     string  `json:"description"`
	Date            string  `json:"date"`
	Cost            float64 `json:"cost,omitempty"`
	Mileage         int     `json:"mileage,omitempty"`
	Workshop        string  `json:"workshop,omitempty"`
	Status          string  `json:"status,omitempty"`
	NextServiceDate string  `json:"nextServiceDate,omitempty"`
}

func (m Maintenance) GetID() string { return m.ID }

// CardexItem is a spare part or consumable kept in stock.
type CardexItem struct {
	ID           string  `json:"id"`
	Code         string  `json:"code"`
	Name         string  `json:"name"`
	Category     string  `json:"category,omitempty"`
	Quantity     int     `json:"quantity"`
	UnitCost     float64 `json:"unitCost,omitempty"`
	Location     string  `json:"location,omitempty"`
	MinStock     int     `json:"minStock,omitempty"`
	LastMovement string  `json:"lastMovement,omitempty"`
}

func (c CardexItem) GetID() string { return c.ID }

type Discount struct {
	ID           string  `json:"id"`
	DriverID     string  `json:"driverId"`
	Amount       float64 `json:"amount"`
	Reason       string  `json:"reason"`
	Date         string  `json:"date"`
	Applied      bool    `json:"applied"`
	SettlementID string  `json:"settlementId,omitempty"`
}

func (d Discount) GetID() string { return d.ID }

type Settlement struct {
	ID            string  `json:"id"`
	InvestorID    string  `json:"investorId"`
	PeriodStart   string  `json:"periodStart"`
	PeriodEnd     string  `json:"periodEnd"`
	GrossIncome   float64 `json:"grossIncome"`
	Expenses      float64 `json:"expenses"`
	ManagementFee float64 `json:"managementFee"`
	NetAmount     float64 `json:"netAmount"`
	Status        string  `json:"status,omitempty"`
	PaidAt        string  `json:"paidAt,omitempty"`
}

func (s Settlement) GetID() string { return s.ID }

type SystemSettings struct {
	ID                   string  `json:"id"`
	CompanyName          string  `json:"companyName,omitempty"`
	Currency             string  `json:"currency,omitempty"`
	ManagementFeePercent float64 `json:"managementFeePercent,omitempty"`
	DefaultWeeklyRent    float64 `json:"defaultWeeklyRent,omitempty"`
	LateFeePercent       float64 `json:"lateFeePercent,omitempty"`
	PaymentDueDay        int     `json:"paymentDueDay,omitempty"`
}

func (s SystemSettings) GetID() string { return s.ID }
