package staff

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayType enum
type PayType string

const (
	PayTypeHourly  PayType = "HOURLY"
	PayTypeMonthly PayType = "MONTHLY"
)

// Status enum
type Status string

const (
	StatusActive     Status = "ACTIVE"
	StatusInactive   Status = "INACTIVE"
	StatusTerminated Status = "TERMINATED"
)

// Staff is owned by the staff-management service; the payroll engine only
// reads it. PayRate is per hour for HOURLY staff and per month for MONTHLY.
type Staff struct {
	ID             string
	CanteenID      string
	Name           string
	Role           string
	Phone          *string
	NICNumber      *string
	EmploymentType string
	PayType        PayType
	PayRate        *decimal.Decimal
	BankName       *string
	AccountNumber  *string
	BankBranch     *string
	JoinDate       *time.Time
	Status         Status
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
