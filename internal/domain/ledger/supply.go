package ledger

import (
	"strings"
	"time"

	"github.com/rml/bookkeeper/internal/domain/shared"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// NormalizeSupplyType canonicalizes a free-form supply type tag for matching.
// Tags are matched case-insensitively.
func NormalizeSupplyType(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// DisplaySupplyType renders a supply type tag in Title Case for output
func DisplaySupplyType(s string) string {
	return titleCaser.String(NormalizeSupplyType(s))
}

// Supply represents stock issued to a seller
type Supply struct {
	shared.BaseEntity `bson:",inline"`
	ProductID         string    `bson:"product_id" json:"product_id"`
	SupplyType        string    `bson:"supply_type" json:"supply_type"`
	Quantity          int       `bson:"quantity" json:"quantity"`
	Date              time.Time `bson:"date" json:"date"`
}

// NewSupply creates a new supply record
func NewSupply(productID, supplyType string, quantity int, date time.Time) (*Supply, error) {
	if productID == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product is required")
	}
	if strings.TrimSpace(supplyType) == "" {
		return nil, shared.NewDomainError("INVALID_SUPPLY_TYPE", "Supply type cannot be empty")
	}
	if quantity < 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}
	if date.IsZero() {
		date = time.Now()
	}
	return &Supply{
		BaseEntity: shared.NewBaseEntity(),
		ProductID:  productID,
		SupplyType: supplyType,
		Quantity:   quantity,
		Date:       date,
	}, nil
}
