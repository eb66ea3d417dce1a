package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// ProductType tags a sale with the kind of fish product sold.
// The defaults below are offered to every owner; owners may use any other
// non-empty tag, which is stored lower-cased.
type ProductType string

const (
	ProductTypeFresh  ProductType = "fresh"
	ProductTypeFrozen ProductType = "frozen"
	ProductTypeSmoked ProductType = "smoked"
	ProductTypeDried  ProductType = "dried"
	ProductTypeSalted ProductType = "salted"
)

// MaxProductTypeLength is the longest tag accepted.
const MaxProductTypeLength = 50

// DefaultProductTypes lists the built-in tags in display order.
func DefaultProductTypes() []ProductType {
	return []ProductType{
		ProductTypeFresh,
		ProductTypeFrozen,
		ProductTypeSmoked,
		ProductTypeDried,
		ProductTypeSalted,
	}
}

// ParseProductType normalizes a raw tag.
func ParseProductType(raw string) (ProductType, error) {
	tag := strings.ToLower(strings.TrimSpace(raw))
	if tag == "" {
		return "", fmt.Errorf("product type is required")
	}
	if len(tag) > MaxProductTypeLength {
		return "", fmt.Errorf("product type must be at most %d characters", MaxProductTypeLength)
	}
	return ProductType(tag), nil
}

// IsDefault reports whether p is one of the built-in tags.
func (p ProductType) IsDefault() bool {
	for _, d := range DefaultProductTypes() {
		if p == d {
			return true
		}
	}
	return false
}

func (p ProductType) String() string {
	return string(p)
}

func (p *ProductType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*p = ProductType(strings.ToLower(strings.TrimSpace(str)))
	return nil
}

func (p ProductType) Value() (driver.Value, error) {
	return string(p), nil
}

func (p *ProductType) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*p = ""
	case string:
		*p = ProductType(v)
	case []byte:
		*p = ProductType(v)
	default:
		return fmt.Errorf("cannot scan %T into ProductType", value)
	}
	return nil
}
