package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// DiscountType represents how a session discount is applied
type DiscountType int

const (
	DiscountTypeNone       DiscountType = 0
	DiscountTypeFixed      DiscountType = 1
	DiscountTypePercentage DiscountType = 2
)

func (t DiscountType) String() string {
	return [...]string{"None", "Fixed", "Percentage"}[t]
}

func (t DiscountType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *DiscountType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*t = DiscountType(i)
		return nil
	}
	switch str {
	case "None":
		*t = DiscountTypeNone
	case "Fixed":
		*t = DiscountTypeFixed
	case "Percentage":
		*t = DiscountTypePercentage
	}
	return nil
}

func (t DiscountType) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *DiscountType) Scan(value interface{}) error {
	if value == nil {
		*t = DiscountTypeNone
		return nil
	}
	switch v := value.(type) {
	case int64:
		*t = DiscountType(v)
	case int:
		*t = DiscountType(v)
	}
	return nil
}
