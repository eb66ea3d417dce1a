package enum

import (
	"database/sql/driver"
	"fmt"
)

// ActionType is the kind of out-of-band correction recorded in the audit trail
type ActionType string

const (
	ActionTypeEdit   ActionType = "edit"
	ActionTypeDelete ActionType = "delete"
)

// ParseActionType returns the action type named by s
func ParseActionType(s string) (ActionType, error) {
	switch ActionType(s) {
	case ActionTypeEdit, ActionTypeDelete:
		return ActionType(s), nil
	}
	return "", fmt.Errorf("unknown action type %q", s)
}

func (a ActionType) String() string {
	return string(a)
}

func (a ActionType) Value() (driver.Value, error) {
	return string(a), nil
}

func (a *ActionType) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		*a = ActionType(v)
	case []byte:
		*a = ActionType(v)
	default:
		return fmt.Errorf("cannot scan %T into ActionType", value)
	}
	return nil
}
