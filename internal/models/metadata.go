package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// MetadataVersion identifies the current metadata record layout.
const MetadataVersion = 1

// TransactionMetadata is the audit payload attached to ledger entries. Known
// fields keep the ledger machine-verifiable; Extra holds any additional
// human-readable notes for display.
type TransactionMetadata struct {
	Version       int               `json:"version"`
	Operation     string            `json:"operation,omitempty"`
	PackName      string            `json:"pack_name,omitempty"`
	Beneficiary   string            `json:"beneficiary,omitempty"`
	SourceUser    string            `json:"source_user,omitempty"`
	Amount        string            `json:"amount,omitempty"` // formatted with currency unit
	Duration      string            `json:"duration,omitempty"`
	PaymentType   string            `json:"payment_type,omitempty"`
	PaymentMethod string            `json:"payment_method,omitempty"`
	Currency      string            `json:"currency,omitempty"`
	ExchangeRate  float64           `json:"exchange_rate,omitempty"`
	GlobalFees    float64           `json:"global_fees,omitempty"`
	SpecificFees  float64           `json:"specific_fees,omitempty"`
	Extra         map[string]string `json:"extra,omitempty"`
}

// Value implements the driver.Valuer interface
func (m TransactionMetadata) Value() (driver.Value, error) {
	if m.Version == 0 {
		m.Version = MetadataVersion
	}
	return json.Marshal(m)
}

// Scan implements the sql.Scanner interface
func (m *TransactionMetadata) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("unsupported metadata column type")
	}
	return json.Unmarshal(bytes, m)
}
