package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Address is the shipping address captured at checkout. It is persisted as an
// opaque JSON snapshot; postal correctness is not checked.
type Address struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Address   string `json:"address"`
	Address2  string `json:"address2"`
	Country   string `json:"country"`
	Zip       string `json:"zip"`
	State     string `json:"state"`
}

// MissingFields returns the JSON names of required fields that are blank.
// Address2 is optional.
func (a Address) MissingFields() []string {
	var missing []string
	for _, f := range []struct {
		name  string
		value string
	}{
		{"first_name", a.FirstName},
		{"last_name", a.LastName},
		{"email", a.Email},
		{"address", a.Address},
		{"country", a.Country},
		{"zip", a.Zip},
		{"state", a.State},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// Snapshot serializes the address for storage.
func (a Address) Snapshot() (string, error) {
	b, err := json.Marshal(a)
	if err != nil {
		return "", fmt.Errorf("marshal address: %w", err)
	}
	return string(b), nil
}

// importedAddress covers snapshots written by the previous storefront. Its
// First_Name, Last_Name, Address2 etc. keys already match Address
// case-insensitively; only the postcode key differs.
type importedAddress struct {
	Pin *string `json:"Pin"`
}

// ParseAddressSnapshot is the inverse of Address.Snapshot. It also reads
// imported snapshots, where null values decode as empty fields.
func ParseAddressSnapshot(s string) (Address, error) {
	var a Address
	if err := json.Unmarshal([]byte(s), &a); err != nil {
		return Address{}, fmt.Errorf("unmarshal address: %w", err)
	}
	if a.Zip == "" {
		var imported importedAddress
		if err := json.Unmarshal([]byte(s), &imported); err == nil && imported.Pin != nil {
			a.Zip = *imported.Pin
		}
	}
	return a, nil
}

// Order links a user, a catalog volume and a shipping address. Orders are
// immutable once written.
type Order struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	VolumeID  string    `json:"volume_id"`
	Address   Address   `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}
