package domain

import (
	"encoding/json"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// ClinicStatus represents whether a clinic accepts new appointments.
type ClinicStatus string

// Possible clinic status values
const (
	ClinicActive   ClinicStatus = "active"
	ClinicInactive ClinicStatus = "inactive"
)

// Clinic-specific errors
var (
	ErrClinicIDEmpty       = NewDomainRuleError("clinic ID cannot be empty")
	ErrEmptyClinicName     = NewValidationError("clinic name cannot be empty")
	ErrClinicNameTooLong   = NewValidationError("clinic name must be at most 255 characters long")
	ErrInvalidClinicStatus = NewValidationError("clinic status must be active or inactive")
)

const maxClinicNameLength = 255

// ClinicParams holds the primitives a Clinic is built from.
type ClinicParams struct {
	ID      string
	Name    string
	Address string
	Email   string
	Phone   string
	Status  string
}

// ClinicUpdate lists the mutable fields. Nil fields are left untouched; an
// empty address, email or phone clears it.
type ClinicUpdate struct {
	Name    *string
	Address *string
	Email   *string
	Phone   *string
	Status  *string
}

// Clinic is a location where appointments take place.
type Clinic struct {
	id        string
	name      string
	address   *string
	email     *Email
	phone     *Phone
	status    ClinicStatus
	createdAt time.Time
	updatedAt time.Time
}

// NewClinic creates and validates a Clinic. An empty status defaults to active.
func NewClinic(p ClinicParams) (*Clinic, error) {
	now := time.Now().UTC()
	c := &Clinic{
		id:        strings.TrimSpace(p.ID),
		address:   optionalText(&p.Address),
		createdAt: now,
		updatedAt: now,
	}
	if c.id == "" {
		c.id = uuid.NewString()
	}

	var err error
	if c.name, err = parseClinicName(p.Name); err != nil {
		return nil, fieldError("name", err)
	}
	if c.email, err = ParseEmail(p.Email); err != nil {
		return nil, fieldError("email", err)
	}
	if c.phone, err = ParsePhone(p.Phone); err != nil {
		return nil, fieldError("phone", err)
	}
	if c.status, err = parseClinicStatus(p.Status); err != nil {
		return nil, fieldError("status", err)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the clinic invariants.
func (c *Clinic) Validate() error {
	if c.id == "" {
		return fieldError("id", ErrClinicIDEmpty)
	}
	if c.name == "" {
		return fieldError("name", ErrEmptyClinicName)
	}
	if c.status != ClinicActive && c.status != ClinicInactive {
		return fieldError("status", ErrInvalidClinicStatus)
	}
	return nil
}

// Update applies a partial change. On error the clinic is unchanged.
func (c *Clinic) Update(u ClinicUpdate) error {
	next := *c
	var err error

	if u.Name != nil {
		if next.name, err = parseClinicName(*u.Name); err != nil {
			return fieldError("name", err)
		}
	}
	if u.Address != nil {
		next.address = optionalText(u.Address)
	}
	if u.Email != nil {
		if next.email, err = ParseEmail(*u.Email); err != nil {
			return fieldError("email", err)
		}
	}
	if u.Phone != nil {
		if next.phone, err = ParsePhone(*u.Phone); err != nil {
			return fieldError("phone", err)
		}
	}
	if u.Status != nil {
		if next.status, err = parseClinicStatus(*u.Status); err != nil {
			return fieldError("status", err)
		}
	}

	if err := next.Validate(); err != nil {
		return err
	}
	next.updatedAt = time.Now().UTC()
	*c = next
	return nil
}

// Activate marks the clinic active.
func (c *Clinic) Activate() {
	c.status = ClinicActive
	c.updatedAt = time.Now().UTC()
}

// Deactivate marks the clinic inactive.
func (c *Clinic) Deactivate() {
	c.status = ClinicInactive
	c.updatedAt = time.Now().UTC()
}

// IsActive reports whether the clinic is active.
func (c *Clinic) IsActive() bool { return c.status == ClinicActive }

// ID returns the clinic identifier.
func (c *Clinic) ID() string { return c.id }

// Name returns the clinic name.
func (c *Clinic) Name() string { return c.name }

// Address returns the address, or nil.
func (c *Clinic) Address() *string { return copyText(c.address) }

// Email returns the email, or nil.
func (c *Clinic) Email() *Email { return c.email }

// Phone returns the phone, or nil.
func (c *Clinic) Phone() *Phone { return c.phone }

// Status returns the clinic status.
func (c *Clinic) Status() ClinicStatus { return c.status }

// CreatedAt returns the creation timestamp.
func (c *Clinic) CreatedAt() time.Time { return c.createdAt }

// UpdatedAt returns the in-memory modification timestamp. It is not persisted.
func (c *Clinic) UpdatedAt() time.Time { return c.updatedAt }

// ClinicJSON is the persisted record shape of a Clinic. It has no updated_at.
type ClinicJSON struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Address   *string `json:"address"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	Status    string  `json:"status"`
	CreatedAt string  `json:"created_at"`
}

// ToJSON serializes the clinic.
func (c *Clinic) ToJSON() ClinicJSON {
	j := ClinicJSON{
		ID:        c.id,
		Name:      c.name,
		Address:   copyText(c.address),
		Status:    string(c.status),
		CreatedAt: formatTimestamp(c.createdAt),
	}
	if c.email != nil {
		s := c.email.String()
		j.Email = &s
	}
	if c.phone != nil {
		s := c.phone.String()
		j.Phone = &s
	}
	return j
}

// ClinicFromJSON rebuilds a Clinic from its persisted record.
func ClinicFromJSON(j ClinicJSON) (*Clinic, error) {
	if strings.TrimSpace(j.ID) == "" {
		return nil, fieldError("id", ErrClinicIDEmpty)
	}
	c, err := NewClinic(ClinicParams{
		ID:      j.ID,
		Name:    j.Name,
		Address: derefText(j.Address),
		Email:   derefText(j.Email),
		Phone:   derefText(j.Phone),
		Status:  j.Status,
	})
	if err != nil {
		return nil, err
	}
	if err := restoreTimestamps(j.CreatedAt, "", &c.createdAt, &c.updatedAt); err != nil {
		return nil, err
	}
	return c, nil
}

// MarshalJSON implements json.Marshaler.
func (c *Clinic) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.ToJSON())
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *Clinic) UnmarshalJSON(data []byte) error {
	var j ClinicJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	parsed, err := ClinicFromJSON(j)
	if err != nil {
		return err
	}
	*c = *parsed
	return nil
}

func parseClinicName(s string) (string, error) {
	name := strings.TrimSpace(s)
	if name == "" {
		return "", ErrEmptyClinicName
	}
	if utf8.RuneCountInString(name) > maxClinicNameLength {
		return "", ErrClinicNameTooLong
	}
	return name, nil
}

func parseClinicStatus(s string) (ClinicStatus, error) {
	switch ClinicStatus(strings.ToLower(strings.TrimSpace(s))) {
	case "", ClinicActive:
		return ClinicActive, nil
	case ClinicInactive:
		return ClinicInactive, nil
	default:
		return "", ErrInvalidClinicStatus
	}
}
