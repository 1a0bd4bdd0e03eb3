package domain

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Patient-specific errors
var (
	ErrPatientIDEmpty     = NewDomainRuleError("patient ID cannot be empty")
	ErrPatientUserIDEmpty = NewDomainRuleError("patient user ID cannot be empty")
	ErrFutureLastVisit    = NewDomainRuleError("last visit cannot be in the future")
)

// PatientParams holds the primitives a Patient is built from.
type PatientParams struct {
	ID     string
	Name   string
	Email  string
	Phone  string
	UserID string
}

// PatientUpdate lists the mutable contact fields. Nil fields are left
// untouched; an empty email or phone clears it.
type PatientUpdate struct {
	Name  *string
	Email *string
	Phone *string
}

// Patient is a person treated by the clinic, owned by a user (tenant).
type Patient struct {
	id        string
	name      Name
	email     *Email
	phone     *Phone
	userID    string
	lastVisit *Date
	createdAt time.Time
	updatedAt time.Time
}

// NewPatient creates a new Patient. It generates an ID when none is given
// and sets the creation/update timestamps.
func NewPatient(p PatientParams) (*Patient, error) {
	now := time.Now().UTC()
	patient := &Patient{
		id:        strings.TrimSpace(p.ID),
		userID:    strings.TrimSpace(p.UserID),
		createdAt: now,
		updatedAt: now,
	}
	if patient.id == "" {
		patient.id = uuid.NewString()
	}

	var err error
	if patient.name, err = NewName(p.Name); err != nil {
		return nil, fieldError("name", err)
	}
	if patient.email, err = ParseEmail(p.Email); err != nil {
		return nil, fieldError("email", err)
	}
	if patient.phone, err = ParsePhone(p.Phone); err != nil {
		return nil, fieldError("phone", err)
	}

	if err := patient.Validate(); err != nil {
		return nil, err
	}
	return patient, nil
}

// Validate checks the patient invariants.
func (p *Patient) Validate() error {
	if p.id == "" {
		return fieldError("id", ErrPatientIDEmpty)
	}
	if p.userID == "" {
		return fieldError("user_id", ErrPatientUserIDEmpty)
	}
	if p.name.String() == "" {
		return fieldError("name", ErrEmptyName)
	}
	return nil
}

// Update applies a partial contact change. On error the patient is unchanged.
func (p *Patient) Update(u PatientUpdate) error {
	next := *p
	var err error

	if u.Name != nil {
		if next.name, err = NewName(*u.Name); err != nil {
			return fieldError("name", err)
		}
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

	if err := next.Validate(); err != nil {
		return err
	}
	next.updatedAt = time.Now().UTC()
	*p = next
	return nil
}

// UpdateLastVisit records the date of the latest visit. Visits after the
// local date of now are rejected.
func (p *Patient) UpdateLastVisit(visit Date, now time.Time) error {
	if visit.After(Today(now)) {
		return fieldError("last_visit", ErrFutureLastVisit)
	}
	v := visit
	p.lastVisit = &v
	p.updatedAt = now.UTC()
	return nil
}

// ID returns the patient identifier.
func (p *Patient) ID() string { return p.id }

// Name returns the normalized name.
func (p *Patient) Name() Name { return p.name }

// Email returns the email, or nil.
func (p *Patient) Email() *Email { return p.email }

// Phone returns the phone, or nil.
func (p *Patient) Phone() *Phone { return p.phone }

// UserID returns the owning user's identifier.
func (p *Patient) UserID() string { return p.userID }

// LastVisit returns the last visit date, or nil.
func (p *Patient) LastVisit() *Date {
	if p.lastVisit == nil {
		return nil
	}
	d := *p.lastVisit
	return &d
}

// CreatedAt returns the creation timestamp.
func (p *Patient) CreatedAt() time.Time { return p.createdAt }

// UpdatedAt returns the last modification timestamp.
func (p *Patient) UpdatedAt() time.Time { return p.updatedAt }

// PatientJSON is the persisted record shape of a Patient.
type PatientJSON struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	UserID    string  `json:"user_id"`
	LastVisit *string `json:"last_visit"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

// ToJSON serializes the patient.
func (p *Patient) ToJSON() PatientJSON {
	j := PatientJSON{
		ID:        p.id,
		Name:      p.name.String(),
		UserID:    p.userID,
		CreatedAt: formatTimestamp(p.createdAt),
		UpdatedAt: formatTimestamp(p.updatedAt),
	}
	if p.email != nil {
		s := p.email.String()
		j.Email = &s
	}
	if p.phone != nil {
		s := p.phone.String()
		j.Phone = &s
	}
	if p.lastVisit != nil {
		s := p.lastVisit.String()
		j.LastVisit = &s
	}
	return j
}

// PatientFromJSON rebuilds a Patient from its persisted record. A record
// without user_id is rejected as a data-integrity failure.
func PatientFromJSON(j PatientJSON) (*Patient, error) {
	if strings.TrimSpace(j.UserID) == "" {
		return nil, fieldError("user_id", ErrPatientUserIDEmpty)
	}
	if strings.TrimSpace(j.ID) == "" {
		return nil, fieldError("id", ErrPatientIDEmpty)
	}

	p, err := NewPatient(PatientParams{
		ID:     j.ID,
		Name:   j.Name,
		Email:  derefText(j.Email),
		Phone:  derefText(j.Phone),
		UserID: j.UserID,
	})
	if err != nil {
		return nil, err
	}

	if j.LastVisit != nil {
		if p.lastVisit, err = ParseOptionalDate(*j.LastVisit); err != nil {
			return nil, fieldError("last_visit", err)
		}
	}
	if err := restoreTimestamps(j.CreatedAt, j.UpdatedAt, &p.createdAt, &p.updatedAt); err != nil {
		return nil, err
	}
	return p, nil
}

// MarshalJSON implements json.Marshaler.
func (p *Patient) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.ToJSON())
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Patient) UnmarshalJSON(data []byte) error {
	var j PatientJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	parsed, err := PatientFromJSON(j)
	if err != nil {
		return err
	}
	*p = *parsed
	return nil
}

func derefText(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// restoreTimestamps overwrites the given timestamps with the persisted ones
// when present. A missing updated_at falls back to created_at.
func restoreTimestamps(createdRaw, updatedRaw string, created, updated *time.Time) error {
	createdAt, err := parseTimestamp(createdRaw)
	if err != nil {
		return fieldError("created_at", err)
	}
	updatedAt, err := parseTimestamp(updatedRaw)
	if err != nil {
		return fieldError("updated_at", err)
	}
	if !createdAt.IsZero() {
		*created = createdAt
		*updated = createdAt
	}
	if !updatedAt.IsZero() {
		*updated = updatedAt
	}
	return nil
}
