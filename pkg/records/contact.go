// Package records defines the canonical record shapes exchanged between the
// two stores: contacts, calendar events, recurrence rules, and groups. Store
// adapters translate their vendor formats into these types so that merging,
// matching, and conflict resolution work on a single model regardless of
// which store a record came from.
package records

import (
	"strings"
	"time"
)

// MaxEmails is the number of distinguishable email slots a contact carries.
// The first slot is the primary address.
const MaxEmails = 3

// PhoneKind classifies a phone number slot. One slot per kind; the first
// source number of a kind wins during a merge.
type PhoneKind string

// Phone number kinds.
const (
	PhoneHome    PhoneKind = "home"
	PhoneHomeFax PhoneKind = "home_fax"
	PhoneWork    PhoneKind = "work"
	PhoneWorkFax PhoneKind = "work_fax"
	PhoneMobile  PhoneKind = "mobile"
	PhoneOther   PhoneKind = "other"
	PhoneFax     PhoneKind = "fax"
)

// PhoneKinds lists every kind in merge order.
var PhoneKinds = []PhoneKind{
	PhoneHome, PhoneHomeFax, PhoneWork, PhoneWorkFax,
	PhoneMobile, PhoneOther, PhoneFax,
}

// AddressKind classifies a postal address.
type AddressKind string

// Postal address kinds.
const (
	AddressHome  AddressKind = "home"
	AddressWork  AddressKind = "work"
	AddressOther AddressKind = "other"
)

// WebsiteKind classifies a website URL.
type WebsiteKind string

// Website kinds.
const (
	WebsitePersonal WebsiteKind = "personal"
	WebsiteWork     WebsiteKind = "work"
	WebsiteOther    WebsiteKind = "other"
)

// WebsiteKinds lists every kind in merge order.
var WebsiteKinds = []WebsiteKind{WebsitePersonal, WebsiteWork, WebsiteOther}

// EmailAddress is one email slot on a contact.
type EmailAddress struct {
	Address string `yaml:"address"`
	Primary bool   `yaml:"primary,omitempty"`
}

// PhoneNumber is one typed phone slot on a contact.
type PhoneNumber struct {
	Number string    `yaml:"number"`
	Kind   PhoneKind `yaml:"kind"`
}

// PostalAddress is one typed postal address on a contact.
type PostalAddress struct {
	Kind       AddressKind `yaml:"kind"`
	Street     string      `yaml:"street,omitempty"`
	City       string      `yaml:"city,omitempty"`
	Region     string      `yaml:"region,omitempty"`
	PostalCode string      `yaml:"postal_code,omitempty"`
	Country    string      `yaml:"country,omitempty"`
	POBox      string      `yaml:"po_box,omitempty"`
	Primary    bool        `yaml:"primary,omitempty"`
}

// Website is one typed website URL on a contact.
type Website struct {
	URL  string      `yaml:"url"`
	Kind WebsiteKind `yaml:"kind"`
}

// Group is a category/tag container owned by a store. The engine reads
// groups but never creates them.
type Group struct {
	ID          string `yaml:"id"`
	DisplayName string `yaml:"display_name"`
}

// ContactRecord is the canonical contact shape shared by both stores.
// LocalID identifies the record in its own store; RemoteID identifies the
// counterpart in the other store and may be empty before the first sync.
type ContactRecord struct {
	LocalID  string `yaml:"local_id,omitempty"`
	RemoteID string `yaml:"remote_id,omitempty"`

	FullName   string `yaml:"full_name,omitempty"`
	GivenName  string `yaml:"given_name,omitempty"`
	FamilyName string `yaml:"family_name,omitempty"`

	Emails    []EmailAddress  `yaml:"emails,omitempty"`
	Phones    []PhoneNumber   `yaml:"phones,omitempty"`
	Addresses []PostalAddress `yaml:"addresses,omitempty"`

	// Birthday uses year zero as the sentinel for month/day-only dates.
	Birthday time.Time `yaml:"birthday,omitempty"`

	Nickname    string `yaml:"nickname,omitempty"`
	Initials    string `yaml:"initials,omitempty"`
	JobTitle    string `yaml:"job_title,omitempty"`
	Department  string `yaml:"department,omitempty"`
	Company     string `yaml:"company,omitempty"`
	Notes       string `yaml:"notes,omitempty"`
	Language    string `yaml:"language,omitempty"`
	BillingInfo string `yaml:"billing_info,omitempty"`

	Websites  []Website `yaml:"websites,omitempty"`
	IMAddress string    `yaml:"im_address,omitempty"`

	// Categories holds group display names; GroupIDs holds membership
	// references into this record's own store.
	Categories []string `yaml:"categories,omitempty"`
	GroupIDs   []string `yaml:"group_ids,omitempty"`

	// PhotoFingerprint is an opaque hash/etag of the contact photo, used to
	// detect photo changes without transferring bytes.
	PhotoFingerprint string `yaml:"photo_fingerprint,omitempty"`

	ModifiedAt time.Time `yaml:"modified_at,omitempty"`
}

// PrimaryEmail returns the primary-flagged email address, or the first one
// when none is flagged.
func (c *ContactRecord) PrimaryEmail() string {
	for _, e := range c.Emails {
		if e.Primary {
			return e.Address
		}
	}
	if len(c.Emails) > 0 {
		return c.Emails[0].Address
	}
	return ""
}

// HasEmail reports whether the contact carries the given address,
// case-insensitively.
func (c *ContactRecord) HasEmail(address string) bool {
	if strings.TrimSpace(address) == "" {
		return false
	}
	for _, e := range c.Emails {
		if strings.EqualFold(e.Address, address) {
			return true
		}
	}
	return false
}

// HasAnyEmail reports whether the contact carries at least one non-empty
// email address.
func (c *ContactRecord) HasAnyEmail() bool {
	for _, e := range c.Emails {
		if strings.TrimSpace(e.Address) != "" {
			return true
		}
	}
	return false
}

// HasPhone reports whether the contact carries the given number in any slot.
func (c *ContactRecord) HasPhone(number string) bool {
	if strings.TrimSpace(number) == "" {
		return false
	}
	for _, p := range c.Phones {
		if p.Number == number {
			return true
		}
	}
	return false
}

// Phone returns the first number of the given kind, or empty.
func (c *ContactRecord) Phone(kind PhoneKind) string {
	for _, p := range c.Phones {
		if p.Kind == kind {
			return p.Number
		}
	}
	return ""
}

// PrimaryAddress returns the primary-flagged postal address, or the first
// one when none is flagged. The second return is false when the contact has
// no addresses at all.
func (c *ContactRecord) PrimaryAddress() (PostalAddress, bool) {
	for _, a := range c.Addresses {
		if a.Primary {
			return a, true
		}
	}
	if len(c.Addresses) > 0 {
		return c.Addresses[0], true
	}
	return PostalAddress{}, false
}

// Website returns the URL of the given kind, or empty.
func (c *ContactRecord) Website(kind WebsiteKind) string {
	for _, w := range c.Websites {
		if w.Kind == kind {
			return w.URL
		}
	}
	return ""
}

// FormatPhone normalizes a phone number for display by spacing the
// international prefix, matching how the stores render numbers. The result
// is a fixed point: formatting an already-formatted number changes nothing.
func FormatPhone(number string) string {
	number = strings.TrimSpace(number)
	if number == "" {
		return ""
	}
	if strings.HasPrefix(number, "+") {
		return " " + number
	}
	return number
}

// Birthday string formats: full date, and month/day without a year.
const (
	birthdayFull     = "2006-01-02"
	birthdayNoYear   = "--01-02"
	birthdaySentinel = 0
)

// ParseBirthday parses a birthday token in either full-date or
// month/day-only form. Month/day-only dates come back with year zero.
func ParseBirthday(s string) (time.Time, bool) {
	if t, err := time.Parse(birthdayFull, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(birthdayNoYear, s); err == nil {
		return time.Date(birthdaySentinel, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}

// FormatBirthday renders a birthday back into its token form, omitting the
// year when it is the sentinel.
func FormatBirthday(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	if t.Year() == birthdaySentinel {
		return t.Format(birthdayNoYear)
	}
	return t.Format(birthdayFull)
}
