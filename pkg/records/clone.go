package records

import "slices"

// Clone returns a deep copy of the contact.
func (c *ContactRecord) Clone() *ContactRecord {
	if c == nil {
		return nil
	}
	out := *c
	out.Emails = slices.Clone(c.Emails)
	out.Phones = slices.Clone(c.Phones)
	out.Addresses = slices.Clone(c.Addresses)
	out.Websites = slices.Clone(c.Websites)
	out.Categories = slices.Clone(c.Categories)
	out.GroupIDs = slices.Clone(c.GroupIDs)
	return &out
}

// Clone returns a deep copy of the event.
func (e *EventRecord) Clone() *EventRecord {
	if e == nil {
		return nil
	}
	out := *e
	out.Attendees = slices.Clone(e.Attendees)
	if e.Recurrence != nil {
		rule := *e.Recurrence
		out.Recurrence = &rule
	}
	return &out
}
