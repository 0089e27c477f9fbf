package merge

import (
	"strings"

	"github.com/pimsync/pimsync/pkg/records"
)

// Contact merges the source contact into the destination in place and
// reports whether the destination changed. The same function serves both
// merge directions; the caller decides which record is source and which is
// destination. groups is the destination store's group list, used to
// resolve category names into membership references.
func Contact(dst, src *records.ContactRecord, groups []records.Group) bool {
	changed := false

	changed = ApplyString(&dst.FullName, src.FullName) || changed
	changed = ApplyString(&dst.GivenName, src.GivenName) || changed
	changed = ApplyString(&dst.FamilyName, src.FamilyName) || changed

	changed = mergeEmails(dst, src) || changed
	changed = mergePhones(dst, src) || changed
	changed = mergeAddress(dst, src) || changed

	if !src.Birthday.IsZero() {
		changed = ApplyTime(&dst.Birthday, src.Birthday) || changed
	}

	changed = ApplyString(&dst.Nickname, src.Nickname) || changed
	changed = ApplyString(&dst.Initials, src.Initials) || changed
	changed = ApplyString(&dst.JobTitle, src.JobTitle) || changed
	changed = ApplyString(&dst.Department, src.Department) || changed
	changed = ApplyString(&dst.Company, src.Company) || changed
	changed = ApplyString(&dst.Notes, src.Notes) || changed
	changed = ApplyString(&dst.Language, src.Language) || changed
	changed = ApplyString(&dst.BillingInfo, src.BillingInfo) || changed

	changed = mergeWebsites(dst, src) || changed
	changed = ApplyString(&dst.IMAddress, src.IMAddress) || changed

	resolver := NewGroupResolver(groups)
	changed = resolver.Merge(dst, src.Categories) || changed

	return changed
}

// mergeEmails assigns the source's first three distinguishable addresses to
// the destination's ordered slots, primary first. Recomputing the slots from
// scratch keeps an address from appearing twice when it moves between slots.
func mergeEmails(dst, src *records.ContactRecord) bool {
	slots := emailSlots(src)

	changed := false
	for len(dst.Emails) < records.MaxEmails {
		dst.Emails = append(dst.Emails, records.EmailAddress{})
	}
	dst.Emails = dst.Emails[:records.MaxEmails]

	for i := 0; i < records.MaxEmails; i++ {
		changed = ApplyString(&dst.Emails[i].Address, slots[i]) || changed
		primary := i == 0 && slots[0] != ""
		changed = Apply(&dst.Emails[i].Primary, primary) || changed
	}

	return changed
}

// emailSlots orders a contact's addresses into the three canonical slots:
// primary first, then the remaining distinct addresses in input order.
func emailSlots(c *records.ContactRecord) [records.MaxEmails]string {
	var slots [records.MaxEmails]string

	slots[0] = c.PrimaryEmail()
	next := 1
	for _, e := range c.Emails {
		if next >= records.MaxEmails {
			break
		}
		addr := strings.TrimSpace(e.Address)
		if addr == "" || taken(slots[:next], addr) {
			continue
		}
		slots[next] = addr
		next++
	}

	return slots
}

func taken(slots []string, addr string) bool {
	for _, s := range slots {
		if strings.EqualFold(s, addr) {
			return true
		}
	}
	return false
}

// mergePhones fills one destination slot per phone kind with the source's
// first number of that kind.
func mergePhones(dst, src *records.ContactRecord) bool {
	changed := false
	for _, kind := range records.PhoneKinds {
		number := records.FormatPhone(src.Phone(kind))
		if number == "" {
			continue
		}
		changed = applyPhone(dst, kind, number) || changed
	}
	return changed
}

func applyPhone(dst *records.ContactRecord, kind records.PhoneKind, number string) bool {
	for i := range dst.Phones {
		if dst.Phones[i].Kind == kind {
			// Numbers that normalize equal are the same number; leave the
			// destination's rendering alone.
			if records.FormatPhone(dst.Phones[i].Number) == number {
				return false
			}
			return ApplyString(&dst.Phones[i].Number, number)
		}
	}
	dst.Phones = append(dst.Phones, records.PhoneNumber{Number: number, Kind: kind})
	return true
}

// mergeAddress copies the source's primary (or first) postal address into
// the destination's primary (or first) slot.
func mergeAddress(dst, src *records.ContactRecord) bool {
	addr, ok := src.PrimaryAddress()
	if !ok {
		return false
	}

	target := -1
	for i := range dst.Addresses {
		if dst.Addresses[i].Primary {
			target = i
			break
		}
	}
	if target < 0 && len(dst.Addresses) > 0 {
		target = 0
	}
	if target < 0 {
		dst.Addresses = append(dst.Addresses, records.PostalAddress{Kind: addr.Kind, Primary: addr.Primary})
		target = 0
	}

	slot := &dst.Addresses[target]
	changed := ApplyString(&slot.Street, addr.Street)
	changed = ApplyString(&slot.City, addr.City) || changed
	changed = ApplyString(&slot.Region, addr.Region) || changed
	changed = ApplyString(&slot.PostalCode, addr.PostalCode) || changed
	changed = ApplyString(&slot.Country, addr.Country) || changed
	changed = ApplyString(&slot.POBox, addr.POBox) || changed
	return changed
}

// mergeWebsites fills one destination slot per website kind.
func mergeWebsites(dst, src *records.ContactRecord) bool {
	changed := false
	for _, kind := range records.WebsiteKinds {
		url := src.Website(kind)
		if url == "" {
			continue
		}
		changed = applyWebsite(dst, kind, url) || changed
	}
	return changed
}

func applyWebsite(dst *records.ContactRecord, kind records.WebsiteKind, url string) bool {
	for i := range dst.Websites {
		if dst.Websites[i].Kind == kind {
			return ApplyString(&dst.Websites[i].URL, url)
		}
	}
	dst.Websites = append(dst.Websites, records.Website{URL: url, Kind: kind})
	return true
}
