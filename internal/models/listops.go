package models

// List reconciliation helpers. The API response is authoritative: every
// mutation either appends or replaces a whole record, except PatchScore which
// is the single sanctioned field-level patch. All helpers copy; the input
// slice is never mutated.

// AppendLead returns leads with the server-returned lead appended.
func AppendLead(leads []Lead, lead Lead) []Lead {
	out := make([]Lead, 0, len(leads)+1)
	out = append(out, leads...)
	return append(out, lead)
}

// PatchScore replaces only the score of the lead with the given id, matched
// by identity. Every other row, and every other field of the matched row,
// is carried over unchanged. Unknown ids leave the list as-is.
func PatchScore(leads []Lead, id int, score float64) []Lead {
	out := make([]Lead, len(leads))
	copy(out, leads)
	for i := range out {
		if out[i].ID == id {
			out[i].Score = score
		}
	}
	return out
}

// ReplaceLead swaps the whole record with a matching id for the
// server-returned one. Unknown ids leave the list as-is.
func ReplaceLead(leads []Lead, lead Lead) []Lead {
	out := make([]Lead, len(leads))
	copy(out, leads)
	for i := range out {
		if out[i].ID == lead.ID {
			out[i] = lead
		}
	}
	return out
}

// RemoveLead drops the lead with the given id, used after a conversion moved
// it to the client list.
func RemoveLead(leads []Lead, id int) []Lead {
	out := make([]Lead, 0, len(leads))
	for _, l := range leads {
		if l.ID != id {
			out = append(out, l)
		}
	}
	return out
}

// AppendClient returns clients with the server-returned client appended.
func AppendClient(clients []Client, c Client) []Client {
	out := make([]Client, 0, len(clients)+1)
	out = append(out, clients...)
	return append(out, c)
}
