package entity

import "github.com/google/uuid"

// DonorFilter is a domain-level filter for donor search.
// Used by repository layer to avoid coupling with delivery DTOs.
type DonorFilter struct {
	BloodGroup    BloodGroup // exact match
	Location      string     // ILIKE
	AvailableOnly bool
}

type BloodBankFilter struct {
	BloodGroup BloodGroup // must be in available_blood_groups
	City       string     // ILIKE
}

type StockFilter struct {
	BankID     *uuid.UUID
	BloodGroup BloodGroup
}

type RequestFilter struct {
	BloodGroup BloodGroup
	City       string // ILIKE
}
