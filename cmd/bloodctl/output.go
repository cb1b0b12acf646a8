package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"nearest-blood-locator/internal/delivery/dto"
)

func newTable(w io.Writer, header ...string) *tabwriter.Writer {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	return tw
}

func row(tw *tabwriter.Writer, cols ...interface{}) {
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = fmt.Sprint(c)
	}
	fmt.Fprintln(tw, strings.Join(parts, "\t"))
}

func printDonors(w io.Writer, donors []dto.DonorResponse) {
	if len(donors) == 0 {
		fmt.Fprintln(w, "No donors found.")
		return
	}
	tw := newTable(w, "NAME", "GROUP", "LOCATION", "PHONE", "STATUS")
	for _, d := range donors {
		row(tw, d.FullName, d.BloodGroup, d.Location, d.PhoneNumber, d.AvailabilityStatus)
	}
	tw.Flush()
}

func printBanks(w io.Writer, banks []dto.BloodBankResponse) {
	if len(banks) == 0 {
		fmt.Fprintln(w, "No blood banks found.")
		return
	}
	tw := newTable(w, "ID", "NAME", "CITY", "CONTACT", "GROUPS", "STATUS")
	for _, b := range banks {
		row(tw, b.ID, b.Name, b.City, b.ContactNumber, strings.Join(b.AvailableBloodGroups, ","), b.StockStatus)
	}
	tw.Flush()
}

func printStock(w io.Writer, stock []dto.StockResponse) {
	if len(stock) == 0 {
		fmt.Fprintln(w, "No stock entries.")
		return
	}
	tw := newTable(w, "BANK", "CITY", "GROUP", "QUANTITY", "UPDATED")
	for _, s := range stock {
		row(tw, s.BankName, s.BankCity, s.BloodGroup, s.Quantity, s.LastUpdated.Format("2006-01-02 15:04"))
	}
	tw.Flush()
}

func printRequests(w io.Writer, requests []dto.BloodRequestResponse) {
	if len(requests) == 0 {
		fmt.Fprintln(w, "No blood requests.")
		return
	}
	tw := newTable(w, "ID", "NAME", "GROUP", "CITY", "PHONE", "URGENCY")
	for _, r := range requests {
		row(tw, r.ID, r.Name, r.RequiredBloodGroup, r.City, r.Phone, r.UrgencyLevel)
	}
	tw.Flush()
}
