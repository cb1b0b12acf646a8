package main

import (
	"fmt"

	"nearest-blood-locator/internal/client"
	"nearest-blood-locator/internal/delivery/dto"
	"nearest-blood-locator/internal/domain/entity"

	"github.com/spf13/cobra"
)

func (a *app) searchCmd() *cobra.Command {
	var (
		banks      bool
		bloodGroup string
		location   string
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search donors (default) or blood banks by blood group",
		RunE: func(cmd *cobra.Command, args []string) error {
			target := client.TargetDonors
			if banks {
				target = client.TargetBanks
			}
			if err := a.client.Criteria.SetTarget(target); err != nil {
				return err
			}

			result, err := a.client.Search(cmd.Context(), bloodGroup, location)
			if err != nil {
				return err
			}
			if result.Empty() {
				fmt.Fprintf(a.out, "No matches for %s.\n", result.Query.BloodGroup)
				return nil
			}

			tw := newTable(a.out, "NAME", "LOCATION", "CONTACT", "STATUS", "GROUP")
			for _, c := range result.Candidates {
				row(tw, c.Label, c.Location, c.Contact, c.Status, c.MatchedGroup)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%d match(es)\n", result.Len())
			return nil
		},
	}

	cmd.Flags().BoolVar(&banks, "banks", false, "search blood banks instead of donors")
	cmd.Flags().StringVarP(&bloodGroup, "blood-group", "g", "", "blood group (required)")
	cmd.Flags().StringVarP(&location, "location", "l", "", "city or area")

	return cmd
}

// donorsCmd browses every donor with a local filter, like the public list.
func (a *app) donorsCmd() *cobra.Command {
	var (
		filter     string
		bloodGroup string
		available  bool
	)

	cmd := &cobra.Command{
		Use:   "donors",
		Short: "Browse all donors with an optional name/location filter",
		RunE: func(cmd *cobra.Command, args []string) error {
			f := client.LocalFilter{Text: filter}
			if bloodGroup != "" {
				group, err := entity.ParseBloodGroup(bloodGroup)
				if err != nil {
					return &client.ValidationError{Field: "bloodGroup", Err: err}
				}
				f.BloodGroup = group
			}

			donors, err := a.client.API.SearchDonors(cmd.Context(), client.DonorQuery{AvailableOnly: available})
			if err != nil {
				return err
			}
			printDonors(a.out, client.FilterDonors(donors, f))
			return nil
		},
	}

	cmd.Flags().StringVarP(&filter, "filter", "f", "", "match name or location")
	cmd.Flags().StringVarP(&bloodGroup, "blood-group", "g", "", "exact blood group")
	cmd.Flags().BoolVar(&available, "available", false, "only available donors")

	return cmd
}

func (a *app) dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show your role dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			decision := a.client.Router.Route()
			if decision.Target == client.ViewLogin {
				return client.ErrNotAuthenticated
			}

			d, err := a.client.Dashboard.Load(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(a.out, "%s  [%s]\n\n", d.Identity.Username, d.View)
			switch d.Identity.Role {
			case entity.RoleDonor:
				printDonorProfile(a, d.Donor)
				fmt.Fprintln(a.out, "\nOpen requests for your blood group:")
				printRequests(a.out, d.OpenRequests)
			case entity.RoleBank:
				printBanks(a.out, d.Banks)
				fmt.Fprintln(a.out, "\nStock:")
				printStock(a.out, d.Stock)
				fmt.Fprintln(a.out, "\nOpen requests:")
				printRequests(a.out, d.OpenRequests)
			case entity.RoleRecipient:
				fmt.Fprintln(a.out, "Your requests:")
				printRequests(a.out, d.MyRequests)
				fmt.Fprintln(a.out, "\nBlood banks with your blood group:")
				printBanks(a.out, d.MatchingBanks)
			}
			return nil
		},
	}
}

func printDonorProfile(a *app, donor *dto.DonorResponse) {
	if donor == nil {
		fmt.Fprintln(a.out, "No donor profile yet. Run `bloodctl donor save`.")
		return
	}
	printDonors(a.out, []dto.DonorResponse{*donor})
}
