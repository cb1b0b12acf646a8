package main

import (
	"fmt"
	"strings"

	"nearest-blood-locator/internal/client"
	"nearest-blood-locator/internal/delivery/dto"
	"nearest-blood-locator/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func (a *app) donorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "donor",
		Short: "Manage your donor profile",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cmd.Root().PersistentPreRunE(cmd, args); err != nil {
				return err
			}
			return a.guard(client.ViewDonorDashboard, entity.RoleDonor)
		},
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show your donor profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			donor, err := a.client.Records.LoadDonorProfile(cmd.Context())
			if err != nil {
				return err
			}
			printDonorProfile(a, donor)
			return nil
		},
	}

	var (
		req       dto.UpsertDonorRequest
		age       int
		available bool
	)
	save := &cobra.Command{
		Use:   "save",
		Short: "Create or update your donor profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("age") {
				req.Age = &age
			}
			if cmd.Flags().Changed("available") {
				req.AvailabilityStatus = &available
			}
			donor, err := a.client.Records.SaveDonorProfile(cmd.Context(), &req)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Saved donor profile for %s (%s).\n", donor.FullName, donor.BloodGroup)
			return nil
		},
	}
	save.Flags().StringVar(&req.FullName, "name", "", "full name")
	save.Flags().StringVarP(&req.BloodGroup, "blood-group", "g", "", "blood group")
	save.Flags().IntVar(&age, "age", 0, "age")
	save.Flags().StringVar(&req.Phone, "phone", "", "phone number")
	save.Flags().StringVar(&req.City, "city", "", "city")
	save.Flags().BoolVar(&available, "available", true, "available to donate")
	save.Flags().StringVar(&req.LastDonationDate, "last-donation", "", "last donation date (YYYY-MM-DD)")

	del := &cobra.Command{
		Use:   "delete",
		Short: "Delete your donor profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.client.Records.DeleteDonorProfile(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Donor profile deleted.")
			return nil
		},
	}

	cmd.AddCommand(show, save, del)
	return cmd
}

func (a *app) bankCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bank",
		Short: "Manage your blood bank",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cmd.Root().PersistentPreRunE(cmd, args); err != nil {
				return err
			}
			return a.guard(client.ViewBankDashboard, entity.RoleBank)
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List your blood banks",
		RunE: func(cmd *cobra.Command, args []string) error {
			banks, err := a.client.Records.LoadBanks(cmd.Context())
			if err != nil {
				return err
			}
			printBanks(a.out, banks)
			return nil
		},
	}

	var (
		req    dto.UpsertBloodBankRequest
		groups string
	)
	save := &cobra.Command{
		Use:   "save",
		Short: "Create or update your blood bank",
		RunE: func(cmd *cobra.Command, args []string) error {
			req.AvailableBloodGroups = splitGroups(groups)
			bank, err := a.client.Records.SaveBank(cmd.Context(), &req)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Saved blood bank %s (%s).\n", bank.Name, bank.ID)
			return nil
		},
	}
	save.Flags().StringVar(&req.Name, "name", "", "bank name")
	save.Flags().StringVar(&req.City, "city", "", "city")
	save.Flags().StringVar(&req.Address, "address", "", "street address")
	save.Flags().StringVar(&req.ContactNumber, "contact", "", "contact number")
	save.Flags().StringVar(&groups, "groups", "", "available blood groups, comma separated")
	save.Flags().StringVar(&req.StockStatus, "status", "", "stock status: Available, Low or Critical")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a blood bank and its stock",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return &client.ValidationError{Field: "id", Err: err}
			}
			if err := a.client.Records.DeleteBank(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Blood bank deleted.")
			return nil
		},
	}

	cmd.AddCommand(list, save, del)
	return cmd
}

func (a *app) stockCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stock",
		Short: "View or change blood stock",
	}

	var bloodGroup, bankID string

	public := &cobra.Command{
		Use:   "public",
		Short: "Show stock across all blood banks",
		RunE: func(cmd *cobra.Command, args []string) error {
			var id *uuid.UUID
			if bankID != "" {
				parsed, err := uuid.Parse(bankID)
				if err != nil {
					return &client.ValidationError{Field: "bank", Err: err}
				}
				id = &parsed
			}
			group, err := optionalGroup(bloodGroup)
			if err != nil {
				return err
			}
			stock, err := a.client.API.PublicStock(cmd.Context(), id, group)
			if err != nil {
				return err
			}
			printStock(a.out, stock)
			return nil
		},
	}
	public.Flags().StringVarP(&bloodGroup, "blood-group", "g", "", "blood group")
	public.Flags().StringVar(&bankID, "bank", "", "blood bank id")

	list := &cobra.Command{
		Use:   "list",
		Short: "Show your bank's stock",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.guard(client.ViewBankDashboard, entity.RoleBank); err != nil {
				return err
			}
			stock, err := a.client.Records.LoadStock(cmd.Context())
			if err != nil {
				return err
			}
			printStock(a.out, stock)
			return nil
		},
	}

	cmd.AddCommand(public, list,
		a.stockMutationCmd("add", "Add a stock entry for a new blood group", false),
		a.stockMutationCmd("update", "Set the quantity of an existing stock entry", true),
		a.stockExportCmd(),
	)
	return cmd
}

func (a *app) stockMutationCmd(use, short string, update bool) *cobra.Command {
	var (
		bloodGroup string
		bankID     string
		quantity   int
	)

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.guard(client.ViewBankDashboard, entity.RoleBank); err != nil {
				return err
			}
			var id *uuid.UUID
			if bankID != "" {
				parsed, err := uuid.Parse(bankID)
				if err != nil {
					return &client.ValidationError{Field: "bank", Err: err}
				}
				id = &parsed
			}

			op := a.client.Records.AddStock
			if update {
				op = a.client.Records.UpdateStock
			}
			stock, err := op(cmd.Context(), id, bloodGroup, quantity)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%s: %d unit(s)\n", stock.BloodGroup, stock.Quantity)
			return nil
		},
	}
	cmd.Flags().StringVarP(&bloodGroup, "blood-group", "g", "", "blood group")
	cmd.Flags().IntVarP(&quantity, "quantity", "q", 0, "units in stock")
	cmd.Flags().StringVar(&bankID, "bank", "", "blood bank id (defaults to yours)")
	_ = cmd.MarkFlagRequired("blood-group")
	_ = cmd.MarkFlagRequired("quantity")

	return cmd
}

func (a *app) stockExportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Download your stock as an Excel workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.guard(client.ViewBankDashboard, entity.RoleBank); err != nil {
				return err
			}
			report, err := a.client.API.ExportStock(cmd.Context())
			if err != nil {
				return err
			}
			if err := afero.WriteFile(a.fs, output, report, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Wrote %s.\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "blood-stock.xlsx", "output file")

	return cmd
}

func (a *app) requestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "request",
		Short: "Browse or manage blood requests",
	}

	var bloodGroup, city string
	list := &cobra.Command{
		Use:   "list",
		Short: "List open blood requests",
		RunE: func(cmd *cobra.Command, args []string) error {
			group, err := optionalGroup(bloodGroup)
			if err != nil {
				return err
			}
			requests, err := a.client.API.ListRequests(cmd.Context(), group, city)
			if err != nil {
				return err
			}
			printRequests(a.out, requests)
			return nil
		},
	}
	list.Flags().StringVarP(&bloodGroup, "blood-group", "g", "", "blood group")
	list.Flags().StringVar(&city, "city", "", "city")

	mine := &cobra.Command{
		Use:   "mine",
		Short: "List your own blood requests",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.guard(client.ViewRecipientDashboard, entity.RoleRecipient); err != nil {
				return err
			}
			requests, err := a.client.Records.LoadMyRequests(cmd.Context())
			if err != nil {
				return err
			}
			printRequests(a.out, requests)
			return nil
		},
	}

	var req dto.CreateBloodRequestRequest
	create := &cobra.Command{
		Use:   "create",
		Short: "Post a new blood request",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.guard(client.ViewRecipientDashboard, entity.RoleRecipient); err != nil {
				return err
			}
			created, err := a.client.Records.CreateRequest(cmd.Context(), &req)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Created request %s.\n", created.ID)
			return nil
		},
	}
	create.Flags().StringVar(&req.Name, "name", "", "patient name")
	create.Flags().StringVarP(&req.RequiredBloodGroup, "blood-group", "g", "", "required blood group")
	create.Flags().StringVar(&req.City, "city", "", "city")
	create.Flags().StringVar(&req.Phone, "phone", "", "contact phone")
	create.Flags().StringVar(&req.UrgencyLevel, "urgency", "Medium", "urgency: Low, Medium or High")

	cancel := &cobra.Command{
		Use:   "cancel <id>",
		Short: "Cancel one of your blood requests",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.guard(client.ViewRecipientDashboard, entity.RoleRecipient); err != nil {
				return err
			}
			id, err := uuid.Parse(args[0])
			if err != nil {
				return &client.ValidationError{Field: "id", Err: err}
			}
			if err := a.client.Records.CancelRequest(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Blood request cancelled.")
			return nil
		},
	}

	cmd.AddCommand(list, mine, create, cancel)
	return cmd
}

func optionalGroup(raw string) (string, error) {
	if raw == "" {
		return "", nil
	}
	group, err := entity.ParseBloodGroup(raw)
	if err != nil {
		return "", &client.ValidationError{Field: "bloodGroup", Err: err}
	}
	return group.String(), nil
}

func splitGroups(raw string) []string {
	var groups []string
	for _, g := range strings.Split(raw, ",") {
		if g = strings.TrimSpace(g); g != "" {
			groups = append(groups, strings.ToUpper(g))
		}
	}
	return groups
}
