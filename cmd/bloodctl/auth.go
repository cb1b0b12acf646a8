package main

import (
	"errors"
	"fmt"
	"strings"

	"nearest-blood-locator/internal/client"
	"nearest-blood-locator/internal/delivery/dto"

	"github.com/spf13/cobra"
)

func (a *app) registerCmd() *cobra.Command {
	var (
		req      dto.RegisterRequest
		lat, lng float64
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a donor, bank or recipient account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("lat") {
				req.Latitude = &lat
			}
			if cmd.Flags().Changed("lng") {
				req.Longitude = &lng
			}
			req.UserType = strings.ToLower(strings.TrimSpace(req.UserType))

			user, err := a.client.Register(cmd.Context(), &req)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Registered %s as %s. Run `bloodctl login` to continue.\n", user.Username, user.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Username, "username", "", "username")
	cmd.Flags().StringVar(&req.Email, "email", "", "email address")
	cmd.Flags().StringVar(&req.Password, "password", "", "password")
	cmd.Flags().StringVar(&req.UserType, "type", "", "account type: donor, bank or recipient")
	cmd.Flags().StringVar(&req.BloodGroup, "blood-group", "", "blood group (donors)")
	cmd.Flags().StringVar(&req.Phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&req.City, "city", "", "city")
	cmd.Flags().Float64Var(&lat, "lat", 0, "latitude")
	cmd.Flags().Float64Var(&lng, "lng", 0, "longitude")
	for _, name := range []string{"username", "email", "password", "type"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}

func (a *app) loginCmd() *cobra.Command {
	var identifier, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in with a username or email",
		RunE: func(cmd *cobra.Command, args []string) error {
			identity, err := a.client.Login(cmd.Context(), identifier, password)
			if err != nil {
				return err
			}
			decision := a.client.Router.Route()
			fmt.Fprintf(a.out, "Logged in as %s (%s). Your dashboard: %s\n", identity.Username, identity.Role, decision.Target)
			return nil
		},
	}

	cmd.Flags().StringVarP(&identifier, "username", "u", "", "username or email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func (a *app) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and forget the saved session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.client.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Logged out.")
			return nil
		},
	}
}

func (a *app) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged in account",
		RunE: func(cmd *cobra.Command, args []string) error {
			identity, ok := a.client.Session.Identity()
			if !ok {
				return errors.New("not logged in")
			}
			fmt.Fprintf(a.out, "%s (%s)\n", identity.Username, identity.Role)
			if identity.City != "" {
				fmt.Fprintf(a.out, "City: %s\n", identity.City)
			}
			if identity.BloodGroup != "" {
				fmt.Fprintf(a.out, "Blood group: %s\n", identity.BloodGroup)
			}
			return nil
		},
	}
}

func (a *app) activityCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "activity",
		Short: "Show your recent account activity",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.guard(client.ViewDashboard); err != nil {
				return err
			}
			logs, err := a.client.API.MyAuditLogs(cmd.Context())
			if err != nil {
				return err
			}
			tw := newTable(a.out, "WHEN", "ACTION")
			for _, l := range logs.Logs {
				row(tw, l.CreatedAt.Format("2006-01-02 15:04"), l.Action)
			}
			return tw.Flush()
		},
	}
}
