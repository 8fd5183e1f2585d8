package main

import (
	"fmt"

	"github.com/fekuna/ecoscan/internal/auth/dto"
	"github.com/spf13/cobra"
)

func newRegisterCmd(a *app) *cobra.Command {
	in := &dto.RegisterInput{}
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.open(); err != nil {
				return err
			}
			if err := a.auth.Register(cmd.Context(), in); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Registration successful.")
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&in.Username, "username", "", "user name")
	f.StringVar(&in.Email, "email", "", "email address")
	f.StringVar(&in.Phone, "phone", "", "10 digit phone number")
	f.StringVar(&in.Password, "password", "", "password")
	f.StringVar(&in.Confirm, "confirm", "", "password again")
	return cmd
}

func newLoginCmd(a *app) *cobra.Command {
	in := &dto.LoginInput{}
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and keep the session for later commands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.open(); err != nil {
				return err
			}
			user, err := a.auth.Login(cmd.Context(), in)
			if err != nil {
				return err
			}
			name := in.Email
			if user != nil && user.Username != "" {
				name = user.Username
			}
			fmt.Fprintf(a.out, "Logged in as %s.\n", name)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Email, "email", "", "email address")
	cmd.Flags().StringVar(&in.Password, "password", "", "password")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.open(); err != nil {
				return err
			}
			return a.auth.Logout(cmd.Context())
		},
	}
}
