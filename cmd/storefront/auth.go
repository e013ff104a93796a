package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/otomarket/storefront-client/pkg/types"
)

func (a *app) loginCmd() *cobra.Command {
	var creds types.Credentials

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and persist the session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.session.Login(cmd.Context(), creds); err != nil {
				return err
			}
			st := a.session.State()
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s\n", st.User.FullName())
			if st.IsAdmin {
				fmt.Fprintln(cmd.OutOrStdout(), "Admin console available: storefront admin --help")
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&creds.Username, "username", "u", "", "account username")
	cmd.Flags().StringVarP(&creds.Password, "password", "p", "", "account password")
	return cmd
}

func (a *app) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and clear the persisted session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.session.Logout(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
			return nil
		},
	}
}

func (a *app) registerCmd() *cobra.Command {
	var reg types.Registration

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.session.Register(cmd.Context(), reg); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Account created, you can now sign in: storefront login")
			return nil
		},
	}
	cmd.Flags().StringVar(&reg.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&reg.LastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&reg.Email, "email", "", "email address")
	cmd.Flags().StringVar(&reg.Phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&reg.Password, "password", "", "password")
	return cmd
}

func (a *app) profileCmd() *cobra.Command {
	var form types.ProfileForm

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Update the signed-in user's profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireAuth(false, "/profile"); err != nil {
				return err
			}
			if err := a.users.UpdateProfile(cmd.Context(), form); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Profile updated: %s\n", a.session.State().User.FullName())
			return nil
		},
	}
	cmd.Flags().StringVar(&form.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&form.LastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&form.Email, "email", "", "email address")
	cmd.Flags().StringVar(&form.Phone, "phone", "", "phone number")
	return cmd
}
