package cli

import (
	"github.com/dmitrijs2005/talksy/internal/client/authstate"
	"github.com/dmitrijs2005/talksy/internal/client/forms"
	"github.com/spf13/cobra"
)

// registerCmd and loginCmd are the forms behind the anonymous views: they
// wait for the session check, redirect a signed-in user home, and land on
// the home view after signing in.
func registerCmd(a *App) *cobra.Command {
	var f forms.RegisterForm

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withContext(cmd)
			store := authstate.New(ctx, a.api)
			defer store.Close()

			if ok, err := a.openForm(ctx, store, "register"); !ok {
				return err
			}

			if err := a.prompt(&f.Username, "Username"); err != nil {
				return err
			}
			if err := a.prompt(&f.Email, "Email"); err != nil {
				return err
			}
			if f.Password == "" {
				if err := a.promptPassword(&f.Password, "Password"); err != nil {
					return err
				}
				if err := a.promptPassword(&f.ConfirmPassword, "Confirm password"); err != nil {
					return err
				}
			} else {
				f.ConfirmPassword = f.Password
			}

			if fe := f.Validate(); !fe.Valid() {
				return a.fieldErrors(fe, forms.FieldUsername, forms.FieldEmail, forms.FieldPassword, forms.FieldConfirm)
			}

			u, err := a.api.Register(ctx, f.Username, f.Email, f.Password)
			if err != nil {
				return apiError(err)
			}
			a.printf("Account %s created\n", u.Username)

			s, err := a.api.Login(ctx, f.Email, f.Password, false)
			if err != nil {
				return apiError(err)
			}
			store.Login()
			a.printf("Logged in as %s\n", s.Username)
			return a.navigate(ctx, store, homeView)
		},
	}

	cmd.Flags().StringVar(&f.Username, "username", "", "username (3-40 characters)")
	cmd.Flags().StringVar(&f.Email, "email", "", "email address")
	cmd.Flags().StringVar(&f.Password, "password", "", "password; prompted without echo when omitted")
	return cmd
}

func loginCmd(a *App) *cobra.Command {
	var f forms.LoginForm

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session cookie",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withContext(cmd)
			store := authstate.New(ctx, a.api)
			defer store.Close()

			if ok, err := a.openForm(ctx, store, loginView); !ok {
				return err
			}

			if err := a.prompt(&f.Email, "Email"); err != nil {
				return err
			}
			if err := a.promptPassword(&f.Password, "Password"); err != nil {
				return err
			}

			if fe := f.Validate(); !fe.Valid() {
				return a.fieldErrors(fe, forms.FieldEmail, forms.FieldPassword)
			}

			s, err := a.api.Login(ctx, f.Email, f.Password, f.RememberMe)
			if err != nil {
				return apiError(err)
			}
			store.Login()
			a.printf("Logged in as %s\n", s.Username)
			return a.navigate(ctx, store, homeView)
		},
	}

	cmd.Flags().StringVar(&f.Email, "email", "", "email address")
	cmd.Flags().StringVar(&f.Password, "password", "", "password; prompted without echo when omitted")
	cmd.Flags().BoolVar(&f.RememberMe, "remember", false, "keep the session for 30 days")
	return cmd
}

// logoutCmd clears the local cookie file even when the server call fails.
func logoutCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			callErr := a.api.Logout(withContext(cmd))
			if err := a.jar.Clear(); err != nil {
				return err
			}
			if callErr != nil {
				return apiError(callErr)
			}
			a.printf("Logout successfully\n")
			return nil
		},
	}
}
