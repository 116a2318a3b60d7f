package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/dmitrijs2005/talksy/internal/client/authstate"
	"github.com/dmitrijs2005/talksy/internal/client/guard"
	"github.com/spf13/cobra"
)

const (
	loginView = "login"
	homeView  = "dashboard"
)

// A view is either protected (signed-in users only) or anonymous
// (signed-out users only, like the login form).
type view struct {
	title     string
	protected bool
	body      string
}

var views = map[string]view{
	"login":     {title: "Login", body: "Sign in with: talksy login [--remember]"},
	"register":  {title: "Register", body: "Create an account with: talksy register"},
	"dashboard": {title: "Dashboard", protected: true, body: "Welcome back."},
	"settings":  {title: "Settings", protected: true, body: "Account settings."},
}

func viewNames() string {
	names := make([]string, 0, len(views))
	for n := range views {
		names = append(names, n)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

func decide(v view, st authstate.State) guard.Decision {
	if v.protected {
		return guard.Decide(st, loginView)
	}
	return guard.DecideAnonymous(st, homeView)
}

// waitForState blocks until the store finishes loading or ctx ends.
func waitForState(ctx context.Context, s *authstate.Store) authstate.State {
	select {
	case <-s.Done():
	case <-ctx.Done():
	}
	return s.Snapshot()
}

// navigate shows the named view through its guard. A redirect target is
// rendered without guarding it again.
func (a *App) navigate(ctx context.Context, store *authstate.Store, name string) error {
	v := views[name]

	d := decide(v, store.Snapshot())
	if d.Kind == guard.Loading {
		a.printf("Loading...\n")
		d = decide(v, waitForState(ctx, store))
	}

	switch d.Kind {
	case guard.Render:
		a.render(v)
	case guard.Redirect:
		a.redirect(d.Location)
	default:
		return ctx.Err()
	}
	return nil
}

// openForm reports whether the form behind an anonymous view may be shown.
// When the user is already signed in it redirects and returns false.
func (a *App) openForm(ctx context.Context, store *authstate.Store, name string) (bool, error) {
	d := decide(views[name], waitForState(ctx, store))
	switch d.Kind {
	case guard.Render:
		return true, nil
	case guard.Redirect:
		a.redirect(d.Location)
		return false, nil
	default:
		return false, ctx.Err()
	}
}

func (a *App) redirect(name string) {
	a.printf("Redirecting to %s\n", name)
	a.render(views[name])
}

func (a *App) render(v view) {
	a.printf("== %s ==\n%s\n", v.title, v.body)
}

func statusCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Report whether the stored session is valid",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withContext(cmd)
			store := authstate.New(ctx, a.api)
			defer store.Close()

			st := waitForState(ctx, store)
			switch {
			case st.IsLoading:
				return ctx.Err()
			case st.IsAuthenticated:
				a.printf("authenticated\n")
			default:
				a.printf("not authenticated\n")
			}
			return nil
		},
	}
}

func openCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "open <view>",
		Short: "Show a view through its session guard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, ok := views[args[0]]; !ok {
				return fmt.Errorf("unknown view %q (available: %s)", args[0], viewNames())
			}

			ctx := withContext(cmd)
			store := authstate.New(ctx, a.api)
			defer store.Close()

			return a.navigate(ctx, store, args[0])
		},
	}
}
