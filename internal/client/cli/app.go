package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"

	"github.com/dmitrijs2005/talksy/internal/client/client"
	"github.com/dmitrijs2005/talksy/internal/client/config"
	"github.com/dmitrijs2005/talksy/internal/client/forms"
	"github.com/dmitrijs2005/talksy/internal/filex"
	"github.com/spf13/cobra"
)

// App carries what every command needs once configuration is loaded.
type App struct {
	config *config.Config
	jar    *FileJar
	api    client.Client

	in    *bufio.Reader
	stdin *os.File
	out   io.Writer
}

func newApp(in io.Reader, out io.Writer) *App {
	a := &App{in: bufio.NewReader(in), out: out}
	if f, ok := in.(*os.File); ok {
		a.stdin = f
	}
	return a
}

// setup loads config, opens the cookie file and builds the API client.
func (a *App) setup(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	dir, err := filex.EnsurePrivateDir(cfg.StateDir)
	if err != nil {
		return err
	}
	cfg.StateDir = dir

	origin, err := url.Parse(cfg.ServerURL)
	if err != nil {
		return err
	}
	jar, err := OpenFileJar(cfg.CookieFile(), origin, cfg.Session)
	if err != nil {
		return err
	}
	api, err := client.NewHTTPClient(cfg.ServerURL, jar)
	if err != nil {
		return err
	}
	a.config, a.jar, a.api = cfg, jar, api
	return nil
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// prompt fills *dst from input when it is still empty.
func (a *App) prompt(dst *string, label string) error {
	if *dst != "" {
		return nil
	}
	v, err := GetSimpleText(a.in, label, a.out)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

func (a *App) promptPassword(dst *string, label string) error {
	if *dst != "" {
		return nil
	}
	v, err := GetPassword(a.in, a.stdin, label, a.out)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

// fieldErrors prints every problem in field order and returns the first
// one as the command error.
func (a *App) fieldErrors(fe forms.FieldErrors, order ...string) error {
	var first string
	for _, f := range order {
		msg, ok := fe[f]
		if !ok {
			continue
		}
		if first == "" {
			first = msg
		}
		a.printf("  %s: %s\n", f, msg)
	}
	return errors.New(first)
}

// apiError turns a failed call into the message shown on the form.
func apiError(err error) error {
	return errors.New(client.ErrorMessages(err)[0])
}

func withContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
