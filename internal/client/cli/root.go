package cli

import (
	"io"

	"github.com/dmitrijs2005/talksy/internal/client/config"
	"github.com/spf13/cobra"
)

// NewRootCmd builds the talksy command tree reading from in and writing to out.
func NewRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	var (
		configPath string
		serverURL  string
		stateDir   string
	)
	app := newApp(in, out)

	root := &cobra.Command{
		Use:           "talksy",
		Short:         "Talksy command-line client",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var cfgArgs []string
			if configPath != "" {
				cfgArgs = []string{"-config", configPath}
			}
			cfg, err := config.LoadConfig(cfgArgs)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("server") {
				cfg.ServerURL = serverURL
			}
			if cmd.Flags().Changed("state-dir") {
				cfg.StateDir = stateDir
			}
			return app.setup(cfg)
		},
	}

	root.SetIn(in)
	root.SetOut(out)

	pf := root.PersistentFlags()
	pf.StringVarP(&configPath, "config", "c", "", "path to JSON config file")
	pf.StringVar(&serverURL, "server", "", "server URL (e.g. http://localhost:3000)")
	pf.StringVar(&stateDir, "state-dir", "", "directory for the session cookie file")

	root.AddCommand(
		registerCmd(app),
		loginCmd(app),
		logoutCmd(app),
		statusCmd(app),
		openCmd(app),
	)
	return root
}
