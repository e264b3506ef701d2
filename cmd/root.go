package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nguyentranbao-ct/storefront/internal/app"
	"github.com/nguyentranbao-ct/storefront/internal/config"
	"github.com/nguyentranbao-ct/storefront/internal/server"
	"github.com/nguyentranbao-ct/storefront/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:           "storefront",
	Short:         "Storefront catalog, cart and checkout API",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          serve,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE:  serve,
}

var checkConfigCmd = &cobra.Command{
	Use:   "check-config",
	Short: "Load and validate the configuration, then exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := config.Load()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "config ok: catalog=%s cart=%s listen=%s\n",
			conf.Catalog.Backend, conf.Cart.Storage, conf.Server.Addr())
		return err
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, checkConfigCmd)
}

func serve(cmd *cobra.Command, args []string) error {
	defer func() { _ = logger.Sync() }()
	app.Invoke(server.StartServer).Run()
	return nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
