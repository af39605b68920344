package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mohammad-safakhou/ferret/config"
	srv "github.com/mohammad-safakhou/ferret/internal/server"
)

func main() {
	var root = &cobra.Command{Use: "ferret"}

	var cfgPath string
	root.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "config file (default is .)")

	var serveAddr string
	var serve = &cobra.Command{
		Use:   "serve",
		Short: "Run HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig(cfgPath)
			if serveAddr == "" {
				serveAddr = getenv("FERRET_HTTP_ADDR", cfg.Server.Address)
			}
			cfg.Server.Address = serveAddr
			return srv.Run(cfg)
		},
	}
	serve.Flags().StringVar(&serveAddr, "addr", "", "listen address")

	root.AddCommand(serve, chatCMD(&cfgPath))
	_ = root.Execute()
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}
