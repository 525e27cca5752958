package main

import (
	"context"
	"fmt"
	"os"

	"github.com/n9te9/go-graphql-rest-gateway/gateway"
	"github.com/n9te9/go-graphql-rest-gateway/server"
	"github.com/spf13/cobra"
)

var configPath string

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of REST Gateway",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "REST Gateway %s\n", server.Version)
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default gateway configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		return server.Init(configPath)
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST Gateway server",
	RunE:  serve,
}

func serve(cmd *cobra.Command, args []string) error {
	settings, err := gateway.LoadGatewayOption(configPath)
	if err != nil {
		return err
	}

	return server.Run(context.Background(), settings)
}

func main() {
	rootCmd := cobra.Command{
		Use:          "rest-gateway",
		Short:        "GraphQL gateway in front of the lodging REST services",
		SilenceUsage: true,
		RunE:         serve,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "gateway.yaml", "path to the gateway configuration file")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(serveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
