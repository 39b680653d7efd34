package main

import (
	"fmt"
	"os"

	"log/slog"

	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:   "grbpwr-analytics",
		Short: "Service serving grbpwr sales and customer analytics",
		RunE:  run,
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the grbpwr-analytics service version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version)
		},
	}

	migrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending record store migrations and exit",
		RunE:  migrateDB,
	}

	tokenCmd = &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for the analytics API",
		RunE:  issueToken,
	}

	cfgFile  string
	version  string
	subject  string
	tokenTTL string
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "path to configuration file (optional)")
	tokenCmd.Flags().StringVarP(&subject, "subject", "s", "", "token subject, e.g. the analyst name")
	tokenCmd.Flags().StringVar(&tokenTTL, "ttl", "720h", "token lifetime")
	_ = tokenCmd.MarkFlagRequired("subject")
	rootCmd.AddCommand(versionCmd, migrateCmd, tokenCmd)
	if err := rootCmd.Execute(); err != nil {
		slog.Default().Error("can't start the service", slog.String("err", err.Error()))
		os.Exit(-1)
	}
}
