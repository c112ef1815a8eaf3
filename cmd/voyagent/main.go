package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	cfgPath string
	listen  string
	debug   bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "voyagent",
		Short:   "Conversational travel search agent",
		Long:    "Voyagent serves a chat UI backed by a hosted language model with flight and hotel search tools.",
		Version: version,
	}
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to the YAML configuration file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the chat UI server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	}
	serveCmd.Flags().StringVarP(&listen, "listen", "l", "", "listen address, overrides the configuration")
	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

const version = "0.1.0"

func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}
