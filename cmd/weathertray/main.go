package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/weathercheck/weathertray/internal/envconfig"
	"github.com/weathercheck/weathertray/internal/logutil"
	"github.com/weathercheck/weathertray/internal/tray"
)

func main() {
	// Missing .env is fine; the environment still applies.
	_ = godotenv.Load()

	var (
		city      string
		refresh   time.Duration
		logFormat string
	)

	rootCmd := &cobra.Command{
		Use:   "weathertray [city]",
		Short: "System tray widget showing the current weather for a city",
		Long: "weathertray sits in the system tray and periodically fetches the current\n" +
			"weather for a city, rendering the temperature onto the tray icon. The city\n" +
			"is taken from the arguments, the environment, or detected from your IP.",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if logFormat != "" {
				os.Setenv("WEATHER_TRAY_LOG_FORMAT", logFormat)
			}
			level := slog.LevelInfo
			if envconfig.Debug() {
				level = slog.LevelDebug
			}
			slog.SetDefault(logutil.NewLogger(os.Stderr, level))

			if len(args) > 0 {
				city = strings.TrimSpace(strings.Join(args, " "))
			}
			if city == "" {
				city = envconfig.City()
			}

			app, err := tray.New(tray.Options{City: city, Refresh: refresh})
			if err != nil {
				return err
			}
			app.Run()
			return nil
		},
	}

	rootCmd.Flags().StringVar(&city, "city", "", "city to show weather for (default: autodetect)")
	rootCmd.Flags().DurationVar(&refresh, "refresh", 0, "refresh interval (default: WEATHER_TRAY_REFRESH or 10m)")
	rootCmd.Flags().StringVar(&logFormat, "log-format", "", "log format: text or json")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
