package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/taskbeat/internal/weather"
)

var weatherCmd = &cobra.Command{
	Use:   "weather [city]",
	Short: "Show current weather for a city",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		city := a.cfg.WeatherCity
		if len(args) == 1 {
			city = args[0]
		}
		if city == "" {
			return fmt.Errorf("no city given and weather.city is not configured")
		}

		reading, err := weather.NewClient().CurrentForCity(cmd.Context(), city)
		if err != nil {
			// The fallback reading keeps the display populated; the error
			// still reaches the user.
			fmt.Printf("weather unavailable: %v\n", err)
		}
		daypart := "day"
		if !reading.IsDay {
			daypart = "night"
		}
		label := city
		if reading.Fallback {
			label += " (estimated)"
		}
		fmt.Printf("%s: %.1f°C, wind %.1f km/h, %s\n", label, reading.TemperatureC, reading.WindSpeedKmh, daypart)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(weatherCmd)
}
