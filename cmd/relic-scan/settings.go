package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ensigniasec/relic-scan/internal/storage"
)

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage persisted navigation and scan settings",
	Long:  "View, change or reset the settings stored in the settings file. Settings from /etc/relic-scan/config.yaml apply underneath the user file.",
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current settings",
	Run: func(cmd *cobra.Command, args []string) {
		configureLogging(jsonOutput)
		s, err := storage.NewOrExistingStorage(settingsFile)
		if err != nil {
			logrus.Fatal(err)
		}
		if jsonOutput {
			out, err := json.MarshalIndent(s.Data.Settings, "", "  ")
			if err != nil {
				logrus.Fatal(err)
			}
			fmt.Fprintln(os.Stdout, string(out))
			return
		}
		fmt.Fprintf(os.Stdout, "# %s\n", s.Path)
		for _, key := range storage.Keys() {
			value, _ := s.Data.Settings.Get(key)
			fmt.Fprintf(os.Stdout, "%s = %s\n", key, value)
		}
	},
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var settingsSetCmd = &cobra.Command{
	Use:   "set [KEY] [VALUE]",
	Short: "Change one setting",
	Long:  "Change one setting. Keys: scan_duration, rotation_sensitivity, wheel_debounce, wheel_step, reduced_motion.",
	Args:  cobra.ExactArgs(2), //nolint:mnd // 'set' requires a key and a value by CLI contract
	Run: func(cmd *cobra.Command, args []string) {
		configureLogging(false)
		s, err := storage.NewOrExistingStorage(settingsFile)
		if err != nil {
			logrus.Fatal(err)
		}
		if err := s.Data.Settings.Set(args[0], args[1]); err != nil {
			logrus.Fatalf("Invalid setting: %v", err)
		}
		if err := s.Save(); err != nil {
			logrus.Fatal(err)
		}
		value, _ := s.Data.Settings.Get(args[0])
		fmt.Fprintf(os.Stdout, "%s set to %s\n", args[0], value)
	},
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default settings",
	Run: func(cmd *cobra.Command, args []string) {
		configureLogging(false)
		s, err := storage.NewOrExistingStorage(settingsFile)
		if err != nil {
			logrus.Fatal(err)
		}
		if err := s.Reset(); err != nil {
			logrus.Fatal(err)
		}
		fmt.Fprintln(os.Stdout, "Settings restored to defaults")
	},
}
