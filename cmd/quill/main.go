// Entry point for the application
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"quill/internal/config"
	"quill/internal/gui"
	"quill/internal/log"
	"quill/internal/tui"
)

var (
	version = "dev"

	cfgFile string
	debug   bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "quill [path]",
		Short:   "A minimal text editor with a file browser",
		Long: `Quill is a minimal text editor with a built-in file browser,
syntax-highlighted preview, and write-through autosave.

Run without arguments to open the editor in the current directory,
or pass a directory (or a file, to start in its directory).`,
		Version: version,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default behavior is the desktop editor.
			return runGUI(args)
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/quill/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(guiCmd())
	rootCmd.AddCommand(tuiCmd())
	rootCmd.AddCommand(initCmd())

	return rootCmd
}

// loadConfig resolves the launch configuration, falling back to
// defaults when the file is absent or broken, and applies the optional
// path argument on top. A file argument opens that file and browses its
// directory; a directory argument browses it.
func loadConfig(args []string) (*config.Config, string) {
	var (
		cfg *config.Config
		err error
	)
	if cfgFile != "" {
		cfg, err = config.LoadConfigFile(cfgFile)
	} else {
		cfg, err = config.LoadConfig()
	}
	if err != nil {
		fmt.Printf("Warning: %v. Using default settings.\n", err)
		cfg = config.New()
	}

	if debug {
		cfg.Log.Debug = true
	}
	log.SetDebug(cfg.Log.Debug)

	openFile := ""
	if len(args) > 0 {
		target := args[0]
		if info, statErr := os.Stat(target); statErr == nil {
			if info.IsDir() {
				cfg.Editor.DefaultDirectory = target
			} else {
				cfg.Editor.DefaultDirectory = filepath.Dir(target)
				openFile = target
			}
		} else {
			fmt.Printf("Warning: cannot open %s: %v\n", target, statErr)
		}
	}

	return cfg, openFile
}

func runGUI(args []string) error {
	cfg, openFile := loadConfig(args)

	guiApp, err := gui.NewApp(cfg, openFile)
	if err != nil {
		return fmt.Errorf("error starting editor: %w", err)
	}
	guiApp.Run()
	return nil
}

// guiCmd creates the GUI command for the CLI
func guiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gui [path]",
		Short: "Launch the graphical editor",
		Long:  `Launch the desktop version of Quill. This is also the default when no subcommand is given.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGUI(args)
		},
	}
}

// tuiCmd represents the TUI command
func tuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui [path]",
		Short: "Start the terminal user interface",
		Long:  `Start the terminal version of Quill for editing over SSH or without a display.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, openFile := loadConfig(args)
			if err := tui.Run(cfg, openFile); err != nil {
				return fmt.Errorf("error running TUI: %w", err)
			}
			return nil
		},
	}
}

// initCmd writes a starter configuration file.
func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Long:  `Write a config.yaml with the default settings so you can edit it by hand.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := cfgFile
			if path == "" {
				home, err := os.UserHomeDir()
				if err != nil {
					return err
				}
				path = filepath.Join(home, ".config", "quill", "config.yaml")
			}

			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("config file already exists: %s", path)
			}

			if err := config.SaveConfig(config.New(), path); err != nil {
				return err
			}
			fmt.Printf("Wrote %s\n", path)
			fmt.Printf("Available themes: %s\n", strings.Join(config.ListThemes(), ", "))
			return nil
		},
	}
}
