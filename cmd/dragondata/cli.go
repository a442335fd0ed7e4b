package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dragon-editor/dragondata/internal/gamefolder"
	"github.com/dragon-editor/dragondata/internal/parser"
	"github.com/dragon-editor/dragondata/internal/render"
	"github.com/dragon-editor/dragondata/internal/util"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// run executes one command line against a. The app is closed whether or not
// the command succeeds.
func run(a *app, args []string, out io.Writer) error {
	defer a.close()

	cmd := newRootCmd(a)
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)
	return cmd.Execute()
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   AppName,
		Short: "Inspect scenario and save files of the game",
		Long: `dragondata decodes the scenario templates under SINARIO, the save slots
under SAVES and the default SAVE.DAT of a game installation, prints them for
inspection, and can export them to a queryable catalog.`,
		Version:       fmt.Sprintf("%s (%s)", CurrentVersion, BuildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.configDir, "config-dir", ".", "Directory containing dragondata.cfg.json")
	pf.String("log-level", "info", "Log level: debug|info|warn|error")
	pf.String("game-folder", "", "Game installation directory")
	_ = viper.BindPFlag("logLevel", pf.Lookup("log-level"))
	_ = viper.BindPFlag("gameFolder", pf.Lookup("game-folder"))

	scanCmd := &cobra.Command{
		Use:   "scan",
		Short: "Load the game folder and print a summary of every file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.openFolder(cmd.Context())
			if err != nil {
				return err
			}
			return render.Folder(cmd.OutOrStdout(), f)
		},
	}

	dumpCmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Decode one file and print every entity in it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := util.TrimQuotes(args[0])
			buf, err := afero.ReadFile(a.fs, path)
			if err != nil {
				return err
			}
			sf, err := parser.NewParser(a.logger).ParseScenarioFile(path, buf)
			if err != nil {
				return err
			}
			return render.ScenarioFile(cmd.OutOrStdout(), sf)
		},
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print one scenario of a loaded file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			saves, _ := cmd.Flags().GetBool("saves")
			fileIndex, _ := cmd.Flags().GetInt("file")
			slot, _ := cmd.Flags().GetInt("slot")

			f, err := a.openFolder(cmd.Context())
			if err != nil {
				return err
			}
			kind := gamefolder.KindScenario
			if saves {
				kind = gamefolder.KindSave
			}
			s, err := f.Select(kind, fileIndex, slot)
			if err != nil {
				return err
			}
			return render.Scenario(cmd.OutOrStdout(), s)
		},
	}
	showCmd.Flags().Bool("saves", false, "Select from save slots instead of scenario templates")
	showCmd.Flags().Int("file", 0, "File position in the list printed by scan")
	showCmd.Flags().Int("slot", 0, "Scenario slot within the file (0-3)")

	applyCmd := &cobra.Command{
		Use:   "apply <save>",
		Short: "Copy a save slot onto SAVE.DAT",
		Long:  "Copy a save slot onto SAVE.DAT. <save> is the file name under SAVES, with or without extension.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.openFolder(cmd.Context())
			if err != nil {
				return err
			}
			name := util.TrimQuotes(args[0])
			for _, saved := range f.SavedFiles() {
				base := filepath.Base(saved.Path)
				if strings.EqualFold(base, name) || strings.EqualFold(util.DisplayName(saved.Path), name) {
					if err := f.ApplySave(saved); err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "applied %s to %s\n", saved.Path, f.DefaultSavePath())
					return nil
				}
			}
			return fmt.Errorf("no save file named %q", name)
		},
	}

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Store every loaded file in the configured catalog backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.openFolder(cmd.Context())
			if err != nil {
				return err
			}
			n, err := a.export(cmd.Context(), f)
			if err != nil {
				return err
			}
			typ := viper.GetString("storage.type")
			if typ == "memory" {
				fmt.Fprintf(cmd.OutOrStdout(), "exported %d files to memory storage (not persisted)\n", n)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %d files to %s storage\n", n, typ)
			return nil
		},
	}

	rootCmd.AddCommand(scanCmd, dumpCmd, showCmd, applyCmd, exportCmd)
	return rootCmd
}
