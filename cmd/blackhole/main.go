package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/blackhole/internal/astro"
	"github.com/san-kum/blackhole/internal/config"
	"github.com/san-kum/blackhole/internal/gui"
	"github.com/san-kum/blackhole/internal/logger"
	"github.com/san-kum/blackhole/internal/storage"
	"github.com/san-kum/blackhole/internal/tui"
)

var (
	dataDir    string
	logLevel   string
	logJSON    bool
	configFile string
	preset     string
	watch      bool
	width      int32
	height     int32
	seed       int64
	format     string
	snapshotID string

	log *slog.Logger
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	nameStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
)

// main registers the commands, opens the window when no subcommand is
// given, and exits with status 1 on error.
func main() {
	env := config.LoadEnv()

	rootCmd := &cobra.Command{
		Use:   "blackhole",
		Short: "real-time black hole and accretion disc visualization",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log = logger.Init(logLevel, logJSON)
		},
		RunE: runWindow,
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", env.DataDir, "snapshot directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", env.LogLevel, "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "log as json")
	addWindowFlags(rootCmd, env)

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "open the visualization window",
		Args:  cobra.NoArgs,
		RunE:  runWindow,
	}
	addWindowFlags(runCmd, env)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	infoCmd := &cobra.Command{
		Use:   "info [preset]",
		Short: "show derived quantities and the disc temperature profile",
		Args:  cobra.MaximumNArgs(1),
		RunE:  showInfo,
	}
	infoCmd.Flags().StringVar(&configFile, "config", env.ConfigPath, "config file path (yaml)")

	exportCmd := &cobra.Command{
		Use:   "export [preset] [path]",
		Short: "write a preset as yaml or json",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  exportPreset,
	}
	exportCmd.Flags().StringVar(&format, "format", "yaml", "output format (yaml, json)")

	tuneCmd := &cobra.Command{
		Use:   "tune [path]",
		Short: "edit a config file in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTuner,
	}
	tuneCmd.Flags().StringVar(&preset, "preset", env.Preset, "start from this preset when the file does not exist")

	snapshotsCmd := &cobra.Command{
		Use:   "snapshots",
		Short: "list saved snapshots",
		Args:  cobra.NoArgs,
		RunE:  listSnapshots,
	}

	showCmd := &cobra.Command{
		Use:   "show [id]",
		Short: "show a snapshot's parameters and temperature profile",
		Args:  cobra.ExactArgs(1),
		RunE:  showSnapshot,
	}
	snapshotsCmd.AddCommand(showCmd)

	rootCmd.AddCommand(runCmd, presetsCmd, infoCmd, exportCmd, tuneCmd, snapshotsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addWindowFlags(cmd *cobra.Command, env config.Env) {
	cmd.Flags().StringVar(&preset, "preset", env.Preset, "preset name, or \"random\"")
	cmd.Flags().StringVar(&configFile, "config", env.ConfigPath, "config file path (yaml)")
	cmd.Flags().BoolVar(&watch, "watch", false, "reload the config file when it changes")
	cmd.Flags().Int32Var(&width, "width", 1280, "window width")
	cmd.Flags().Int32Var(&height, "height", 720, "window height")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed for stars and noise")
	cmd.Flags().StringVar(&snapshotID, "snapshot", "", "start from a saved snapshot (config and seed)")
}

func runWindow(cmd *cobra.Command, args []string) error {
	if watch && configFile == "" {
		return fmt.Errorf("--watch needs --config")
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	var cfg config.Config
	var err error
	if snapshotID != "" {
		snap, err := st.Restore(snapshotID)
		if err != nil {
			return err
		}
		cfg = snap.Config
		if !cmd.Flags().Changed("seed") {
			seed = snap.Meta.Seed
		}
	} else {
		cfg, err = config.Resolve(configFile, preset)
		if err != nil {
			return err
		}
	}

	return gui.Run(gui.Options{
		Config:     cfg,
		ConfigPath: configFile,
		Watch:      watch,
		Width:      width,
		Height:     height,
		Seed:       seed,
		Store:      st,
		Logger:     log,
	})
}

func listPresets(cmd *cobra.Command, args []string) error {
	fmt.Println(titleStyle.Render("presets"))
	for _, p := range config.Presets {
		fmt.Printf("  %s  %s\n", nameStyle.Render(fmt.Sprintf("%-32s", p.Name)), dimStyle.Render(p.Description))
	}
	return nil
}

func pickConfig(args []string) (config.Config, error) {
	if len(args) > 0 {
		return config.GetPreset(args[0])
	}
	return config.Resolve(configFile, "")
}

func showInfo(cmd *cobra.Command, args []string) error {
	cfg, err := pickConfig(args)
	if err != nil {
		return err
	}
	d := astro.Derive(cfg)

	fmt.Println(titleStyle.Render(cfg.Name))
	if cfg.Description != "" {
		fmt.Println(dimStyle.Render(cfg.Description))
	}
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, param := range config.Params() {
		v, _ := cfg.Get(param)
		r, _ := config.RangeOf(param)
		fmt.Fprintf(w, "%s\t%g\t%s\n", r.Label, v, r.Unit)
	}
	fmt.Fprintln(w, "\t\t")
	fmt.Fprintf(w, "Schwarzschild radius\t%.3f\t\n", d.SchwarzschildRadius)
	fmt.Fprintf(w, "Disc radii\t%.3f – %.3f\t\n", d.InnerRadius, d.OuterRadius)
	fmt.Fprintf(w, "Base temperature\t%.0f\tK\n", d.BaseTemperature)
	fmt.Fprintf(w, "Camera roll\t%.3f\trad\n", d.Roll)
	w.Flush()
	fmt.Println()

	graph := asciigraph.Plot(astro.TemperatureProfile(d, 64),
		asciigraph.Height(10),
		asciigraph.Width(64),
		asciigraph.Caption("disc temperature (K), inner → outer edge"),
	)
	fmt.Println(graph)
	return nil
}

func exportPreset(cmd *cobra.Command, args []string) error {
	cfg, err := config.GetPreset(args[0])
	if err != nil {
		return err
	}

	if len(args) < 2 {
		switch strings.ToLower(format) {
		case "yaml", "yml":
			return config.Write(os.Stdout, cfg)
		case "json":
			return storage.WriteJSON(os.Stdout, cfg)
		}
		return fmt.Errorf("unknown format %q", format)
	}

	path := args[1]
	switch strings.ToLower(format) {
	case "yaml", "yml":
		err = config.Save(path, cfg)
	case "json":
		err = storage.ExportJSON(path, cfg)
	default:
		err = fmt.Errorf("unknown format %q", format)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "exported %s to %s\n", cfg.Name, path)
	return nil
}

func runTuner(cmd *cobra.Command, args []string) error {
	path := configFile
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		path = "blackhole.yaml"
	}

	cfg, err := config.Load(path)
	if os.IsNotExist(err) {
		cfg, err = config.Resolve("", preset)
	}
	if err != nil {
		return err
	}

	p := tea.NewProgram(tui.NewTuner(path, cfg), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func listSnapshots(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	snaps, err := st.List()
	if err != nil {
		return err
	}

	if len(snaps) == 0 {
		fmt.Println("no snapshots")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTIME\tMASS\tT0\tFRAME")
	for _, s := range snaps {
		frame := "-"
		if s.Width > 0 {
			frame = fmt.Sprintf("%dx%d", s.Width, s.Height)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%.0f\t%.0fK\t%s\n",
			s.ID,
			s.Name,
			s.Timestamp.Format("2006-01-02 15:04:05"),
			s.Config.Mass,
			s.Derived["base_temperature"],
			frame,
		)
	}
	return w.Flush()
}

func showSnapshot(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	snap, err := st.Restore(args[0])
	if err != nil {
		return err
	}
	meta := snap.Meta

	fmt.Println(titleStyle.Render(meta.ID))
	fmt.Println(dimStyle.Render(meta.Timestamp.Format("2006-01-02 15:04:05")))
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Name\t%s\t\n", snap.Config.Name)
	for _, param := range config.Params() {
		v, _ := snap.Config.Get(param)
		r, _ := config.RangeOf(param)
		fmt.Fprintf(w, "%s\t%g\t%s\n", r.Label, v, r.Unit)
	}
	fmt.Fprintf(w, "Seed\t%d\t\n", meta.Seed)
	frame := "none"
	if snap.Frame != "" {
		frame = fmt.Sprintf("%s (%dx%d)", snap.Frame, meta.Width, meta.Height)
	}
	fmt.Fprintf(w, "Frame\t%s\t\n", frame)
	w.Flush()

	if len(snap.Temps) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(snap.Temps,
			asciigraph.Height(10),
			asciigraph.Width(64),
			asciigraph.Caption(fmt.Sprintf("disc temperature (K), r = %.2f → %.2f", snap.Radii[0], snap.Radii[len(snap.Radii)-1])),
		))
	}

	fmt.Println()
	fmt.Println(dimStyle.Render("blackhole run --snapshot " + meta.ID))
	return nil
}
