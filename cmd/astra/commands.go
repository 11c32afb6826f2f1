package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/darkawower/astra/internal/apperr"
	"github.com/darkawower/astra/internal/colors"
	"github.com/darkawower/astra/internal/config"
	"github.com/darkawower/astra/internal/core"
	"github.com/darkawower/astra/internal/frequency"
	"github.com/darkawower/astra/internal/generator"
	"github.com/darkawower/astra/internal/theme"
	"github.com/darkawower/astra/internal/ui"
)

var version = "0.1.0"

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "astra",
		Version: version,
		Short:   "Generate desktop wallpapers",
		Long: `Astra generates wallpapers (Julia fractals, solid colors, and Microsoft
Spotlight photographs) and sets them as the desktop background.

Run without a command to honor the config file: clean old wallpapers,
keep the scheduled job in sync, and set a wallpaper from a random generator.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDefault(cmd, a)
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&a.quiet, "quiet", "q", false, "only print errors")

	rootCmd.AddCommand(
		newCleanCmd(a),
		newConfigCmd(a),
		newGenerateCmd(a),
		newCompletionsCmd(),
		newThemesCmd(a),
	)

	return rootCmd
}

func runDefault(cmd *cobra.Command, a *app) error {
	engine, err := a.newEngine()
	if err != nil {
		return err
	}

	if !a.verbose && engine.Config().Frequency != nil && !engine.Platform().Scheduler().IsSupported() {
		a.out.Warning("Scheduling is not supported on %s, ignoring frequency", engine.Platform().Name())
	}

	spinner := ui.NewSpinner(a.out, "Updating wallpaper...")
	spinner.Start()
	result, err := engine.Run(cmd.Context())
	spinner.Stop()
	if err != nil {
		return err
	}

	if result.Skipped {
		a.out.Debug("Wallpaper update not due yet")
		return nil
	}

	a.out.Success("Wallpaper updated")
	a.out.Field("Generator", result.Kind.String())
	a.out.Field("Path", shortenPath(result.Path))
	return nil
}

// newCleanCmd creates the clean command.
func newCleanCmd(a *app) *cobra.Command {
	var (
		olderThan frequency.Frequency
		directory bool
	)

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Delete saved wallpapers",
		Long: `Deletes wallpapers from the wallpapers directory.

With --older-than only wallpapers older than the given frequency
(e.g. 7d, 12h, 1M) are removed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := a.newEngine()
			if err != nil {
				return err
			}

			var age *frequency.Frequency
			if !olderThan.IsZero() {
				age = &olderThan
			}

			n, err := engine.Clean(age, directory)
			if err != nil {
				return err
			}

			if n == 0 {
				a.out.Info("No wallpapers to remove")
			} else {
				a.out.Success("Removed %d %s", n, plural(n, "wallpaper", "wallpapers"))
			}
			if directory && age == nil {
				a.out.Field("Directory", shortenPath(engine.Store().Path()))
			}
			return nil
		},
	}

	cmd.Flags().VarP(&olderThan, "older-than", "o", "only delete wallpapers older than this (e.g. 7d)")
	cmd.Flags().BoolVarP(&directory, "directory", "d", false, "also remove the wallpapers directory")

	return cmd
}

// newConfigCmd creates the config command.
func newConfigCmd(a *app) *cobra.Command {
	var open bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or edit the config file",
		Long:  "Creates an empty config file when none exists, then prints its path or opens it in $EDITOR.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dirs, err := a.directories()
			if err != nil {
				return err
			}
			path := dirs.ConfigFile()

			created, err := config.EnsureFile(path)
			if err != nil {
				return err
			}
			if created {
				a.logger.Info().Str("path", path).Msg("Created config file")
			}

			if !open {
				a.out.Print("%s", path)
				return nil
			}

			if err := a.platform.Editor().Open(path); err != nil {
				return apperr.Wrap(apperr.OS, fmt.Errorf("failed to open config: %w", err))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&open, "open", false, "open the config file in an editor")

	return cmd
}

// newGenerateCmd creates the generate command and one subcommand per
// generator.
func newGenerateCmd(a *app) *cobra.Command {
	var opts core.ApplyOptions

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a wallpaper once",
		Long:  "Generates a wallpaper with the chosen generator, saves it, and sets it as the desktop background.",
		Args:  cobra.NoArgs,
	}

	cmd.PersistentFlags().BoolVar(&opts.NoSave, "no-save", false, "do not keep the image (only with --no-update)")
	cmd.PersistentFlags().BoolVar(&opts.NoUpdate, "no-update", false, "do not change the desktop wallpaper")

	run := func(kind generator.Kind, mode generator.SolidMode) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, a, kind, mode, opts)
		}
	}

	solid := &cobra.Command{
		Use:   "solid",
		Short: "Fill the screen with one color (random by default)",
		Args:  cobra.NoArgs,
		RunE:  run(generator.Solid, generator.RandomMode()),
	}
	solid.AddCommand(
		&cobra.Command{
			Use:   "random",
			Short: "Use a random color",
			Args:  cobra.NoArgs,
			RunE:  run(generator.Solid, generator.RandomMode()),
		},
		&cobra.Command{
			Use:   "rgb R G B",
			Short: "Use an RGB color",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				c, err := parseRGB(args)
				if err != nil {
					return err
				}
				return runGenerate(cmd, a, generator.Solid, generator.RGBMode(c), opts)
			},
		},
		&cobra.Command{
			Use:       "color NAME",
			Short:     "Use a named color",
			Args:      cobra.ExactArgs(1),
			ValidArgs: colorNames(),
			RunE: func(cmd *cobra.Command, args []string) error {
				name, err := colors.ParseName(args[0])
				if err != nil {
					return apperr.Wrap(apperr.Parse, err)
				}
				return runGenerate(cmd, a, generator.Solid, generator.NamedMode(name), opts)
			},
		},
	)

	cmd.AddCommand(
		&cobra.Command{
			Use:   "julia",
			Short: "Render a Julia set fractal",
			Args:  cobra.NoArgs,
			RunE:  run(generator.Julia, generator.RandomMode()),
		},
		solid,
		&cobra.Command{
			Use:   "spotlight",
			Short: "Download a Microsoft Spotlight image",
			Args:  cobra.NoArgs,
			RunE:  run(generator.Spotlight, generator.RandomMode()),
		},
	)

	return cmd
}

func runGenerate(cmd *cobra.Command, a *app, kind generator.Kind, mode generator.SolidMode, opts core.ApplyOptions) error {
	engine, err := a.newEngine()
	if err != nil {
		return err
	}

	spinner := ui.NewSpinner(a.out, fmt.Sprintf("Generating %s wallpaper...", kind))
	spinner.Start()
	img, err := engine.Generate(cmd.Context(), kind, mode, false)
	spinner.Stop()
	if err != nil {
		return err
	}

	result, err := engine.Apply(kind, img, opts)
	if err != nil {
		return err
	}

	switch {
	case result.Applied:
		a.out.Success("Wallpaper updated")
	case result.Saved:
		a.out.Success("Wallpaper saved")
	default:
		a.out.Success("Generated %dx%d %s wallpaper", result.Width, result.Height, kind)
	}
	if result.Path != "" {
		a.out.Field("Path", shortenPath(result.Path))
	}
	return nil
}

func parseRGB(args []string) (colors.Color, error) {
	var rgb [3]uint8
	for i, arg := range args {
		v, err := strconv.ParseUint(arg, 10, 8)
		if err != nil {
			return colors.Color{}, apperr.New(apperr.Parse, "invalid color component %q: must be 0-255", arg)
		}
		rgb[i] = uint8(v)
	}
	return colors.Color{R: rgb[0], G: rgb[1], B: rgb[2]}, nil
}

func colorNames() []string {
	names := make([]string, len(colors.Names))
	for i, n := range colors.Names {
		names[i] = n.Kebab()
	}
	return names
}

// newCompletionsCmd creates the generate-completions command.
func newCompletionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "generate-completions SHELL",
		Short:     "Print a shell completion script",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
		RunE: func(cmd *cobra.Command, args []string) error {
			root := cmd.Root()
			w := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(w, true)
			case "zsh":
				return root.GenZshCompletion(w)
			case "fish":
				return root.GenFishCompletion(w, true)
			default:
				return root.GenPowerShellCompletionWithDesc(w)
			}
		},
	}
}

// newThemesCmd creates the themes command.
func newThemesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List color themes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := a.newEngine()
			if err != nil {
				return err
			}

			builtIn, user := engine.Themes()
			rows := themeRows(a.out, builtIn, "built-in")
			rows = append(rows, themeRows(a.out, user, "user")...)
			a.out.Table([]string{"NAME", "SOURCE", "LIGHT", "DARK"}, rows)
			return nil
		},
	}
}

func themeRows(out *ui.Output, themes []theme.Theme, source string) [][]string {
	rows := make([][]string, 0, len(themes))
	for _, t := range themes {
		light := t.AverageColor(false)
		dark := "-"
		if t.SupportsDarkMode() {
			c := t.AverageColor(true)
			dark = out.Swatch(c) + " " + c.Hex()
		}
		rows = append(rows, []string{t.Name, source, out.Swatch(light) + " " + light.Hex(), dark})
	}
	return rows
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
