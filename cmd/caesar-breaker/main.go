// Package main provides the CLI entrypoint for caesar-breaker.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/verte-zerg/caesar-breaker/internal/breaker"
	"github.com/verte-zerg/caesar-breaker/internal/cipher"
	"github.com/verte-zerg/caesar-breaker/internal/config"
	"github.com/verte-zerg/caesar-breaker/internal/explorer"
	"github.com/verte-zerg/caesar-breaker/internal/freq"
	"github.com/verte-zerg/caesar-breaker/internal/lang"
	"github.com/verte-zerg/caesar-breaker/internal/model"
	"github.com/verte-zerg/caesar-breaker/internal/report"
)

const (
	defaultLang = "en"

	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

var (
	logger = zap.NewNop()

	verbose bool

	breakLang      string
	breakForce     bool
	breakShowShift bool

	exploreLang string

	encryptShift int
)

// usageError marks failures caused by how the tool was invoked.
type usageError struct {
	err error
}

func (e usageError) Error() string {
	return e.err.Error()
}

func (e usageError) Unwrap() error {
	return e.err
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	rootCmd := newRootCmd()
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	logger = newLogger(stderr, false)

	if len(args) < 2 && !isSubcommand(rootCmd, args) {
		writeUsage(stderr, rootCmd)
		return exitUsage
	}
	args, help := extractHelp(args, valueShorthands(rootCmd))
	if help {
		writeUsage(stdout, rootCmd)
	}
	rootCmd.SetArgs(args)

	cmd, err := rootCmd.ExecuteContextC(ctx)
	defer func() {
		_ = logger.Sync()
	}()
	if err == nil {
		return exitOK
	}
	var uerr usageError
	if errors.As(err, &uerr) {
		fmt.Fprintf(stderr, "error: %v\n", uerr.err)
		writeUsage(stderr, cmd)
		return exitUsage
	}
	fmt.Fprintf(stderr, "error: %v\n", err)
	return exitError
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           `caesar-breaker [OPTIONS] "ciphertext"`,
		Short:         "Break Caesar shift ciphers by brute force or letter frequency",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ArbitraryArgs,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			logger = newLogger(cmd.ErrOrStderr(), verbose)
		},
		RunE: runBreakCmd,
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err: err}
	})

	rootCmd.Flags().BoolVarP(&breakForce, "force", "f", false, "decrypt using brute force, otherwise the shift is calculated from the language")
	rootCmd.Flags().StringVarP(&breakLang, "lang", "l", defaultLang, "language that the plaintext is supposed to be in")
	rootCmd.Flags().BoolVarP(&breakShowShift, "show-shift", "s", false, "prefix each candidate with its shift")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug details to stderr")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newEncryptCmd())
	rootCmd.AddCommand(newExploreCmd())
	rootCmd.AddCommand(newFreqCmd())
	rootCmd.AddCommand(newLangsCmd())

	return rootCmd
}

func runBreakCmd(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return usageError{err: errors.New("missing ciphertext")}
	}
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "lang", &breakLang, fileCfg.Breaker.Lang)
	applyBoolConfig(cmd, "force", &breakForce, fileCfg.Breaker.Force)
	applyBoolConfig(cmd, "show-shift", &breakShowShift, fileCfg.Breaker.ShowShift)

	cfg := model.Config{
		Lang:      breakLang,
		Force:     breakForce,
		ShowShift: breakShowShift,
		Verbose:   verbose,
	}
	req := model.Request{
		Ciphertext: args[len(args)-1],
		Mode:       model.ModeFrequency,
		Lang:       cfg.Lang,
	}
	if cfg.Force {
		req.Mode = model.ModeBruteForce
	}

	cands, err := breaker.New(logger).Run(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("failed to break ciphertext: %w", err)
	}
	if err := report.RenderCandidates(cmd.OutOrStdout(), cands, cfg.ShowShift); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newLangsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "langs",
		Short: "List supported languages and their most frequent letter",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := report.RenderProfiles(cmd.OutOrStdout(), lang.Profiles()); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
			return nil
		},
	}
}

func newFreqCmd() *cobra.Command {
	return &cobra.Command{
		Use:   `freq "text"`,
		Short: "Show the letter frequency table of a text",
		Args:  textArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			text := breaker.Normalize(args[len(args)-1])
			counts := freq.Count(text)
			logger.Debug("counted letters", zap.Int("letters", counts.Total()), zap.Int("distinct", counts.Len()))
			if err := report.RenderFrequencyTable(cmd.OutOrStdout(), counts, report.TerminalWidth()); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
			return nil
		},
	}
}

func newEncryptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   `encrypt --shift N "plaintext"`,
		Short: "Encode a plaintext with a Caesar shift",
		Args:  textArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("shift") {
				return usageError{err: errors.New("--shift is required")}
			}
			out, err := cipher.Encrypt(breaker.Normalize(args[len(args)-1]), encryptShift)
			if err != nil {
				return fmt.Errorf("failed to encrypt: %w", err)
			}
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), out); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&encryptShift, "shift", "n", 0, "number of positions to shift each letter")
	return cmd
}

func newExploreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   `explore "ciphertext"`,
		Short: "Browse all shifts interactively",
		Args:  textArg,
		RunE:  runExploreCmd,
	}
	cmd.Flags().StringVarP(&exploreLang, "lang", "l", defaultLang, "language used to mark the frequency estimate")
	return cmd
}

func runExploreCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "lang", &exploreLang, fileCfg.Breaker.Lang)

	text := breaker.Normalize(args[len(args)-1])
	cands, err := breaker.BruteForce(text)
	if err != nil {
		return fmt.Errorf("failed to break ciphertext: %w", err)
	}
	estimate, estErr := breaker.EstimateShift(freq.Count(text), exploreLang)
	estErrMsg := ""
	if estErr != nil {
		logger.Debug("no frequency estimate", zap.Error(estErr))
		estErrMsg = estErr.Error()
	}

	m := explorer.NewModel(text, cands, estimate, estErr == nil, estErrMsg)
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run explorer: %w", err)
	}
	if cand, ok := m.Selected(); ok {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), cand.Plaintext); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  noArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path, err := ensureConfigFile(config.DefaultConfigPath())
	if err != nil {
		return err
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func ensureConfigFile(path string) (string, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return "", fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return "", fmt.Errorf("failed to write config: %w", err)
		}
		logger.Debug("created config", zap.String("path", path))
	}
	return path, nil
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# caesar-breaker configuration
# Uncomment a value to enable it. CLI flags override config values.

[breaker]
# lang = %q           # Language used for frequency analysis (available: %s)
# force = false         # Always brute force
# show-shift = false    # Prefix each candidate with its shift
`,
		defaultLang,
		strings.Join(lang.Codes(), ", "),
	)
}

func noArgs(_ *cobra.Command, args []string) error {
	if len(args) > 0 {
		return usageError{err: fmt.Errorf("unexpected argument %q", args[0])}
	}
	return nil
}

func textArg(_ *cobra.Command, args []string) error {
	if len(args) == 0 {
		return usageError{err: errors.New("missing text argument")}
	}
	return nil
}

// extractHelp removes -h/--help ahead of any "--" terminator and reports
// whether one was present. An h inside a group of short flags such as -fh is
// removed too, unless it is the value of a shorthand listed in valued.
func extractHelp(args []string, valued map[byte]bool) ([]string, bool) {
	out := make([]string, 0, len(args))
	help := false
	for i, arg := range args {
		if arg == "--" {
			out = append(out, args[i:]...)
			break
		}
		if arg == "-h" || arg == "--help" {
			help = true
			continue
		}
		if rest, ok := stripShortHelp(arg, valued); ok {
			help = true
			if rest != "" {
				out = append(out, "-"+rest)
			}
			continue
		}
		out = append(out, arg)
	}
	return out, help
}

// stripShortHelp drops h from a short flag group and returns the flags left.
func stripShortHelp(arg string, valued map[byte]bool) (string, bool) {
	if len(arg) < 3 || arg[0] != '-' || arg[1] == '-' {
		return "", false
	}
	group := arg[1:]
	var b strings.Builder
	found := false
	for i := 0; i < len(group); i++ {
		c := group[i]
		if !isASCIILetter(c) {
			return "", false
		}
		if c == 'h' {
			found = true
			continue
		}
		b.WriteByte(c)
		if valued[c] {
			b.WriteString(group[i+1:])
			break
		}
	}
	return b.String(), found
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// valueShorthands collects the shorthands, across root and its subcommands,
// whose flags take a value.
func valueShorthands(root *cobra.Command) map[byte]bool {
	out := map[byte]bool{}
	cmds := append([]*cobra.Command{root}, root.Commands()...)
	for _, c := range cmds {
		for _, fs := range []*pflag.FlagSet{c.Flags(), c.PersistentFlags()} {
			fs.VisitAll(func(f *pflag.Flag) {
				if len(f.Shorthand) == 1 && f.Value.Type() != "bool" {
					out[f.Shorthand[0]] = true
				}
			})
		}
	}
	return out
}

// isSubcommand reports whether args name a subcommand, including the help
// command cobra only adds at execution time.
func isSubcommand(root *cobra.Command, args []string) bool {
	if len(args) == 0 {
		return false
	}
	if args[0] == "help" {
		return true
	}
	for _, sub := range root.Commands() {
		if sub.Name() == args[0] || sub.HasAlias(args[0]) {
			return true
		}
	}
	return false
}

func writeUsage(w io.Writer, cmd *cobra.Command) {
	if _, err := fmt.Fprint(w, cmd.UsageString()); err != nil {
		// Best-effort usage output.
		_ = err
	}
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}
