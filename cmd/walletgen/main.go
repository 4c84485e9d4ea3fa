// Package main provides the walletgen CLI tool for deriving wallets from seed phrases.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	walletgen "github.com/Quincy-seun/Wallet-Generator-From-Seed-Phrase"
	"github.com/Quincy-seun/Wallet-Generator-From-Seed-Phrase/internal/config"
	"github.com/Quincy-seun/Wallet-Generator-From-Seed-Phrase/internal/log"
	"github.com/Quincy-seun/Wallet-Generator-From-Seed-Phrase/internal/output"
	"github.com/Quincy-seun/Wallet-Generator-From-Seed-Phrase/internal/seedfile"
	"github.com/mattn/go-isatty"
	"github.com/mattn/go-tty"
	mcobra "github.com/muesli/mango-cobra"
	"github.com/muesli/roff"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"github.com/tyler-smith/go-bip39"
	"github.com/tyler-smith/go-bip39/wordlists"
	"golang.org/x/term"
	lang "golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

const (
	maxWidth = 72
)

var (
	baseStyle  = lipgloss.NewStyle().Margin(0, 0, 1, 2) //nolint:mnd
	red        = lipgloss.Color(completeColor("#FF4444", "196", "9"))
	green      = lipgloss.Color(completeColor("#04B575", "35", "2"))
	errorStyle = baseStyle.
			Foreground(red).
			Background(lipgloss.AdaptiveColor{Light: completeColor("#FFEBEB", "255", "7"), Dark: completeColor("#2B1A1A", "235", "8")}).
			Padding(1, 2) //nolint:mnd
	headerStyle = lipgloss.NewStyle().Bold(true)
	okStyle     = lipgloss.NewStyle().Foreground(green)

	v = config.New()

	configFile    string
	askPassphrase bool
	genNumber     int
	genWords      int
	genFile       string

	rootCmd = &cobra.Command{
		Use:   "walletgen",
		Short: "Derive wallets for many chains from BIP39 seed phrases",
		Long: `Derive wallets for many chains from BIP39 seed phrases.

Every seed phrase in the input file is turned into N wallets per chain.
Addresses and private keys are written to one directory per chain:

    <out>/<chain>/wallets.txt
    <out>/<chain>/private_keys.txt

Line n of both files belongs to the same wallet.

SECURITY TIP: The output directory contains private keys. Run walletgen
on an offline machine and keep the output encrypted at rest.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.BindFlags(v, cmd.Flags()); err != nil {
				return err
			}
			log.Init(os.Stderr, v.GetString("log_level"), v.GetBool("log_json"))
			return setLanguage(v.GetString("language"))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	deriveCmd = &cobra.Command{
		Use:   "derive [seed-file]",
		Short: "Derive wallets from a file of seed phrases",
		Long: `Derive wallets from a file of seed phrases.

The seed file holds one phrase per line. Blank lines and the headers written
by "walletgen generate" are ignored. Use "-" to read from standard input.

A malformed seed phrase is reported and skipped; the remaining phrases are
still processed.`,
		Example: `  walletgen derive seedphrase.txt --count 10
  walletgen derive seedphrase.txt -n 5 --chains cosmos,ethereum,solana
  walletgen derive seedphrase.txt --ask-passphrase --jsonl
  cat seedphrase.txt | walletgen derive - --out ./wallets`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				v.Set("input", args[0])
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			if askPassphrase {
				pass, err := askSeedPassphrase()
				if err != nil {
					return err
				}
				cfg.Passphrase = string(pass)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runDerive(ctx, cfg, cmd.OutOrStdout())
		},
	}

	generateCmd = &cobra.Command{
		Use:   "generate",
		Short: "Generate new random seed phrases",
		Long: `Generate new random seed phrases.

Valid word counts are: 12, 15, 18, 21, or 24. The output can be fed straight
back into "walletgen derive".`,
		Example: `  walletgen generate -n 5
  walletgen generate -n 10 --words 24 --file seedphrase.txt`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			phrases, err := seedfile.Generate(genNumber, genWords)
			if err != nil {
				return err
			}

			if genFile == "" || genFile == "-" {
				return seedfile.Write(cmd.OutOrStdout(), phrases)
			}

			// G304: genFile is user-provided input, which is expected for a CLI tool
			f, err := os.OpenFile(genFile, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600) //nolint:gosec
			if err != nil {
				return fmt.Errorf("could not create %s: %w", genFile, err)
			}
			if err := seedfile.Write(f, phrases); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("could not close %s: %w", genFile, err)
			}
			log.CLI.Info().Int("phrases", len(phrases)).Str("file", genFile).Msg("saved seed phrases")
			return nil
		},
	}

	chainsCmd = &cobra.Command{
		Use:   "chains",
		Short: "List the configured chains",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			chains, err := walletgen.NewChains(cfg.ChainConfigs())
			if err != nil {
				return err
			}
			return printChains(cmd.OutOrStdout(), chains)
		},
	}

	manCmd = &cobra.Command{
		Use:          "man",
		Args:         cobra.NoArgs,
		Short:        "generate man pages",
		Hidden:       true,
		SilenceUsage: true,
		RunE: func(*cobra.Command, []string) error {
			manPage, err := mcobra.NewManPage(1, rootCmd)
			if err != nil {
				//nolint: wrapcheck
				return err
			}
			manPage = manPage.WithSection("Copyright", "(C) 2025-2026 complex.\n"+
				"Released under MIT license.")
			fmt.Println(manPage.Build(roff.NewDocument()))
			return nil
		},
	}

	// completionCmd generates shell completion scripts for bash, zsh, fish, and powershell.
	completionCmd = &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion script",
		Long: `Generate shell completion script for walletgen.

To load completions:

Bash:
  $ source <(walletgen completion bash)

Zsh:
  $ walletgen completion zsh > "${fpath[1]}/_walletgen"

Fish:
  $ walletgen completion fish | source

PowerShell:
  PS> walletgen completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		SilenceUsage:          true,
		RunE: func(_ *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return rootCmd.GenBashCompletion(os.Stdout)
			case "zsh":
				return rootCmd.GenZshCompletion(os.Stdout)
			case "fish":
				return rootCmd.GenFishCompletion(os.Stdout, true)
			case "powershell":
				return rootCmd.GenPowerShellCompletionWithDesc(os.Stdout)
			default:
				return fmt.Errorf("unknown shell: %s", args[0])
			}
		},
	}
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configFile, "config", "", "", "Config file (default ./walletgen.yaml if present)")
	pf.StringP("language", "l", "en", "Seed phrase language")
	pf.String("log-level", "info", "Log level (debug, info, warn, error)")
	pf.Bool("log-json", false, "Write logs as JSON")

	df := deriveCmd.Flags()
	df.StringP("input", "i", "seedphrase.txt", "Seed phrase file")
	df.StringP("out", "o", "wallets", "Output directory")
	df.Uint32P("count", "n", 1, "Wallets to derive per seed phrase and chain")
	df.StringSliceP("chains", "c", nil, "Chains to derive (comma-separated, default all)")
	df.Int("workers", 0, "Seed phrases processed in parallel (default number of CPUs)")
	df.String("passphrase", "", "BIP39 passphrase applied to every seed phrase")
	df.BoolVar(&askPassphrase, "ask-passphrase", false, "Prompt for the BIP39 passphrase")
	df.Bool("jsonl", false, "Also write wallets.jsonl with the full derivation records")
	df.Bool("per-seed", false, "Also write per-seed address and private key lists")
	deriveCmd.MarkFlagsMutuallyExclusive("passphrase", "ask-passphrase")
	_ = deriveCmd.RegisterFlagCompletionFunc("chains", completeChains)

	generateCmd.Flags().IntVarP(&genNumber, "number", "n", 1, "Number of seed phrases")
	generateCmd.Flags().IntVarP(&genWords, "words", "w", 12, "Words per seed phrase (12, 15, 18, 21, 24)")
	generateCmd.Flags().StringVarP(&genFile, "file", "f", "", "Write to a file instead of standard output")

	rootCmd.AddCommand(deriveCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(chainsCmd)
	rootCmd.AddCommand(manCmd)
	rootCmd.AddCommand(completionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		renderError(err)
		os.Exit(1)
	}
}

// loadConfig reads the merged configuration and applies its logging and
// language settings, which a config file may have changed.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(v, configFile)
	if err != nil {
		return nil, err
	}
	log.Init(os.Stderr, cfg.LogLevel, cfg.LogJSON)
	if err := setLanguage(cfg.Language); err != nil {
		return nil, err
	}
	return cfg, nil
}

// runDerive loads the seed phrases and drains the batch into the output
// directory. Per-wallet failures are logged and counted; the run only fails
// on I/O errors or interruption.
func runDerive(ctx context.Context, cfg *config.Config, stdout io.Writer) (err error) {
	chains, err := cfg.Chains()
	if err != nil {
		return err
	}

	phrases, err := seedfile.Load(cfg.Input)
	if err != nil {
		return err
	}
	if len(phrases) == 0 {
		return fmt.Errorf("no seed phrases found in %s", cfg.Input)
	}

	opts := []output.Option{output.WithLogger(log.Output)}
	if cfg.JSONLines {
		opts = append(opts, output.WithJSONLines())
	}
	if cfg.PerSeed {
		opts = append(opts, output.WithPerSeedFiles())
	}
	w, err := output.Open(cfg.Out, opts...)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, w.Close())
	}()

	batch := &walletgen.Batch{
		Phrases:    phrases,
		Count:      cfg.Count,
		Chains:     chains,
		Passphrase: cfg.Passphrase,
		Workers:    cfg.Workers,
		Logger:     &log.Batch,
	}

	log.CLI.Info().
		Int("phrases", len(phrases)).
		Uint32("count", cfg.Count).
		Int("chains", len(chains)).
		Int("workers", cfg.Workers).
		Msg("deriving wallets")

	start := time.Now()
	summary, err := batch.Run(ctx, w)
	if err != nil {
		return fmt.Errorf("could not derive wallets: %w", err)
	}

	printSummary(stdout, summary, cfg.Out, time.Since(start))
	return nil
}

func printSummary(w io.Writer, s walletgen.Summary, dir string, took time.Duration) {
	msg := fmt.Sprintf("%d wallets from %d seed phrases saved to %s in %s",
		s.Wallets, s.Seeds, dir, took.Round(time.Millisecond))
	if isTerminal(w) {
		msg = okStyle.Render(msg)
	}
	_, _ = fmt.Fprintln(w, msg)
	if n := len(s.Failures); n > 0 {
		_, _ = fmt.Fprintf(w, "%d derivations failed, see the log for details\n", n)
	}
}

func printChains(w io.Writer, chains []*walletgen.Chain) error {
	header := fmt.Sprintf("%-10s %-9s %-6s %-8s %s", "NAME", "FAMILY", "COIN", "PREFIX", "PATH (index 0)")
	if isTerminal(w) {
		header = headerStyle.Render(header)
	}
	if _, err := fmt.Fprintln(w, header); err != nil {
		return err //nolint:wrapcheck
	}
	for _, c := range chains {
		path, err := c.Path(0, 0, 0)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%-10s %-9s %-6d %-8s %s\n", c.Name, c.Family, c.CoinType, c.Prefix, path); err != nil {
			return err //nolint:wrapcheck
		}
	}
	return nil
}

func completeChains(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	names := make([]string, 0, len(walletgen.DefaultChainConfigs()))
	for _, c := range walletgen.DefaultChainConfigs() {
		names = append(names, c.Name)
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

func getWidth(maxw int) int {
	w, _, err := term.GetSize(int(os.Stderr.Fd())) //nolint: gosec
	if err != nil || w > maxw {
		return maxWidth
	}
	return w
}

func renderBlock(w io.Writer, s lipgloss.Style, width int, str string) {
	_, _ = io.WriteString(w, s.Width(width).Render(str))
	_, _ = io.WriteString(w, "\n")
}

// renderError prints err to stderr, as a styled block when stderr is a
// terminal.
func renderError(err error) {
	if !isatty.IsTerminal(os.Stderr.Fd()) {
		_, _ = fmt.Fprintln(os.Stderr, "Error:", err)
		return
	}
	b := strings.Builder{}
	b.WriteRune('\n')
	renderBlock(&b, errorStyle, getWidth(maxWidth), err.Error())
	_, _ = fmt.Fprint(os.Stderr, b.String())
}

func completeColor(truecolor, ansi256, ansi string) string {
	//nolint: exhaustive
	switch lipgloss.ColorProfile() {
	case termenv.TrueColor:
		return truecolor
	case termenv.ANSI256:
		return ansi256
	}
	return ansi
}

// setLanguage sets the language of the bip39 mnemonic seed.
func setLanguage(language string) error {
	list := getWordlist(language)
	if list == nil {
		return fmt.Errorf("this language is not supported")
	}
	bip39.SetWordList(list)
	return nil
}

func sanitizeLang(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), " ", "-")
}

var wordLists = map[lang.Tag][]string{
	lang.Chinese:              wordlists.ChineseSimplified,
	lang.SimplifiedChinese:    wordlists.ChineseSimplified,
	lang.TraditionalChinese:   wordlists.ChineseTraditional,
	lang.Czech:                wordlists.Czech,
	lang.AmericanEnglish:      wordlists.English,
	lang.BritishEnglish:       wordlists.English,
	lang.English:              wordlists.English,
	lang.French:               wordlists.French,
	lang.Italian:              wordlists.Italian,
	lang.Japanese:             wordlists.Japanese,
	lang.Korean:               wordlists.Korean,
	lang.Spanish:              wordlists.Spanish,
	lang.EuropeanSpanish:      wordlists.Spanish,
	lang.LatinAmericanSpanish: wordlists.Spanish,
}

func getWordlist(language string) []string {
	language = sanitizeLang(language)
	tag := lang.Make(language)
	en := display.English.Languages() // default language name matcher
	for t := range wordLists {
		if sanitizeLang(en.Name(t)) == language {
			tag = t
			break
		}
	}
	if tag == lang.Und { // Unknown language
		return nil
	}
	base, _ := tag.Base()
	btag := lang.MustParse(base.String())
	wl := wordLists[tag]
	if wl == nil {
		return wordLists[btag]
	}
	return wl
}

func readPassword(msg string) ([]byte, error) {
	_, _ = fmt.Fprint(os.Stderr, msg)
	t, err := tty.Open()
	if err != nil {
		return nil, fmt.Errorf("could not open tty: %w", err)
	}
	defer t.Close()                                     //nolint: errcheck
	pass, err := term.ReadPassword(int(t.Input().Fd())) //nolint: gosec
	if err != nil {
		return nil, fmt.Errorf("could not read passphrase: %w", err)
	}
	return pass, nil
}

func askSeedPassphrase() ([]byte, error) {
	defer fmt.Fprintf(os.Stderr, "\n")
	return readPassword("Enter the BIP39 passphrase for all seed phrases: ")
}
