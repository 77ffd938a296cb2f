package cli

import (
	"log/slog"
	"math/big"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vitalvas/sss/internal/config"
	"github.com/vitalvas/sss/internal/logger"
	"github.com/vitalvas/sss/shamir"
)

type app struct {
	viper      *viper.Viper
	configFile string

	conf   *config.Config
	logger *slog.Logger
}

// NewRootCommand builds the sss command tree. Each call has its own
// configuration state, so commands can be executed independently in tests.
func NewRootCommand() *cobra.Command {
	a := &app{viper: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "sss",
		Short: "Shamir's secret sharing over a prime field",
		Long: `sss splits an integer secret into shares so that any threshold of
them reconstruct it, while fewer reveal nothing about the secret.

All arithmetic happens in GF(p) for a prime p larger than the secret,
the number of shares and the threshold.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	rootCmd.PersistentFlags().StringVar(&a.configFile, "config", "",
		"config file (yaml)")
	rootCmd.PersistentFlags().String("log-level", "",
		"log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "",
		"log format (text, json)")
	rootCmd.PersistentFlags().Bool("log-source", false,
		"add source file and line to log records")

	rootCmd.AddCommand(a.newSplitCommand())
	rootCmd.AddCommand(a.newCombineCommand())
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

// Execute runs the root command with process arguments and standard streams.
func Execute() error {
	return NewRootCommand().Execute()
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	bindings := map[string]string{
		"log.level":  "log-level",
		"log.format": "log-format",
		"log.source": "log-source",
		"prime":      "prime",
		"output":     "output",
	}

	for key, name := range bindings {
		if flag := cmd.Flags().Lookup(name); flag != nil {
			if err := a.viper.BindPFlag(key, flag); err != nil {
				return err
			}
		}
	}

	conf, err := config.Load(a.viper, a.configFile)
	if err != nil {
		return err
	}

	a.conf = conf
	a.logger = logger.New(logger.Config{
		Level:      conf.Log.Level,
		Format:     conf.Log.Format,
		AddSource:  conf.Log.Source,
		SourcePath: conf.Log.SourcePath,
		Output:     cmd.ErrOrStderr(),
	})

	return nil
}

// prime resolves the configured prime.
func (a *app) prime() (*big.Int, error) {
	return a.conf.PrimeInt()
}

// checkPrime warns when a custom modulus fails a probabilistic primality test.
func (a *app) checkPrime(p *big.Int) {
	if !wellKnownPrime(p) && !p.ProbablyPrime(20) {
		a.logger.Warn("modulus does not look prime, inverses may not exist", "bits", p.BitLen())
	}
}

func wellKnownPrime(p *big.Int) bool {
	return p.Cmp(shamir.DefaultPrime()) == 0 || p.Cmp(shamir.Prime256()) == 0
}
