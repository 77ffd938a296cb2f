package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vitalvas/sss/shamir"
)

func (a *app) newSplitCommand() *cobra.Command {
	var (
		number    int
		threshold int
		secret    string
	)

	cmd := &cobra.Command{
		Use:   "split",
		Short: "Split a secret into shares",
		Long: `Split an integer secret into --number shares, any --threshold of which
reconstruct it. Shares are printed one per line as "x y".

When --secret is omitted the secret is read from the terminal without
echo, or from the first line of standard input.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("secret") {
				var err error
				if secret, err = readSecret(cmd.InOrStdin(), cmd.ErrOrStderr()); err != nil {
					return err
				}
			}

			value, err := parseSecret(secret)
			if err != nil {
				return err
			}

			prime, err := a.prime()
			if err != nil {
				return err
			}
			a.checkPrime(prime)

			a.logger.Debug("splitting secret",
				"shares", number, "threshold", threshold, "prime_bits", prime.BitLen())

			shares, err := shamir.Split(value, number, threshold, prime)
			if err != nil {
				if errors.Is(err, shamir.ErrInvalidParameters) {
					return fmt.Errorf("unable to split secret: %w", err)
				}
				return err
			}

			a.logger.Info("secret split", "shares", len(shares), "threshold", threshold)

			return NewPrinter(a.conf.Output, cmd.OutOrStdout()).PrintShares(shares, prime)
		},
	}

	cmd.Flags().IntVarP(&number, "number", "n", 0,
		"number of shares to which the secret will be split")
	cmd.Flags().IntVarP(&threshold, "threshold", "t", 0,
		"minimum number of shares needed to reconstruct the secret")
	cmd.Flags().StringVarP(&secret, "secret", "s", "",
		"the secret to split, as a decimal integer")
	cmd.Flags().StringP("prime", "p", "",
		"prime used as the basis of the Galois field (default, secp256k1, or an integer)")
	cmd.Flags().StringP("output", "o", "",
		"output format (text, json, yaml, base64)")

	_ = cmd.MarkFlagRequired("number")
	_ = cmd.MarkFlagRequired("threshold")

	return cmd
}
