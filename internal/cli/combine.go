package cli

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"math/big"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vitalvas/sss/internal/config"
	"github.com/vitalvas/sss/shamir"
)

func (a *app) newCombineCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "combine",
		Short: "Reconstruct a secret from shares",
		Long: `Reconstruct the secret from shares read from --file or standard input.

Input is either one share per line, as "x y" or base64 (blank lines and
lines starting with # are ignored), or a json/yaml document as printed
by split. A prime stored in the document is used unless --prime is given.

Fewer shares than the threshold produce an unrelated value without error.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in := cmd.InOrStdin()
			if file != "" {
				f, err := os.Open(file)
				if err != nil {
					return fmt.Errorf("failed to open shares: %w", err)
				}
				defer f.Close()
				in = f
			}

			doc, err := readShares(in)
			if err != nil {
				return err
			}

			prime, err := a.combinePrime(doc, cmd.Flags().Changed("prime"))
			if err != nil {
				return err
			}
			a.checkPrime(prime)

			a.logger.Debug("reconstructing secret", "shares", len(doc.Shares), "prime_bits", prime.BitLen())

			secret, err := shamir.Reconstruct(doc.Shares, prime)
			if err != nil {
				return fmt.Errorf("unable to reconstruct secret: %w", err)
			}

			return NewPrinter(a.conf.Output, cmd.OutOrStdout()).PrintSecret(secret)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "",
		"file with shares (default is standard input)")
	cmd.Flags().StringP("prime", "p", "",
		"prime used as the basis of the Galois field (default, secp256k1, or an integer)")
	cmd.Flags().StringP("output", "o", "",
		"output format (text, json, yaml)")

	return cmd
}

// combinePrime prefers the prime stored in the shares document unless one
// was given on the command line.
func (a *app) combinePrime(doc *sharesDocument, explicit bool) (*big.Int, error) {
	if doc.Prime != "" && !explicit {
		return config.ParsePrime(doc.Prime)
	}
	return a.prime()
}

// parseShareLine accepts the text form "x y" or a single base64 field.
func parseShareLine(text string) (*shamir.Share, error) {
	if len(strings.Fields(text)) == 1 {
		return shamir.ParseShareBase64(text)
	}
	return shamir.ParseShare(text)
}

// readShares accepts "x y" or base64 lines, or a json/yaml shares document.
func readShares(r io.Reader) (*sharesDocument, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read shares: %w", err)
	}

	trimmed := bytes.TrimSpace(data)
	if bytes.HasPrefix(trimmed, []byte("{")) || bytes.HasPrefix(trimmed, []byte("prime:")) ||
		bytes.HasPrefix(trimmed, []byte("shares:")) {
		doc := &sharesDocument{}
		if err := yaml.Unmarshal(trimmed, doc); err != nil {
			return nil, fmt.Errorf("failed to decode shares document: %w", err)
		}
		return doc, nil
	}

	doc := &sharesDocument{}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		share, err := parseShareLine(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		doc.Shares = append(doc.Shares, share)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read shares: %w", err)
	}

	return doc, nil
}
