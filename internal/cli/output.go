package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"math/big"

	"gopkg.in/yaml.v3"

	"github.com/vitalvas/sss/shamir"
)

// OutputFormat defines the output format type
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"

	// OutputFormatBase64 prints each share in its binary form, base64 encoded.
	// Secrets are printed as in text mode.
	OutputFormatBase64 OutputFormat = "base64"
)

type sharesDocument struct {
	Prime  string          `json:"prime" yaml:"prime"`
	Shares []*shamir.Share `json:"shares" yaml:"shares"`
}

type secretDocument struct {
	Secret string `json:"secret" yaml:"secret"`
}

// Printer handles formatted output
type Printer struct {
	format OutputFormat
	writer io.Writer
}

func NewPrinter(format string, writer io.Writer) *Printer {
	return &Printer{
		format: OutputFormat(format),
		writer: writer,
	}
}

// PrintShares writes shares one per line as "x y" in text mode.
func (p *Printer) PrintShares(shares []*shamir.Share, prime *big.Int) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(sharesDocument{Prime: prime.String(), Shares: shares})
	case OutputFormatYAML:
		return p.printYAML(sharesDocument{Prime: prime.String(), Shares: shares})
	case OutputFormatText:
		for _, share := range shares {
			if _, err := fmt.Fprintln(p.writer, share.String()); err != nil {
				return err
			}
		}
		return nil
	case OutputFormatBase64:
		for _, share := range shares {
			if _, err := fmt.Fprintln(p.writer, share.Base64()); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// PrintSecret writes the reconstructed value.
func (p *Printer) PrintSecret(secret *big.Int) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(secretDocument{Secret: secret.String()})
	case OutputFormatYAML:
		return p.printYAML(secretDocument{Secret: secret.String()})
	case OutputFormatText, OutputFormatBase64:
		_, err := fmt.Fprintln(p.writer, secret.String())
		return err
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

func (p *Printer) printJSON(v any) error {
	encoder := json.NewEncoder(p.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func (p *Printer) printYAML(v any) error {
	encoder := yaml.NewEncoder(p.writer)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return err
	}
	return encoder.Close()
}
