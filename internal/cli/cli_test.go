package cli

import (
	"bytes"
	"encoding/json"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalvas/sss/shamir"
)

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	cmd := NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestSplitAndCombine(t *testing.T) {
	out, _, err := run(t, "", "split", "--number", "4", "--threshold", "3", "--secret", "10", "--prime", "23")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)

	for _, line := range lines {
		share, err := shamir.ParseShare(line)
		require.NoError(t, err)
		assert.Equal(t, 1, share.X.Sign())
		assert.Less(t, share.X.Int64(), int64(23))
	}

	input := "# three shares\n" + strings.Join(lines[1:], "\n") + "\n\n"
	out, _, err = run(t, input, "combine", "--prime", "23")
	require.NoError(t, err)
	assert.Equal(t, "10\n", out)
}

func TestSplitSecretFromStdin(t *testing.T) {
	out, _, err := run(t, "123456789\n", "split", "-n", "5", "-t", "2", "-p", "secp256k1")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)

	out, _, err = run(t, lines[3]+"\n"+lines[0]+"\n", "combine", "-p", "secp256k1")
	require.NoError(t, err)
	assert.Equal(t, "123456789\n", out)
}

func TestSplitDefaultPrimeDocument(t *testing.T) {
	out, _, err := run(t, "", "split", "-n", "3", "-t", "2", "-s", "42", "-o", "yaml")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "prime: "))
	assert.Contains(t, out, "shares:")

	// the prime is taken from the document
	out, _, err = run(t, out, "combine")
	require.NoError(t, err)
	assert.Equal(t, "42\n", out)
}

func TestSplitJSONDocument(t *testing.T) {
	out, _, err := run(t, "", "split", "-n", "3", "-t", "3", "-s", "7", "-p", "7919", "-o", "json")
	require.NoError(t, err)

	var doc struct {
		Prime  string   `json:"prime"`
		Shares []string `json:"shares"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "7919", doc.Prime)
	assert.Len(t, doc.Shares, 3)

	file := filepath.Join(t.TempDir(), "shares.json")
	require.NoError(t, os.WriteFile(file, []byte(out), 0o600))

	out, _, err = run(t, "", "combine", "--file", file, "-o", "json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"secret": "7"}`, out)
}

func TestSplitErrors(t *testing.T) {
	tests := []struct {
		name    string
		stdin   string
		args    []string
		wantErr error
		message string
	}{
		{
			name:    "threshold exceeds shares",
			args:    []string{"split", "-n", "3", "-t", "4", "-s", "5", "-p", "7"},
			wantErr: shamir.ErrInvalidParameters,
		},
		{
			name:    "shares not below prime",
			args:    []string{"split", "-n", "3", "-t", "2", "-s", "5", "-p", "3"},
			wantErr: shamir.ErrInvalidParameters,
		},
		{
			name:    "empty secret",
			stdin:   "\n",
			args:    []string{"split", "-n", "3", "-t", "2"},
			wantErr: errEmptySecret,
		},
		{
			name:    "secret not a number",
			args:    []string{"split", "-n", "3", "-t", "2", "-s", "abc"},
			message: "decimal integer",
		},
		{
			name:    "missing threshold",
			args:    []string{"split", "-n", "3", "-s", "1"},
			message: "threshold",
		},
		{
			name:    "invalid prime",
			args:    []string{"split", "-n", "3", "-t", "2", "-s", "1", "-p", "nope"},
			message: "invalid prime",
		},
		{
			name:    "unknown output",
			args:    []string{"split", "-n", "3", "-t", "2", "-s", "1", "-p", "23", "-o", "xml"},
			message: "unknown output format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := run(t, tt.stdin, tt.args...)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.message != "" {
				assert.Contains(t, err.Error(), tt.message)
			}
		})
	}
}

func TestCombineErrors(t *testing.T) {
	tests := []struct {
		name    string
		stdin   string
		wantErr error
	}{
		{"no shares", "", shamir.ErrNoShares},
		{"duplicate share", "3 8\n3 8\n", shamir.ErrDuplicateShare},
		{"out of range", "3 8\n25 1\n", shamir.ErrOutOfRange},
		{"malformed", "3 8\nfoo\n", shamir.ErrInvalidShareFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := run(t, tt.stdin, "combine", "-p", "23")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCompositePrimeWarning(t *testing.T) {
	_, stderr, err := run(t, "3 8\n4 0\n5 19\n", "combine", "-p", "21", "--log-level", "warn")
	require.NoError(t, err)
	assert.Contains(t, stderr, "modulus does not look prime")
}

func TestCompositeDocumentPrimeWarning(t *testing.T) {
	doc := "prime: \"21\"\nshares: [\"1 1\", \"2 5\"]\n"

	out, stderr, err := run(t, doc, "combine", "--log-level", "warn")
	require.NoError(t, err)
	assert.Equal(t, "18\n", out)
	assert.Contains(t, stderr, "modulus does not look prime")
}

func TestSplitAndCombineBase64(t *testing.T) {
	out, _, err := run(t, "", "split", "-n", "4", "-t", "3", "-s", "10", "-p", "23", "-o", "base64")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)

	for _, line := range lines {
		share, err := shamir.ParseShareBase64(line)
		require.NoError(t, err)
		assert.Equal(t, -1, share.X.Cmp(big.NewInt(23)))
	}

	// base64 and text lines can be mixed
	text, err := shamir.ParseShareBase64(lines[2])
	require.NoError(t, err)

	input := lines[0] + "\n" + lines[3] + "\n" + text.String() + "\n"
	out, _, err = run(t, input, "combine", "-p", "23", "-o", "base64")
	require.NoError(t, err)
	assert.Equal(t, "10\n", out)
}

func TestLogSource(t *testing.T) {
	_, stderr, err := run(t, "3 8\n4 0\n5 19\n",
		"combine", "-p", "23", "--log-level", "debug", "--log-format", "json", "--log-source")
	require.NoError(t, err)

	var entry map[string]any
	first := strings.SplitN(strings.TrimSpace(stderr), "\n", 2)[0]
	require.NoError(t, json.Unmarshal([]byte(first), &entry))

	source, ok := entry["source"].(string)
	require.True(t, ok)
	assert.Regexp(t, `combine\.go:\d+$`, source)
}

func TestConfigFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "sss.yaml")
	require.NoError(t, os.WriteFile(file, []byte("prime: \"23\"\noutput: json\n"), 0o600))

	out, _, err := run(t, "3 8\n4 0\n5 19\n", "--config", file, "combine")
	require.NoError(t, err)
	assert.JSONEq(t, `{"secret": "10"}`, out)
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "sss version "+Version))
}
