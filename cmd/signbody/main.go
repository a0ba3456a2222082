package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jessevdk/go-flags"

	"cmdbot/config"
	"cmdbot/services/signature"
)

type Options struct {
	Secret string `long:"secret" env:"SHARED_SECRET" description:"Base64 shared secret"`
	Body   string `long:"body" description:"Request body to sign; read from stdin when empty"`
	Text   string `long:"text" description:"Message text; signs {\"text\": <text>} instead of --body"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	parser.Usage = "[OPTIONS]\n\nPrints the Authorization header value for a webhook body."

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if err := run(opts, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(opts Options, stdin io.Reader, stdout io.Writer) error {
	secret, err := config.DecodeSecret(opts.Secret)
	if err != nil {
		return err
	}

	body, err := buildBody(opts, stdin)
	if err != nil {
		return err
	}

	verifier := signature.NewVerifier(secret)
	fmt.Fprintf(stdout, "Authorization: %s\n", verifier.Sign(body))
	fmt.Fprintf(stdout, "Body: %s\n", body)
	return nil
}

func buildBody(opts Options, stdin io.Reader) ([]byte, error) {
	switch {
	case opts.Text != "" && opts.Body != "":
		return nil, fmt.Errorf("--text and --body are mutually exclusive")
	case opts.Text != "":
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(map[string]string{"text": opts.Text}); err != nil {
			return nil, fmt.Errorf("failed to encode body: %w", err)
		}
		return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
	case opts.Body != "":
		return []byte(opts.Body), nil
	default:
		body, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read body from stdin: %w", err)
		}
		return body, nil
	}
}
