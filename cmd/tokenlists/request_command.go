package main

import (
	"io"
	"os"
	"strings"

	"github.com/dipdup-io/token-lists/internal/request"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newRequestCommand(cc *commandContext) *cobra.Command {
	var (
		bodyPath     string
		labels       []string
		fields       []string
		githubOutput string
	)

	cmd := &cobra.Command{
		Use:   "request",
		Short: "Turn a submitted request form into a synchronizer payload",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := readBody(cmd.InOrStdin(), bodyPath)
			if err != nil {
				return err
			}

			if len(fields) == 0 {
				if env := os.Getenv("FIELD_NAMES"); env != "" {
					fields = strings.Split(env, ",")
				}
			}

			parser := request.NewParser(request.Config{
				Fields:     fields,
				BaseURL:    cc.cfg.LogoBaseURL,
				ImagesPath: cc.cfg.ImagesPath,
			})
			req, err := parser.Parse(body, labels)
			if err != nil {
				return err
			}
			output, err := req.Output()
			if err != nil {
				return err
			}

			if githubOutput == "" {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(output)
			}

			f, err := os.OpenFile(githubOutput, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
			if err != nil {
				return errors.Wrap(err, "opening github output")
			}
			if err := output.WriteGithubOutput(f); err != nil {
				f.Close()
				return err
			}
			return f.Close()
		},
	}

	cmd.Flags().StringVar(&bodyPath, "body", "-", "file with the request body, - for stdin")
	cmd.Flags().StringSliceVarP(&labels, "label", "l", nil, "request labels")
	cmd.Flags().StringSliceVar(&fields, "fields", nil, "form field names (default $FIELD_NAMES or the standard form)")
	cmd.Flags().StringVar(&githubOutput, "github-output", "", "append outputs to this file instead of printing JSON")
	return cmd
}

func readBody(stdin io.Reader, path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", errors.Wrap(err, "reading request body")
	}
	return string(data), nil
}
