// leadform-cli is the companion tool for working with lead-capture form
// definitions: linting documents, dry-running submissions, composing forms
// interactively, and pulling persisted forms from the form service.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/relayform/leadform/internal/api"
	"github.com/relayform/leadform/pkg/formdoc"
	"github.com/relayform/leadform/pkg/submission"
	"github.com/relayform/leadform/pkg/visibility"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "leadform-cli",
		Short:         "Work with lead-capture form definitions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newLintCmd(), newCheckCmd(), newComposeCmd(), newFetchCmd())
	return root
}

func newLintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lint <form-file>",
		Short: "Check a form definition (JSON or YAML) for structural problems",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			form, err := loadForm(args[0])
			if err != nil {
				return err
			}

			issues := formdoc.Lint(form)
			for _, issue := range issues {
				if issue.FieldID != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", issue.FieldID, issue.Message)
					continue
				}
				fmt.Fprintln(cmd.OutOrStdout(), issue.Message)
			}
			if len(issues) > 0 {
				return fmt.Errorf("%d issue(s) found", len(issues))
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <form-file> <submission-file>",
		Short: "Validate a submission against a form, honoring conditional visibility",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			form, err := loadForm(args[0])
			if err != nil {
				return err
			}

			raw, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("read submission: %w", err)
			}
			var data submission.Data
			if err := json.Unmarshal(raw, &data); err != nil {
				return fmt.Errorf("decode submission: %w", err)
			}

			live := form.Fields[:0:0]
			for _, f := range form.Fields {
				if visibility.Visible(f, visibility.Values(data)) {
					live = append(live, f)
				}
			}

			result := submission.Validate(live, data)
			if result.Valid {
				fmt.Fprintln(cmd.OutOrStdout(), "valid")
				return nil
			}
			for _, f := range live {
				if message, ok := result.Errors[f.ID]; ok {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", f.ID, message)
				}
			}
			return fmt.Errorf("%d field(s) failed validation", len(result.Errors))
		},
	}
}

func newFetchCmd() *cobra.Command {
	var baseURL, token, output string

	cmd := &cobra.Command{
		Use:   "fetch <form-id>",
		Short: "Download a persisted form from the form service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := zap.NewDevelopment()
			if err != nil {
				return err
			}
			defer func() {
				_ = logger.Sync()
			}()

			client, err := api.New(api.Options{BaseURL: baseURL, Token: token, Logger: logger})
			if err != nil {
				return err
			}

			form, err := client.FetchForm(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeForm(cmd, form, output)
		},
	}

	cmd.Flags().StringVar(&baseURL, "base-url", "", "form service base URL")
	cmd.Flags().StringVar(&token, "token", "", "bearer token")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	_ = cmd.MarkFlagRequired("base-url")
	return cmd
}

func loadForm(path string) (formdoc.Form, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return formdoc.Form{}, fmt.Errorf("read form: %w", err)
	}
	form, err := formdoc.Decode(raw)
	if err != nil {
		return formdoc.Form{}, err
	}
	return formdoc.Normalize(form), nil
}

func writeForm(cmd *cobra.Command, form formdoc.Form, output string) error {
	encoded, err := json.MarshalIndent(form, "", "  ")
	if err != nil {
		return fmt.Errorf("encode form: %w", err)
	}
	if output == "" {
		fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
		return nil
	}
	if err := os.WriteFile(output, append(encoded, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "form written to %s\n", output)
	return nil
}
