package main

import (
	"errors"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/spf13/cobra"

	"github.com/relayform/leadform/pkg/builder"
	"github.com/relayform/leadform/pkg/field"
	"github.com/relayform/leadform/pkg/formdoc"
)

// errComposeAborted marks a user interrupt so the CLI can exit quietly.
var errComposeAborted = errors.New("compose aborted")

func newComposeCmd() *cobra.Command {
	var output, campaignID string

	cmd := &cobra.Command{
		Use:   "compose",
		Short: "Interactively compose a form definition",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			form, err := runCompose(campaignID)
			if err != nil {
				if errors.Is(err, errComposeAborted) {
					return nil
				}
				return err
			}
			return writeForm(cmd, form, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVar(&campaignID, "campaign", "", "campaign id to associate the form with")
	return cmd
}

func runCompose(campaignID string) (formdoc.Form, error) {
	var title, description string
	if err := ask(&survey.Input{Message: "Form title:"}, &title, survey.WithValidator(survey.Required)); err != nil {
		return formdoc.Form{}, err
	}
	if err := ask(&survey.Input{Message: "Description (optional):"}, &description); err != nil {
		return formdoc.Form{}, err
	}

	session := builder.New(builder.Options{})
	for {
		if err := composeField(session); err != nil {
			return formdoc.Form{}, err
		}

		more := false
		if err := ask(&survey.Confirm{Message: "Add another field?", Default: true}, &more); err != nil {
			return formdoc.Form{}, err
		}
		if !more {
			break
		}
	}

	return formdoc.Form{
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		CampaignID:  formdoc.CampaignID(strings.TrimSpace(campaignID)),
		Fields:      session.Snapshot(),
	}, nil
}

func composeField(session *builder.Session) error {
	options := make([]string, 0, len(field.Types()))
	for _, t := range field.Types() {
		options = append(options, string(t))
	}

	var chosen string
	if err := ask(&survey.Select{Message: "Field type:", Options: options}, &chosen); err != nil {
		return err
	}

	added := session.Add(field.Type(chosen))

	var label string
	if err := ask(&survey.Input{Message: "Label:", Default: added.Label}, &label); err != nil {
		return err
	}
	required := false
	if err := ask(&survey.Confirm{Message: "Required?"}, &required); err != nil {
		return err
	}

	session.Update(added.ID, builder.Patch{Label: &label, Required: &required})

	switch field.Type(chosen) {
	case field.TypeRadio, field.TypeCheckbox, field.TypeSelect:
		var rawOptions string
		if err := ask(&survey.Input{Message: "Options (comma separated):"}, &rawOptions); err != nil {
			return err
		}
		choices := splitOptions(rawOptions)
		if len(choices) > 0 {
			session.Update(added.ID, builder.Patch{Options: &choices})
		}
	}

	return nil
}

func splitOptions(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func ask(prompt survey.Prompt, response any, opts ...survey.AskOpt) error {
	if err := survey.AskOne(prompt, response, opts...); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return errComposeAborted
		}
		return err
	}
	return nil
}
