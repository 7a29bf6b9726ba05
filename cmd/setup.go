package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/blacktop/termtweet/internal/termtweet"
	"github.com/blacktop/termtweet/internal/ui"
	"github.com/blacktop/termtweet/internal/workflow"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const dashboardURL = "https://developer.twitter.com/en/portal/dashboard"

type setupField struct {
	title string
	value func(*termtweet.Credentials) *string
}

var setupFields = []setupField{
	{title: "Twitter API Key", value: func(c *termtweet.Credentials) *string { return &c.APIKey }},
	{title: "Twitter API Secret", value: func(c *termtweet.Credentials) *string { return &c.APISecret }},
	{title: "Access Token", value: func(c *termtweet.Credentials) *string { return &c.AccessToken }},
	{title: "Access Token Secret", value: func(c *termtweet.Credentials) *string { return &c.AccessTokenSecret }},
	{title: "Bearer Token", value: func(c *termtweet.Credentials) *string { return &c.BearerToken }},
}

func (a *app) runSetup(cmd *cobra.Command, printer *ui.Printer) error {
	printer.Plain("=== TermTweet Setup ===")
	printer.Plain("Let's set up your Twitter API credentials.")
	printer.Plain("Get these from: %s", dashboardURL)
	printer.Warn("Make sure your app has 'Read and Write' permissions!")

	creds, err := a.prompt(cmd)
	if err != nil {
		return &termtweet.StepError{
			Step:       termtweet.StepValidate,
			Message:    "Failed to get user input",
			Suggestion: "Setup failed. Please try again.",
			Cause:      err,
			ShowCause:  true,
		}
	}

	store, err := a.newStore()
	if err != nil {
		return err
	}
	if err := workflow.New(store, a.remote, printer).Setup(creds); err != nil {
		return err
	}

	printer.Success("Setup completed successfully!")
	printer.Hint("You can now use 'termtweet \"Your message\"' to post tweets.")
	return nil
}

// promptCredentials uses a masked form on a terminal and plain lines
// otherwise, so setup can be scripted.
func promptCredentials(cmd *cobra.Command) (termtweet.Credentials, error) {
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return promptForm()
	}
	return promptLines(cmd.InOrStdin(), cmd.OutOrStdout())
}

func promptForm() (termtweet.Credentials, error) {
	var creds termtweet.Credentials

	groups := make([]*huh.Group, 0, len(setupFields))
	for _, field := range setupFields {
		title := field.title
		groups = append(groups, huh.NewGroup(
			huh.NewInput().
				Title("Enter your "+title).
				EchoMode(huh.EchoModePassword).
				Value(field.value(&creds)).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("%s is required", title)
					}
					return nil
				}),
		))
	}

	if err := huh.NewForm(groups...).Run(); err != nil {
		return termtweet.Credentials{}, err
	}
	return trimCredentials(creds), nil
}

// promptLines reads one value per line. Missing lines leave fields empty,
// which setup then rejects.
func promptLines(in io.Reader, out io.Writer) (termtweet.Credentials, error) {
	var creds termtweet.Credentials
	scanner := bufio.NewScanner(in)

	for _, field := range setupFields {
		fmt.Fprintf(out, "Enter your %s: ", field.title)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			break
		}
		*field.value(&creds) = scanner.Text()
	}
	if err := scanner.Err(); err != nil && !errors.Is(err, io.EOF) {
		return termtweet.Credentials{}, fmt.Errorf("read input: %w", err)
	}

	return trimCredentials(creds), nil
}

func trimCredentials(c termtweet.Credentials) termtweet.Credentials {
	for _, field := range setupFields {
		v := field.value(&c)
		*v = strings.TrimSpace(*v)
	}
	return c
}
