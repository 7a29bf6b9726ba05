/*
Copyright © 2025 blacktop

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/blacktop/termtweet/internal/logutil"
	"github.com/blacktop/termtweet/internal/termtweet"
	"github.com/blacktop/termtweet/internal/termtweet/credentials"
	"github.com/blacktop/termtweet/internal/termtweet/twitter"
	"github.com/blacktop/termtweet/internal/ui"
	"github.com/blacktop/termtweet/internal/workflow"
	"github.com/spf13/cobra"
)

type options struct {
	imagePath string
	setup     bool
	test      bool
	dryRun    bool
	quiet     bool
	verbose   bool
}

// app carries the collaborators a command run needs.
type app struct {
	newStore func() (workflow.CredentialStore, error)
	remote   termtweet.Remote
	prompt   func(cmd *cobra.Command) (termtweet.Credentials, error)

	opts options
}

func defaultApp() *app {
	return &app{
		newStore: func() (workflow.CredentialStore, error) {
			return credentials.DefaultStore()
		},
		remote: twitter.New(),
		prompt: promptCredentials,
	}
}

// Run executes termtweet with args and returns the process exit code.
func Run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	return execute(newRootCommand(defaultApp()), args, stdin, stdout, stderr)
}

func execute(cmd *cobra.Command, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprint(stderr, formatError(err))
		return 1
	}
	return 0
}

func newRootCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "termtweet [text]",
		Short: "Tweet from your terminal",
		Long: "termtweet posts a message (280 characters max) and an optional image to Twitter/X " +
			"using credentials stored in ~/.termtweet/.env or TWITTER_* environment variables.",
		Args:          cobra.ArbitraryArgs,
		Version:       resolvedVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          a.runRoot,
		Example: `  termtweet "Hello from terminal! #coding"
  termtweet "Check this out!" --image screenshot.png
  termtweet "Draft" --dry-run
  termtweet --setup
  termtweet --test`,
	}
	cmd.SetVersionTemplate("termtweet {{.Version}}\n")
	cmd.CompletionOptions.DisableDefaultCmd = true

	cmd.Flags().StringVarP(&a.opts.imagePath, "image", "i", "", "Path to image file to attach")
	cmd.Flags().BoolVarP(&a.opts.setup, "setup", "s", false, "Run interactive setup to configure credentials")
	cmd.Flags().BoolVarP(&a.opts.test, "test", "t", false, "Test if credentials are configured correctly")
	cmd.Flags().BoolVarP(&a.opts.dryRun, "dry-run", "d", false, "Validate tweet without actually posting")
	cmd.Flags().BoolVarP(&a.opts.quiet, "quiet", "q", false, "Only print results and errors")
	cmd.Flags().BoolVar(&a.opts.verbose, "verbose", false, "Enable debug logging")
	cmd.Flags().BoolP("version", "v", false, "Print version")
	cmd.Flags().SortFlags = false

	cmd.AddCommand(newCompletionCommand())

	return cmd
}

func (a *app) runRoot(cmd *cobra.Command, args []string) error {
	logutil.SetVerbose(a.opts.verbose)
	printer := ui.New(cmd.OutOrStdout(), a.opts.quiet)

	// setup > test > post; --dry-run only applies to post.
	switch {
	case a.opts.setup:
		if a.opts.dryRun {
			logutil.Debugf("--dry-run ignored with --setup")
		}
		return a.runSetup(cmd, printer)
	case a.opts.test:
		if a.opts.dryRun {
			logutil.Debugf("--dry-run ignored with --test")
		}
		return a.runTest(cmd, printer)
	}

	message, err := resolveMessage(cmd, args)
	if err != nil {
		return err
	}
	if message == "" {
		return cmd.Help()
	}

	req := termtweet.Request{Text: message, ImagePath: a.opts.imagePath}

	if a.opts.dryRun {
		_, err := workflow.New(nil, nil, printer).DryRun(req)
		return err
	}

	store, err := a.newStore()
	if err != nil {
		return err
	}
	_, err = workflow.New(store, a.remote, printer).Post(cmd.Context(), req)
	return err
}

func (a *app) runTest(cmd *cobra.Command, printer *ui.Printer) error {
	store, err := a.newStore()
	if err != nil {
		return err
	}
	_, err = workflow.New(store, a.remote, printer).Test(cmd.Context())
	return err
}

// resolveMessage joins positional words, or reads a piped stdin when none are
// given. An empty result means there is nothing to post.
func resolveMessage(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.TrimSpace(strings.Join(args, " ")), nil
	}

	stdin := cmd.InOrStdin()
	file, ok := stdin.(*os.File)
	if !ok {
		return "", nil
	}
	info, err := file.Stat()
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	if (info.Mode() & os.ModeCharDevice) != 0 {
		return "", nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

func formatError(err error) string {
	msg := err.Error()
	if !strings.HasPrefix(msg, ui.SymbolFail) {
		msg = ui.SymbolFail + " " + msg
	}
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	return msg
}
