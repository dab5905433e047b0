package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var opts struct {
	url        string
	user       string
	token      string
	format     string
	releaseID  string
	listIssues bool
	xlsxPath   string
	mailTo     string
}

var rootCmd = &cobra.Command{
	Use:   "jira-release PROJECT_KEY",
	Short: "List the releases of a Jira project and the issues fixed in them",
	Long: `jira-release lists the release versions of a Jira project, or the
issues fixed in one release, as an aligned text table or as the raw
server JSON. With --xlsx the same table is written as an Excel
workbook, which --mail-to sends out through Mailgun.

Connection settings fall back to JIRA_URL, JIRA_LOGIN and
JIRA_PASSWORD, loaded from a .env file when one is present.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().StringVar(&opts.url, "url", "", "Jira base URL (e.g. https://your-domain.atlassian.net)")
	rootCmd.Flags().StringVar(&opts.user, "user", "", "Jira username or email")
	rootCmd.Flags().StringVar(&opts.token, "token", "", "Jira API token")
	rootCmd.Flags().StringVar(&opts.format, "format", formatText, "output format (text or json)")
	rootCmd.Flags().StringVar(&opts.releaseID, "release-id", "", "show issues for a specific release ID")
	rootCmd.Flags().BoolVar(&opts.listIssues, "list-issues", false, "list all issues for the specified release")
	rootCmd.Flags().StringVar(&opts.xlsxPath, "xlsx", "", "also write the table as an Excel workbook at this path")
	rootCmd.Flags().StringVar(&opts.mailTo, "mail-to", "", "mail the written workbook to these recipients (needs --xlsx)")
}

func run(cmd *cobra.Command, args []string) error {
	projectKey := args[0]

	// Same .env convention as a cron deployment; a missing file just
	// means everything comes from flags.
	_ = godotenv.Load()

	url := fromFlagOrEnv(opts.url, "JIRA_URL")
	user := fromFlagOrEnv(opts.user, "JIRA_LOGIN")
	token := fromFlagOrEnv(opts.token, "JIRA_PASSWORD")
	switch {
	case url == "":
		return fmt.Errorf("missing Jira URL: set --url or JIRA_URL")
	case user == "":
		return fmt.Errorf("missing Jira user: set --user or JIRA_LOGIN")
	case token == "":
		return fmt.Errorf("missing Jira API token: set --token or JIRA_PASSWORD")
	}
	if opts.format != formatText && opts.format != formatJSON {
		return fmt.Errorf("invalid format %q: want text or json", opts.format)
	}
	if opts.mailTo != "" && opts.xlsxPath == "" {
		return fmt.Errorf("--mail-to needs --xlsx")
	}

	client, err := NewClient(url, user, token)
	if err != nil {
		return err
	}

	// Issues are listed only when both flags are given; any other
	// combination lists the project's releases.
	if opts.releaseID != "" && opts.listIssues {
		issues, err := client.IssuesForVersion(projectKey, opts.releaseID)
		if err != nil {
			return err
		}
		if err := renderIssues(cmd.OutOrStdout(), issues, opts.format); err != nil {
			return err
		}
		if opts.xlsxPath != "" {
			if err := writeIssuesReport(opts.xlsxPath, issues); err != nil {
				return err
			}
			return maybeMail(fmt.Sprintf("Issues for %s release %s", projectKey, opts.releaseID))
		}
		return nil
	}

	versions, err := client.ProjectVersions(projectKey)
	if err != nil {
		return err
	}
	if err := renderVersions(cmd.OutOrStdout(), versions, opts.format); err != nil {
		return err
	}
	if opts.xlsxPath != "" {
		if err := writeVersionsReport(opts.xlsxPath, versions); err != nil {
			return err
		}
		return maybeMail(fmt.Sprintf("Releases of %s", projectKey))
	}
	return nil
}

func maybeMail(subject string) error {
	if opts.mailTo == "" {
		return nil
	}
	return mailReport(opts.xlsxPath, subject, opts.mailTo)
}

func fromFlagOrEnv(flagValue, envName string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv(envName)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		os.Exit(1)
	}
}
