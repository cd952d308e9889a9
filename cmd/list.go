package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/EO-DataHub/eodhp-user-console/api/services"
	"github.com/EO-DataHub/eodhp-user-console/internal/userlist"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:          "list",
	Short:        "Fetch the users from the directory and print them",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {

		appCfg := commonSetUp()

		directory := services.NewDirectoryClient(appCfg.Directory.URL, appCfg.Directory.Timeout)
		users := userlist.New(directory, log.Logger)
		users.Activate(cmd.Context())

		return printUsers(cmd.OutOrStdout(), users.State())
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}

// printUsers writes the collection as a table, or the error banner.
func printUsers(w io.Writer, state userlist.State) error {
	if state.Error != "" {
		return fmt.Errorf("%s", state.Error)
	}

	if len(state.Users) == 0 {
		_, err := fmt.Fprintln(w, "No users found")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tPHONE\tWEBSITE")
	for _, u := range state.Users {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", u.ID, u.Name, u.Email, u.Phone, u.Website)
	}
	return tw.Flush()
}
