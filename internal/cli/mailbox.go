package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var mailboxCmd = &cobra.Command{
	Use:   "mailbox",
	Short: "Manage mailboxes",
}

var mailboxListCmd = &cobra.Command{
	Use:   "list",
	Short: "List mailboxes",
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := requireAPIKey()
		if err != nil {
			return err
		}
		mailboxes, err := sess.Client().FetchMailboxes(cmd.Context(), key)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tEMAIL\tDEFAULT\tVERIFIED\tALIASES")
		for _, mb := range mailboxes {
			fmt.Fprintf(w, "%d\t%s\t%v\t%v\t%d\n",
				mb.ID, mb.Email, mb.Default, mb.Verified, mb.NbAlias)
		}
		return w.Flush()
	},
}

var mailboxCreateCmd = &cobra.Command{
	Use:   "create <email>",
	Short: "Add a mailbox",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := requireAPIKey()
		if err != nil {
			return err
		}
		mb, err := sess.Client().CreateMailbox(cmd.Context(), key, args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Created mailbox %s (id %d); check the inbox for the verification link\n",
			mb.Email, mb.ID)
		return nil
	},
}

var mailboxDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove a mailbox",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := requireAPIKey()
		if err != nil {
			return err
		}
		id, err := parseID(args[0], "mailbox")
		if err != nil {
			return err
		}
		deleted, err := sess.Client().DeleteMailbox(cmd.Context(), key, id)
		if err != nil {
			return err
		}
		if !deleted {
			return fmt.Errorf("service did not confirm deletion of mailbox %d", id)
		}
		fmt.Printf("Deleted mailbox %d\n", id)
		return nil
	},
}

var mailboxDefaultCmd = &cobra.Command{
	Use:   "set-default <id>",
	Short: "Make a mailbox the account default",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := requireAPIKey()
		if err != nil {
			return err
		}
		id, err := parseID(args[0], "mailbox")
		if err != nil {
			return err
		}
		if err := sess.Client().MakeDefaultMailbox(cmd.Context(), key, id); err != nil {
			return err
		}
		fmt.Printf("Mailbox %d is now the default\n", id)
		return nil
	},
}

func init() {
	mailboxCmd.AddCommand(mailboxListCmd)
	mailboxCmd.AddCommand(mailboxCreateCmd)
	mailboxCmd.AddCommand(mailboxDeleteCmd)
	mailboxCmd.AddCommand(mailboxDefaultCmd)
}
