package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

var contactCmd = &cobra.Command{
	Use:   "contact",
	Short: "Manage alias contacts",
}

var (
	contactListPage int
	contactListAll  bool
)

var contactListCmd = &cobra.Command{
	Use:   "list <alias-id>",
	Short: "List the contacts of an alias",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := requireAPIKey()
		if err != nil {
			return err
		}
		aliasID, err := parseID(args[0], "alias")
		if err != nil {
			return err
		}

		page := contactListPage
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tCONTACT\tREVERSE ALIAS\tBLOCKED\tCREATED")
		for {
			res, err := sess.Client().FetchContacts(cmd.Context(), key, aliasID, page)
			if err != nil {
				return err
			}
			for _, c := range res.Contacts {
				fmt.Fprintf(w, "%d\t%s\t%s\t%v\t%s\n",
					c.ID, c.Email, c.ReverseAliasAddress, c.BlockForward,
					time.Unix(c.CreationTimestamp, 0).Format(time.RFC3339))
			}
			if !contactListAll || !res.HasMore {
				break
			}
			page++
		}
		return w.Flush()
	},
}

var contactCreateCmd = &cobra.Command{
	Use:   "create <alias-id> <email>",
	Short: "Create a reverse-alias contact",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := requireAPIKey()
		if err != nil {
			return err
		}
		aliasID, err := parseID(args[0], "alias")
		if err != nil {
			return err
		}
		contact, err := sess.Client().CreateContact(cmd.Context(), key, aliasID, args[1])
		if err != nil {
			return err
		}
		if contact.Existed {
			fmt.Printf("%s is already a contact (id %d)\n", contact.Email, contact.ID)
			return nil
		}
		fmt.Printf("Created contact %s, reverse alias %s\n",
			contact.Email, contact.ReverseAliasAddress)
		return nil
	},
}

var contactToggleCmd = &cobra.Command{
	Use:   "toggle <id>",
	Short: "Block or unblock forwarding for a contact",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := requireAPIKey()
		if err != nil {
			return err
		}
		id, err := parseID(args[0], "contact")
		if err != nil {
			return err
		}
		blocked, err := sess.Client().ToggleContact(cmd.Context(), key, id)
		if err != nil {
			return err
		}
		if blocked {
			fmt.Printf("Forwarding from contact %d is now blocked\n", id)
		} else {
			fmt.Printf("Forwarding from contact %d is now allowed\n", id)
		}
		return nil
	},
}

var contactDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a contact",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := requireAPIKey()
		if err != nil {
			return err
		}
		id, err := parseID(args[0], "contact")
		if err != nil {
			return err
		}
		deleted, err := sess.Client().DeleteContact(cmd.Context(), key, id)
		if err != nil {
			return err
		}
		if !deleted {
			return fmt.Errorf("service did not confirm deletion of contact %d", id)
		}
		fmt.Printf("Deleted contact %d\n", id)
		return nil
	},
}

func init() {
	contactListCmd.Flags().IntVar(&contactListPage, "page", 0, "zero-based page to fetch")
	contactListCmd.Flags().BoolVar(&contactListAll, "all", false, "fetch every page")

	contactCmd.AddCommand(contactListCmd)
	contactCmd.AddCommand(contactCreateCmd)
	contactCmd.AddCommand(contactToggleCmd)
	contactCmd.AddCommand(contactDeleteCmd)
}
