package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/nvhoang/aliasctl/internal/slapi"
)

var aliasCmd = &cobra.Command{
	Use:   "alias",
	Short: "Manage aliases",
}

var (
	aliasListPage   int
	aliasListAll    bool
	aliasListSearch string
)

var aliasListCmd = &cobra.Command{
	Use:   "list",
	Short: "List aliases",
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := requireAPIKey()
		if err != nil {
			return err
		}

		aliases, hasMore, err := fetchAliasPages(
			cmd.Context(), key, aliasListPage, aliasListSearch, aliasListAll)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tALIAS\tENABLED\tFWD\tBLK\tRPL\tNOTE")
		for _, a := range aliases {
			fmt.Fprintf(w, "%d\t%s\t%v\t%d\t%d\t%d\t%s\n",
				a.ID, a.Email, a.Enabled, a.NbForward, a.NbBlock, a.NbReply, a.Note.String)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		if hasMore {
			fmt.Printf("More available; rerun with --page %d or --all\n", aliasListPage+1)
		}
		return nil
	},
}

// fetchAliasPages does the pagination bookkeeping the library leaves to
// callers: advance the page after each non-final response, stop when a
// page comes back short.
func fetchAliasPages(ctx context.Context, apiKey string, page int, search string, all bool) ([]slapi.Alias, bool, error) {
	var aliases []slapi.Alias
	for {
		res, err := sess.Client().FetchAliases(ctx, apiKey, page, search)
		if err != nil {
			return nil, false, err
		}
		aliases = append(aliases, res.Aliases...)
		if !all || !res.HasMore {
			return aliases, res.HasMore && !all, nil
		}
		page++
	}
}

var aliasGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one alias",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := requireAPIKey()
		if err != nil {
			return err
		}
		id, err := parseID(args[0], "alias")
		if err != nil {
			return err
		}
		a, err := sess.Client().GetAlias(cmd.Context(), key, id)
		if err != nil {
			return err
		}
		printAlias(a)
		return nil
	},
}

func printAlias(a *slapi.Alias) {
	fmt.Printf("ID:       %d\n", a.ID)
	fmt.Printf("Alias:    %s\n", a.Email)
	fmt.Printf("Enabled:  %v\n", a.Enabled)
	if a.Name.Valid {
		fmt.Printf("Name:     %s\n", a.Name.String)
	}
	if a.Note.Valid {
		fmt.Printf("Note:     %s\n", a.Note.String)
	}
	fmt.Printf("Created:  %s\n", time.Unix(a.CreationTimestamp, 0).Format(time.RFC3339))
	fmt.Printf("Counts:   %d forwarded, %d blocked, %d replied\n",
		a.NbForward, a.NbBlock, a.NbReply)
	for _, mb := range a.Mailboxes {
		fmt.Printf("Mailbox:  %s (%d)\n", mb.Email, mb.ID)
	}
}

var (
	aliasCreatePrefix    string
	aliasCreateSuffix    string
	aliasCreateMailboxes []int
	aliasCreateName      string
	aliasCreateNote      string
	aliasCreateHostname  string
)

var aliasCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a custom alias",
	Long: `Creates a custom alias from a prefix and a suffix. Suffixes must be
picked from "aliasctl alias options"; the service only accepts the
signed form it issued. Without --prefix the service's suggestion is
used, without --suffix the first offered suffix is.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		key, err := requireAPIKey()
		if err != nil {
			return err
		}

		options, err := sess.Client().FetchUserOptions(ctx, key, aliasCreateHostname)
		if err != nil {
			return err
		}
		if !options.CanCreate {
			return fmt.Errorf("the account cannot create more aliases")
		}
		if len(options.Suffixes) == 0 {
			return fmt.Errorf("the service offered no alias suffixes")
		}

		prefix := aliasCreatePrefix
		if prefix == "" {
			prefix = options.PrefixSuggestion
		}
		signed := ""
		if aliasCreateSuffix == "" {
			signed = options.Suffixes[0].SignedSuffix
		} else {
			for _, s := range options.Suffixes {
				if s.Suffix == aliasCreateSuffix {
					signed = s.SignedSuffix
					break
				}
			}
			if signed == "" {
				return fmt.Errorf("suffix %q is not offered; see `aliasctl alias options`", aliasCreateSuffix)
			}
		}

		mailboxIDs := aliasCreateMailboxes
		if len(mailboxIDs) == 0 {
			mailboxes, err := sess.Client().FetchMailboxes(ctx, key)
			if err != nil {
				return err
			}
			for _, mb := range mailboxes {
				if mb.Default {
					mailboxIDs = []int{mb.ID}
					break
				}
			}
			if len(mailboxIDs) == 0 {
				return fmt.Errorf("no default mailbox; pass --mailbox")
			}
		}

		alias, err := sess.Client().CreateAlias(ctx, key, slapi.AliasCreationRequest{
			Prefix:       prefix,
			SignedSuffix: signed,
			MailboxIDs:   mailboxIDs,
			Name:         aliasCreateName,
			Note:         aliasCreateNote,
		}, aliasCreateHostname)
		if err != nil {
			return err
		}
		fmt.Printf("Created %s (id %d)\n", alias.Email, alias.ID)
		return nil
	},
}

var aliasRandomMode string

var aliasRandomCmd = &cobra.Command{
	Use:   "random",
	Short: "Create a random alias",
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := requireAPIKey()
		if err != nil {
			return err
		}
		mode := slapi.RandomMode(aliasRandomMode)
		if mode != slapi.RandomModeWord && mode != slapi.RandomModeUUID {
			return fmt.Errorf("invalid mode %q (want word or uuid)", aliasRandomMode)
		}
		alias, err := sess.Client().RandomAlias(cmd.Context(), key, mode)
		if err != nil {
			return err
		}
		fmt.Printf("Created %s (id %d)\n", alias.Email, alias.ID)
		return nil
	},
}

var aliasDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an alias",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := requireAPIKey()
		if err != nil {
			return err
		}
		id, err := parseID(args[0], "alias")
		if err != nil {
			return err
		}
		deleted, err := sess.Client().DeleteAlias(cmd.Context(), key, id)
		if err != nil {
			return err
		}
		if !deleted {
			return fmt.Errorf("service did not confirm deletion of alias %d", id)
		}
		fmt.Printf("Deleted alias %d\n", id)
		return nil
	},
}

var aliasToggleCmd = &cobra.Command{
	Use:   "toggle <id>",
	Short: "Enable or disable an alias",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := requireAPIKey()
		if err != nil {
			return err
		}
		id, err := parseID(args[0], "alias")
		if err != nil {
			return err
		}
		enabled, err := sess.Client().ToggleAlias(cmd.Context(), key, id)
		if err != nil {
			return err
		}
		if enabled {
			fmt.Printf("Alias %d is now enabled\n", id)
		} else {
			fmt.Printf("Alias %d is now disabled\n", id)
		}
		return nil
	},
}

var (
	aliasFieldValue string
	aliasFieldClear bool
)

// nullableArg maps the --<field>/--clear flag pair onto the wire's
// explicit null-vs-value contract.
func nullableArg(value string, clear bool) (slapi.NullString, error) {
	if clear && value != "" {
		return slapi.NullString{}, fmt.Errorf("pass a value or --clear, not both")
	}
	if clear {
		return slapi.NullValue(), nil
	}
	if value == "" {
		return slapi.NullString{}, fmt.Errorf("pass a value or --clear")
	}
	return slapi.StringValue(value), nil
}

var aliasNameCmd = &cobra.Command{
	Use:   "name <id>",
	Short: "Set or clear an alias display name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := requireAPIKey()
		if err != nil {
			return err
		}
		id, err := parseID(args[0], "alias")
		if err != nil {
			return err
		}
		name, err := nullableArg(aliasFieldValue, aliasFieldClear)
		if err != nil {
			return err
		}
		if err := sess.Client().UpdateAliasName(cmd.Context(), key, id, name); err != nil {
			return err
		}
		fmt.Printf("Updated name of alias %d\n", id)
		return nil
	},
}

var aliasNoteCmd = &cobra.Command{
	Use:   "note <id>",
	Short: "Set or clear an alias note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := requireAPIKey()
		if err != nil {
			return err
		}
		id, err := parseID(args[0], "alias")
		if err != nil {
			return err
		}
		note, err := nullableArg(aliasFieldValue, aliasFieldClear)
		if err != nil {
			return err
		}
		if err := sess.Client().UpdateAliasNote(cmd.Context(), key, id, note); err != nil {
			return err
		}
		fmt.Printf("Updated note of alias %d\n", id)
		return nil
	},
}

var aliasMailboxIDs []int

var aliasMailboxesCmd = &cobra.Command{
	Use:   "mailboxes <id>",
	Short: "Replace the mailboxes owning an alias",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := requireAPIKey()
		if err != nil {
			return err
		}
		id, err := parseID(args[0], "alias")
		if err != nil {
			return err
		}
		if len(aliasMailboxIDs) == 0 {
			return fmt.Errorf("pass at least one --mailbox id")
		}
		if err := sess.Client().UpdateAliasMailboxes(cmd.Context(), key, id, aliasMailboxIDs); err != nil {
			return err
		}
		fmt.Printf("Updated mailboxes of alias %d\n", id)
		return nil
	},
}

var (
	activityPage int
	activityAll  bool
)

var aliasActivityCmd = &cobra.Command{
	Use:   "activity <id>",
	Short: "Show an alias's activity log",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := requireAPIKey()
		if err != nil {
			return err
		}
		id, err := parseID(args[0], "alias")
		if err != nil {
			return err
		}

		page := activityPage
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "WHEN\tACTION\tFROM\tTO")
		for {
			res, err := sess.Client().FetchAliasActivities(cmd.Context(), key, id, page)
			if err != nil {
				return err
			}
			for _, act := range res.Activities {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					time.Unix(act.Timestamp, 0).Format(time.RFC3339),
					act.Action, act.From, act.To)
			}
			if !activityAll || !res.HasMore {
				break
			}
			page++
		}
		return w.Flush()
	},
}

var aliasOptionsHostname string

var aliasOptionsCmd = &cobra.Command{
	Use:   "options",
	Short: "Show alias-creation options (suffixes, prefix suggestion)",
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := requireAPIKey()
		if err != nil {
			return err
		}
		options, err := sess.Client().FetchUserOptions(cmd.Context(), key, aliasOptionsHostname)
		if err != nil {
			return err
		}
		fmt.Printf("Can create: %v\n", options.CanCreate)
		if options.PrefixSuggestion != "" {
			fmt.Printf("Suggested prefix: %s\n", options.PrefixSuggestion)
		}
		for _, s := range options.Suffixes {
			fmt.Printf("Suffix: %s\n", s.Suffix)
		}
		return nil
	},
}

func init() {
	aliasListCmd.Flags().IntVar(&aliasListPage, "page", 0, "zero-based page to fetch")
	aliasListCmd.Flags().BoolVar(&aliasListAll, "all", false, "fetch every page")
	aliasListCmd.Flags().StringVar(&aliasListSearch, "search", "", "filter aliases by search term")

	aliasCreateCmd.Flags().StringVar(&aliasCreatePrefix, "prefix", "", "alias prefix")
	aliasCreateCmd.Flags().StringVar(&aliasCreateSuffix, "suffix", "", "alias suffix, as shown by `alias options`")
	aliasCreateCmd.Flags().IntSliceVar(&aliasCreateMailboxes, "mailbox", nil, "owning mailbox id (repeatable)")
	aliasCreateCmd.Flags().StringVar(&aliasCreateName, "name", "", "display name")
	aliasCreateCmd.Flags().StringVar(&aliasCreateNote, "note", "", "note")
	aliasCreateCmd.Flags().StringVar(&aliasCreateHostname, "hostname", "", "website the alias is for")

	aliasRandomCmd.Flags().StringVar(&aliasRandomMode, "mode", "word", "generation mode: word or uuid")

	aliasNameCmd.Flags().StringVar(&aliasFieldValue, "value", "", "new value")
	aliasNameCmd.Flags().BoolVar(&aliasFieldClear, "clear", false, "clear the field")
	aliasNoteCmd.Flags().StringVar(&aliasFieldValue, "value", "", "new value")
	aliasNoteCmd.Flags().BoolVar(&aliasFieldClear, "clear", false, "clear the field")

	aliasMailboxesCmd.Flags().IntSliceVar(&aliasMailboxIDs, "mailbox", nil, "mailbox id (repeatable)")

	aliasActivityCmd.Flags().IntVar(&activityPage, "page", 0, "zero-based page to fetch")
	aliasActivityCmd.Flags().BoolVar(&activityAll, "all", false, "fetch every page")

	aliasOptionsCmd.Flags().StringVar(&aliasOptionsHostname, "hostname", "", "tailor the suggestion to a website")

	aliasCmd.AddCommand(aliasListCmd)
	aliasCmd.AddCommand(aliasGetCmd)
	aliasCmd.AddCommand(aliasCreateCmd)
	aliasCmd.AddCommand(aliasRandomCmd)
	aliasCmd.AddCommand(aliasDeleteCmd)
	aliasCmd.AddCommand(aliasToggleCmd)
	aliasCmd.AddCommand(aliasNameCmd)
	aliasCmd.AddCommand(aliasNoteCmd)
	aliasCmd.AddCommand(aliasMailboxesCmd)
	aliasCmd.AddCommand(aliasActivityCmd)
	aliasCmd.AddCommand(aliasOptionsCmd)
}
