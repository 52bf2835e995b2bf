package cli

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/nvhoang/aliasctl/internal/config"
	"github.com/nvhoang/aliasctl/internal/slapi"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Show and update the account profile",
}

var userInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the account profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := requireAPIKey()
		if err != nil {
			return err
		}
		info, err := sess.Client().FetchUserInfo(cmd.Context(), key)
		if err != nil {
			return err
		}
		fmt.Printf("Email:   %s\n", info.Email)
		if info.Name != "" {
			fmt.Printf("Name:    %s\n", info.Name)
		}
		fmt.Printf("Premium: %v\n", info.IsPremium)
		if info.InTrial {
			fmt.Println("Trial:   active")
		}
		return nil
	},
}

var (
	userNameValue string
	userNameClear bool
)

var userNameCmd = &cobra.Command{
	Use:   "name",
	Short: "Set or clear the account display name",
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := requireAPIKey()
		if err != nil {
			return err
		}
		name, err := nullableArg(userNameValue, userNameClear)
		if err != nil {
			return err
		}
		info, err := sess.Client().UpdateName(cmd.Context(), key, name)
		if err != nil {
			return err
		}
		if info.Name == "" {
			fmt.Println("Display name cleared")
		} else {
			fmt.Printf("Display name set to %s\n", info.Name)
		}
		return nil
	},
}

var domainCmd = &cobra.Command{
	Use:   "domain",
	Short: "Show domains",
}

var domainListCmd = &cobra.Command{
	Use:   "list",
	Short: "List custom domains",
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := requireAPIKey()
		if err != nil {
			return err
		}
		domains, err := sess.Client().FetchCustomDomains(cmd.Context(), key)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tDOMAIN\tVERIFIED\tALIASES\tCREATED")
		for _, d := range domains {
			fmt.Fprintf(w, "%d\t%s\t%v\t%d\t%s\n",
				d.ID, d.Domain, d.Verified, d.NbAlias,
				time.Unix(d.CreationTimestamp, 0).Format(time.RFC3339))
		}
		return w.Flush()
	},
}

var domainUsableCmd = &cobra.Command{
	Use:   "usable",
	Short: "List domains usable for new aliases",
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := requireAPIKey()
		if err != nil {
			return err
		}
		domains, err := sess.Client().FetchDomainLites(cmd.Context(), key)
		if err != nil {
			return err
		}
		for _, d := range domains {
			if d.IsCustom {
				fmt.Printf("%s (custom)\n", d.Domain)
			} else {
				fmt.Println(d.Domain)
			}
		}
		return nil
	},
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show account settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := requireAPIKey()
		if err != nil {
			return err
		}
		settings, err := sess.Client().FetchUserSettings(cmd.Context(), key)
		if err != nil {
			return err
		}
		printSettings(settings)
		return nil
	},
}

func printSettings(s *slapi.UserSettings) {
	fmt.Printf("alias_generator:             %s\n", s.AliasGenerator)
	fmt.Printf("notification:                %v\n", s.Notification)
	fmt.Printf("random_mode:                 %s\n", s.RandomMode)
	fmt.Printf("random_alias_default_domain: %s\n", s.RandomAliasDefaultDomain)
	fmt.Printf("random_alias_suffix:         %s\n", s.RandomAliasSuffix)
	fmt.Printf("sender_format:               %s\n", s.SenderFormat)
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <field> <value>",
	Short: "Update one settings field",
	Long: `Updates a single settings field. Fields: alias_generator,
notification, random_mode, random_alias_default_domain,
random_alias_suffix, sender_format.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := requireAPIKey()
		if err != nil {
			return err
		}
		option, err := settingsOption(args[0], args[1])
		if err != nil {
			return err
		}
		settings, err := sess.Client().UpdateUserSettings(cmd.Context(), key, option)
		if err != nil {
			return err
		}
		printSettings(settings)
		return nil
	},
}

func settingsOption(field, value string) (slapi.SettingsOption, error) {
	switch field {
	case "alias_generator":
		return slapi.AliasGeneratorOption(value), nil
	case "notification":
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return slapi.SettingsOption{}, fmt.Errorf("notification wants true or false, got %q", value)
		}
		return slapi.NotificationOption(enabled), nil
	case "random_mode":
		return slapi.RandomModeOption(slapi.RandomMode(value)), nil
	case "random_alias_default_domain":
		return slapi.RandomAliasDefaultDomainOption(value), nil
	case "random_alias_suffix":
		return slapi.RandomAliasSuffixOption(value), nil
	case "sender_format":
		return slapi.SenderFormatOption(value), nil
	default:
		return slapi.SettingsOption{}, fmt.Errorf("unknown settings field %q", field)
	}
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change local preferences",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the local configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("api_url:     %s\n", cfg.APIURL)
		fmt.Printf("device_name: %s\n", cfg.DeviceName)
		return nil
	},
}

var configSetURLCmd = &cobra.Command{
	Use:   "set-url <url>",
	Short: "Change the API base URL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// Validate before persisting.
		if _, err := slapi.NewClient(args[0]); err != nil {
			return err
		}
		cfg.APIURL = args[0]
		path := cfgFile
		if path == "" {
			path = config.DefaultConfigPath()
		}
		if err := config.Save(path, cfg); err != nil {
			return err
		}
		fmt.Printf("API URL set to %s\n", cfg.APIURL)
		return nil
	},
}

func init() {
	userNameCmd.Flags().StringVar(&userNameValue, "value", "", "new display name")
	userNameCmd.Flags().BoolVar(&userNameClear, "clear", false, "clear the display name")

	userCmd.AddCommand(userInfoCmd)
	userCmd.AddCommand(userNameCmd)

	domainCmd.AddCommand(domainListCmd)
	domainCmd.AddCommand(domainUsableCmd)

	settingsCmd.AddCommand(settingsSetCmd)

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetURLCmd)
}
