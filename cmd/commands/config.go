package commands

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pagesmith/pagesmith-cli/internal/cli"
	"github.com/pagesmith/pagesmith-cli/pkg/files"
	"github.com/pagesmith/pagesmith-cli/pkg/models"
)

// settingField reads and writes one dotted settings key.
type settingField struct {
	get func(s *models.Settings) string
	set func(s *models.Settings, v string) error
}

func stringField(ptr func(s *models.Settings) *string, valid ...string) settingField {
	return settingField{
		get: func(s *models.Settings) string { return *ptr(s) },
		set: func(s *models.Settings, v string) error {
			if len(valid) > 0 && !cli.Contains(valid, v) {
				return fmt.Errorf("invalid value %q (must be one of: %s)", v, strings.Join(valid, ", "))
			}
			*ptr(s) = v
			return nil
		},
	}
}

func boolField(ptr func(s *models.Settings) *bool) settingField {
	return settingField{
		get: func(s *models.Settings) string { return strconv.FormatBool(*ptr(s)) },
		set: func(s *models.Settings, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("invalid boolean %q", v)
			}
			*ptr(s) = b
			return nil
		},
	}
}

var settingFields = map[string]settingField{
	"storage.driver": stringField(func(s *models.Settings) *string { return &s.Storage.Driver },
		models.StorageDriverFile, models.StorageDriverSQLite),
	"storage.path":    stringField(func(s *models.Settings) *string { return &s.Storage.Path }),
	"preview.addr":    stringField(func(s *models.Settings) *string { return &s.Preview.Addr }),
	"preview.minify":  boolField(func(s *models.Settings) *bool { return &s.Preview.Minify }),
	"export.filename": stringField(func(s *models.Settings) *string { return &s.Export.Filename }),
	"export.minify":   boolField(func(s *models.Settings) *bool { return &s.Export.Minify }),
	"ui.show_preview": boolField(func(s *models.Settings) *bool { return &s.UI.ShowPreview }),
	"ui.start_view": stringField(func(s *models.Settings) *string { return &s.UI.StartView },
		models.StartViewWorkspace, models.StartViewBuilder),
	"log.level": stringField(func(s *models.Settings) *string { return &s.Log.Level },
		"debug", "info", "warn", "error"),
}

func settingKeys() []string {
	keys := make([]string, 0, len(settingFields))
	for k := range settingFields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// NewConfigCommand creates the config command
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Read or change project settings",
		Long: `Read or change the settings stored in .pagesmith/settings.yaml.

Keys use dotted names such as preview.addr or storage.driver.

Examples:
  # Show every setting
  pagesmith config list

  # Store workspace state in SQLite
  pagesmith config set storage.driver sqlite

  # Read one value
  pagesmith config get export.filename`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:     "list",
		Short:   "Show every setting",
		Args:    cobra.NoArgs,
		PreRunE: requireProject,
		RunE:    runConfigList,
	})
	cmd.AddCommand(&cobra.Command{
		Use:     "get <key>",
		Short:   "Print one setting",
		Args:    cobra.ExactArgs(1),
		PreRunE: requireProject,
		RunE:    runConfigGet,
	})
	cmd.AddCommand(&cobra.Command{
		Use:     "set <key> <value>",
		Short:   "Change one setting",
		Args:    cobra.ExactArgs(2),
		PreRunE: requireProject,
		RunE:    runConfigSet,
	})

	return cmd
}

func lookupSetting(key string) (settingField, error) {
	f, ok := settingFields[key]
	if !ok {
		return settingField{}, fmt.Errorf("unknown setting %q (known: %s)", key, strings.Join(settingKeys(), ", "))
	}
	return f, nil
}

func runConfigList(cmd *cobra.Command, args []string) error {
	settings, err := files.ReadSettings(cli.ProjectRoot())
	if err != nil {
		return err
	}

	format := outputFormat(cmd)
	if format != "text" {
		return cli.OutputResults(cmd.OutOrStdout(), format, settings)
	}

	table := cli.NewTableFormatter(cmd.OutOrStdout())
	table.Header("KEY", "VALUE")
	for _, k := range settingKeys() {
		table.Row(k, settingFields[k].get(settings))
	}
	if err := table.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\nStore: %s\n", cli.NewCommandContext().StoreLocation())
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	f, err := lookupSetting(args[0])
	if err != nil {
		return err
	}
	settings, err := files.ReadSettings(cli.ProjectRoot())
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), f.get(settings))
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]
	f, err := lookupSetting(key)
	if err != nil {
		return err
	}

	root := cli.ProjectRoot()
	settings, err := files.ReadSettings(root)
	if err != nil {
		return err
	}
	if err := f.set(settings, value); err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	if key == "storage.driver" {
		// each driver has its own default location
		settings.Storage.Path = ""
		settings.ApplyDefaults()
	}
	if err := files.WriteSettings(root, settings); err != nil {
		return err
	}

	cli.PrintSuccess("Set %s = %s", key, value)
	return nil
}
