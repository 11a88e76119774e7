package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"Fishing_Forum/internal/model"
	"Fishing_Forum/internal/repository/mysql"
	"Fishing_Forum/internal/service"
	"Fishing_Forum/internal/view"

	"github.com/spf13/cobra"
)

var jsonOutput bool

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Manage forum themes",
}

var themeAddCmd = &cobra.Command{
	Use:   "add <slug> <name>",
	Short: "Create a theme",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := themeService()
		if err != nil {
			return err
		}
		t, err := svc.Create(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "created theme %s (%s)\n", t.Slug, t.Name)
		return nil
	},
}

var themeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List themes",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := themeService()
		if err != nil {
			return err
		}
		list, err := svc.List(cmd.Context())
		if err != nil {
			return err
		}
		return printThemes(cmd.OutOrStdout(), list)
	},
}

var themeDeleteCmd = &cobra.Command{
	Use:   "delete <slug>",
	Short: "Delete a theme and every post in it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := themeService()
		if err != nil {
			return err
		}
		if err = svc.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deleted theme %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(themeCmd)
	themeCmd.AddCommand(themeAddCmd, themeListCmd, themeDeleteCmd)
	themeListCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
}

func themeService() (*service.ThemeService, error) {
	db, err := openDB()
	if err != nil {
		return nil, err
	}
	return service.NewThemeService(mysql.NewThemeRepository(db), mysql.NewPostRepository(db)), nil
}

func printThemes(w io.Writer, list []model.Theme) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(view.Themes(list))
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SLUG\tNAME")
	for _, t := range list {
		fmt.Fprintf(tw, "%s\t%s\n", t.Slug, t.Name)
	}
	return tw.Flush()
}
