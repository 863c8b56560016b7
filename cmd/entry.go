package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xolan/nutritrack/internal/cli"
	"github.com/xolan/nutritrack/internal/cli/handlers"
	"github.com/xolan/nutritrack/internal/filter"
	"github.com/xolan/nutritrack/internal/food"
	"github.com/xolan/nutritrack/internal/form"
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Log a food entry",
	Long: `Log a new food entry. The name and --calories are required; protein, carbs
and fat default to 0 and the category defaults to Vegetable.

Numbers are plain decimals (e.g. 12 or 3.5). Negative values are accepted.

Examples:
  nutri add Apple --calories 95 --category fruit --carbs 25
  nutri add "Chicken breast" -k 165 -c Protein -p 31 --fat 3.6`,
	Args: cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		deps, ok := openDeps()
		if !ok {
			return
		}
		handlers.AddEntry(deps, fieldsFromFlags(cmd, args))
	},
}

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List, search and filter entries",
	Long: `List logged entries, newest first.

--search matches entry names case-insensitively; --category keeps one
category (use "All" or leave it out for every category). The total at the
bottom always covers the whole log, whatever the filter.

Examples:
  nutri list --search egg
  nutri list --category protein
  nutri list -s rice -c grain`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		deps := cli.GetDeps()
		q, err := queryFromFlags(cmd)
		if err != nil {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
			_, _ = fmt.Fprintf(deps.Stderr, "Hint: Valid categories are All, %s\n", cli.CategoryList())
			deps.Exit(1)
			return
		}
		deps, ok := openDeps()
		if !ok {
			return
		}
		handlers.ListEntries(deps, q)
	},
}

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete an entry",
	Long: `Delete a food entry by its ID, as shown by 'nutri list'.

Any unique prefix of the ID is accepted. You will be asked to confirm
unless --yes is given.

Examples:
  nutri delete 3f2a9c1d
  nutri delete 3f2a --yes`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		deps, ok := openDeps()
		if !ok {
			return
		}
		yes, _ := cmd.Flags().GetBool("yes")
		handlers.DeleteEntry(deps, args[0], yes)
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(deleteCmd)

	addCmd.Flags().StringP("category", "c", string(food.DefaultCategory()), "Category: "+cli.CategoryList())
	addCmd.Flags().StringP("calories", "k", "", "Calories (required)")
	addCmd.Flags().StringP("protein", "p", "", "Protein in grams")
	addCmd.Flags().String("carbs", "", "Carbohydrates in grams")
	addCmd.Flags().String("fat", "", "Fat in grams")

	listCmd.Flags().StringP("search", "s", "", "Case-insensitive name search")
	listCmd.Flags().StringP("category", "c", "", "Only show this category")

	deleteCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")

	_ = addCmd.RegisterFlagCompletionFunc("category", completeCategories(food.Categories()))
	_ = listCmd.RegisterFlagCompletionFunc("category", completeCategories(food.FilterCategories()))
}

// fieldsFromFlags collects the add arguments into form text fields.
// The numeric flags stay text so the form does the coercion.
func fieldsFromFlags(cmd *cobra.Command, args []string) form.Fields {
	fields := form.DefaultFields()
	fields.Name = strings.Join(args, " ")
	fields.Category, _ = cmd.Flags().GetString("category")
	fields.Calories, _ = cmd.Flags().GetString("calories")
	fields.Protein, _ = cmd.Flags().GetString("protein")
	fields.Carbs, _ = cmd.Flags().GetString("carbs")
	fields.Fat, _ = cmd.Flags().GetString("fat")
	return fields
}

// queryFromFlags builds the history filter from --search and --category.
func queryFromFlags(cmd *cobra.Command) (filter.Query, error) {
	search, _ := cmd.Flags().GetString("search")
	categoryStr, _ := cmd.Flags().GetString("category")

	category := food.CategoryAll
	if strings.TrimSpace(categoryStr) != "" {
		c, ok := food.ParseCategory(categoryStr)
		if !ok {
			return filter.Query{}, fmt.Errorf("unknown category '%s'", categoryStr)
		}
		category = c
	}
	return filter.NewQuery(search, category), nil
}

func completeCategories(options []food.Category) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		names := make([]string, 0, len(options))
		for _, c := range options {
			names = append(names, string(c))
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	}
}
