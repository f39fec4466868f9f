package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/clockr/internal/activity"
)

var categoryCmd = &cobra.Command{
	Use:     "category",
	Aliases: []string{"cat"},
	Short:   "Manage categories",
	Long: `Manage the category list offered when describing activities.

Deleting a category keeps the label on activities that already use it.`,
}

var categoryAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a category",
	Args:  cobra.MinimumNArgs(1),
	Run: withApp(func(cmd *cobra.Command, args []string, a *app) {
		color, _ := cmd.Flags().GetString("color")
		category, err := a.svc.CreateCategory(commandContext(cmd), strings.Join(args, " "), color)
		if err != nil {
			printError(err)
			return
		}
		fmt.Printf("✅ Added category #%d: %s\n", category.ID, category.Name)
	}),
}

var categoryListCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List categories",
	Run: withApp(func(cmd *cobra.Command, args []string, a *app) {
		categories, err := a.svc.ListCategories(commandContext(cmd))
		if err != nil {
			printError(err)
			return
		}
		if len(categories) == 0 {
			fmt.Println("No categories yet. Use 'clockr category add <name>' to create one.")
			return
		}

		fmt.Printf("%-4s %-50s %s\n", "ID", "NAME", "COLOR")
		fmt.Println(strings.Repeat("-", 64))
		for _, c := range categories {
			fmt.Printf("%-4d %-50s %s\n", c.ID, c.Name, c.ColorText())
		}
	}),
}

var categoryEditCmd = &cobra.Command{
	Use:   "edit <category-id>",
	Short: "Rename or recolor a category",
	Args:  cobra.ExactArgs(1),
	Run: withApp(func(cmd *cobra.Command, args []string, a *app) {
		id, err := parseCategoryID(args[0])
		if err != nil {
			printError(err)
			return
		}

		var patch activity.CategoryPatch
		if cmd.Flags().Changed("name") {
			v, _ := cmd.Flags().GetString("name")
			patch.Name = &v
		}
		if cmd.Flags().Changed("color") {
			v, _ := cmd.Flags().GetString("color")
			patch.Color = &v
		}
		if patch.Name == nil && patch.Color == nil {
			fmt.Println("Error: nothing to change; pass --name or --color")
			return
		}

		category, err := a.svc.UpdateCategory(commandContext(cmd), id, patch)
		if err != nil {
			printError(err)
			return
		}
		fmt.Printf("✏️  Updated category #%d: %s\n", category.ID, category.Name)
	}),
}

var categoryRmCmd = &cobra.Command{
	Use:     "rm <category-id>",
	Aliases: []string{"delete"},
	Short:   "Delete a category",
	Args:    cobra.ExactArgs(1),
	Run: withApp(func(cmd *cobra.Command, args []string, a *app) {
		id, err := parseCategoryID(args[0])
		if err != nil {
			printError(err)
			return
		}
		if err := a.svc.DeleteCategory(commandContext(cmd), id); err != nil {
			printError(err)
			return
		}
		fmt.Printf("🗑️  Deleted category #%d\n", id)
	}),
}

func parseCategoryID(arg string) (uint, error) {
	id, err := strconv.ParseUint(arg, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid category ID '%s'", arg)
	}
	return uint(id), nil
}

func init() {
	categoryAddCmd.Flags().String("color", "", "Color as #RRGGBB")
	categoryEditCmd.Flags().String("name", "", "New name")
	categoryEditCmd.Flags().String("color", "", "New color as #RRGGBB (empty clears)")

	categoryCmd.AddCommand(categoryAddCmd)
	categoryCmd.AddCommand(categoryListCmd)
	categoryCmd.AddCommand(categoryEditCmd)
	categoryCmd.AddCommand(categoryRmCmd)
}
