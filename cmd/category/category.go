// Package category handles the category subcommands
package category

import (
	"fjacquet/expense-tracker/cmd/common"
	"fjacquet/expense-tracker/cmd/root"
	"fjacquet/expense-tracker/internal/container"
	"fjacquet/expense-tracker/internal/models"

	"github.com/spf13/cobra"
)

// Cmd represents the category command
var Cmd = New()

// New builds the category command tree.
func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Manage expense categories",
	}
	cmd.AddCommand(newAddCmd(), newListCmd(), newRenameCmd(), newDeleteCmd())
	return cmd
}

// resolve accepts either a category id or its name.
func resolve(c *container.Container, ref string) (models.Category, error) {
	svc := c.GetCategoryService()
	if category, ok := svc.FindByName(ref); ok {
		return category, nil
	}
	return svc.Get(ref)
}

func newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add NAME",
		Short: "Create a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := root.GetContainer(cmd)
			if err != nil {
				return err
			}
			category, err := c.GetCategoryService().Add(models.Record{models.FieldName: args[0]})
			if err != nil {
				return err
			}
			common.Printf(cmd, "Category added: [%s] %s\n", category.ID, category.Name)
			return nil
		},
	}
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := root.GetContainer(cmd)
			if err != nil {
				return err
			}
			categories := c.GetCategoryService().List()
			if len(categories) == 0 {
				common.Println(cmd, "No categories found.")
				return nil
			}
			expenses := c.GetExpenseService()
			for _, category := range categories {
				marker := ""
				if expenses.IsCategoryInUse(category.Name) {
					marker = " (in use)"
				}
				common.Printf(cmd, "[%s] %s%s\n", category.ID, category.Name, marker)
			}
			return nil
		},
	}
}

func newRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename ID|NAME NEW_NAME",
		Short: "Rename a category and the expenses that use it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := root.GetContainer(cmd)
			if err != nil {
				return err
			}
			category, err := resolve(c, args[0])
			if err != nil {
				return err
			}
			renamed, moved, err := c.GetCategoryCascade().Rename(category.ID, models.Record{models.FieldName: args[1]})
			if err != nil {
				return err
			}
			common.Printf(cmd, "Category renamed: %s -> %s (%d expenses updated)\n", category.Name, renamed.Name, moved)
			return nil
		},
	}
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID|NAME",
		Short: "Delete a category that no expense uses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := root.GetContainer(cmd)
			if err != nil {
				return err
			}
			category, err := resolve(c, args[0])
			if err != nil {
				return err
			}
			if err := c.GetCategoryCascade().Delete(category.ID); err != nil {
				return err
			}
			common.Printf(cmd, "Category %s deleted.\n", category.Name)
			return nil
		},
	}
}
