package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"task-pwa/internal/repository"
	"task-pwa/internal/service"
)

func newCategoryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Manage task categories",
	}
	cmd.AddCommand(newCategoryAddCmd(a), newCategoryListCmd(a), newCategoryDeleteCmd(a))
	return cmd
}

func (a *app) categoryService() (*service.CategoryService, func(), error) {
	db, closeDB, err := a.openDB()
	if err != nil {
		return nil, nil, err
	}
	return service.NewCategoryService(repository.NewCategoryRepository(db)), closeDB, nil
}

func newCategoryAddCmd(a *app) *cobra.Command {
	var parent uint
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeDB, err := a.categoryService()
			if err != nil {
				return err
			}
			defer closeDB()

			var parentID *uint
			if cmd.Flags().Changed("parent") {
				parentID = &parent
			}
			category, err := svc.CreateCategory(cmd.Context(), args[0], parentID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", category.ID, category.Name)
			return nil
		},
	}
	cmd.Flags().UintVar(&parent, "parent", 0, "id of the parent category")
	return cmd
}

func newCategoryListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the category tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeDB, err := a.categoryService()
			if err != nil {
				return err
			}
			defer closeDB()

			nodes, err := svc.Tree(cmd.Context())
			if err != nil {
				return err
			}
			for _, node := range nodes {
				fmt.Fprintf(cmd.OutOrStdout(), "%s%d\t%s\n", strings.Repeat("  ", node.Depth), node.Category.ID, node.Category.Name)
			}
			return nil
		},
	}
}

func newCategoryDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a category and all of its subcategories",
		Long:  "Delete a category and all of its subcategories. Tasks filed under any removed category are kept without a category.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("category", args[0])
			if err != nil {
				return err
			}

			svc, closeDB, err := a.categoryService()
			if err != nil {
				return err
			}
			defer closeDB()

			removed, err := svc.DeleteCategory(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("delete category %d: %w", id, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %d categories\n", removed)
			return nil
		},
	}
}
