package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"task-pwa/internal/repository"
	"task-pwa/internal/service"
)

func newTaskCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}
	cmd.AddCommand(newTaskAddCmd(a), newTaskListCmd(a), newTaskCategorizeCmd(a))
	return cmd
}

func (a *app) taskService() (*service.TaskService, func(), error) {
	db, closeDB, err := a.openDB()
	if err != nil {
		return nil, nil, err
	}
	return service.NewTaskService(repository.NewTaskRepository(db)), closeDB, nil
}

func parseID(kind, raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s id %q", kind, raw)
	}
	return uint(id), nil
}

func newTaskAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Create a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeDB, err := a.taskService()
			if err != nil {
				return err
			}
			defer closeDB()

			task, err := svc.CreateTask(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", task.ID, task.Name)
			return nil
		},
	}
}

func newTaskListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print every task with its state and category id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeDB, err := a.taskService()
			if err != nil {
				return err
			}
			defer closeDB()

			tasks, err := svc.ListTasks(cmd.Context())
			if err != nil {
				return err
			}
			for _, task := range tasks {
				state := "open"
				if task.Completed {
					state = "done"
				}
				category := "-"
				if task.CategoryID != nil {
					category = strconv.FormatUint(uint64(*task.CategoryID), 10)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%s\n", task.ID, state, category, task.Name)
			}
			return nil
		},
	}
}

func newTaskCategorizeCmd(a *app) *cobra.Command {
	var none bool
	cmd := &cobra.Command{
		Use:   "categorize <task-id> [<category-id>]",
		Short: "File a task under a category, or clear it with --none",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case none && len(args) == 2:
				return errors.New("give either a category id or --none, not both")
			case !none && len(args) == 1:
				return errors.New("missing category id (or --none)")
			}

			taskID, err := parseID("task", args[0])
			if err != nil {
				return err
			}
			var categoryID *uint
			if !none {
				id, err := parseID("category", args[1])
				if err != nil {
					return err
				}
				categoryID = &id
			}

			svc, closeDB, err := a.taskService()
			if err != nil {
				return err
			}
			defer closeDB()

			task, err := svc.SetCategory(cmd.Context(), taskID, categoryID)
			if err != nil {
				return fmt.Errorf("categorize task %d: %w", taskID, err)
			}
			if task.CategoryID == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "task %d has no category\n", task.ID)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "task %d filed under category %d\n", task.ID, *task.CategoryID)
			return nil
		},
	}
	cmd.Flags().BoolVar(&none, "none", false, "clear the task's category")
	return cmd
}
