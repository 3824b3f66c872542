package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Belphemur/StudentService/internal/export"
	"github.com/Belphemur/StudentService/internal/models"
)

func newListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every student",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printStudents(cmd, a.students.GetStudents().Await(cmd.Context()))
			return nil
		},
	}
}

func newGetCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Fetch a student by id (GET /{id})",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			printOptional(cmd, a.students.GetStudent(id).Await(cmd.Context()))
			return nil
		},
	}
}

func newFindCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "find <id>",
		Short: "Find a student by id through the collection filter (GET /?id=)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			printOptional(cmd, a.students.GetStudentByID(id).Await(cmd.Context()))
			return nil
		},
	}
}

func newSearchCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "search <term>",
		Short: "Search students by name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			term := strings.Join(args, " ")
			printStudents(cmd, a.students.SearchStudents(term).Await(cmd.Context()))
			return nil
		},
	}
}

func newAddCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Create a student",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			student := models.Student{Name: strings.Join(args, " ")}
			printOptional(cmd, a.students.AddStudent(student).Await(cmd.Context()))
			return nil
		},
	}
}

func newUpdateCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "update <id> <name>",
		Short: "Rename a student",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			student := models.Student{ID: id, Name: strings.Join(args[1:], " ")}
			if body, ok := a.students.UpdateStudent(student).Await(cmd.Context()).Get(); ok {
				fmt.Fprintln(cmd.OutOrStdout(), string(body))
			}
			return nil
		},
	}
}

func newDeleteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a student",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			printOptional(cmd, a.students.DeleteStudent(models.RefID(id)).Await(cmd.Context()))
			return nil
		},
	}
}

func newExportCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export <file.xlsx>",
		Short: "Write every student to a spreadsheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			students := a.students.GetStudents().Await(cmd.Context())

			f, err := os.Create(args[0])
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", args[0], err)
			}
			if err := export.WriteStudents(f, students); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("failed to close %s: %w", args[0], err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "exported %d students to %s\n", len(students), args[0])
			return nil
		},
	}
}

func newImportCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.xlsx>",
		Short: "Create or replace students from a spreadsheet",
		Long: `Reads column A (id) and column B (name) of the first sheet, skipping the header row.
Rows without an id are created; rows with an id replace that student.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", args[0], err)
			}
			defer f.Close()

			students, err := export.ReadStudents(f)
			if err != nil {
				return err
			}

			for _, st := range students {
				if st.ID == 0 {
					printOptional(cmd, a.students.AddStudent(st).Await(cmd.Context()))
					continue
				}
				a.students.UpdateStudent(st).Await(cmd.Context())
			}

			fmt.Fprintf(cmd.OutOrStdout(), "imported %d students from %s\n", len(students), args[0])
			return nil
		},
	}
}
