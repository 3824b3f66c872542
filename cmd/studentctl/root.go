package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/Belphemur/StudentService/internal/client"
	"github.com/Belphemur/StudentService/internal/config"
	"github.com/Belphemur/StudentService/internal/messages"
	"github.com/Belphemur/StudentService/internal/models"
	"github.com/Belphemur/StudentService/internal/services"
)

// app holds the collaborators built before every command runs.
type app struct {
	students services.StudentService
	messages *messages.Service

	showMessages bool
	metricsFile  string
}

// run executes the command line and always releases the message store,
// including when the command itself failed.
func run(args []string, stdout, stderr io.Writer) error {
	a := &app{}
	root := newRootCommand(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	return errors.Join(err, a.finish(stderr))
}

// finish prints the message history, writes the metrics file and closes the store.
func (a *app) finish(out io.Writer) error {
	if a.messages == nil {
		return nil
	}
	defer func() {
		_ = a.messages.Close()
		a.messages = nil
	}()

	if a.showMessages {
		fmt.Fprintln(out, "Messages")
		for _, m := range a.messages.Messages() {
			fmt.Fprintln(out, "  "+m)
		}
	}

	if a.metricsFile != "" {
		if err := prometheus.WriteToTextfile(a.metricsFile, prometheus.DefaultGatherer); err != nil {
			return fmt.Errorf("failed to write metrics to %s: %w", a.metricsFile, err)
		}
	}
	return nil
}

func newRootCommand(a *app) *cobra.Command {
	var studentsURL string

	root := &cobra.Command{
		Use:   "studentctl",
		Short: "Manage the students collection of a REST API",
		Long: `studentctl forwards CRUD operations on a students collection to a REST API
and prints the operation messages afterwards.

Usage examples:

1. List every student:

	studentctl list

2. Search against another server:

	studentctl search nar --url http://localhost:8080/api/students

3. Export the roster to a spreadsheet:

	studentctl export roster.xlsx

4. Leave the request metrics for the node_exporter textfile collector:

	studentctl list --metrics-file /var/lib/node_exporter/studentctl.prom
`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg := *config.GetConfig()
			if studentsURL != "" {
				cfg.StudentsURL = studentsURL
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			sink, err := messages.NewServiceFromConfig(&cfg)
			if err != nil {
				return err
			}
			a.messages = sink
			a.students = services.NewStudentService(client.NewTransport(&cfg), sink, cfg.StudentsURL)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&studentsURL, "url", "", "students collection URL (overrides students_url)")
	root.PersistentFlags().BoolVar(&a.showMessages, "messages", true, "print the operation messages after the command")
	root.PersistentFlags().StringVar(&a.metricsFile, "metrics-file", "", "write Prometheus metrics in text format to this file after the command")

	root.AddCommand(
		newListCommand(a),
		newGetCommand(a),
		newFindCommand(a),
		newSearchCommand(a),
		newAddCommand(a),
		newUpdateCommand(a),
		newDeleteCommand(a),
		newExportCommand(a),
		newImportCommand(a),
	)

	return root
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid student id %q: %w", arg, err)
	}
	return id, nil
}

func printStudents(cmd *cobra.Command, students []models.Student) {
	out := cmd.OutOrStdout()
	for _, st := range students {
		fmt.Fprintf(out, "%d\t%s\n", st.ID, st.Name)
	}
}

func printOptional(cmd *cobra.Command, student models.Optional[models.Student]) {
	if st, ok := student.Get(); ok {
		printStudents(cmd, []models.Student{st})
	}
}
