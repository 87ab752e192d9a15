package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/rollcall/internal/config"
	"github.com/zjrosen/rollcall/internal/domain/person"
	"github.com/zjrosen/rollcall/internal/presentation"
)

var errNotFound = errors.New("not found")

func newPeopleListCmd(a *app) *cobra.Command {
	var (
		csvPath      string
		alphabetical bool
		normalize    bool
		format       string
	)

	cmd := &cobra.Command{
		Use:   "people:list",
		Short: "List saved people",
		Long: `List every saved person in insertion order.

Examples:
  # Import a CSV of "name, age, company" rows and list them
  rollcall people:list --csv people.csv

  # Sorted by name, capitalized, as JSON
  rollcall people:list --csv people.csv --alphabetical --normalize --format json

  # Names only, one per line
  rollcall people:list --seed seed.yaml --format names`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if csvPath != "" {
				if _, err := a.svc.ImportPeopleFile(cmd.Context(), csvPath); err != nil {
					return err
				}
			}
			if normalize {
				a.svc.People.NormalizeNames()
			}

			f, err := a.formatter(cmd, format)
			if err != nil {
				return err
			}
			if !alphabetical && format == config.FormatNames {
				return a.svc.People.PrintAll(cmd.OutOrStdout())
			}

			people := a.svc.People.All()
			if alphabetical {
				people = a.svc.People.Alphabetical()
			}
			return f.FormatPeople(presentation.FromPeople(people))
		},
	}

	cmd.Flags().StringVar(&csvPath, "csv", "", "import people from a CSV file first")
	cmd.Flags().BoolVarP(&alphabetical, "alphabetical", "a", false, "sort by name")
	cmd.Flags().BoolVar(&normalize, "normalize", false, "capitalize every name before listing")
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: table, json or names")
	return cmd
}

func newPeopleFindCmd(a *app) *cobra.Command {
	var create bool

	cmd := &cobra.Command{
		Use:   "people:find NAME",
		Short: "Find a saved person by exact name",
		Long: `Find the first saved person whose name matches NAME exactly.

Exits non-zero when nobody matches, unless --create is given, in which case
the person is created and saved.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			var (
				p     *person.Person
				found bool
			)
			if create {
				var created bool
				p, created = a.svc.FindOrCreatePerson(name)
				found = true
				if created {
					_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "created %q\n", name)
				}
			} else {
				p, found = a.svc.FindPerson(name)
			}
			if !found {
				return fmt.Errorf("person %q: %w", name, errNotFound)
			}

			f, err := a.formatter(cmd, "")
			if err != nil {
				return err
			}
			return f.FormatPeople(presentation.FromPeople([]*person.Person{p}))
		},
	}

	cmd.Flags().BoolVar(&create, "create", false, "create the person when missing")
	return cmd
}

func newPeopleNormalizeCmd(a *app) *cobra.Command {
	var (
		csvPath string
		diff    bool
	)

	cmd := &cobra.Command{
		Use:   "people:normalize",
		Short: "Capitalize every name from a CSV file",
		Long: `Import a CSV of people and capitalize each word of every name.

With --diff, print a character diff of each changed name instead of the
resulting list.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.svc.ImportPeopleFile(cmd.Context(), csvPath); err != nil {
				return err
			}

			people := a.svc.People.All()
			before := make([]string, len(people))
			for i, p := range people {
				before[i] = p.Name()
			}

			a.svc.People.NormalizeNames()

			f, err := a.formatter(cmd, "")
			if err != nil {
				return err
			}
			if !diff {
				return f.FormatPeople(presentation.FromPeople(a.svc.People.All()))
			}

			renames := make([]presentation.Rename, len(people))
			for i, p := range people {
				renames[i] = presentation.Rename{Before: before[i], After: p.Name()}
			}
			return f.FormatRenames(renames)
		},
	}

	cmd.Flags().StringVar(&csvPath, "csv", "", "CSV file of people")
	cmd.Flags().BoolVar(&diff, "diff", false, "show what changed in each name")
	_ = cmd.MarkFlagRequired("csv")
	return cmd
}
