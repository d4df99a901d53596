package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/PrimotionStudio/z1academic/apps/shared"
	"github.com/PrimotionStudio/z1academic/core/academic"
)

var errNoIndexes = errors.New("the in-memory store has no indexes")

type commandLine struct {
	svc        *shared.Services
	validate   *validator.Validate
	translator ut.Translator
	out        io.Writer

	// ensureIndexes is nil when the store has no indexes.
	ensureIndexes func(ctx context.Context) error
}

type validatable interface {
	Validate(validate *validator.Validate) error
}

// check validates in, reporting the first failing field the way the API does.
func (cli *commandLine) check(in validatable) error {
	err := in.Validate(cli.validate)
	if vErrs, ok := err.(validator.ValidationErrors); ok && len(vErrs) > 0 {
		return errors.New(vErrs[0].Translate(cli.translator))
	}
	return err
}

func (cli *commandLine) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(cli.out, format, args...)
}

func newRootCmd(cli *commandLine) *cobra.Command {
	root := &cobra.Command{
		Use:           "admin",
		Short:         "Administration tasks of the z1academic API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(cli.out)
	root.AddCommand(
		newIndexesCmd(cli),
		newActivateCmd(cli),
		newSeedCmd(cli),
	)
	return root
}

func newIndexesCmd(cli *commandLine) *cobra.Command {
	return &cobra.Command{
		Use:   "indexes",
		Short: "Create the database indexes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cli.ensureIndexes == nil {
				return errNoIndexes
			}
			if err := cli.ensureIndexes(cmd.Context()); err != nil {
				return err
			}
			cli.printf("indexes are up to date\n")
			return nil
		},
	}
}

func newActivateCmd(cli *commandLine) *cobra.Command {
	return &cobra.Command{
		Use:       "activate session|period ID",
		Short:     "Make a session or a period the active one of its kind",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{string(academic.KindSession), string(academic.KindPeriod)},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := academic.TermKind(strings.ToLower(args[0]))
			if kind != academic.KindSession && kind != academic.KindPeriod {
				return errors.Errorf("unknown term kind %q: expected session or period", args[0])
			}

			ctx := cmd.Context()
			if err := cli.svc.Academic.ActivateTerm(ctx, kind, args[1]); err != nil {
				return err
			}
			term, err := cli.svc.Academic.GetActiveTerm(ctx, kind)
			if err != nil {
				return err
			}
			cli.printf("%s %q is now active\n", kind.Label(), term.Name)
			return nil
		},
	}
}
