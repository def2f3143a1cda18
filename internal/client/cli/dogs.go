package cli

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/dogshelter/internal/server/models"
)

// Dogs lists the caller's registered dogs. Accepted args: adopted=true|false
// and p=N.
func (a *App) Dogs(ctx context.Context, args []string) error {
	opts, err := parseListArgs(args, "adopted", "p")
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	dogs, err := a.api.ListDogs(ctx, opts.adopted, opts.page)
	if err != nil {
		a.report(err)
		return err
	}
	a.printDogs(dogs)
	return nil
}

// Adopted lists the dogs the caller adopted. Accepted args: p=N.
func (a *App) Adopted(ctx context.Context, args []string) error {
	opts, err := parseListArgs(args, "p")
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	dogs, err := a.api.ListAdopted(ctx, opts.page)
	if err != nil {
		a.report(err)
		return err
	}
	a.printDogs(dogs)
	return nil
}

func (a *App) AddDog(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter dog name", a.out)
	if err != nil {
		return err
	}
	description, err := getSimpleText(a.reader, "Enter description (optional)", a.out)
	if err != nil {
		return err
	}

	dog, err := a.api.AddDog(ctx, name, description)
	if err != nil {
		a.report(err)
		return err
	}

	fmt.Fprintf(a.out, "Registered %s\n", dog.Name)
	return nil
}

func (a *App) Adopt(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter dog ID", a.out)
	if err != nil {
		return err
	}
	msg, err := getSimpleText(a.reader, "Enter a thank-you message (optional)", a.out)
	if err != nil {
		return err
	}

	dog, err := a.api.Adopt(ctx, id, msg)
	if err != nil {
		a.report(err)
		return err
	}

	fmt.Fprintf(a.out, "You adopted %s!\n", dog.Name)
	return nil
}

func (a *App) Remove(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter dog ID", a.out)
	if err != nil {
		return err
	}

	receipt, err := a.api.Remove(ctx, id)
	if err != nil {
		a.report(err)
		return err
	}

	fmt.Fprintf(a.out, "Removed %d dog(s)\n", receipt.DeletedCount)
	return nil
}

func (a *App) printDogs(dogs []*models.Dog) {
	if len(dogs) == 0 {
		fmt.Fprintln(a.out, "No dogs found")
		return
	}
	for _, d := range dogs {
		line := fmt.Sprintf("%s  %s", d.ID, d.Name)
		if d.Description != "" {
			line += " - " + d.Description
		}
		if d.Adopted() {
			line += " [adopted]"
		}
		fmt.Fprintln(a.out, line)
	}
}

type listArgs struct {
	adopted string
	page    int
}

// parseListArgs reads key=value pairs, accepting only the allowed keys.
func parseListArgs(args []string, allowed ...string) (listArgs, error) {
	var out listArgs

	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || !slices.Contains(allowed, key) {
			return out, fmt.Errorf("unknown argument %q, expected one of %s as key=value", arg, strings.Join(allowed, ", "))
		}

		switch key {
		case "adopted":
			if value != "true" && value != "false" {
				return out, fmt.Errorf("adopted must be true or false")
			}
			out.adopted = value
		case "p":
			p, err := strconv.Atoi(value)
			if err != nil || p < 0 {
				return out, fmt.Errorf("p must be a non-negative number")
			}
			out.page = p
		}
	}

	return out, nil
}
