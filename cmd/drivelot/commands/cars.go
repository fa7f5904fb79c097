// Copyright 2026 The Drivelot Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/drivelot/drivelot/cmd/drivelot/cli"
	"github.com/drivelot/drivelot/lib/listing"
	"github.com/drivelot/drivelot/lib/query"
)

func carsCommand() *cli.Command {
	return &cli.Command{
		Name:    "cars",
		Summary: "Inspect and create car listings",
		Subcommands: []*cli.Command{
			carsListCommand(),
			carsShowCommand(),
			carsAddCommand(),
		},
	}
}

func carsListCommand() *cli.Command {
	var configPath string
	var search string
	var makeFilter string
	var sortKey string
	var page int

	return &cli.Command{
		Name:    "list",
		Summary: "List cars for sale",
		Description: `List cars for sale, one page at a time.

Search, make filtering, sorting, and pagination all happen client-side
over the full listing set, exactly as in the interactive browser.`,
		Usage: "drivelot cars list [--search <text>] [--make <make>] [--sort <key>] [--page <n>]",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("list", pflag.ContinueOnError)
			flags.StringVar(&configPath, "config", "", "config file path")
			flags.StringVar(&search, "search", "", "match against make or model, case-insensitive")
			flags.StringVar(&makeFilter, "make", "", "exact make filter (empty means all makes)")
			flags.StringVar(&sortKey, "sort", "", "sort key: price-asc, price-desc, year-desc, year-asc")
			flags.IntVar(&page, "page", 1, "result page, 9 cars per page")
			return flags
		},
		Run: func(args []string) error {
			sort := query.Sort(sortKey)
			if !sort.Valid() {
				return fmt.Errorf("unknown sort key %q", sortKey)
			}

			app, err := newAppContext(configPath)
			if err != nil {
				return err
			}

			ctx, cancel := app.requestContext()
			defer cancel()
			cars, err := app.API.Cars(ctx)
			if err != nil {
				return err
			}

			params := query.Params{Search: search, Make: makeFilter, Sort: sort, Page: page}
			result := query.Apply(cars, params)
			if len(result.Items) == 0 {
				fmt.Println("No cars found.")
				return nil
			}

			tw := tabwriter.NewWriter(os.Stdout, 2, 0, 3, ' ', 0)
			fmt.Fprintln(tw, "ID\tMAKE\tMODEL\tYEAR\tMILEAGE\tPRICE")
			for _, car := range result.Items {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%.0f\t%.0f\n",
					car.ID, car.Make, car.Model, car.Year, car.Mileage, car.Price)
			}
			tw.Flush()
			fmt.Printf("\nPage %d of %d (%d cars)\n", result.Number, result.TotalPages, result.Total)
			return nil
		},
	}
}

func carsShowCommand() *cli.Command {
	var configPath string

	return &cli.Command{
		Name:    "show",
		Summary: "Show one listing, seller details included",
		Usage:   "drivelot cars show <id>",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("show", pflag.ContinueOnError)
			flags.StringVar(&configPath, "config", "", "config file path")
			return flags
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("usage: drivelot cars show <id>")
			}

			app, err := newAppContext(configPath)
			if err != nil {
				return err
			}

			ctx, cancel := app.requestContext()
			defer cancel()
			car, err := app.API.Car(ctx, args[0])
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(os.Stdout, 2, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "Title:\t%s\n", car.Title())
			fmt.Fprintf(tw, "Price:\t$%.0f\n", car.Price)
			fmt.Fprintf(tw, "Mileage:\t%.0f km\n", car.Mileage)
			if car.Transmission != listing.TransmissionUnset {
				fmt.Fprintf(tw, "Transmission:\t%s\n", car.Transmission)
			}
			if car.FuelType != listing.FuelUnset {
				fmt.Fprintf(tw, "Fuel:\t%s\n", car.FuelType)
			}
			if car.Color != "" {
				fmt.Fprintf(tw, "Color:\t%s\n", car.Color)
			}
			if car.Condition != "" {
				fmt.Fprintf(tw, "Condition:\t%s\n", car.Condition)
			}
			fmt.Fprintf(tw, "Images:\t%s\n", strings.Join(car.Images(), ", "))
			if car.Seller.Name != "" || car.Seller.Email != "" {
				fmt.Fprintf(tw, "Seller:\t%s <%s>\n", car.Seller.Name, car.Seller.Email)
			}
			tw.Flush()

			if car.Description != "" {
				fmt.Printf("\n%s\n", car.Description)
			}
			return nil
		},
	}
}

func carsAddCommand() *cli.Command {
	var configPath string
	draft := listing.Draft{}
	var transmission string
	var fuel string
	var images []string

	return &cli.Command{
		Name:    "add",
		Summary: "List a car for sale",
		Description: `Submit a new car listing.

The listing fields go up as JSON with the image files attached as
multipart parts. Requires a logged-in CONSUMER account.`,
		Usage: "drivelot cars add --make <make> --model <model> --year <year> --price <price> [flags]",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("add", pflag.ContinueOnError)
			flags.StringVar(&configPath, "config", "", "config file path")
			flags.StringVar(&draft.Make, "make", "", "car make (required)")
			flags.StringVar(&draft.Model, "model", "", "car model (required)")
			flags.IntVar(&draft.Year, "year", 0, "model year (required)")
			flags.Float64Var(&draft.Mileage, "mileage", 0, "odometer reading in km")
			flags.Float64Var(&draft.Price, "price", 0, "asking price (required)")
			flags.StringVar(&draft.Description, "description", "", "free-form description, markdown welcome")
			flags.StringVar(&transmission, "transmission", "", "Manual, Automatic, or Semi-Automatic")
			flags.StringVar(&fuel, "fuel", "", "Petrol, Diesel, Electric, or Hybrid")
			flags.StringVar(&draft.Color, "color", "", "exterior color")
			flags.StringVar(&draft.Condition, "condition", "", "condition, e.g. New or Used")
			flags.StringArrayVar(&images, "image", nil, "image file to attach (repeatable)")
			return flags
		},
		Run: func(args []string) error {
			draft.Transmission = listing.Transmission(transmission)
			draft.FuelType = listing.FuelType(fuel)
			draft.ImagePaths = images

			app, err := newAppContext(configPath)
			if err != nil {
				return err
			}
			if err := app.requireSession(); err != nil {
				return err
			}

			ctx, cancel := app.uploadContext()
			defer cancel()
			created, err := app.API.CreateCar(ctx, &draft)
			if err != nil {
				return err
			}

			fmt.Printf("Listed %s", created.Title())
			if created.ID != "" {
				fmt.Printf(" (id %s)", created.ID)
			}
			fmt.Println()
			return nil
		},
	}
}
