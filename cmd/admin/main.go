// Command admin is a terminal front end for the admin pages: it lists
// the dashboard and manages programs against a running API server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"text/tabwriter"
	"time"

	"github.com/TechXplorers1/comagend-website/internal/admin"
	"github.com/TechXplorers1/comagend-website/internal/client"
	"github.com/TechXplorers1/comagend-website/internal/config"
	"github.com/TechXplorers1/comagend-website/internal/schema"
	"github.com/TechXplorers1/comagend-website/internal/validation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	if len(os.Args) < 2 {
		usage()
	}

	cl := client.New(cfg.APIBaseURL, &http.Client{Timeout: 15 * time.Second})
	form := admin.NewForm[schema.ProgramInput, schema.ProgramPatch](cl, validation.New(), client.KeyPrograms)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch os.Args[1] {
	case "dashboard":
		runDashboard(ctx, cl)
	case "programs":
		runPrograms(ctx, cl)
	case "create":
		runCreate(ctx, form, os.Args[2:])
	case "update":
		runUpdate(ctx, form, cl, os.Args[2:])
	case "delete":
		runDelete(ctx, form, os.Args[2:])
	default:
		usage()
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: admin <dashboard|programs|create|update|delete> [flags]")
	os.Exit(2)
}

func runDashboard(ctx context.Context, cl *client.Client) {
	d := admin.LoadDashboard(ctx, cl)

	printSection := func(name string, count int, err error) {
		if err != nil {
			fmt.Printf("%-18s unavailable: %v\n", name, err)
			return
		}
		fmt.Printf("%-18s %d\n", name, count)
	}
	printSection("Programs", d.Programs.Count, d.Programs.Err)
	printSection("Blog posts", d.BlogPosts.Count, d.BlogPosts.Err)
	printSection("Contact messages", d.Contacts.Count, d.Contacts.Err)

	if d.Contacts.Err == nil && len(d.Contacts.Recent) > 0 {
		fmt.Println("\nLatest contact messages:")
		for _, m := range d.Contacts.Recent {
			fmt.Printf("  %s <%s>: %s\n", m.Name, m.Email, m.Subject)
		}
	}
}

func runPrograms(ctx context.Context, cl *client.Client) {
	items, err := cl.Programs(ctx)
	if err != nil {
		log.Fatal(err)
	}
	if len(items) == 0 {
		fmt.Println("No programs found. Create one to get started.")
		return
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tCATEGORY")
	for _, p := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", p.ID, p.Title, p.Category)
	}
	tw.Flush()
}

func runCreate(ctx context.Context, form *admin.Form[schema.ProgramInput, schema.ProgramPatch], args []string) {
	fs := flag.NewFlagSet("create", flag.ExitOnError)
	title := fs.String("title", "", "program title")
	category := fs.String("category", "", "program category")
	image := fs.String("image", "", "program image URL")
	description := fs.String("description", "", "program description")
	fs.Parse(args)

	form.OpenCreate()
	form.SetInput(schema.ProgramInput{
		Title:       *title,
		Category:    *category,
		Image:       *image,
		Description: *description,
	})

	if err := form.SubmitCreate(ctx); err != nil {
		log.Fatal(err)
	}
	if errs := form.FieldErrors(); errs != nil {
		for field, rule := range errs {
			fmt.Fprintf(os.Stderr, "invalid %s: %s\n", field, rule)
		}
		os.Exit(1)
	}
	fmt.Println("program created")
}

func runUpdate(ctx context.Context, form *admin.Form[schema.ProgramInput, schema.ProgramPatch], cl *client.Client, args []string) {
	fs := flag.NewFlagSet("update", flag.ExitOnError)
	id := fs.String("id", "", "program id")
	title := fs.String("title", "", "new title")
	category := fs.String("category", "", "new category")
	image := fs.String("image", "", "new image URL")
	description := fs.String("description", "", "new description")
	fs.Parse(args)

	if *id == "" {
		log.Fatal("update: -id is required")
	}

	current, err := cl.ProgramByID(ctx, *id)
	if err != nil {
		log.Fatalf("update: %v", err)
	}

	form.OpenEdit(current.ID, schema.ProgramInput{
		Title:       current.Title,
		Category:    current.Category,
		Image:       current.Image,
		Description: current.Description,
	})

	var patch schema.ProgramPatch
	if *title != "" {
		patch.Title = title
	}
	if *category != "" {
		patch.Category = category
	}
	if *image != "" {
		patch.Image = image
	}
	if *description != "" {
		patch.Description = description
	}

	if err := form.SubmitEdit(ctx, patch); err != nil {
		log.Fatal(err)
	}
	if errs := form.FieldErrors(); errs != nil {
		for field, rule := range errs {
			fmt.Fprintf(os.Stderr, "invalid %s: %s\n", field, rule)
		}
		os.Exit(1)
	}
	fmt.Println("program updated")
}

func runDelete(ctx context.Context, form *admin.Form[schema.ProgramInput, schema.ProgramPatch], args []string) {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	id := fs.String("id", "", "program id")
	yes := fs.Bool("yes", false, "confirm the deletion")
	fs.Parse(args)

	if *id == "" {
		log.Fatal("delete: -id is required")
	}
	if !*yes {
		fmt.Println("refusing to delete without -yes")
		return
	}

	if err := form.Delete(ctx, *id, *yes); err != nil {
		log.Fatal(err)
	}
	fmt.Println("program deleted")
}
