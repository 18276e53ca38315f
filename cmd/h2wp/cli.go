package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/h2wp"
	"github.com/fwojciec/h2wp/importer"
	"github.com/fwojciec/h2wp/wxr"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Jobs      h2wp.JobStore
	Posts     h2wp.PostService
	Terms     h2wp.TermService
	Media     h2wp.MediaService
	Files     h2wp.FileSystem
	Parser    h2wp.Parser
	Converter h2wp.Converter
	Extractor h2wp.Extractor
	Importer  h2wp.Importer
	Preparer  *importer.Preparer
	Runner    *importer.Runner
	Exporter  *wxr.Exporter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB         string `name:"db" env:"H2WP_DB" help:"SQLite database path (default ~/.h2wp/h2wp.db)"`
	Uploads    string `env:"H2WP_UPLOADS" help:"Directory receiving imported media (default ~/.h2wp/uploads)"`
	UploadsURL string `name:"uploads-url" env:"H2WP_UPLOADS_URL" help:"Public URL of the uploads directory"`
	Verbose    bool   `short:"v" help:"Log every store and import call to stderr"`

	Prepare  PrepareCmd  `cmd:"" help:"Scan a directory and create an import job"`
	Step     StepCmd     `cmd:"" help:"Import the next batch of files of a job"`
	Run      RunCmd      `cmd:"" help:"Step a job until every file is imported"`
	Status   StatusCmd   `cmd:"" help:"Show the progress of a job"`
	Jobs     JobsCmd     `cmd:"" help:"List all import jobs"`
	Delete   DeleteCmd   `cmd:"" help:"Delete an import job"`
	Import   ImportCmd   `cmd:"" help:"Import a single HTML file"`
	Preview  PreviewCmd  `cmd:"" help:"Show what a file would become without importing it"`
	Category CategoryCmd `cmd:"" help:"Create a post category"`
	Export   ExportCmd   `cmd:"" help:"Write all imported content as WordPress WXR"`
	Serve    ServeCmd    `cmd:"" help:"Serve job progress over HTTP"`
}

// OptionFlags are the import options shared by prepare and import. Flags
// override values loaded from --options.
type OptionFlags struct {
	Options     string   `type:"path" help:"YAML file with import options"`
	PostType    string   `name:"post-type" help:"Post type to create (default post)"`
	Status      string   `help:"Post status: draft, publish, private or pending (default draft)"`
	Author      int64    `help:"Author ID of created posts (default 1)"`
	Category    string   `help:"Category slug assigned to created posts"`
	BaseURL     string   `name:"base-url" help:"Site URL whose absolute links are treated as local"`
	KeepDates   bool     `name:"keep-dates" help:"Use file modification times as post dates"`
	SetFeatured bool     `name:"set-featured" help:"Use the first imported image as featured image"`
	DryRun      bool     `name:"dry-run" help:"Report what would be imported without writing"`
	ExtractMain bool     `name:"extract-main" help:"Strip navigation and boilerplate before importing"`
	Cleanup     []string `help:"Files deleted once the job completes (repeatable)"`
}

// PrepareCmd is the "prepare" subcommand.
type PrepareCmd struct {
	Dir          string `arg:"" type:"path" help:"Directory containing the HTML files"`
	SkipVendored bool   `name:"skip-vendored" help:"Skip vendored paths such as node_modules/ and vendor/"`
	SkipHidden   bool   `name:"skip-hidden" help:"Skip dot-files and dot-directories"`
	OptionFlags  `embed:""`
}

// StepCmd is the "step" subcommand.
type StepCmd struct {
	Job   string `arg:"" help:"Job ID"`
	Batch int    `short:"b" default:"15" help:"Files per step (1-25)"`
}

// RunCmd is the "run" subcommand.
type RunCmd struct {
	Job   string `arg:"" help:"Job ID"`
	Batch int    `short:"b" default:"15" help:"Files per step (1-25)"`
}

// StatusCmd is the "status" subcommand.
type StatusCmd struct {
	Job  string `arg:"" help:"Job ID"`
	Tail int    `default:"10" help:"Number of log lines to show"`
}

// JobsCmd is the "jobs" subcommand.
type JobsCmd struct{}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	Job   string `arg:"" help:"Job ID"`
	Force bool   `help:"Confirm deletion"`
}

// ImportCmd is the "import" subcommand.
type ImportCmd struct {
	File        string `arg:"" type:"existingfile" help:"HTML file to import"`
	Base        string `type:"path" help:"Source root the file's assets are resolved against (default: the file's directory)"`
	OptionFlags `embed:""`
}

// PreviewCmd is the "preview" subcommand.
type PreviewCmd struct {
	File        string `arg:"" type:"existingfile" help:"HTML file to preview"`
	Base        string `type:"path" help:"Source root used to derive the slug (default: the file's directory)"`
	ExtractMain bool   `name:"extract-main" help:"Preview only the main content"`
	SiteURL     string `name:"site-url" help:"Render root-relative links against this site URL"`
}

// CategoryCmd is the "category" subcommand.
type CategoryCmd struct {
	Slug string `arg:"" help:"Category slug"`
	Name string `arg:"" help:"Category name"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Output    string `arg:"" help:"Output file, or - for stdout"`
	SiteTitle string `name:"site-title" default:"h2wp" help:"Site title written to the export"`
	SiteURL   string `name:"site-url" default:"http://localhost" help:"Site URL written to the export"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `default:"127.0.0.1:8377" help:"Listen address"`
}
