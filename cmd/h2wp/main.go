package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/h2wp"
	"github.com/fwojciec/h2wp/fs"
	"github.com/fwojciec/h2wp/goquery"
	"github.com/fwojciec/h2wp/htmltomarkdown"
	"github.com/fwojciec/h2wp/importer"
	h2wpslog "github.com/fwojciec/h2wp/slog"
	"github.com/fwojciec/h2wp/sqlite"
	"github.com/fwojciec/h2wp/trafilatura"
	"github.com/fwojciec/h2wp/wxr"
	"github.com/joho/godotenv"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// DefaultUploadsURL is the public URL of the uploads directory when none is
// configured.
const DefaultUploadsURL = "http://localhost/wp-content/uploads"

// Main represents the program.
type Main struct {
	// Defaults used when the matching flag or environment variable is
	// empty. Set before calling Run().
	DBPath     string
	UploadsDir string
	UploadsURL string

	// EnvFile is loaded into the environment before flags are parsed.
	// A missing file is not an error.
	EnvFile string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	dir := defaultDataDir()
	return &Main{
		DBPath:     filepath.Join(dir, "h2wp.db"),
		UploadsDir: filepath.Join(dir, "uploads"),
		UploadsURL: DefaultUploadsURL,
		EnvFile:    ".env",
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if m.EnvFile != "" {
		if err := godotenv.Load(m.EnvFile); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to load %s: %w", m.EnvFile, err)
		}
	}

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("h2wp"),
		kong.Description("Import trees of static HTML files into a WordPress-style content store."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'h2wp --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelInfo
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	dbPath := firstNonEmpty(cli.DB, m.DBPath)
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}
	m.DB = sqlite.NewDB(dbPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set H2WP_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", dbPath, err)
	}
	defer m.Close()

	m.wire(deps, cli)

	return kongCtx.Run(deps)
}

// wire builds the services used by commands.
func (m *Main) wire(deps *Dependencies, cli *CLI) {
	files := fs.NewFileSystem()
	uploads := fs.NewUploadStore(
		firstNonEmpty(cli.Uploads, m.UploadsDir),
		firstNonEmpty(cli.UploadsURL, m.UploadsURL),
	)

	var (
		jobs  h2wp.JobStore     = sqlite.NewJobStore(m.DB)
		posts h2wp.PostService  = sqlite.NewPostService(m.DB)
		media h2wp.MediaService = sqlite.NewMediaService(m.DB, uploads)
	)
	if cli.Verbose {
		jobs = h2wpslog.NewLoggingJobStore(jobs, deps.Logger)
		posts = h2wpslog.NewLoggingPostService(posts, deps.Logger)
		media = h2wpslog.NewLoggingMediaService(media, deps.Logger)
	}

	extractor := trafilatura.NewExtractor()

	var imp h2wp.Importer = &importer.Importer{
		Files:     files,
		Parser:    goquery.NewParser(),
		Rewriter:  goquery.NewRewriter(),
		Media:     media,
		Posts:     posts,
		Extractor: extractor,
	}
	if cli.Verbose {
		imp = h2wpslog.NewLoggingImporter(imp, deps.Logger)
	}

	terms := sqlite.NewTermService(m.DB)

	deps.Jobs = jobs
	deps.Posts = posts
	deps.Terms = terms
	deps.Media = media
	deps.Files = files
	deps.Parser = goquery.NewParser()
	deps.Converter = htmltomarkdown.NewConverter()
	deps.Extractor = extractor
	deps.Importer = imp
	deps.Preparer = &importer.Preparer{Scanner: fs.NewScanner(), Jobs: jobs}
	deps.Runner = &importer.Runner{Jobs: jobs, Importer: imp, Files: files}
	deps.Exporter = &wxr.Exporter{Posts: posts, Media: media, Terms: terms}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".h2wp"
	}
	return filepath.Join(home, ".h2wp")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
