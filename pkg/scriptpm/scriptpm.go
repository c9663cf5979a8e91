// Package scriptpm provides the public Go library API for scriptpm.
//
// scriptpm installs scripts listed in a remote catalog into a local script
// directory and keeps them at the catalog's current version. The installed
// set is recorded in <home>/installed-script.json.
//
// # Basic Usage
//
//	client, err := scriptpm.New(scriptpm.Options{
//	    Home:       "/path/to/home",
//	    ScriptDir:  "/path/to/scripts",
//	    CatalogURL: "https://example.com/python-library",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Install the first catalog entry
//	installed, err := client.Install(ctx, 0)
//
//	// Bring every installed script up to date
//	result, err := client.Update(ctx, scriptpm.UpdateOptions{})
package scriptpm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/bianoble/scriptpm/internal/config"
	"github.com/bianoble/scriptpm/internal/engine"
	"github.com/bianoble/scriptpm/internal/source"
	"github.com/bianoble/scriptpm/internal/state"
)

// Installer installs a catalog entry by zero-based index.
type Installer interface {
	Install(ctx context.Context, index int) (*InstallResult, error)
}

// Updater reconciles installed scripts with the catalog.
type Updater interface {
	Update(ctx context.Context, opts UpdateOptions) (*UpdateResult, error)
}

// Options configures a scriptpm client.
type Options struct {
	// Home holds the installed-state file. Must exist.
	Home string

	// ScriptDir holds installed scripts. Must exist.
	ScriptDir string

	// CatalogURL is the base URL of the catalog.
	CatalogURL string

	// Manifest and ScriptsPath override the catalog layout under CatalogURL.
	// Defaults: "scripts-catalog.json" and "library/scripts".
	Manifest    string
	ScriptsPath string

	// SkipUpdateVerification disables hash checks when updating.
	// Installs are always verified.
	SkipUpdateVerification bool

	HTTPClient HTTPClient
	Timeout    time.Duration
	MaxSize    int64

	Logger *log.Logger
}

// Client is the main entry point for the scriptpm library.
// It implements Installer and Updater.
type Client struct {
	dirs    config.Directories
	layout  source.Layout
	catalog *source.CatalogFetcher
	content *source.ContentFetcher
	store   *state.Store
	verify  bool
	logger  *log.Logger
}

// New creates a client. Both directories must already exist; the client
// never creates them.
func New(opts Options) (*Client, error) {
	dirs := config.Directories{Home: opts.Home, ScriptDir: opts.ScriptDir}
	if err := dirs.Check(); err != nil {
		return nil, err
	}
	if opts.CatalogURL == "" {
		return nil, &ConfigurationError{Key: "catalog.url", Err: errors.New("catalog URL is not set")}
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	transport := source.Transport{Client: opts.HTTPClient, Timeout: opts.Timeout, MaxSize: opts.MaxSize}

	return &Client{
		dirs: dirs,
		layout: source.Layout{
			BaseURL:     opts.CatalogURL,
			Manifest:    opts.Manifest,
			ScriptsPath: opts.ScriptsPath,
		},
		catalog: &source.CatalogFetcher{Transport: transport},
		content: &source.ContentFetcher{Transport: transport},
		store:   state.NewStore(dirs.Home, logger),
		verify:  !opts.SkipUpdateVerification,
		logger:  logger,
	}, nil
}

// Catalog fetches the current catalog.
func (c *Client) Catalog(ctx context.Context) ([]Record, error) {
	records, err := c.catalog.Fetch(ctx, c.layout.ManifestURL())
	if err != nil {
		return nil, fmt.Errorf("retrieving script catalog: %w", err)
	}
	return records, nil
}

// Installed returns the installed state. A corrupt state file reads as empty.
func (c *Client) Installed() []Record {
	return c.store.Load()
}

// StatePath returns the installed-state file path.
func (c *Client) StatePath() string {
	return c.store.Path
}

// Install fetches the catalog and installs catalog[index], then saves the
// state. Nothing is persisted if the download fails.
func (c *Client) Install(ctx context.Context, index int) (*InstallResult, error) {
	catalog, err := c.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	return c.InstallFrom(ctx, catalog, index)
}

// InstallFrom installs catalog[index] from an already fetched catalog.
func (c *Client) InstallFrom(ctx context.Context, catalog []Record, index int) (*InstallResult, error) {
	eng := &engine.InstallEngine{
		Downloader: c.content,
		ScriptURL:  c.layout.ScriptURL,
		ScriptDir:  c.dirs.ScriptDir,
		Logger:     c.logger,
	}

	result, err := eng.Install(ctx, catalog, c.store.Load(), index)
	if err != nil {
		return nil, err
	}

	if err := c.store.Save(result.Installed); err != nil {
		return nil, fmt.Errorf("recording install of %s: %w", result.Record.Name, err)
	}
	return result, nil
}

// Update fetches the catalog, reconciles every installed script and saves
// the resulting state once. Per-script failures are rolled back and
// reported in result.Failed; they are not returned as an error.
func (c *Client) Update(ctx context.Context, opts UpdateOptions) (*UpdateResult, error) {
	catalog, err := c.Catalog(ctx)
	if err != nil {
		return nil, err
	}

	eng := &engine.UpdateEngine{
		Downloader: c.content,
		ScriptURL:  c.layout.ScriptURL,
		ScriptDir:  c.dirs.ScriptDir,
		VerifyHash: c.verify,
		Logger:     c.logger,
	}

	result, err := eng.Update(ctx, catalog, c.store.Load(), opts)
	if err != nil {
		return nil, err
	}

	if opts.DryRun {
		return result, nil
	}

	if err := c.store.Save(result.Installed); err != nil {
		return result, fmt.Errorf("saving installed state: %w", err)
	}
	return result, nil
}

// Status reports the state of each installed script. With offline set the
// catalog is not fetched and only local files are checked.
func (c *Client) Status(ctx context.Context, offline bool) ([]ScriptStatus, error) {
	var catalog []Record
	if !offline {
		var err error
		catalog, err = c.Catalog(ctx)
		if err != nil {
			return nil, err
		}
	}

	eng := &engine.StatusEngine{ScriptDir: c.dirs.ScriptDir}
	return eng.Status(catalog, c.store.Load()), nil
}
