// odatagen generates Go DTO structs for entity types of an OData service.
//
// Usage:
//
//	odatagen [-target dir] [-package name] [-metadata file] Entity...
//
// The metadata document is read from the -metadata file. When that file does
// not exist it is downloaded from $ODATA_HOST using NAV_USER and NAV_PASSWORD
// and kept for later runs.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/syssam/odatagen/compiler/fetch"
	"github.com/syssam/odatagen/compiler/gen"
	"github.com/syssam/odatagen/internal/config"
	"github.com/syssam/odatagen/internal/fsutil"
	"github.com/syssam/odatagen/internal/logger"
	"github.com/syssam/odatagen/schema/edmx"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("odatagen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: odatagen [flags] Entity...")
		fs.PrintDefaults()
	}
	var (
		target   = fs.String("target", "", "output directory (default $ODATAGEN_TARGET or entities)")
		pkg      = fs.String("package", "", "package name of generated files (default base of target)")
		metadata = fs.String("metadata", "", "cached metadata document (default $ODATA_METADATA or odata_metadata.xml)")
		envFile  = fs.String("env", "", "env file to load instead of .env")
	)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return exitUsage
	}

	var envFiles []string
	if *envFile != "" {
		envFiles = append(envFiles, *envFile)
	}
	cfg, err := config.Load(envFiles...)
	if err != nil {
		fmt.Fprintf(stderr, "failed to load config: %v\n", err)
		return exitError
	}
	if *target != "" {
		cfg.Gen.Target = *target
	}
	if *pkg != "" {
		cfg.Gen.Package = *pkg
	}
	if *metadata != "" {
		cfg.Gen.Metadata = *metadata
	}

	log, err := logger.New(logger.Config(cfg.Logging), stderr)
	if err != nil {
		fmt.Fprintf(stderr, "failed to create logger: %v\n", err)
		return exitError
	}
	defer log.Close()

	cached, err := fsutil.Exists(cfg.Gen.Metadata)
	if err != nil {
		log.WithError(err).Error("cannot check metadata cache")
		return exitError
	}
	if err := cfg.Validate(!cached); err != nil {
		log.WithError(err).Error("invalid configuration")
		return exitError
	}

	src := &fetch.Source{
		BaseURL:  cfg.Service.Host,
		Username: cfg.Service.User,
		Password: cfg.Service.Password,
		Cache:    &fetch.FileCache{Path: cfg.Gen.Metadata},
		Logger:   log.WithField("metadata", cfg.Gen.Metadata),
	}
	data, err := src.Load(ctx)
	if err != nil {
		log.WithError(err).Error("failed to load metadata")
		return exitError
	}
	doc, err := edmx.ParseBytes(data)
	if err != nil {
		log.WithError(err).Error("failed to parse metadata")
		return exitError
	}

	gcfg, err := gen.NewConfig(append(cfg.GenOptions(), gen.WithLogger(log))...)
	if err != nil {
		log.WithError(err).Error("invalid generator config")
		return exitError
	}
	g, err := gen.NewGenerator(doc, gcfg)
	if err != nil {
		log.WithError(err).Error("failed to create generator")
		return exitError
	}
	if err := g.GenerateAll(fs.Args()...); err != nil {
		log.WithError(err).Error("generation finished with errors")
		return exitError
	}
	return exitOK
}
