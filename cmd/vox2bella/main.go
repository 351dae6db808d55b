// Command vox2bella converts a MagicaVoxel .vox file into a bella scene
// archive (.bsz), one box instance per voxel with one material per palette
// color.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	get "github.com/hashicorp/go-getter"

	"github.com/oomer/vox2bella/internal/catalog"
	"github.com/oomer/vox2bella/internal/config"
	"github.com/oomer/vox2bella/internal/convert"
	"github.com/oomer/vox2bella/internal/license"
	"github.com/oomer/vox2bella/pkg/bella"
	"github.com/oomer/vox2bella/pkg/vox"
)

const version = "1.0.0"

func main() {
	cfg := config.DefaultConfig()

	var (
		voxin       = flag.String("voxin", "", "input .vox file (local path or go-getter URL)")
		output      = flag.String("o", "", "output .bsz path (default: input stem + .bsz)")
		writeText   = flag.Bool("text", false, "also write the uncompressed .bsa beside the .bsz")
		settings    = flag.String("settings", "", "YAML render settings file")
		catalogPath = flag.String("catalog", "", "SQLite conversion index path (empty to disable)")

		showVersion = flag.Bool("version", false, "print version and exit")
		licenseInfo = flag.Bool("licenseinfo", false, "print license info and exit")
		thirdParty  = flag.Bool("thirdparty", false, "print third party licenses and exit")
		verbose     = flag.Bool("v", false, "debug logging")
	)
	flag.IntVar(&cfg.Width, "width", cfg.Width, "render width in pixels")
	flag.IntVar(&cfg.Height, "height", cfg.Height, "render height in pixels")
	flag.StringVar(&cfg.Environment.File, "env", cfg.Environment.File, "environment dome image name")
	flag.Parse()

	// Informational flags short-circuit before any decoding.
	switch {
	case *showVersion:
		fmt.Println(version)
		return
	case *licenseInfo:
		fmt.Println(license.Program)
		return
	case *thirdParty:
		fmt.Println(license.ThirdParty)
		return
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	if *voxin == "" {
		fmt.Fprintln(os.Stderr, "mandatory -voxin input missing")
		flag.Usage()
		os.Exit(1)
	}

	if *settings != "" {
		fromFile, err := config.Load(*settings)
		if err != nil {
			log.Error("load settings", "error", err)
			os.Exit(1)
		}
		explicit := map[string]bool{}
		flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })
		config.Merge(cfg, fromFile, explicit)
	}

	inputPath, cleanup, err := fetchInput(*voxin, log)
	if err != nil {
		log.Error("fetch input", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	if !strings.EqualFold(filepath.Ext(inputPath), ".vox") {
		log.Error("input must have a .vox extension", "input", *voxin)
		os.Exit(1)
	}

	outPath := *output
	if outPath == "" {
		base := filepath.Base(*voxin)
		outPath = strings.TrimSuffix(base, filepath.Ext(base)) + ".bsz"
	}

	start := time.Now()
	data, err := os.ReadFile(inputPath)
	if err != nil {
		log.Error("read input", "error", err)
		os.Exit(1)
	}

	model, err := vox.Decode(data)
	if err != nil {
		log.Error("decode vox file", "input", *voxin, "error", err)
		os.Exit(1)
	}
	log.Debug("decoded model",
		"voxels", len(model.Voxels),
		"materials", len(model.Materials),
		"sizeChunks", len(model.Dims),
	)

	scene, err := convert.Build(model, cfg, log)
	if err != nil {
		log.Error("build scene", "error", err)
		os.Exit(1)
	}

	if err := bella.WriteBSZ(outPath, scene); err != nil {
		log.Error("write scene archive", "output", outPath, "error", err)
		os.Exit(1)
	}
	if *writeText {
		bsaPath := strings.TrimSuffix(outPath, filepath.Ext(outPath)) + ".bsa"
		if err := bella.WriteBSA(bsaPath, scene); err != nil {
			log.Error("write scene text", "output", bsaPath, "error", err)
			os.Exit(1)
		}
	}

	recordCatalog(*catalogPath, *voxin, outPath, data, model, time.Since(start), log)

	log.Info("wrote scene", "output", outPath, "voxels", len(model.Voxels), "elapsed", time.Since(start))
}

// fetchInput resolves the -voxin argument to a local file. go-getter
// sources are downloaded to a temp file first; the cleanup func removes it.
func fetchInput(src string, log *slog.Logger) (string, func(), error) {
	if !strings.Contains(src, "://") && !strings.Contains(src, "::") {
		if _, err := os.Stat(src); err != nil {
			return "", nil, fmt.Errorf("input does not exist: %w", err)
		}
		return src, func() {}, nil
	}

	dir, err := os.MkdirTemp("", "vox2bella")
	if err != nil {
		return "", nil, fmt.Errorf("create temp dir: %w", err)
	}
	dst := filepath.Join(dir, "input.vox")

	log.Info("downloading input", "src", src)
	if err := get.GetFile(dst, src); err != nil {
		os.RemoveAll(dir)
		return "", nil, fmt.Errorf("download %s: %w", src, err)
	}
	return dst, func() { os.RemoveAll(dir) }, nil
}

// recordCatalog appends the run to the conversion index. Failures are
// logged and swallowed; the converted scene is already on disk.
func recordCatalog(path, input, output string, data []byte, m *vox.Model, elapsed time.Duration, log *slog.Logger) {
	if path == "" {
		return
	}
	c, err := catalog.Open(path)
	if err != nil {
		log.Warn("open catalog", "error", err)
		return
	}
	defer c.Close()

	e := catalog.Entry{
		Input:     input,
		InputSHA:  catalog.SHA256(data),
		Output:    output,
		Voxels:    len(m.Voxels),
		Materials: len(m.Materials),
		Palette:   "default",
		Duration:  elapsed,
	}
	if m.Palette != nil {
		e.Palette = "custom"
	}
	if len(m.Dims) > 0 {
		e.DimX, e.DimY, e.DimZ = m.Dims[0].X, m.Dims[0].Y, m.Dims[0].Z
	}
	if err := c.Record(e); err != nil {
		log.Warn("record conversion", "error", err)
	}
}
