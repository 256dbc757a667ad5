package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/binzume/objconv/converter"
	"github.com/binzume/objconv/gltfutil"
	"github.com/binzume/objconv/internal/config"
	"github.com/binzume/objconv/internal/logger"
	"github.com/binzume/objconv/obj"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

func convert(input, name string, cfg *config.Config) error {
	engine, err := config.ParseEngine(cfg.Output.Engine)
	if err != nil {
		return err
	}
	src, err := gltfutil.Load(input)
	if err != nil {
		return err
	}
	objects, err := converter.NewGLTFToOBJConverter(nil).Convert(src)
	if err != nil {
		return errors.Wrap(err, "convert")
	}

	doc := obj.NewDocument(engine)
	doc.NoOffset = cfg.Output.Recenter
	doc.PhantomOut = cfg.Output.Phantom
	doc.MaxFacet = cfg.Output.MaxFacet
	for _, o := range objects {
		if err := doc.AddObject(o, cfg.Output.Collider); err != nil {
			return err
		}
	}
	center := doc.ExecAffineTrans()
	if doc.NoOffset {
		logger.Info("recentered", zap.Float64("x", center.X), zap.Float64("y", center.Y), zap.Float64("z", center.Z))
	}

	if name == "" {
		name = filepath.Base(input)
	}
	if err := doc.OutputFile(name, cfg.Output.Dir, cfg.Output.TextureDir, cfg.Output.MaterialDir); err != nil {
		return err
	}
	logger.Sugar.Infof("%s: %d objects, engine %v", name, doc.NumObj(), doc.Engine)

	if cfg.Texture.Export {
		outDir := cfg.Output.Dir
		if outDir == "" {
			outDir = "."
		}
		outDir = filepath.Join(outDir, cfg.Output.TextureDir)
		written := converter.NewTextureExporter(filepath.Dir(input), outDir, cfg.Texture.ResolutionLimit).Export(src)
		logger.Info("textures", zap.String("dir", outDir), zap.Int("count", len(written)))
	}
	return nil
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] input.glb|input.gltf [name]\n", os.Args[0])
		flag.PrintDefaults()
	}
	config.ParseFlags()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := convert(flag.Arg(0), flag.Arg(1), cfg); err != nil {
		logger.Error("conversion failed", zap.String("input", flag.Arg(0)), zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	logger.Sync()
}
