package obj

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/binzume/objconv/internal/logger"
	"go.uber.org/zap"
)

// OutputFile writes <outPath><name>.obj and <outPath><mtlDir><name>.mtl.
// texDir and mtlDir are relative to outPath; "" means the same directory.
// Both files are attempted even if one fails; the first error is returned.
func (doc *Document) OutputFile(fname, outPath, texDir, mtlDir string) error {
	name := outputName(fname)
	stem := name[:len(name)-len(filepath.Ext(name))]

	if outPath == "" {
		outPath = "." + string(os.PathSeparator)
	}
	outPath = dirPrefix(outPath)
	texDir = dirPrefix(texDir)
	mtlDir = dirPrefix(mtlDir)

	relMtl := mtlDir + stem + ".mtl"
	mtlPath := outPath + relMtl
	objPath := outPath + stem + ".obj"

	if doc.Create == nil {
		for _, p := range []string{mtlPath, objPath} {
			if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
				logger.Warn("cannot create directory", zap.String("path", p), zap.Error(err))
			}
		}
	}

	logger.Info("output", zap.String("obj", objPath), zap.String("mtl", mtlPath),
		zap.Stringer("engine", doc.Engine), zap.Int("objects", doc.NumObj()))
	errMtl := doc.OutputMTL(mtlPath, texDir)
	errObj := doc.OutputOBJ(objPath, relMtl)
	if errMtl != nil {
		return errMtl
	}
	return errObj
}

// outputName returns the sanitized base file name of fname.
func outputName(fname string) string {
	if i := strings.LastIndexAny(fname, `/\`); i >= 0 {
		fname = fname[i+1:]
	}
	name := CanonicalFileName(strings.Trim(fname, " "))
	if name == "" {
		return "_"
	}
	if name[0] == '.' {
		name = "_" + name[1:]
	}
	return name
}

func dirPrefix(dir string) string {
	if dir == "" || strings.HasSuffix(dir, "/") || strings.HasSuffix(dir, `\`) {
		return dir
	}
	return dir + "/"
}
