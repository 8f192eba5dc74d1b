package convert

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"starfield/internal/utils"
)

type FileEntry struct {
	Name   string
	Offset uint32
	Size   uint32
}

// Package is the parsed table of contents of a .pkg asset bundle.
type Package struct {
	Version   string
	Entries   []FileEntry
	DataStart int64
}

func readPkgString(r io.Reader) (string, error) {
	size, err := readUint32(r)
	if err != nil {
		return "", err
	}
	if size > 1<<16 {
		return "", fmt.Errorf("pkg string length %d too large", size)
	}
	buf := make([]byte, size)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

func ReadPkgIndex(r io.ReadSeeker) (*Package, error) {
	version, err := readPkgString(r)
	if err != nil {
		return nil, fmt.Errorf("read version: %w", err)
	}
	if !strings.HasPrefix(version, "PKGV") {
		return nil, fmt.Errorf("not a pkg bundle: version %q", version)
	}

	fileCount, err := readUint32(r)
	if err != nil {
		return nil, err
	}

	pkg := &Package{Version: version, Entries: make([]FileEntry, 0, fileCount)}
	for i := uint32(0); i < fileCount; i++ {
		name, err := readPkgString(r)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		var offset, size uint32
		if offset, err = readUint32(r); err != nil {
			return nil, err
		}
		if size, err = readUint32(r); err != nil {
			return nil, err
		}
		pkg.Entries = append(pkg.Entries, FileEntry{Name: name, Offset: offset, Size: size})
	}

	pkg.DataStart, err = r.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, err
	}
	return pkg, nil
}

// ExtractPkg unpacks every entry of pkgPath below outputDir.
func ExtractPkg(pkgPath, outputDir string) error {
	utils.Debug("Unpacker: Opening package %s", pkgPath)
	f, err := os.Open(pkgPath)
	if err != nil {
		return err
	}
	defer f.Close()

	pkg, err := ReadPkgIndex(f)
	if err != nil {
		return fmt.Errorf("%s: %w", pkgPath, err)
	}
	utils.Debug("Unpacker: Package Version: %s, %d files", pkg.Version, len(pkg.Entries))

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return err
	}

	for i, entry := range pkg.Entries {
		destPath := filepath.Join(outputDir, filepath.FromSlash(entry.Name))
		rel, err := filepath.Rel(outputDir, destPath)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return fmt.Errorf("entry %q escapes output directory", entry.Name)
		}

		if i%10 == 0 || i == len(pkg.Entries)-1 {
			utils.Debug("Unpacker: Extracting file %d/%d: %s", i+1, len(pkg.Entries), entry.Name)
		}
		if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
			return err
		}
		if _, err := f.Seek(pkg.DataStart+int64(entry.Offset), io.SeekStart); err != nil {
			return err
		}

		outF, err := os.Create(destPath)
		if err != nil {
			return err
		}
		_, err = io.CopyN(outF, f, int64(entry.Size))
		outF.Close()
		if err != nil {
			return fmt.Errorf("extract %s: %w", entry.Name, err)
		}
	}

	utils.Debug("Unpacker: Extraction completed successfully")
	return nil
}
