package plan

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"

	"github.com/deltajuliet/obsidian-daily-bible-study-generator/core/errors"
)

// CompressionType specifies the compression algorithm for plan archives.
type CompressionType string

const (
	// CompressionXZ uses XZ/LZMA2 compression (default, best ratio).
	CompressionXZ CompressionType = "xz"
	// CompressionGzip uses gzip compression (stdlib, faster).
	CompressionGzip CompressionType = "gzip"
)

// ParseCompression parses a compression name from the command line.
func ParseCompression(s string) (CompressionType, error) {
	switch strings.ToLower(s) {
	case "", string(CompressionXZ):
		return CompressionXZ, nil
	case string(CompressionGzip), "gz":
		return CompressionGzip, nil
	default:
		return "", errors.NewValidation("compression", fmt.Sprintf("unknown compression %q (want xz or gzip)", s))
	}
}

// PackOptions configures plan packing behavior.
type PackOptions struct {
	// Compression specifies the compression algorithm. Defaults to XZ.
	Compression CompressionType
}

// DefaultPackOptions returns the default packing options (XZ compression).
func DefaultPackOptions() *PackOptions {
	return &PackOptions{
		Compression: CompressionXZ,
	}
}

// Pack archives a plan directory. The manifest is written first, then the
// notes in walk order. The directory must contain a plan.json; its manifest
// is returned so callers can report what was packed.
func Pack(srcDir, archivePath string, opts *PackOptions) (*Manifest, error) {
	if opts == nil {
		opts = DefaultPackOptions()
	}

	manifestData, err := os.ReadFile(filepath.Join(srcDir, ManifestName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewValidation("dir", fmt.Sprintf("%s is not a plan directory (no %s)", srcDir, ManifestName))
		}
		return nil, errors.NewIO("read", filepath.Join(srcDir, ManifestName), err)
	}
	manifest, err := ParseManifest(manifestData)
	if err != nil {
		return nil, err
	}

	file, err := os.Create(archivePath)
	if err != nil {
		return nil, errors.NewIO("create", archivePath, err)
	}
	defer file.Close()

	var compressWriter io.WriteCloser
	switch opts.Compression {
	case CompressionGzip:
		compressWriter, err = gzip.NewWriterLevel(file, gzip.BestCompression)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip writer: %w", err)
		}
	case CompressionXZ:
		fallthrough
	default:
		compressWriter, err = xz.NewWriter(file)
		if err != nil {
			return nil, fmt.Errorf("failed to create xz writer: %w", err)
		}
	}
	defer compressWriter.Close()

	tarWriter := tar.NewWriter(compressWriter)
	defer tarWriter.Close()

	if err := writeToTar(tarWriter, ManifestName, manifestData); err != nil {
		return nil, fmt.Errorf("failed to write manifest: %w", err)
	}

	err = filepath.Walk(srcDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		relPath, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}
		// Already written first
		if relPath == ManifestName {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return writeToTar(tarWriter, filepath.ToSlash(relPath), data)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to write plan files: %w", err)
	}

	return manifest, nil
}

// DetectCompression detects the compression type of a plan archive.
func DetectCompression(archivePath string) (CompressionType, error) {
	file, err := os.Open(archivePath)
	if err != nil {
		return "", errors.NewIO("open", archivePath, err)
	}
	defer file.Close()

	// Read magic bytes
	magic := make([]byte, 6)
	n, err := file.Read(magic)
	if err != nil {
		return "", errors.NewIO("read magic bytes", archivePath, err)
	}
	if n < 2 {
		return "", errors.NewValidation("archive", "file too small to detect compression")
	}

	// Check for gzip magic (1f 8b)
	if magic[0] == 0x1f && magic[1] == 0x8b {
		return CompressionGzip, nil
	}

	// Check for XZ magic (fd 37 7a 58 5a 00)
	if n >= 6 && magic[0] == 0xfd && magic[1] == 0x37 && magic[2] == 0x7a &&
		magic[3] == 0x58 && magic[4] == 0x5a && magic[5] == 0x00 {
		return CompressionXZ, nil
	}

	return "", errors.NewUnsupported("compression format", "unknown magic bytes")
}

// Unpack extracts a plan archive to the given directory and returns its
// manifest. Auto-detects compression format (XZ or gzip).
func Unpack(archivePath, destDir string) (*Manifest, error) {
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return nil, errors.NewIO("create directory", destDir, err)
	}

	compression, err := DetectCompression(archivePath)
	if err != nil {
		return nil, fmt.Errorf("failed to detect compression: %w", err)
	}

	file, err := os.Open(archivePath)
	if err != nil {
		return nil, errors.NewIO("open", archivePath, err)
	}
	defer file.Close()

	var decompressReader io.Reader
	switch compression {
	case CompressionGzip:
		gzReader, err := gzip.NewReader(file)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer gzReader.Close()
		decompressReader = gzReader
	case CompressionXZ:
		xzReader, err := xz.NewReader(file)
		if err != nil {
			return nil, fmt.Errorf("failed to create xz reader: %w", err)
		}
		decompressReader = xzReader
	default:
		return nil, fmt.Errorf("unsupported compression: %s", compression)
	}

	tarReader := tar.NewReader(decompressReader)

	var manifest *Manifest
	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read tar header: %w", err)
		}

		// Sanitize path
		cleanPath := filepath.Clean(header.Name)
		if strings.HasPrefix(cleanPath, "..") {
			continue
		}

		destPath := filepath.Join(destDir, cleanPath)

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(destPath, 0755); err != nil {
				return nil, fmt.Errorf("failed to create directory: %w", err)
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
				return nil, fmt.Errorf("failed to create parent directory: %w", err)
			}

			data, err := io.ReadAll(tarReader)
			if err != nil {
				return nil, fmt.Errorf("failed to read file data: %w", err)
			}
			if err := os.WriteFile(destPath, data, 0644); err != nil {
				return nil, fmt.Errorf("failed to write file: %w", err)
			}

			if header.Name == ManifestName {
				manifest, err = ParseManifest(data)
				if err != nil {
					return nil, err
				}
			}
		}
	}

	if manifest == nil {
		return nil, errors.NewValidation("archive", fmt.Sprintf("archive does not contain %s", ManifestName))
	}
	return manifest, nil
}

// writeToTar writes one file to the tar archive.
func writeToTar(tw *tar.Writer, name string, data []byte) error {
	header := &tar.Header{
		Name: name,
		Mode: 0644,
		Size: int64(len(data)),
	}

	if err := tw.WriteHeader(header); err != nil {
		return err
	}

	_, err := tw.Write(data)
	return err
}
