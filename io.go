package fsutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/php-toolkit/fsutil/checksum"
)

// DefaultDirPerm is the permission mode used for created directories
const DefaultDirPerm = 0o755

// DefaultFilePerm is the permission mode used for created files
const DefaultFilePerm = 0o644

// ReadBytes reads the entire file at path
func ReadBytes(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, WrapPathError("read", path, err)
	}
	return data, nil
}

// ReadString reads the entire file at path as a string
func ReadString(path string) (string, error) {
	data, err := ReadBytes(path)
	return string(data), err
}

// WriteBytes writes data to path atomically: the content goes to a temp file
// in the same directory first and is renamed into place, so a crash mid-write
// never leaves a truncated file behind.
func WriteBytes(path string, data []byte) error {
	tempPath := path + ".fsutil.tmp"

	file, err := os.OpenFile(tempPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, DefaultFilePerm)
	if err != nil {
		return WrapPathError("write", path, err)
	}

	_, writeErr := file.Write(data)
	closeErr := file.Close()

	if writeErr != nil {
		os.Remove(tempPath)
		return WrapPathError("write", path, writeErr)
	}
	if closeErr != nil {
		os.Remove(tempPath)
		return WrapPathError("write", path, closeErr)
	}

	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return WrapPathError("write", path, err)
	}

	return nil
}

// WriteString writes content to path atomically
func WriteString(path, content string) error {
	return WriteBytes(path, []byte(content))
}

// QuickWrite creates any missing parent directories, then writes content
func QuickWrite(path, content string) error {
	if err := Mkdir(filepath.Dir(path)); err != nil {
		return err
	}
	return WriteString(path, content)
}

// Mkdir creates a directory and any necessary parents
func Mkdir(path string) error {
	if err := os.MkdirAll(path, DefaultDirPerm); err != nil {
		return WrapPathError("mkdir", path, err)
	}
	return nil
}

// Remove deletes a file or directory tree. Missing paths are not an error.
func Remove(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return WrapPathError("remove", path, err)
	}
	return nil
}

// CopyFile copies src to dst, creating dst's parent directories as needed.
// The source's permission bits are preserved.
func CopyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return WrapPathError("copy", src, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: copy %s", ErrNotFile, src)
	}

	in, err := os.Open(src)
	if err != nil {
		return WrapPathError("copy", src, err)
	}
	defer in.Close()

	if err := Mkdir(filepath.Dir(dst)); err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return WrapPathError("copy", dst, err)
	}

	_, copyErr := io.Copy(out, in)
	closeErr := out.Close()

	if copyErr != nil {
		os.Remove(dst)
		return WrapPathError("copy", dst, copyErr)
	}
	if closeErr != nil {
		os.Remove(dst)
		return WrapPathError("copy", dst, closeErr)
	}

	return nil
}

// CopyDir recursively copies the directory tree rooted at src into dst.
// Symlinks inside the tree are recreated, not followed.
func CopyDir(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return WrapPathError("copy", src, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: copy %s", ErrNotDirectory, src)
	}

	if err := os.MkdirAll(dst, info.Mode().Perm()); err != nil {
		return WrapPathError("copy", dst, err)
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return WrapPathError("copy", src, err)
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		switch {
		case entry.Type()&os.ModeSymlink != 0:
			target, err := os.Readlink(srcPath)
			if err != nil {
				return WrapPathError("copy", srcPath, err)
			}
			if err := os.Symlink(target, dstPath); err != nil {
				return WrapPathError("copy", dstPath, err)
			}
		case entry.IsDir():
			if err := CopyDir(srcPath, dstPath); err != nil {
				return err
			}
		default:
			if err := CopyFile(srcPath, dstPath); err != nil {
				return err
			}
		}
	}

	return nil
}

// Md5File computes the MD5 digest of the file at path
func Md5File(path string) (string, error) {
	return checksum.SumFile(path, checksum.MD5)
}

// Sha256File computes the SHA-256 digest of the file at path
func Sha256File(path string) (string, error) {
	return checksum.SumFile(path, checksum.SHA256)
}
