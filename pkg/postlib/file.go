package postlib

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// FileInfo describes a resolved media file. It exclusively owns the
// underlying stream until Close is called; the stream is positioned at
// offset 0 on return from ResolveFile.
type FileInfo struct {
	// Name is the base name of the file, used for MIME detection and as
	// the multipart filename during upload.
	Name string
	// Size is the exact byte length of the resolved stream.
	Size int64
	// MimeType is derived from the file name's extension, never from
	// remote headers, keeping resolution deterministic and offline-testable.
	// Empty when the extension is unknown.
	MimeType string
	// Remote reports whether the file was fetched from a remote reference.
	Remote bool

	f   *os.File
	tmp bool
}

// Read implements io.Reader over the resolved stream.
func (fi *FileInfo) Read(p []byte) (int, error) {
	return fi.f.Read(p)
}

// Close releases the underlying stream. Temp files backing remote fetches
// are removed. Safe to call once per FileInfo on both success and failure
// paths.
func (fi *FileInfo) Close() error {
	err := fi.f.Close()
	if fi.tmp {
		_ = os.Remove(fi.f.Name())
	}
	return err
}

// ResolveFile resolves a media reference into a FileInfo. Supported
// references: local paths, http(s)://, ftp(s):// and sftp:// URLs. Remote
// references are streamed into a randomly named process-owned temp file
// first, since the remote stream is not re-readable for chunking.
//
// client is used for http(s) fetches; pass nil for http.DefaultClient.
func ResolveFile(client *http.Client, ref string) (*FileInfo, error) {
	if ref == "" {
		return nil, ErrEmptyReference
	}
	scheme := refScheme(ref)
	switch scheme {
	case "http", "https":
		return resolveHTTP(client, ref)
	case "ftp", "ftps":
		return resolveFTP(ref)
	case "sftp":
		return resolveSFTP(ref)
	default:
		return resolveLocal(ref)
	}
}

func refScheme(ref string) string {
	i := strings.Index(ref, "://")
	if i < 0 {
		return ""
	}
	return strings.ToLower(ref[:i])
}

func resolveLocal(ref string) (*FileInfo, error) {
	abs, err := filepath.Abs(ref)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, abs)
		}
		return nil, err
	}
	return newFileInfo(f, filepath.Base(abs), false, false)
}

func resolveHTTP(client *http.Client, ref string) (*FileInfo, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequest(http.MethodGet, ref, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", defUserAgent)
	res, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, &FetchError{URL: ref, Status: res.StatusCode}
	}
	return spoolRemote(res.Body, remoteFileName(ref))
}

// spoolRemote copies a remote stream into a temp file and wraps it into a
// FileInfo. The temp file is removed on FileInfo.Close.
func spoolRemote(r io.Reader, name string) (*FileInfo, error) {
	tmp, err := os.CreateTemp("", "fridayd-media-*")
	if err != nil {
		return nil, err
	}
	_, err = io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		_ = os.Remove(tmp.Name())
		return nil, err
	}
	fi, err := newFileInfo(tmp, name, true, true)
	if err != nil {
		tmp.Close()
		_ = os.Remove(tmp.Name())
		return nil, err
	}
	return fi, nil
}

// remoteFileName extracts the base file name from a remote reference URL.
func remoteFileName(ref string) string {
	u, err := url.Parse(ref)
	if err != nil {
		return path.Base(ref)
	}
	return path.Base(u.Path)
}

// newFileInfo measures the stream by seeking to the end and back to the
// start, leaving it positioned at offset 0.
func newFileInfo(f *os.File, name string, remote, tmp bool) (*FileInfo, error) {
	size, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, err
	}
	if _, err = f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	return &FileInfo{
		Name:     name,
		Size:     size,
		MimeType: mimeTypeOf(name),
		Remote:   remote,
		f:        f,
		tmp:      tmp,
	}, nil
}

// The video extensions are absent from the mime package's builtin table
// and would otherwise depend on the host's /etc/mime.types.
func init() {
	_ = mime.AddExtensionType(".mp4", "video/mp4")
	_ = mime.AddExtensionType(".mov", "video/quicktime")
}

func mimeTypeOf(name string) string {
	mt := mime.TypeByExtension(path.Ext(name))
	if mt == "" {
		return ""
	}
	// Strip optional parameters such as "; charset=utf-8".
	if i := strings.Index(mt, ";"); i >= 0 {
		mt = mt[:i]
	}
	return strings.TrimSpace(mt)
}
