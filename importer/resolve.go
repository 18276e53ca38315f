package importer

import (
	"context"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/fwojciec/h2wp"
)

// Ensure AssetResolver implements h2wp.AssetResolver at compile time.
var _ h2wp.AssetResolver = (*AssetResolver)(nil)

// AssetResolver resolves the asset references of a single document to
// local files and sideloads each file at most once.
//
// An AssetResolver is created per document and is not safe for concurrent use.
type AssetResolver struct {
	Files h2wp.FileSystem
	Media h2wp.MediaService

	// BasePath is the root of the source tree. Root-relative references and
	// references under BaseURL resolve against it, and no resolved file may
	// lie outside it.
	BasePath string

	// DocDir is the directory of the document being imported. Other
	// relative references resolve against it.
	DocDir string

	BaseURL string
	DryRun  bool

	// imported memoizes sideload outcomes by local path. A failed sideload
	// is stored as a zero AssetResolution.
	imported map[string]h2wp.AssetResolution
}

// NewAssetResolver returns a resolver for the document at docPath.
func NewAssetResolver(files h2wp.FileSystem, media h2wp.MediaService, opts h2wp.ImportOptions, docPath string) *AssetResolver {
	return &AssetResolver{
		Files:    files,
		Media:    media,
		BasePath: opts.BasePath,
		DocDir:   filepath.Dir(docPath),
		BaseURL:  opts.BaseURL,
		DryRun:   opts.DryRun,
	}
}

// Resolve returns the imported location of ref. External references,
// references that do not name a readable file below BasePath, dry runs and
// failed sideloads all return ref unchanged.
func (r *AssetResolver) Resolve(ctx context.Context, ref string) h2wp.AssetResolution {
	unchanged := h2wp.AssetResolution{URL: ref}

	local, ok := r.LocalPath(ref)
	if !ok || !r.Files.IsReadableFile(local) {
		return unchanged
	}
	if r.DryRun {
		return unchanged
	}

	if r.imported == nil {
		r.imported = make(map[string]h2wp.AssetResolution)
	}
	res, seen := r.imported[local]
	if !seen {
		res = r.sideload(ctx, local)
		r.imported[local] = res
	}

	if res.URL == "" {
		res.URL = ref
	}
	return res
}

// sideload imports a local file. A zero result means the import failed.
func (r *AssetResolver) sideload(ctx context.Context, local string) h2wp.AssetResolution {
	id, err := r.Media.Sideload(ctx, local)
	if err != nil {
		return h2wp.AssetResolution{}
	}
	res := h2wp.AssetResolution{AttachmentID: id}
	if u, err := r.Media.AttachmentURL(ctx, id); err == nil {
		res.URL = u
	}
	return res
}

// LocalPath maps ref to a filesystem path below BasePath.
//
// References without a scheme or "//" prefix are local-relative. Absolute
// URLs are local only when they start with BaseURL at a path boundary, and
// the remainder is resolved against BasePath. Query strings and fragments
// are ignored.
func (r *AssetResolver) LocalPath(ref string) (string, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" || r.BasePath == "" {
		return "", false
	}
	if strings.HasPrefix(strings.ToLower(ref), "data:") {
		return "", false
	}

	u, err := url.Parse(ref)
	if err != nil {
		return "", false
	}

	var candidate string
	switch {
	case u.Scheme == "" && u.Host == "" && !strings.HasPrefix(ref, "//"):
		if u.Path == "" {
			return "", false
		}
		if strings.HasPrefix(u.Path, "/") {
			candidate = filepath.Join(r.BasePath, filepath.FromSlash(u.Path))
		} else {
			candidate = filepath.Join(r.DocDir, filepath.FromSlash(u.Path))
		}
	case r.BaseURL != "":
		rest, ok := trimBaseURL(ref, r.BaseURL)
		if !ok {
			return "", false
		}
		ru, err := url.Parse(rest)
		if err != nil {
			return "", false
		}
		p := strings.TrimLeft(ru.Path, "/")
		if p == "" {
			return "", false
		}
		candidate = filepath.Join(r.BasePath, filepath.FromSlash(p))
	default:
		return "", false
	}

	if !within(r.BasePath, candidate) {
		return "", false
	}
	return candidate, true
}

// trimBaseURL strips base from the front of ref. The match is
// case-insensitive and must end at a path boundary, so
// https://example.com does not match https://example.community.
func trimBaseURL(ref, base string) (string, bool) {
	base = strings.TrimRight(base, "/")
	if len(ref) < len(base) || !strings.EqualFold(ref[:len(base)], base) {
		return "", false
	}
	rest := ref[len(base):]
	if rest != "" && !strings.ContainsRune("/?#", rune(rest[0])) {
		return "", false
	}
	return rest, true
}

// within reports whether path lies inside root.
func within(root, path string) bool {
	rel, err := filepath.Rel(filepath.Clean(root), filepath.Clean(path))
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
