package hugo

import (
	"context"
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/docsmith"
)

// Ensure Sitemap implements docsmith.PageLister at compile time.
var _ docsmith.PageLister = (*Sitemap)(nil)

// Sitemap lists the pages of a built site from public/sitemap.xml.
//
// Multilingual sites produce a sitemap index whose entries point at
// per-language sitemaps. Those are resolved against the public directory by
// URL path, so no network access is needed.
type Sitemap struct {
	PublicDir string
}

// NewSitemap returns a Sitemap reading from publicDir.
func NewSitemap(publicDir string) *Sitemap {
	return &Sitemap{PublicDir: publicDir}
}

// ListPages returns the sorted, de-duplicated URL paths of all pages.
// Returns ENOTFOUND if the site has not been built.
func (s *Sitemap) ListPages(ctx context.Context) ([]string, error) {
	seen := make(map[string]bool)
	pages, err := s.processSitemap(ctx, filepath.Join(s.PublicDir, "sitemap.xml"), seen)
	if err != nil {
		return nil, err
	}
	slices.Sort(pages)
	return slices.Compact(pages), nil
}

func (s *Sitemap) processSitemap(ctx context.Context, path string, seen map[string]bool) ([]string, error) {
	if seen[path] {
		return nil, nil
	}
	seen[path] = true

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, docsmith.Errorf(docsmith.ENOTFOUND, "sitemap %s not found; build the site first", path)
	} else if err != nil {
		return nil, err
	}
	defer f.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(f); err != nil {
		return nil, docsmith.Errorf(docsmith.ECORRUPT, "cannot parse sitemap %s: %v", path, err)
	}

	root := doc.Root()
	if root == nil {
		return nil, nil
	}
	if root.Tag == "sitemapindex" {
		return s.processSitemapIndex(ctx, root, seen)
	}
	return parseURLSet(root), nil
}

func (s *Sitemap) processSitemapIndex(ctx context.Context, root *etree.Element, seen map[string]bool) ([]string, error) {
	var pages []string
	for _, sitemap := range root.SelectElements("sitemap") {
		loc := sitemap.SelectElement("loc")
		if loc == nil {
			continue
		}
		rel := pagePath(loc.Text())
		if rel == "" {
			continue
		}
		child, err := s.processSitemap(ctx, filepath.Join(s.PublicDir, filepath.FromSlash(strings.TrimPrefix(rel, "/"))), seen)
		if err != nil {
			if docsmith.ErrorCode(err) == docsmith.ENOTFOUND {
				continue
			}
			return nil, err
		}
		pages = append(pages, child...)
	}
	return pages, nil
}

func parseURLSet(root *etree.Element) []string {
	var pages []string
	for _, urlEl := range root.SelectElements("url") {
		loc := urlEl.SelectElement("loc")
		if loc == nil {
			continue
		}
		if p := pagePath(loc.Text()); p != "" {
			pages = append(pages, p)
		}
	}
	return pages
}

// pagePath returns the path component of a sitemap location.
func pagePath(loc string) string {
	loc = strings.TrimSpace(loc)
	if loc == "" {
		return ""
	}
	u, err := url.Parse(loc)
	if err != nil {
		return ""
	}
	if u.Path == "" {
		return "/"
	}
	return u.Path
}
