package epub

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// NCX is the parsed navigation structure, from either an NCX file (EPUB 2)
// or a NAV document (EPUB 3).
type NCX struct {
	UID       string
	Depth     int
	DocTitle  string
	NavPoints []NavPoint
}

// NavPoint is a single navigation entry.
type NavPoint struct {
	ID          string
	PlayOrder   int
	Label       string
	ContentPath string // fragment-free path within the EPUB
	Fragment    string // fragment identifier (without #)
	Children    []NavPoint
}

// Labels flattens the navigation tree into a path -> label map. The first
// label seen for a path wins, matching reading order.
func (n *NCX) Labels() map[string]string {
	labels := make(map[string]string)
	var visit func(points []NavPoint)
	visit = func(points []NavPoint) {
		for _, np := range points {
			if np.ContentPath != "" && np.Label != "" {
				if _, ok := labels[np.ContentPath]; !ok {
					labels[np.ContentPath] = np.Label
				}
			}
			visit(np.Children)
		}
	}
	visit(n.NavPoints)
	return labels
}

// LoadNCX loads the navigation structure for a package, preferring the NCX
// file named by the spine's toc attribute and falling back to an EPUB 3 NAV
// document. Returns nil when the package declares neither.
func LoadNCX(r *Reader, opf *OPF) (*NCX, error) {
	if opf.NCXPath != "" {
		content, err := r.ReadFile(opf.NCXPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read NCX: %w", err)
		}
		return parseNCX(content, filepath.Dir(opf.NCXPath))
	}

	if navPath, ok := findNAVPath(opf); ok {
		content, err := r.ReadFile(navPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read NAV document: %w", err)
		}
		return parseNAV(content, filepath.Dir(navPath))
	}

	return nil, nil
}

// findNAVPath locates the manifest item with the EPUB 3 "nav" property.
func findNAVPath(opf *OPF) (string, bool) {
	for _, item := range opf.Manifest {
		for _, prop := range item.Properties {
			if prop == "nav" {
				return item.Href, true
			}
		}
	}
	return "", false
}

// ncxDocument mirrors the NCX XML structure.
type ncxDocument struct {
	XMLName xml.Name `xml:"ncx"`
	Head    struct {
		Meta []struct {
			Name    string `xml:"name,attr"`
			Content string `xml:"content,attr"`
		} `xml:"meta"`
	} `xml:"head"`
	DocTitle struct {
		Text string `xml:"text"`
	} `xml:"docTitle"`
	NavMap struct {
		NavPoints []ncxNavPoint `xml:"navPoint"`
	} `xml:"navMap"`
}

type ncxNavPoint struct {
	ID        string `xml:"id,attr"`
	PlayOrder string `xml:"playOrder,attr"`
	NavLabel  struct {
		Text string `xml:"text"`
	} `xml:"navLabel"`
	Content struct {
		Src string `xml:"src,attr"`
	} `xml:"content"`
	Children []ncxNavPoint `xml:"navPoint"`
}

// parseNCX parses an NCX file. ncxDir is the directory containing the NCX;
// content src paths are resolved against it.
func parseNCX(content []byte, ncxDir string) (*NCX, error) {
	var doc ncxDocument
	if err := xml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse NCX XML: %w", err)
	}

	ncx := &NCX{DocTitle: strings.TrimSpace(doc.DocTitle.Text)}
	for _, m := range doc.Head.Meta {
		switch m.Name {
		case "dtb:uid":
			ncx.UID = m.Content
		case "dtb:depth":
			if d, err := strconv.Atoi(m.Content); err == nil {
				ncx.Depth = d
			}
		}
	}
	ncx.NavPoints = convertNavPoints(doc.NavMap.NavPoints, ncxDir)

	return ncx, nil
}

// convertNavPoints converts raw NCX nav points, resolving content paths.
func convertNavPoints(raw []ncxNavPoint, baseDir string) []NavPoint {
	var points []NavPoint
	for _, np := range raw {
		path, fragment := splitFragment(np.Content.Src)
		point := NavPoint{
			ID:          np.ID,
			Label:       strings.TrimSpace(np.NavLabel.Text),
			ContentPath: resolveNavPath(baseDir, path),
			Fragment:    fragment,
			Children:    convertNavPoints(np.Children, baseDir),
		}
		if po, err := strconv.Atoi(np.PlayOrder); err == nil {
			point.PlayOrder = po
		}
		points = append(points, point)
	}
	return points
}

// parseNAV parses an EPUB 3 NAV document, reading the anchors of the
// epub:type="toc" nav element (or the first nav element as fallback).
func parseNAV(content []byte, navDir string) (*NCX, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse NAV document: %w", err)
	}

	var nav *goquery.Selection
	doc.Find("nav").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if v, ok := s.Attr("epub:type"); ok && strings.Contains(v, "toc") {
			nav = s
			return false
		}
		return true
	})
	if nav == nil {
		nav = doc.Find("nav").First()
	}
	if nav.Length() == 0 {
		return &NCX{}, nil
	}

	ncx := &NCX{DocTitle: strings.TrimSpace(doc.Find("head > title").First().Text())}
	order := 0
	ncx.NavPoints = parseNAVList(nav.ChildrenFiltered("ol").First(), navDir, &order)
	return ncx, nil
}

// parseNAVList converts one <ol> of a NAV document into nav points.
func parseNAVList(list *goquery.Selection, baseDir string, order *int) []NavPoint {
	var points []NavPoint
	list.ChildrenFiltered("li").Each(func(_ int, li *goquery.Selection) {
		a := li.ChildrenFiltered("a").First()
		if a.Length() == 0 {
			a = li.Find("a").First()
		}
		if a.Length() == 0 {
			return
		}
		href, _ := a.Attr("href")
		path, fragment := splitFragment(href)
		*order++
		point := NavPoint{
			PlayOrder:   *order,
			Label:       strings.TrimSpace(a.Text()),
			ContentPath: resolveNavPath(baseDir, path),
			Fragment:    fragment,
		}
		if nested := li.ChildrenFiltered("ol").First(); nested.Length() > 0 {
			point.Children = parseNAVList(nested, baseDir, order)
		}
		points = append(points, point)
	})
	return points
}

// splitFragment splits a source path into the path and fragment identifier.
func splitFragment(src string) (path, fragment string) {
	if src == "" {
		return "", ""
	}
	parts := strings.SplitN(src, "#", 2)
	path = parts[0]
	if len(parts) == 2 {
		fragment = parts[1]
	}
	return path, fragment
}

// resolveNavPath resolves a navigation href against the navigation file's
// directory and slash-normalizes it.
func resolveNavPath(baseDir, path string) string {
	if path == "" {
		return ""
	}
	if baseDir == "" || baseDir == "." {
		return filepath.ToSlash(filepath.Clean(path))
	}
	return filepath.ToSlash(filepath.Clean(filepath.Join(baseDir, path)))
}
