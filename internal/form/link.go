package form

import (
	"net/url"
	"strconv"
	"strings"
)

// Link is a rendered reference. Href and Label are raw values; escaping is
// the renderer's job.
type Link struct {
	Href  string
	Label string
}

// LinkBuilder turns a node reference into a link.
type LinkBuilder interface {
	Link(nodeID int64, title string) Link
}

// PathLinkBuilder builds <base>/node/<id> links.
type PathLinkBuilder struct {
	base string
}

// NewPathLinkBuilder accepts an absolute site URL or "" for site-relative links.
func NewPathLinkBuilder(baseURL string) *PathLinkBuilder {
	return &PathLinkBuilder{base: strings.TrimRight(baseURL, "/")}
}

func (b *PathLinkBuilder) Link(nodeID int64, title string) Link {
	label := strings.TrimSpace(title)
	if label == "" {
		label = "node/" + strconv.FormatInt(nodeID, 10)
	}
	return Link{
		Href:  b.base + "/node/" + url.PathEscape(strconv.FormatInt(nodeID, 10)),
		Label: label,
	}
}
