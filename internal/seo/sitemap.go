// Package seo derives the generated site artifacts: the sitemap and the
// per-post structured data used by search engines.
package seo

import (
	"encoding/xml"
	"time"

	"github.com/inkandpages/blog-service/internal/model"
)

// Static pages always present in the sitemap, relative to the site base URL.
var staticPages = []string{"/", "/archive", "/about"}

type urlSet struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns string `xml:"xmlns,attr"`
	URLs []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority string `xml:"priority,omitempty"`
}

// BuildSitemap renders the sitemap XML for the static pages plus every
// published post.
func BuildSitemap(baseURL string, posts []*model.Post) ([]byte, error) {
	set := urlSet{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
	}

	for _, page := range staticPages {
		set.URLs = append(set.URLs, sitemapURL{
			Loc: baseURL + page,
			ChangeFreq: "weekly",
			Priority: "0.8",
		})
	}

	for _, post := range posts {
		if !post.Published {
			continue
		}
		lastMod := post.UpdatedAt
		if lastMod == 0 {
			lastMod = post.PublishedAt
		}
		set.URLs = append(set.URLs, sitemapURL{
			Loc: baseURL + "/posts/" + post.ID,
			LastMod: time.UnixMilli(lastMod).UTC().Format("2006-01-02"),
			ChangeFreq: "monthly",
			Priority: "0.6",
		})
	}

	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}
