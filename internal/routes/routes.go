// Package routes turns derived blog metadata into route descriptors plus
// content-addressed JSON data artifacts. Emission is pure; the Writer owns
// every byte of output I/O.
package routes

import (
	"encoding/json"
	"time"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
	berrors "git.home.luguber.info/inful/blogbuilder/internal/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/content"
	"git.home.luguber.info/inful/blogbuilder/internal/paginate"
	"git.home.luguber.info/inful/blogbuilder/internal/taxonomy"
)

// Component identifiers the rendering layer binds to. Opaque to this core.
const (
	ComponentPost      = "blog/post"
	ComponentList      = "blog/list"
	ComponentTagList   = "blog/tag-list"
	ComponentTagsIndex = "blog/tags-index"
)

// Route binds a path to a renderable component and its data artifacts.
type Route struct {
	Path      string   `json:"path"`
	Component string   `json:"component"`
	DataRefs  []string `json:"data"`
}

// Artifact is one serialized JSON data document, content-addressed by a hash
// of its logical path so the downstream bundler can dedupe.
type Artifact struct {
	LogicalPath string
	Key         string
	Data        []byte
}

// postData is the serialized form of a Post.
type postData struct {
	ID          string            `json:"id"`
	SourcePath  string            `json:"source_path"`
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	Date        time.Time         `json:"date"`
	Permalink   string            `json:"permalink"`
	Tags        []tagRef          `json:"tags,omitempty"`
	Authors     []content.Author  `json:"authors,omitempty"`
	WordCount   int               `json:"word_count"`
	ReadingTime float64           `json:"reading_time"`
	Truncated   bool              `json:"truncated"`
	Unlisted    bool              `json:"unlisted,omitempty"`
	PrevItem    *content.PostRef  `json:"prev_item,omitempty"`
	NextItem    *content.PostRef  `json:"next_item,omitempty"`
	FreeForm    map[string]any    `json:"front_matter,omitempty"`
}

type tagRef struct {
	Label     string `json:"label"`
	Permalink string `json:"permalink"`
}

// listPageData is the serialized form of one listing page. Items reference
// posts by id; the renderer resolves them through the post artifacts.
type listPageData struct {
	Index     int      `json:"page"`
	Total     int      `json:"total_pages"`
	Permalink string   `json:"permalink"`
	First     string   `json:"first,omitempty"`
	Prev      string   `json:"prev,omitempty"`
	Next      string   `json:"next,omitempty"`
	Last      string   `json:"last,omitempty"`
	Items     []string `json:"items"`
}

type tagIndexEntry struct {
	Label     string `json:"label"`
	Permalink string `json:"permalink"`
	Count     int    `json:"count"`
}

// Emitter derives routes and artifacts from aggregated content.
type Emitter struct {
	cfg *config.Config
}

// NewEmitter creates an Emitter for one build.
func NewEmitter(cfg *config.Config) *Emitter {
	return &Emitter{cfg: cfg}
}

// Emit produces the full route and artifact set: one route per post, per
// archive page, per tag page, plus the tags index. Zero posts produce zero
// routes.
func (e *Emitter) Emit(posts []*content.Post, tags []*taxonomy.Tag, archive []paginate.Page) ([]Route, []Artifact, error) {
	var routeList []Route
	var artifacts []Artifact

	tagKeys := tagPermalinksByLabelKey(tags)

	for _, p := range posts {
		art, err := e.artifact("post:"+p.Permalink, e.postPayload(p, tagKeys))
		if err != nil {
			return nil, nil, err
		}
		artifacts = append(artifacts, art)
		routeList = append(routeList, Route{Path: p.Permalink, Component: ComponentPost, DataRefs: []string{art.Key}})
	}

	pageRoutes, pageArtifacts, err := e.emitPages(ComponentList, "archive", archive)
	if err != nil {
		return nil, nil, err
	}
	routeList = append(routeList, pageRoutes...)
	artifacts = append(artifacts, pageArtifacts...)

	for _, tag := range tags {
		tagRoutes, tagArtifacts, err := e.emitPages(ComponentTagList, "tag", tag.Pages)
		if err != nil {
			return nil, nil, err
		}
		routeList = append(routeList, tagRoutes...)
		artifacts = append(artifacts, tagArtifacts...)
	}

	if len(tags) > 0 {
		index := make([]tagIndexEntry, 0, len(tags))
		for _, tag := range tags {
			index = append(index, tagIndexEntry{Label: tag.Label, Permalink: tag.Permalink, Count: len(tag.Posts)})
		}
		indexPath := e.cfg.Blog.TagsBasePath
		art, err := e.artifact("tags-index:"+indexPath, index)
		if err != nil {
			return nil, nil, err
		}
		artifacts = append(artifacts, art)
		routeList = append(routeList, Route{Path: indexPath, Component: ComponentTagsIndex, DataRefs: []string{art.Key}})
	}

	return routeList, artifacts, nil
}

func (e *Emitter) emitPages(component, kind string, pages []paginate.Page) ([]Route, []Artifact, error) {
	var routeList []Route
	var artifacts []Artifact
	for _, page := range pages {
		ids := make([]string, 0, len(page.Items))
		for _, p := range page.Items {
			ids = append(ids, p.ID)
		}
		payload := listPageData{
			Index:     page.Index,
			Total:     page.Total,
			Permalink: page.Permalink,
			First:     page.First,
			Prev:      page.Prev,
			Next:      page.Next,
			Last:      page.Last,
			Items:     ids,
		}
		art, err := e.artifact(kind+":"+page.Permalink, payload)
		if err != nil {
			return nil, nil, err
		}
		artifacts = append(artifacts, art)
		routeList = append(routeList, Route{Path: page.Permalink, Component: component, DataRefs: []string{art.Key}})
	}
	return routeList, artifacts, nil
}

func (e *Emitter) postPayload(p *content.Post, tagPermalinks map[string]string) postData {
	tags := make([]tagRef, 0, len(p.Tags))
	for _, ref := range p.Tags {
		permalink := ref.Permalink
		if resolved, ok := tagPermalinks[taxonomy.NormalizeKey(ref.Label)]; ok {
			permalink = resolved
		}
		tags = append(tags, tagRef{Label: ref.Label, Permalink: permalink})
	}
	return postData{
		ID:          p.ID,
		SourcePath:  p.SourcePath,
		Title:       p.Title,
		Description: p.Description,
		Date:        p.Date,
		Permalink:   p.Permalink,
		Tags:        tags,
		Authors:     p.Authors,
		WordCount:   p.WordCount,
		ReadingTime: p.ReadingTime,
		Truncated:   p.TruncateOffset >= 0,
		Unlisted:    p.Unlisted,
		PrevItem:    p.PrevItem,
		NextItem:    p.NextItem,
		FreeForm:    p.FreeForm,
	}
}

func (e *Emitter) artifact(logicalPath string, payload any) (Artifact, error) {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return Artifact{}, berrors.InternalError("marshal artifact "+logicalPath, err)
	}
	return Artifact{LogicalPath: logicalPath, Key: HashKey(logicalPath), Data: data}, nil
}

func tagPermalinksByLabelKey(tags []*taxonomy.Tag) map[string]string {
	out := make(map[string]string, len(tags))
	for _, tag := range tags {
		out[tag.Key] = tag.Permalink
	}
	return out
}
