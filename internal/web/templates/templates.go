// Package templates holds the HTML views of the catalog server as templ
// components.
package templates

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/CoursePlanner/internal/catalog"
)

// LoadInfo summarises the catalog currently served.
type LoadInfo struct {
	Source   string
	Courses  int
	Height   int
	LoadedAt time.Time
}

// page accumulates output and keeps the first write error.
type page struct {
	w   io.Writer
	err error
}

func (p *page) raw(s string) {
	if p.err == nil {
		_, p.err = io.WriteString(p.w, s)
	}
}

func (p *page) text(s string) {
	p.raw(templ.EscapeString(s))
}

func (p *page) link(href, label string) {
	p.raw(`<a href="`)
	p.text(href)
	p.raw(`">`)
	p.text(label)
	p.raw(`</a>`)
}

func coursePath(id string) string {
	return "/courses/" + url.PathEscape(id)
}

// Layout wraps body in the common page chrome.
func Layout(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &page{w: w}
		p.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>`)
		p.text(title)
		p.raw(`</title></head><body><header><h1>`)
		p.link("/", "ABCU Course Planner")
		p.raw(`</h1></header><main>`)
		if p.err != nil {
			return p.err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		p.raw(`</main></body></html>`)
		return p.err
	})
}

// CourseList renders the catalog in ascending course-number order.
func CourseList(entries []catalog.Entry, info LoadInfo) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &page{w: w}
		p.raw(`<h2>Here is a sample schedule:</h2>`)
		if len(entries) == 0 {
			p.raw(`<p class="empty">No catalog loaded.</p>`)
			return p.err
		}

		p.raw(`<p class="meta">`)
		p.text(fmt.Sprintf("%d courses from %s, loaded %s (tree height %d)",
			info.Courses, info.Source, info.LoadedAt.Format(time.RFC3339), info.Height))
		p.raw(`</p><ul class="courses">`)
		for _, e := range entries {
			p.raw(`<li>`)
			p.link(coursePath(e.ID), e.ID)
			p.raw(`, `)
			p.text(e.Course.Title())
			p.raw(`</li>`)
		}
		p.raw(`</ul>`)
		return p.err
	})
}

// CourseDetail renders one course and its prerequisites.
func CourseDetail(d catalog.Detail) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &page{w: w}
		p.raw(`<h2>`)
		p.text(d.ID + ", " + d.Course.Title())
		p.raw(`</h2><h3>Prerequisites</h3>`)

		if len(d.Prerequisites) == 0 && len(d.Missing) == 0 {
			p.raw(`<p>None</p>`)
			return p.err
		}

		p.raw(`<ul class="prerequisites">`)
		for _, pre := range d.Prerequisites {
			p.raw(`<li>`)
			p.link(coursePath(pre.ID), pre.ID)
			p.raw(`, `)
			p.text(pre.Course.Title())
			p.raw(`</li>`)
		}
		for _, id := range d.Missing {
			p.raw(`<li class="missing">`)
			p.text(id + " (not in catalog)")
			p.raw(`</li>`)
		}
		p.raw(`</ul>`)
		return p.err
	})
}

// ErrorAlert renders a user-facing error message. details may be empty.
func ErrorAlert(message, details, action, code string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &page{w: w}
		p.raw(`<div class="alert" role="alert"><p>`)
		p.text(message)
		p.raw(`</p>`)
		if details != "" {
			p.raw(`<p class="details">`)
			p.text(details)
			p.raw(`</p>`)
		}
		if action != "" {
			p.raw(`<p class="action">`)
			p.text(action)
			p.raw(`</p>`)
		}
		if code != "" {
			p.raw(`<p class="code">Code: `)
			p.text(code)
			p.raw(`</p>`)
		}
		p.raw(`</div>`)
		return p.err
	})
}
