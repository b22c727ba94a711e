package service

import "github.com/quillpress/blog-api/internal/core/ports"

const maxPageLimit = 100

// normalizePage clamps skip to >= 0 and limit to (0, maxPageLimit], using
// defaultLimit when none was given.
func normalizePage(p ports.Page, defaultLimit int) ports.Page {
	if p.Skip < 0 {
		p.Skip = 0
	}
	if p.Limit <= 0 {
		p.Limit = defaultLimit
	}
	if p.Limit > maxPageLimit {
		p.Limit = maxPageLimit
	}
	return p
}
