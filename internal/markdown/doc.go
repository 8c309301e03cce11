// Package markdown renders post sources into HTML fragments. It wraps the
// goldmark engine behind interfaces.MarkdownParser, extracts YAML frontmatter
// into post metadata, and discovers post files on disk for the composer and
// generator layers.
package markdown
