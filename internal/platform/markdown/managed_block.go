package markdown

import "strings"

// Block is a region of a note delimited by marker comments and rewritten on
// every export. Text outside the markers belongs to the user.
type Block struct {
	Start string
	End   string
}

// Replace swaps the block's contents for generated, appending the block when
// body has no complete start/end pair.
func (b Block) Replace(body, generated string) string {
	block := b.Start + "\n" + generated + "\n" + b.End

	if start := strings.Index(body, b.Start); start >= 0 {
		if end := strings.Index(body[start:], b.End); end >= 0 {
			end += start + len(b.End)
			return body[:start] + block + body[end:]
		}
	}

	switch {
	case strings.TrimSpace(body) == "":
		return block + "\n"
	case strings.HasSuffix(body, "\n"):
		return body + "\n" + block + "\n"
	default:
		return body + "\n\n" + block + "\n"
	}
}
