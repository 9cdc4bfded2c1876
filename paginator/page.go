package paginator

// Page is one unit of paginated content. Rich holds the platform specific
// attachment (an embed, a photo) and may be nil.
type Page struct {
	Text string
	Rich any
}

// buildPages zips contents and embeds into pages. When only one of them is
// given the other side is filled with empty placeholders.
func buildPages(contents []string, embeds []any, hasContents bool, hasEmbeds bool) ([]Page, error) {
	switch {
	case !hasContents && !hasEmbeds:
		return nil, ErrMissingContent
	case hasContents && hasEmbeds && len(contents) != len(embeds):
		return nil, ErrArgumentMismatch
	}

	n := len(contents)
	if !hasContents {
		n = len(embeds)
	}
	if n == 0 {
		return nil, ErrMissingContent
	}

	pages := make([]Page, n)
	for i := range pages {
		if hasContents {
			pages[i].Text = contents[i]
		}
		if hasEmbeds {
			pages[i].Rich = embeds[i]
		}
	}
	return pages, nil
}

// content renders the text of a page with the header on top.
func content(header string, page Page) string {
	if header == "" {
		return page.Text
	}
	return header + "\n" + page.Text
}
